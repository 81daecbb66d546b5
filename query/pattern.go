// Copyright 2024 The Hexastore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package query implements the basic graph pattern matcher and the
// relational operators layered over it: left join, filter, project,
// distinct, reduced, limit and group-aggregate.
package query

import "github.com/mutantdb/hexastore/term"

// Pattern is a triple pattern: any of S, P or O may be a term.Variable,
// which binds to whatever term occupies that position in a matching
// triple, or a constant term, which the matching triple must equal
// exactly at that position.
type Pattern struct {
	S, P, O term.Term
}

// variableCount returns how many of the pattern's three positions are
// term.Variable. The planner matches patterns with fewer free variables
// first, since they narrow the candidate set the most per unit of work.
func (p Pattern) variableCount() int {
	n := 0
	if isVariable(p.S) {
		n++
	}
	if isVariable(p.P) {
		n++
	}
	if isVariable(p.O) {
		n++
	}
	return n
}

func isVariable(t term.Term) bool {
	_, ok := t.(term.Variable)
	return ok
}
