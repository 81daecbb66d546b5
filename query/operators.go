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

package query

import (
	"github.com/mutantdb/hexastore/solution"
	"github.com/mutantdb/hexastore/term"
)

// Predicate reports whether a solution should survive a Filter.
type Predicate func(solution.Solution) bool

// Filter keeps only the solutions for which pred returns true.
func Filter(in []solution.Solution, pred Predicate) []solution.Solution {
	out := make([]solution.Solution, 0, len(in))
	for _, s := range in {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

// IsNot returns a Predicate that rejects solutions where the two variables
// are bound to equal terms — the constraint a sibling-from-shared-parent
// rule needs to exclude a person being their own sibling.
func IsNot(a, b term.Variable) Predicate {
	return func(s solution.Solution) bool {
		return !term.Equal(s.Get(a), s.Get(b))
	}
}

// Project restricts each solution's visible bindings to vars, discarding
// the rest. Provenance triples are kept — a client that asked for fewer
// columns still gets to see why the row is in the result.
func Project(in []solution.Solution, vars []term.Variable) []solution.Solution {
	out := make([]solution.Solution, 0, len(in))
	for _, s := range in {
		bindings := make(map[term.Variable]term.Term, len(vars))
		for _, v := range vars {
			if t, ok := s.Lookup(v); ok {
				bindings[v] = t
			}
		}
		out = append(out, solution.New(bindings, nil, s.Triples()...))
	}
	return out
}

// sameBindings reports whether a and b bind the same variables to equal
// terms. Unlike Solution.Equal it ignores provenance.
func sameBindings(a, b solution.Solution) bool {
	vars := a.Variables()
	if len(vars) != len(b.Variables()) {
		return false
	}
	for _, v := range vars {
		bt, ok := b.Lookup(v)
		if !ok || !term.Equal(a.Get(v), bt) {
			return false
		}
	}
	return true
}

// Distinct removes every duplicate solution, regardless of position,
// keeping the first occurrence. Two solutions are duplicates when they
// bind the same variables to equal terms; their provenance is not
// compared, and the kept solution carries only its own provenance.
func Distinct(in []solution.Solution) []solution.Solution {
	out := make([]solution.Solution, 0, len(in))
	for _, s := range in {
		dup := false
		for _, kept := range out {
			if sameBindings(s, kept) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}

// Reduced removes adjacent duplicate solutions without guaranteeing
// duplicates are eliminated globally — the weaker SPARQL REDUCED contract,
// cheaper than Distinct when the input is already grouped by its bindings
// (e.g. coming out of an ORDER BY on the same variables).
func Reduced(in []solution.Solution) []solution.Solution {
	out := make([]solution.Solution, 0, len(in))
	for i, s := range in {
		if i > 0 && sameBindings(s, in[i-1]) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Limit truncates in to at most n solutions.
func Limit(in []solution.Solution, n int) []solution.Solution {
	if n < 0 || n >= len(in) {
		return in
	}
	return in[:n]
}

// LeftJoin matches every left solution against right, merging with every
// compatible right solution. A left solution with no compatible right
// solution is kept unmodified, rather than dropped — the SPARQL OPTIONAL
// semantics this implements.
func LeftJoin(left, right []solution.Solution) []solution.Solution {
	out := make([]solution.Solution, 0, len(left))
	for _, l := range left {
		matched := false
		for _, r := range right {
			merged, err := l.Mutate(r)
			if err != nil {
				continue
			}
			out = append(out, merged)
			matched = true
		}
		if !matched {
			out = append(out, l)
		}
	}
	return out
}
