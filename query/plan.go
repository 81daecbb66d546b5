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
	"github.com/mutantdb/hexastore/container"
	"github.com/mutantdb/hexastore/solution"
	"github.com/mutantdb/hexastore/store"
	"github.com/mutantdb/hexastore/term"
)

// selectIndex picks whichever of the hexastore's six orderings puts this
// pattern's bound positions first, so the trunk and branch walks below can
// jump straight to the matching leading/mid terms instead of scanning.
// Only four of the six indexes are ever chosen: the other two (ops, pso)
// are only useful when paired the other way around, since for any pair of
// bound positions one of spo/sop/pos already starts with exactly that
// pair.
func selectIndex(bound [3]bool) store.Kind {
	s, p, o := bound[0], bound[1], bound[2]
	switch {
	case s && p:
		return store.SPO
	case s && o:
		return store.SOP
	case p && o:
		return store.POS
	case s:
		return store.SPO
	case p:
		return store.POS
	case o:
		return store.OSP
	default:
		return store.SPO
	}
}

// coords maps a pattern's (S, P, O) onto the (leading, mid, leaf) terms of
// the given index kind.
func coords(kind store.Kind, p Pattern) (leading, mid, leafTerm term.Term) {
	switch kind {
	case store.SPO:
		return p.S, p.P, p.O
	case store.SOP:
		return p.S, p.O, p.P
	case store.POS:
		return p.P, p.O, p.S
	case store.OSP:
		return p.O, p.S, p.P
	default:
		panic("query: selectIndex returned an index kind the planner never produces")
	}
}

// matchPattern evaluates a single triple pattern against st, returning one
// Solution per matching triple: its bindings for whichever of S, P, O were
// Variables in p, and that triple as its sole provenance.
func matchPattern(st *store.Store, p Pattern, order []solution.OrderCondition, stats *Stats) []solution.Solution {
	bound := [3]bool{!isVariable(p.S), !isVariable(p.P), !isVariable(p.O)}
	kind := selectIndex(bound)
	trunk, transform := st.IndexTrunk(kind)
	leadingTerm, midTerm, leafTerm := coords(kind, p)

	var results []solution.Solution

	bindLeaf := func(leading, mid, c term.Term) {
		stats.incrementTriples()
		t := transform(leading, mid, c)
		bindings := map[term.Variable]term.Term{}
		if v, ok := p.S.(term.Variable); ok {
			bindings[v] = t.S
		}
		if v, ok := p.P.(term.Variable); ok {
			bindings[v] = t.P
		}
		if v, ok := p.O.(term.Variable); ok {
			bindings[v] = t.O
		}
		results = append(results, solution.New(bindings, order, t))
	}

	walkBranch := func(leading, mid term.Term, lf *container.SortedList[term.Term]) {
		if isBoundCoord(leafTerm) {
			if lf.Contains(leafTerm) {
				bindLeaf(leading, mid, leafTerm)
			}
			return
		}
		it := lf.Iter(container.Ascending)
		for c, ok := it.Next(); ok; c, ok = it.Next() {
			bindLeaf(leading, mid, c)
		}
	}

	walkTrunk := func(leading term.Term, branch *store.Branch) {
		if isBoundCoord(midTerm) {
			if lf, ok := branch.Lookup(midTerm); ok {
				walkBranch(leading, midTerm, lf)
			}
			return
		}
		it := branch.Items(container.Ascending)
		for kv, ok := it.Next(); ok; kv, ok = it.Next() {
			walkBranch(leading, kv.Key, kv.Value)
		}
	}

	if isBoundCoord(leadingTerm) {
		if branch, ok := trunk.Lookup(leadingTerm); ok {
			walkTrunk(leadingTerm, branch)
		}
		return results
	}

	it := trunk.Items(container.Ascending)
	for kv, ok := it.Next(); ok; kv, ok = it.Next() {
		walkTrunk(kv.Key, kv.Value)
	}
	return results
}

func isBoundCoord(t term.Term) bool {
	return !isVariable(t)
}

// substitute replaces any Variable in p that sol has already bound with
// that bound term, so the next pattern in the join order benefits from the
// same index narrowing as a pattern that had that position bound as a
// literal from the start.
func substitute(p Pattern, sol solution.Solution) Pattern {
	replace := func(t term.Term) term.Term {
		v, ok := t.(term.Variable)
		if !ok {
			return t
		}
		if bound, ok := sol.Lookup(v); ok {
			return bound
		}
		return t
	}
	return Pattern{S: replace(p.S), P: replace(p.P), O: replace(p.O)}
}
