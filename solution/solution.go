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

// Package solution implements the BGP query engine's partial result type:
// an immutable variable-to-term binding set carrying the provenance triples
// that produced it and an ordering over competing bindings.
package solution

import (
	"sort"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/mutantdb/hexastore/term"
)

// ErrConflictingBinding is raised by Mutate when two solutions disagree on
// the term bound to the same variable — they describe incompatible matches
// and must never be merged.
var ErrConflictingBinding = errors.NewKind("conflicting binding for %s: %s != %s")

// Direction is the sort direction of an OrderCondition.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// OrderCondition names one variable in an ORDER BY clause and the direction
// it sorts in.
type OrderCondition struct {
	Variable  term.Variable
	Direction Direction
}

// Solution is an immutable set of variable bindings produced by matching a
// basic graph pattern, together with the triples that justify it and the
// ordering it should be compared under.
type Solution struct {
	bindings map[term.Variable]term.Term
	order    []OrderCondition
	triples  map[term.Triple]struct{}
}

// New returns a Solution over the given bindings, order and provenance
// triples. The caller's maps are not retained; New copies them.
func New(bindings map[term.Variable]term.Term, order []OrderCondition, triples ...term.Triple) Solution {
	b := make(map[term.Variable]term.Term, len(bindings))
	for k, v := range bindings {
		b[k] = v
	}
	ts := make(map[term.Triple]struct{}, len(triples))
	for _, t := range triples {
		ts[t] = struct{}{}
	}
	return Solution{bindings: b, order: order, triples: ts}
}

// Empty returns a Solution with no bindings and no provenance, ordered by
// order.
func Empty(order []OrderCondition) Solution {
	return Solution{
		bindings: map[term.Variable]term.Term{},
		order:    order,
		triples:  map[term.Triple]struct{}{},
	}
}

// Get returns the term bound to v, or term.Unbound if v is not bound.
func (s Solution) Get(v term.Variable) term.Term {
	if t, ok := s.bindings[v]; ok {
		return t
	}
	return term.Unbound
}

// Lookup is Get with an explicit presence flag.
func (s Solution) Lookup(v term.Variable) (term.Term, bool) {
	t, ok := s.bindings[v]
	return t, ok
}

// Variables returns the bound variable names, in no particular order.
func (s Solution) Variables() []term.Variable {
	vs := make([]term.Variable, 0, len(s.bindings))
	for v := range s.bindings {
		vs = append(vs, v)
	}
	return vs
}

// Triples returns the provenance triples that justify this solution, sorted
// by term.Compare on (S, P, O) for a stable, deterministic order.
func (s Solution) Triples() []term.Triple {
	ts := make([]term.Triple, 0, len(s.triples))
	for t := range s.triples {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return term.Compare(ts[i], ts[j]) < 0 })
	return ts
}

// Mutate merges other's bindings and provenance into s, returning a new
// Solution. Where both sides bind the same variable, the bound terms must
// agree by term.Equal — Mutate fails with ErrConflictingBinding otherwise,
// since a conflict means the two solutions describe mutually exclusive
// matches of the same pattern.
func (s Solution) Mutate(other Solution) (Solution, error) {
	merged := make(map[term.Variable]term.Term, len(s.bindings)+len(other.bindings))
	for k, v := range s.bindings {
		merged[k] = v
	}
	for k, v := range other.bindings {
		if existing, ok := merged[k]; ok {
			if !term.Equal(existing, v) {
				return Solution{}, ErrConflictingBinding.New(k, existing, v)
			}
			continue
		}
		merged[k] = v
	}

	triples := make(map[term.Triple]struct{}, len(s.triples)+len(other.triples))
	for t := range s.triples {
		triples[t] = struct{}{}
	}
	for t := range other.triples {
		triples[t] = struct{}{}
	}

	return Solution{bindings: merged, order: s.order, triples: triples}, nil
}

// Bind is Mutate's single-binding counterpart, used when a query operator
// adds one new variable binding without any accompanying provenance.
func (s Solution) Bind(v term.Variable, t term.Term) (Solution, error) {
	if existing, ok := s.bindings[v]; ok {
		if !term.Equal(existing, t) {
			return Solution{}, ErrConflictingBinding.New(v, existing, t)
		}
		return s, nil
	}
	merged := make(map[term.Variable]term.Term, len(s.bindings)+1)
	for k, val := range s.bindings {
		merged[k] = val
	}
	merged[v] = t
	return Solution{bindings: merged, order: s.order, triples: s.triples}, nil
}

// WithTriple returns a copy of s with t added to its provenance set.
func (s Solution) WithTriple(t term.Triple) Solution {
	triples := make(map[term.Triple]struct{}, len(s.triples)+1)
	for existing := range s.triples {
		triples[existing] = struct{}{}
	}
	triples[t] = struct{}{}
	return Solution{bindings: s.bindings, order: s.order, triples: triples}
}

// Equal reports whether s and other bind the same variables to equal terms
// and carry the same provenance set.
func (s Solution) Equal(other Solution) bool {
	if len(s.bindings) != len(other.bindings) {
		return false
	}
	for k, v := range s.bindings {
		ov, ok := other.bindings[k]
		if !ok || !term.Equal(v, ov) {
			return false
		}
	}
	if len(s.triples) != len(other.triples) {
		return false
	}
	for t := range s.triples {
		if _, ok := other.triples[t]; !ok {
			return false
		}
	}
	return true
}

// Less orders s before other first by the declared OrderCondition list
// (each compared via term.Compare, honoring direction, skipping variables
// where both sides agree), then by any remaining variable bound on either
// side in ascending name order.
func (s Solution) Less(other Solution) bool {
	seen := map[term.Variable]struct{}{}
	for v := range s.bindings {
		seen[v] = struct{}{}
	}
	for v := range other.bindings {
		seen[v] = struct{}{}
	}

	for _, oc := range s.order {
		delete(seen, oc.Variable)

		lhs, rhs := s.Get(oc.Variable), other.Get(oc.Variable)
		c := term.Compare(lhs, rhs)
		if c == 0 {
			continue
		}
		if oc.Direction == Ascending {
			return c < 0
		}
		return c > 0
	}

	remaining := make([]term.Variable, 0, len(seen))
	for v := range seen {
		remaining = append(remaining, v)
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i] < remaining[j] })

	for _, v := range remaining {
		lhs, rhs := s.Get(v), other.Get(v)
		c := term.Compare(lhs, rhs)
		if c == 0 {
			continue
		}
		return c < 0
	}

	return false
}
