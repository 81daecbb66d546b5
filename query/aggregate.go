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

// AggregateFunc reduces one group of solutions sharing the same grouping
// key down to a single term.
type AggregateFunc interface {
	Apply(group []solution.Solution) term.Term
}

// Count returns the number of solutions in the group, as an Integer.
type Count struct{}

func (Count) Apply(group []solution.Solution) term.Term {
	return term.Integer(len(group))
}

// Sample returns the bound term for Var from an arbitrary member of the
// group — the first one, for determinism — useful for projecting a
// grouping query's non-aggregated columns.
type Sample struct {
	Var term.Variable
}

func (s Sample) Apply(group []solution.Solution) term.Term {
	if len(group) == 0 {
		return term.Unbound
	}
	return group[0].Get(s.Var)
}

// Generic applies Func to the list of terms bound to Var across the group.
// It is the escape hatch for aggregates this package doesn't name
// directly, such as sum or average over a numeric variable.
type Generic struct {
	Var  term.Variable
	Func func([]term.Term) term.Term
}

func (g Generic) Apply(group []solution.Solution) term.Term {
	values := make([]term.Term, len(group))
	for i, s := range group {
		values[i] = s.Get(g.Var)
	}
	return g.Func(values)
}

// Multi applies every function in Functions to the same group and returns
// their results as a Triple-free slice the caller threads into separate
// output variables — the Go equivalent of the original engine cloning the
// group's sub-iterator once per aggregate so each one sees every member
// exactly once.
type Multi struct {
	Functions []AggregateFunc
}

func (m Multi) ApplyAll(group []solution.Solution) []term.Term {
	out := make([]term.Term, len(m.Functions))
	for i, f := range m.Functions {
		out[i] = f.Apply(group)
	}
	return out
}

// Sum folds Var's bound values across the group to their float64 sum,
// returned as a Double. Values that don't coerce to a number are skipped.
type Sum struct {
	Var term.Variable
}

func (s Sum) Apply(group []solution.Solution) term.Term {
	var total float64
	for _, row := range group {
		if f, ok := term.ToFloat64(row.Get(s.Var)); ok {
			total += f
		}
	}
	return term.Double(total)
}

// Average folds Var's bound values across the group to their arithmetic
// mean, returned as a Double. Values that don't coerce to a number are
// excluded from both the sum and the count.
type Average struct {
	Var term.Variable
}

func (avg Average) Apply(group []solution.Solution) term.Term {
	var total float64
	var n int
	for _, row := range group {
		if f, ok := term.ToFloat64(row.Get(avg.Var)); ok {
			total += f
			n++
		}
	}
	if n == 0 {
		return term.Double(0)
	}
	return term.Double(total / float64(n))
}

// AggregateSpec names the output variable an AggregateFunc's result binds
// to in a GroupAggregate call.
type AggregateSpec struct {
	OutputVar term.Variable
	Func      AggregateFunc
}

// GroupAggregate partitions in by the values bound to groupVars, then
// produces one output solution per group: the group's own variables
// carried over from an arbitrary member, plus one binding per
// AggregateSpec. Groups are emitted in the order their key was first seen.
func GroupAggregate(in []solution.Solution, groupVars []term.Variable, aggregates []AggregateSpec) []solution.Solution {
	type groupEntry struct {
		key    string
		values []solution.Solution
	}

	index := map[string]int{}
	var groups []*groupEntry

	for _, s := range in {
		key := groupKey(s, groupVars)
		if i, ok := index[key]; ok {
			groups[i].values = append(groups[i].values, s)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, &groupEntry{key: key, values: []solution.Solution{s}})
	}

	out := make([]solution.Solution, 0, len(groups))
	for _, g := range groups {
		bindings := map[term.Variable]term.Term{}
		for _, v := range groupVars {
			bindings[v] = g.values[0].Get(v)
		}
		row := solution.New(bindings, nil)

		for _, spec := range aggregates {
			var err error
			row, err = row.Bind(spec.OutputVar, spec.Func.Apply(g.values))
			if err != nil {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}

// groupKey builds a key from groupVars in the caller's order — it must NOT
// sort the parts, since two groups with the same values bound to different
// variables (e.g. x=a,y=b vs x=b,y=a) would otherwise collide.
func groupKey(s solution.Solution, groupVars []term.Variable) string {
	key := ""
	for i, v := range groupVars {
		if i > 0 {
			key += "\x1f"
		}
		key += s.Get(v).String()
	}
	return key
}
