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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutantdb/hexastore/solution"
	"github.com/mutantdb/hexastore/store"
	"github.com/mutantdb/hexastore/term"
)

func newPopulatedStore() *store.Store {
	s := store.New(nil)
	s.Insert(term.IRI("alice"), term.IRI("knows"), term.IRI("bob"))
	s.Insert(term.IRI("alice"), term.IRI("knows"), term.IRI("carol"))
	s.Insert(term.IRI("bob"), term.IRI("knows"), term.IRI("carol"))
	s.Insert(term.IRI("alice"), term.IRI("age"), term.Integer(30))
	s.Insert(term.IRI("bob"), term.IRI("age"), term.Integer(25))
	s.Insert(term.IRI("carol"), term.IRI("age"), term.Integer(25))
	return s
}

func TestExecuteSinglePatternTwoVariables(t *testing.T) {
	s := newPopulatedStore()
	stats := &Stats{}

	results := Execute(s, []Pattern{
		{S: term.Variable("p"), P: term.IRI("knows"), O: term.Variable("q")},
	}, nil, stats)

	assert.Len(t, results, 3)
	assert.Greater(t, stats.TriplesVisited, 0)
}

func TestExecuteJoinAcrossPatterns(t *testing.T) {
	s := newPopulatedStore()

	results := Execute(s, []Pattern{
		{S: term.Variable("x"), P: term.IRI("knows"), O: term.Variable("y")},
		{S: term.Variable("y"), P: term.IRI("age"), O: term.Variable("age")},
	}, nil, nil)

	require.Len(t, results, 3)
	for _, r := range results {
		y := r.Get("y")
		age := r.Get("age")
		assert.NotEqual(t, term.Unbound, y)
		assert.NotEqual(t, term.Unbound, age)
	}
}

func TestExecuteWithConstantSubject(t *testing.T) {
	s := newPopulatedStore()

	results := Execute(s, []Pattern{
		{S: term.IRI("alice"), P: term.IRI("knows"), O: term.Variable("who")},
	}, nil, nil)

	require.Len(t, results, 2)
	var who []string
	for _, r := range results {
		who = append(who, r.Get("who").String())
	}
	assert.ElementsMatch(t, []string{"bob", "carol"}, who)
}

func TestExecuteOrdersSolutions(t *testing.T) {
	s := newPopulatedStore()
	order := []solution.OrderCondition{{Variable: "age", Direction: solution.Ascending}}

	results := Execute(s, []Pattern{
		{S: term.Variable("who"), P: term.IRI("age"), O: term.Variable("age")},
	}, order, nil)

	require.Len(t, results, 3)
	assert.Equal(t, term.Integer(25), results[0].Get("age"))
	assert.Equal(t, term.Integer(25), results[1].Get("age"))
	assert.Equal(t, term.Integer(30), results[2].Get("age"))
}

func TestIsNotExcludesSelfPairing(t *testing.T) {
	s := store.New(nil)
	s.Insert(term.IRI("alice"), term.IRI("parent"), term.IRI("dana"))
	s.Insert(term.IRI("bob"), term.IRI("parent"), term.IRI("dana"))
	s.Insert(term.IRI("alice"), term.IRI("parent"), term.IRI("dana"))

	results := Execute(s, []Pattern{
		{S: term.Variable("a"), P: term.IRI("parent"), O: term.Variable("parent")},
		{S: term.Variable("b"), P: term.IRI("parent"), O: term.Variable("parent")},
	}, nil, nil)

	siblings := Filter(results, IsNot("a", "b"))
	for _, r := range siblings {
		assert.NotEqual(t, r.Get("a").String(), r.Get("b").String())
	}
	assert.NotEmpty(t, siblings)
}

func TestProjectRestrictsBindings(t *testing.T) {
	s := newPopulatedStore()
	results := Execute(s, []Pattern{
		{S: term.Variable("x"), P: term.IRI("knows"), O: term.Variable("y")},
	}, nil, nil)

	projected := Project(results, []term.Variable{"x"})
	for _, r := range projected {
		_, ok := r.Lookup("y")
		assert.False(t, ok)
		_, ok = r.Lookup("x")
		assert.True(t, ok)
	}
}

func TestDistinctRemovesDuplicates(t *testing.T) {
	s := newPopulatedStore()
	results := Execute(s, []Pattern{
		{S: term.Variable("x"), P: term.IRI("knows"), O: term.Variable("y")},
	}, nil, nil)
	projected := Project(results, []term.Variable{"x"})

	distinct := Distinct(projected)
	assert.Len(t, distinct, 2) // alice and bob are the only knows-subjects once y is projected away
}

func TestLimitTruncates(t *testing.T) {
	s := newPopulatedStore()
	results := Execute(s, []Pattern{
		{S: term.Variable("x"), P: term.IRI("knows"), O: term.Variable("y")},
	}, nil, nil)

	limited := Limit(results, 1)
	assert.Len(t, limited, 1)
}

func TestGroupAggregateCount(t *testing.T) {
	s := newPopulatedStore()
	results := Execute(s, []Pattern{
		{S: term.Variable("who"), P: term.IRI("age"), O: term.Variable("age")},
	}, nil, nil)

	grouped := GroupAggregate(results, []term.Variable{"age"}, []AggregateSpec{
		{OutputVar: "n", Func: Count{}},
	})

	found := map[string]term.Term{}
	for _, g := range grouped {
		found[g.Get("age").String()] = g.Get("n")
	}
	assert.Equal(t, term.Integer(2), found["25"])
	assert.Equal(t, term.Integer(1), found["30"])
}

func TestGroupAggregateSumAndAverage(t *testing.T) {
	s := newPopulatedStore()
	results := Execute(s, []Pattern{
		{S: term.Variable("who"), P: term.IRI("age"), O: term.Variable("age")},
	}, nil, nil)

	grouped := GroupAggregate(results, nil, []AggregateSpec{
		{OutputVar: "total", Func: Sum{Var: "age"}},
		{OutputVar: "mean", Func: Average{Var: "age"}},
	})

	require.Len(t, grouped, 1)
	assert.Equal(t, term.Double(80), grouped[0].Get("total"))
	assert.InDelta(t, float64(80)/3, float64(grouped[0].Get("mean").(term.Double)), 0.001)
}

func TestLeftJoinKeepsUnmatchedLeft(t *testing.T) {
	left := []solution.Solution{
		solution.New(map[term.Variable]term.Term{"x": term.IRI("a")}, nil),
	}
	var right []solution.Solution

	out := LeftJoin(left, right)
	require.Len(t, out, 1)
	assert.Equal(t, term.IRI("a"), out[0].Get("x"))
}
