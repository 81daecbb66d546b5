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

package reason

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutantdb/hexastore/query"
	"github.com/mutantdb/hexastore/store"
	"github.com/mutantdb/hexastore/term"
)

var (
	married = term.IRI("married_to")
	likes   = term.IRI("likes")
	admires = term.IRI("admires")
	parent  = term.IRI("parent")
	sibling = term.IRI("sibling")

	alice = term.IRI("alice")
	bob   = term.IRI("bob")
	carol = term.IRI("carol")
	dana  = term.IRI("dana")
)

func registerSymmetric(r *Reasoner, prop term.Term) {
	_ = r.RegisterRule(query.Pattern{S: term.Variable("s"), P: prop, O: term.Variable("o")},
		func(a *Adaptor, s, p, o term.Term) {
			a.Insert(o, p, s, term.Triple{S: s, P: p, O: o})
		})
}

func TestSymmetricPropertyClosure(t *testing.T) {
	st := store.New(term.NewBlankNodeFactory(0))
	r := New(st)
	registerSymmetric(r, married)

	r.Insert(alice, married, bob)

	assert.True(t, st.Contains(bob, married, alice))

	triple := term.Triple{S: bob, P: married, O: alice}
	assert.True(t, st.Contains(triple, InferredFrom, term.Triple{S: alice, P: married, O: bob}))
}

func TestSymmetricPropertyRetraction(t *testing.T) {
	st := store.New(term.NewBlankNodeFactory(0))
	r := New(st)
	registerSymmetric(r, married)

	r.Insert(alice, married, bob)
	require.True(t, st.Contains(bob, married, alice))

	r.Delete(alice, married, bob)

	assert.False(t, st.Contains(alice, married, bob))
	assert.False(t, st.Contains(bob, married, alice))
}

func TestInverseProperty(t *testing.T) {
	st := store.New(term.NewBlankNodeFactory(0))
	r := New(st)

	_ = r.RegisterRule(query.Pattern{S: term.Variable("p"), P: InverseOf, O: term.Variable("q")},
		func(a *Adaptor, s, p, o term.Term) {
			propP, propQ := s, o
			outer := term.Triple{S: s, P: p, O: o}
			a.RegisterRule(query.Pattern{S: term.Variable("s"), P: propP, O: term.Variable("o")},
				func(a2 *Adaptor, s2, p2, o2 term.Term) {
					a2.Insert(o2, propQ, s2, term.Triple{S: s2, P: p2, O: o2})
				}, outer)
		})

	r.Insert(likes, InverseOf, admires)
	r.Insert(alice, likes, bob)

	assert.True(t, st.Contains(bob, admires, alice))
}

func TestSiblingFromSharedParentExcludesSelfPairing(t *testing.T) {
	st := store.New(term.NewBlankNodeFactory(0))
	r := New(st)

	_ = r.RegisterRule(query.Pattern{S: term.Variable("c"), P: parent, O: term.Variable("p")},
		func(a *Adaptor, s, p, o term.Term) {
			child, par := s, o
			outer := term.Triple{S: s, P: p, O: o}
			for _, other := range a.Find(func(x term.Triple) bool {
				return term.Equal(x.P, parent) && term.Equal(x.O, par)
			}) {
				if term.Equal(other.S, child) {
					continue
				}
				a.Insert(child, sibling, other.S, outer, other)
				a.Insert(other.S, sibling, child, other, outer)
			}
		})

	r.Insert(alice, parent, dana)
	r.Insert(bob, parent, dana)
	r.Insert(carol, parent, dana)

	assert.True(t, st.Contains(alice, sibling, bob))
	assert.True(t, st.Contains(bob, sibling, alice))
	assert.True(t, st.Contains(alice, sibling, carol))
	assert.False(t, st.Contains(alice, sibling, alice))
}

func TestRegisterRuleFiresForExistingTriples(t *testing.T) {
	st := store.New(term.NewBlankNodeFactory(0))
	r := New(st)

	r.Insert(alice, married, bob)
	registerSymmetric(r, married)

	assert.True(t, st.Contains(bob, married, alice))
}

func TestMultiPremiseProvenanceUsesBag(t *testing.T) {
	st := store.New(term.NewBlankNodeFactory(0))
	r := New(st)

	_ = r.RegisterRule(query.Pattern{S: term.Variable("a"), P: parent, O: term.Variable("b")},
		func(a *Adaptor, s, p, o term.Term) {
			child, par := s, o
			for _, grand := range a.Find(func(x term.Triple) bool {
				return term.Equal(x.S, par) && term.Equal(x.P, parent)
			}) {
				a.Insert(child, term.IRI("grandparent"), grand.O,
					term.Triple{S: s, P: p, O: o}, grand)
			}
		})

	r.Insert(bob, parent, carol)
	r.Insert(alice, parent, bob)

	require.True(t, st.Contains(alice, term.IRI("grandparent"), carol))

	derived := term.Triple{S: alice, P: term.IRI("grandparent"), O: carol}
	bags := st.Terms()
	foundBag := false
	for _, b := range bags {
		if st.Contains(derived, InferredFrom, b) && st.Contains(b, Type, Bag) {
			foundBag = true
		}
	}
	assert.True(t, foundBag)
}
