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

package rulepack

import (
	"github.com/mutantdb/hexastore/query"
	"github.com/mutantdb/hexastore/reason"
	"github.com/mutantdb/hexastore/term"
)

// registerSymmetricProperty implements owl:SymmetricProperty: asserting
// that p is symmetric registers a rule that, for every (?s p ?o), infers
// (?o p ?s).
func registerSymmetricProperty(r *reason.Reasoner) {
	_ = r.RegisterRule(query.Pattern{S: term.Variable("p"), P: reason.Type, O: reason.SymmetricProperty},
		func(a *reason.Adaptor, s, p, o term.Term) {
			outer := term.Triple{S: s, P: p, O: o}
			pred := s
			a.RegisterRule(query.Pattern{S: term.Variable("s"), P: pred, O: term.Variable("o")},
				func(a2 *reason.Adaptor, s2, p2, o2 term.Term) {
					a2.Insert(o2, p2, s2, term.Triple{S: s2, P: p2, O: o2})
				}, outer)
		})
}

// registerInverseOf implements owl:inverseOf: asserting (p inverseOf q)
// registers a rule in each direction, so (?s p ?o) infers (?o q ?s) and
// (?s q ?o) infers (?o p ?s).
func registerInverseOf(r *reason.Reasoner) {
	_ = r.RegisterRule(query.Pattern{S: term.Variable("p"), P: reason.InverseOf, O: term.Variable("q")},
		func(a *reason.Adaptor, s, p, o term.Term) {
			propP, propQ := s, o
			outer := term.Triple{S: s, P: p, O: o}

			a.RegisterRule(query.Pattern{S: term.Variable("s"), P: propP, O: term.Variable("o")},
				func(a2 *reason.Adaptor, s2, p2, o2 term.Term) {
					a2.Insert(o2, propQ, s2, term.Triple{S: s2, P: p2, O: o2})
				}, outer)

			a.RegisterRule(query.Pattern{S: term.Variable("s"), P: propQ, O: term.Variable("o")},
				func(a2 *reason.Adaptor, s2, p2, o2 term.Term) {
					a2.Insert(o2, propP, s2, term.Triple{S: s2, P: p2, O: o2})
				}, outer)
		})
}

// registerSubClassOf implements rdfs:subClassOf: type propagation down the
// subsumption edge ((?x rdf:type ?a) & (?a subClassOf ?b) => (?x rdf:type
// ?b)) plus transitivity of subClassOf itself in both directions, so a
// chain of subClassOf edges asserted in any order still closes completely.
func registerSubClassOf(r *reason.Reasoner) {
	_ = r.RegisterRule(query.Pattern{S: term.Variable("a"), P: reason.SubClassOf, O: term.Variable("b")},
		func(a *reason.Adaptor, s, p, o term.Term) {
			classA, classB := s, o
			outer := term.Triple{S: s, P: p, O: o}

			a.RegisterRule(query.Pattern{S: term.Variable("x"), P: reason.Type, O: classA},
				func(a2 *reason.Adaptor, s2, p2, o2 term.Term) {
					a2.Insert(s2, reason.Type, classB, term.Triple{S: s2, P: p2, O: o2})
				}, outer)

			for _, t := range a.Find(func(x term.Triple) bool {
				return term.Equal(x.S, classB) && term.Equal(x.P, reason.SubClassOf)
			}) {
				a.Insert(classA, reason.SubClassOf, t.O, outer, t)
			}
			for _, t := range a.Find(func(x term.Triple) bool {
				return term.Equal(x.P, reason.SubClassOf) && term.Equal(x.O, classA)
			}) {
				a.Insert(t.S, reason.SubClassOf, classB, outer, t)
			}
		})
}

// registerSubPropertyOf implements rdfs:subPropertyOf: every triple using
// the narrower property also holds under the broader one, and
// subPropertyOf itself is transitive.
func registerSubPropertyOf(r *reason.Reasoner) {
	_ = r.RegisterRule(query.Pattern{S: term.Variable("p"), P: reason.SubPropertyOf, O: term.Variable("q")},
		func(a *reason.Adaptor, s, p, o term.Term) {
			propP, propQ := s, o
			outer := term.Triple{S: s, P: p, O: o}

			a.RegisterRule(query.Pattern{S: term.Variable("s"), P: propP, O: term.Variable("o")},
				func(a2 *reason.Adaptor, s2, p2, o2 term.Term) {
					a2.Insert(s2, propQ, o2, term.Triple{S: s2, P: p2, O: o2})
				}, outer)

			for _, t := range a.Find(func(x term.Triple) bool {
				return term.Equal(x.S, propQ) && term.Equal(x.P, reason.SubPropertyOf)
			}) {
				a.Insert(propP, reason.SubPropertyOf, t.O, outer, t)
			}
			for _, t := range a.Find(func(x term.Triple) bool {
				return term.Equal(x.P, reason.SubPropertyOf) && term.Equal(x.O, propP)
			}) {
				a.Insert(t.S, reason.SubPropertyOf, propQ, outer, t)
			}
		})
}

// registerDomain implements rdfs:domain: every subject of a triple using a
// property with a declared domain has that domain's class.
func registerDomain(r *reason.Reasoner) {
	_ = r.RegisterRule(query.Pattern{S: term.Variable("p"), P: reason.Domain, O: term.Variable("c")},
		func(a *reason.Adaptor, s, p, o term.Term) {
			prop, class := s, o
			outer := term.Triple{S: s, P: p, O: o}
			a.RegisterRule(query.Pattern{S: term.Variable("s"), P: prop, O: term.Variable("o")},
				func(a2 *reason.Adaptor, s2, p2, o2 term.Term) {
					a2.Insert(s2, reason.Type, class, term.Triple{S: s2, P: p2, O: o2})
				}, outer)
		})
}

// registerRange implements rdfs:range: every object of a triple using a
// property with a declared range has that range's class.
func registerRange(r *reason.Reasoner) {
	_ = r.RegisterRule(query.Pattern{S: term.Variable("p"), P: reason.Range, O: term.Variable("c")},
		func(a *reason.Adaptor, s, p, o term.Term) {
			prop, class := s, o
			outer := term.Triple{S: s, P: p, O: o}
			a.RegisterRule(query.Pattern{S: term.Variable("s"), P: prop, O: term.Variable("o")},
				func(a2 *reason.Adaptor, s2, p2, o2 term.Term) {
					a2.Insert(o2, reason.Type, class, term.Triple{S: s2, P: p2, O: o2})
				}, outer)
		})
}
