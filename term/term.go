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

// Package term implements the RDF term model: the sum type of values that
// may occupy a subject, predicate or object position, and the total,
// cross-type order the hexastore indexes and query engine rely on for
// sorting and bisection.
package term

import "fmt"

// Term is any value that can occupy a position in a Triple. Variable only
// ever appears in patterns, never in stored triples.
type Term interface {
	// kind reports this term's position in the cross-type order table.
	kind() typeOrder
	// String renders a debug form; it is not a serialisation.
	String() string
}

// typeOrder enumerates the term kinds in ascending cross-type order, per
// spec section 3. unbound sorts lowest, Variable highest.
type typeOrder int

const (
	orderUnbound typeOrder = iota
	orderReifiedTriple
	orderBlankNode
	orderIRI
	orderPlainString
	orderLangString
	orderInteger
	orderDecimal
	orderDouble
	orderTypedLiteral
	orderVariable
)

// Unbound is the sentinel Term used where spec section 3 calls for "no value
// assigned to the variable." It is distinct from any Go nil Term and is the
// lowest term in the cross-type order.
var Unbound Term = unbound{}

type unbound struct{}

func (unbound) kind() typeOrder { return orderUnbound }
func (unbound) String() string  { return "<unbound>" }

// IRI is an internationalized resource identifier term.
type IRI string

func (IRI) kind() typeOrder   { return orderIRI }
func (i IRI) String() string  { return string(i) }
func (i IRI) Value() string   { return string(i) }

// PlainString is an RDF literal with no language tag and no datatype.
type PlainString string

func (PlainString) kind() typeOrder  { return orderPlainString }
func (s PlainString) String() string { return string(s) }

// LangString is a literal with a BCP-47 language tag.
type LangString struct {
	Value    string
	Language string
}

func (LangString) kind() typeOrder { return orderLangString }
func (s LangString) String() string {
	return fmt.Sprintf("%s@%s", s.Value, s.Language)
}

// TypedLiteral is a literal with an explicit datatype IRI whose lexical form
// is not natively modeled by one of Integer/Decimal/Double.
type TypedLiteral struct {
	Lexical  string
	Datatype IRI
}

func (TypedLiteral) kind() typeOrder { return orderTypedLiteral }
func (l TypedLiteral) String() string {
	return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype)
}

// Variable names a pattern-only binding slot. Variables are never present in
// a stored Triple.
type Variable string

func (Variable) kind() typeOrder  { return orderVariable }
func (v Variable) String() string { return "?" + string(v) }
