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

// Package reason implements a forward-chaining rule engine over a store:
// rules register a triple pattern and a callback, the callback fires once
// immediately for every triple already matching the pattern and again for
// every triple inserted afterward, and every inference the engine accepts
// carries a provenance record back to the premises that produced it.
package reason

import "github.com/mutantdb/hexastore/term"

var (
	Bag          = term.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#Bag")
	InferredFrom = term.IRI("https://example.com/inferred_from")
	Type         = term.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	Member       = term.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#member")

	SymmetricProperty = term.IRI("http://www.w3.org/2002/07/owl#SymmetricProperty")
	InverseOf         = term.IRI("http://www.w3.org/2002/07/owl#inverseOf")
	Domain            = term.IRI("http://www.w3.org/2000/01/rdf-schema#domain")
	Range             = term.IRI("http://www.w3.org/2000/01/rdf-schema#range")
	SubClassOf        = term.IRI("http://www.w3.org/2000/01/rdf-schema#subClassOf")
	SubPropertyOf     = term.IRI("http://www.w3.org/2000/01/rdf-schema#subPropertyOf")
	TransitiveProperty = term.IRI("http://example.com/transitive-property")
)
