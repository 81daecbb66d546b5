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

// Command hexastore is an illustrative in-memory triple store: it loads
// nothing from disk and speaks no wire protocol, it just wires together
// enough of the library to show the shape of the thing — insert a
// handful of triples, register the default rule pack, and print what the
// reasoner closes over.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mutantdb/hexastore"
	"github.com/mutantdb/hexastore/reason"
	"github.com/mutantdb/hexastore/term"
)

func main() {
	logrus.SetLevel(logrus.InfoLevel)

	st, err := hexastore.New(&hexastore.Config{LoadDefaultRules: true})
	if err != nil {
		logrus.WithError(err).Error("hexastore: failed to initialize store")
		os.Exit(1)
	}

	siblingOf := term.IRI("https://example.com/sibling_of")
	alice := term.IRI("https://example.com/alice")
	bob := term.IRI("https://example.com/bob")

	st.Reasoner.Insert(siblingOf, reason.Type, reason.SymmetricProperty)
	st.Reasoner.Insert(alice, siblingOf, bob)

	for _, t := range st.All() {
		fmt.Println(t.String())
	}
}
