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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutantdb/hexastore/reason"
	"github.com/mutantdb/hexastore/store"
	"github.com/mutantdb/hexastore/term"
)

func TestLoadDefaultRegistersSymmetricAndInverse(t *testing.T) {
	st := store.New(term.NewBlankNodeFactory(0))
	r := reason.New(st)
	require.NoError(t, LoadDefault(r))

	siblingOf := term.IRI("sibling_of")
	r.Insert(siblingOf, reason.Type, reason.SymmetricProperty)
	r.Insert(term.IRI("alice"), siblingOf, term.IRI("bob"))

	assert.True(t, st.Contains(term.IRI("bob"), siblingOf, term.IRI("alice")))

	likes := term.IRI("likes")
	likedBy := term.IRI("liked_by")
	r.Insert(likes, reason.InverseOf, likedBy)
	r.Insert(term.IRI("carol"), likes, term.IRI("dana"))

	assert.True(t, st.Contains(term.IRI("dana"), likedBy, term.IRI("carol")))
}

func TestLoadDefaultSubClassOfTransitivityAndTypePropagation(t *testing.T) {
	st := store.New(term.NewBlankNodeFactory(0))
	r := reason.New(st)
	require.NoError(t, LoadDefault(r))

	animal := term.IRI("Animal")
	mammal := term.IRI("Mammal")
	dog := term.IRI("Dog")
	fido := term.IRI("fido")

	r.Insert(mammal, reason.SubClassOf, animal)
	r.Insert(dog, reason.SubClassOf, mammal)
	r.Insert(fido, reason.Type, dog)

	assert.True(t, st.Contains(dog, reason.SubClassOf, animal))
	assert.True(t, st.Contains(fido, reason.Type, mammal))
	assert.True(t, st.Contains(fido, reason.Type, animal))
}

func TestLoadDefaultDomainAndRange(t *testing.T) {
	st := store.New(term.NewBlankNodeFactory(0))
	r := reason.New(st)
	require.NoError(t, LoadDefault(r))

	person := term.IRI("Person")
	document := term.IRI("Document")
	authorOf := term.IRI("author_of")

	r.Insert(authorOf, reason.Domain, person)
	r.Insert(authorOf, reason.Range, document)
	r.Insert(term.IRI("alice"), authorOf, term.IRI("paper1"))

	assert.True(t, st.Contains(term.IRI("alice"), reason.Type, person))
	assert.True(t, st.Contains(term.IRI("paper1"), reason.Type, document))
}

func TestLoadSkipsDisabledRules(t *testing.T) {
	st := store.New(term.NewBlankNodeFactory(0))
	r := reason.New(st)

	data := []byte("rules:\n  - name: symmetric-property\n    enabled: false\n")
	require.NoError(t, Load(data, r))

	siblingOf := term.IRI("sibling_of")
	r.Insert(siblingOf, reason.Type, reason.SymmetricProperty)
	r.Insert(term.IRI("alice"), siblingOf, term.IRI("bob"))

	assert.False(t, st.Contains(term.IRI("bob"), siblingOf, term.IRI("alice")))
}
