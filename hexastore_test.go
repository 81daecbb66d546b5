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

package hexastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutantdb/hexastore/query"
	"github.com/mutantdb/hexastore/reason"
	"github.com/mutantdb/hexastore/term"
)

func TestNewWithDefaultRulesInfersSymmetricClosure(t *testing.T) {
	st, err := New(&Config{LoadDefaultRules: true})
	require.NoError(t, err)

	siblingOf := term.IRI("sibling_of")
	st.Reasoner.Insert(siblingOf, reason.Type, reason.SymmetricProperty)
	st.Reasoner.Insert(term.IRI("alice"), siblingOf, term.IRI("bob"))

	assert.True(t, st.Contains(term.IRI("bob"), siblingOf, term.IRI("alice")))
}

func TestQueryRunsAgainstUnderlyingStore(t *testing.T) {
	st, err := New(nil)
	require.NoError(t, err)

	st.Insert(term.IRI("alice"), term.IRI("knows"), term.IRI("bob"))

	results := st.Query([]query.Pattern{
		{S: term.IRI("alice"), P: term.IRI("knows"), O: term.Variable("who")},
	}, nil)

	require.Len(t, results, 1)
	assert.Equal(t, term.IRI("bob"), results[0].Get("who"))
}
