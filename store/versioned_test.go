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

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutantdb/hexastore/container"
	"github.com/mutantdb/hexastore/term"
)

func TestVersionedInsertThenDelete(t *testing.T) {
	s := NewVersioned(nil)
	tr := triple("a", "knows", "b")

	assert.True(t, s.Insert(tr.S, tr.P, tr.O, 1))
	assert.True(t, s.Contains(tr.S, tr.P, tr.O))
	assert.Equal(t, 1, s.Len())

	s.Delete(tr.S, tr.P, tr.O, 2)
	assert.False(t, s.Contains(tr.S, tr.P, tr.O))
	assert.Equal(t, 0, s.Len())

	status, ok := s.StatusOf(tr.S, tr.P, tr.O)
	require.True(t, ok)
	require.Len(t, status.Items, 1)
	assert.Equal(t, int64(1), *status.Items[0].ValidFrom)
	assert.Equal(t, int64(2), *status.Items[0].ValidTo)
}

func TestVersionedDeleteWithoutPriorInsertStillRecordsHistory(t *testing.T) {
	s := NewVersioned(nil)
	s.Delete(term.IRI("a"), term.IRI("p"), term.IRI("b"), 5)

	status, ok := s.StatusOf(term.IRI("a"), term.IRI("p"), term.IRI("b"))
	require.True(t, ok)
	require.Len(t, status.Items, 1)
	assert.Nil(t, status.Items[0].ValidFrom)
	assert.Equal(t, int64(5), *status.Items[0].ValidTo)
	assert.False(t, status.Inserted())
}

func TestVersionedReinsertAfterDeleteAppendsNewInterval(t *testing.T) {
	s := NewVersioned(nil)
	tr := triple("a", "knows", "b")

	s.Insert(tr.S, tr.P, tr.O, 1)
	s.Delete(tr.S, tr.P, tr.O, 2)
	s.Insert(tr.S, tr.P, tr.O, 3)

	assert.True(t, s.Contains(tr.S, tr.P, tr.O))

	status, _ := s.StatusOf(tr.S, tr.P, tr.O)
	require.Len(t, status.Items, 2)
	assert.Equal(t, int64(3), *status.Items[1].ValidFrom)
	assert.Nil(t, status.Items[1].ValidTo)
}

func TestVersionedTriplesSkipsDeleted(t *testing.T) {
	s := NewVersioned(nil)
	s.Insert(term.IRI("a"), term.IRI("p"), term.IRI("b"), 1)
	s.Insert(term.IRI("a"), term.IRI("p"), term.IRI("c"), 1)
	s.Delete(term.IRI("a"), term.IRI("p"), term.IRI("c"), 2)

	var got []term.Triple
	s.Triples(SPO, [3]container.Direction{container.Ascending, container.Ascending, container.Ascending}, func(t term.Triple) bool {
		got = append(got, t)
		return true
	})

	assert.Len(t, got, 1)
	assert.True(t, term.Equal(got[0].O, term.IRI("b")))
}

func TestVersionedLeafSharing(t *testing.T) {
	s := NewVersioned(nil)
	s.Insert(term.IRI("a"), term.IRI("p"), term.IRI("b"), 1)

	status, ok := s.SOP.Get(term.IRI("a")).Get(term.IRI("b")).Get(term.IRI("p"))
	require.True(t, ok)
	assert.True(t, status.Inserted())
}

func TestVersionedAllSixTrunksReachableByLookup(t *testing.T) {
	s := NewVersioned(nil)
	s.Insert(term.IRI("a"), term.IRI("p"), term.IRI("b"), 1)

	_, ok := s.SOP.mapping.Get(term.IRI("a"))
	assert.True(t, ok, "sop trunk must be populated by Insert, not just reachable via Get")
	_, ok = s.OPS.mapping.Get(term.IRI("b"))
	assert.True(t, ok, "ops trunk must be populated by Insert, not just reachable via Get")
	_, ok = s.PSO.mapping.Get(term.IRI("p"))
	assert.True(t, ok, "pso trunk must be populated by Insert, not just reachable via Get")
}

func TestVersionedBranchFanoutCount(t *testing.T) {
	s := NewVersioned(nil)
	s.Insert(term.IRI("a"), term.IRI("p"), term.IRI("b"), 1)
	s.Insert(term.IRI("a"), term.IRI("p"), term.IRI("c"), 1)

	assert.Equal(t, 2, s.SPO.Get(term.IRI("a")).N())
	assert.Equal(t, 2, s.SOP.Get(term.IRI("a")).N())

	s.Delete(term.IRI("a"), term.IRI("p"), term.IRI("b"), 2)
	assert.Equal(t, 1, s.SPO.Get(term.IRI("a")).N())
	assert.Equal(t, 1, s.SOP.Get(term.IRI("a")).N())
}
