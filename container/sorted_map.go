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

package container

// KV is one key/value pair, returned by SortedMap.Items and GetBatch.
type KV[K, V any] struct {
	Key   K
	Value V
}

// SortedMap is an ordered key/value mapping, keys kept in ascending order
// by cmp, with values held in lockstep in a parallel slice.
type SortedMap[K, V any] struct {
	keys   *SortedList[K]
	values []V
}

// NewSortedMap returns an empty SortedMap ordered by cmp.
func NewSortedMap[K, V any](cmp Compare[K]) *SortedMap[K, V] {
	return &SortedMap[K, V]{keys: NewSortedList[K](cmp)}
}

// Len returns the number of entries.
func (m *SortedMap[K, V]) Len() int { return m.keys.Len() }

// Get returns the value for k and whether it was present.
func (m *SortedMap[K, V]) Get(k K) (V, bool) {
	i, ok := m.keys.Index(k)
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

// Contains reports whether k is present.
func (m *SortedMap[K, V]) Contains(k K) bool {
	return m.keys.Contains(k)
}

// Set inserts or overwrites the value for k.
func (m *SortedMap[K, V]) Set(k K, v V) {
	i, ok := m.keys.Index(k)
	if ok {
		m.values[i] = v
		return
	}
	i = m.keys.Insert(k)
	m.values = append(m.values, v)
	copy(m.values[i+1:], m.values[i:])
	m.values[i] = v
}

// Delete removes k, if present.
func (m *SortedMap[K, V]) Delete(k K) {
	i, ok := m.keys.Index(k)
	if !ok {
		return
	}
	m.keys.DeleteAt(i)
	m.values = append(m.values[:i], m.values[i+1:]...)
}

// Keys returns the underlying sorted list of keys. Callers must not mutate
// it directly.
func (m *SortedMap[K, V]) Keys() *SortedList[K] { return m.keys }

// Values returns the values in key order. Callers must not mutate it.
func (m *SortedMap[K, V]) Values() []V { return m.values }

// Items walks key/value pairs in the given direction.
func (m *SortedMap[K, V]) Items(dir Direction) *Iterator[KV[K, V]] {
	pairs := make([]KV[K, V], m.Len())
	for i, k := range m.keys.Slice() {
		pairs[i] = KV[K, V]{Key: k, Value: m.values[i]}
	}
	return newIterator(pairs, dir)
}

// GetBatch performs a single ascending merge pass over keys (which must
// already be sorted by the map's comparator) and this map's entries,
// returning the entries whose key is present in keys, in one pass rather
// than one bisection per key.
func (m *SortedMap[K, V]) GetBatch(keys []K) []KV[K, V] {
	var out []KV[K, V]
	i, j := 0, 0
	mk := m.keys.Slice()
	cmp := m.keys.cmp
	for i < len(keys) && j < len(mk) {
		switch c := cmp(keys[i], mk[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out = append(out, KV[K, V]{Key: keys[i], Value: m.values[j]})
			i++
			j++
		}
	}
	return out
}

// DefaultSortedMap is a SortedMap that manufactures a value via factory the
// first time a missing key is looked up, inserting it as a side effect —
// the idiom the hexastore trunk/branch layers use to get-or-create the next
// level down without a separate existence check.
type DefaultSortedMap[K, V any] struct {
	SortedMap[K, V]
	factory func(K) V
}

// NewDefaultSortedMap returns an empty DefaultSortedMap ordered by cmp,
// whose GetOrInsert mints missing values with factory.
func NewDefaultSortedMap[K, V any](cmp Compare[K], factory func(K) V) *DefaultSortedMap[K, V] {
	return &DefaultSortedMap[K, V]{
		SortedMap: SortedMap[K, V]{keys: NewSortedList[K](cmp)},
		factory:   factory,
	}
}

// GetOrInsert returns the value for k, inserting a freshly-minted one via
// factory if k was not already present.
func (m *DefaultSortedMap[K, V]) GetOrInsert(k K) V {
	if v, ok := m.Get(k); ok {
		return v
	}
	v := m.factory(k)
	m.Set(k, v)
	return v
}

// GetOrInsertBatch is GetBatch's get-or-insert counterpart: every key in
// keys is present in the result, minting missing entries along the way.
func (m *DefaultSortedMap[K, V]) GetOrInsertBatch(keys []K) []KV[K, V] {
	out := make([]KV[K, V], len(keys))
	for i, k := range keys {
		out[i] = KV[K, V]{Key: k, Value: m.GetOrInsert(k)}
	}
	return out
}
