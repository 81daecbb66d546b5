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

import "sort"

// SortedList is a slice kept in ascending order by cmp, with bisection
// insert and lookup.
type SortedList[T any] struct {
	items []T
	cmp   Compare[T]
}

// NewSortedList returns an empty SortedList ordered by cmp.
func NewSortedList[T any](cmp Compare[T]) *SortedList[T] {
	return &SortedList[T]{cmp: cmp}
}

// NewSortedListFrom returns a SortedList containing a copy of items, sorted
// once up front rather than inserted one at a time.
func NewSortedListFrom[T any](items []T, cmp Compare[T]) *SortedList[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	sort.Slice(cp, func(i, j int) bool { return cmp(cp[i], cp[j]) < 0 })
	return &SortedList[T]{items: cp, cmp: cmp}
}

// Len returns the number of elements.
func (s *SortedList[T]) Len() int { return len(s.items) }

// At returns the element at position i.
func (s *SortedList[T]) At(i int) T { return s.items[i] }

// Slice returns the underlying elements in ascending order. Callers must
// not mutate the returned slice.
func (s *SortedList[T]) Slice() []T { return s.items }

// Insert inserts x at its sorted position and returns that position. If
// equal elements already exist, x is inserted after the rightmost one.
func (s *SortedList[T]) Insert(x T) int {
	i := bisectRight(s.items, x, 0, len(s.items), s.cmp)
	s.items = append(s.items, x)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = x
	return i
}

// Index returns the position of the leftmost element equal to x, and
// whether it was found.
func (s *SortedList[T]) Index(x T) (int, bool) {
	i := bisectLeft(s.items, x, 0, len(s.items), s.cmp)
	if i != len(s.items) && s.cmp(s.items[i], x) == 0 {
		return i, true
	}
	return i, false
}

// IndexOrInsert returns the position of x, inserting it if not already
// present. The second return value reports whether an insert happened.
func (s *SortedList[T]) IndexOrInsert(x T) (int, bool) {
	if i, ok := s.Index(x); ok {
		return i, false
	}
	return s.Insert(x), true
}

// Contains reports whether x is present.
func (s *SortedList[T]) Contains(x T) bool {
	_, ok := s.Index(x)
	return ok
}

// DeleteAt removes the element at position i.
func (s *SortedList[T]) DeleteAt(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
}

// Delete removes the leftmost element equal to x, if present, and reports
// whether anything was removed.
func (s *SortedList[T]) Delete(x T) bool {
	i, ok := s.Index(x)
	if !ok {
		return false
	}
	s.DeleteAt(i)
	return true
}

// Iter walks the list in the given direction.
func (s *SortedList[T]) Iter(dir Direction) *Iterator[T] {
	return newIterator(s.items, dir)
}
