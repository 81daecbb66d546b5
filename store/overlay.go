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

import "github.com/mutantdb/hexastore/term"

// Overlay is a write buffer over an underlying store: reads fall through to
// the underlying store when the overlay doesn't have an answer, and writes
// land only in the overlay until Commit folds them into the underlying
// store in one BulkInsert. The reasoner's saturation loop runs entirely
// against an Overlay so a rule that re-derives the same triple twice in one
// round never has to touch the underlying store, and a saturation pass
// that errors out partway can be abandoned by simply not calling Commit.
type Overlay struct {
	underlying *Store
	overlay    *Store
}

// NewOverlay returns an Overlay backed by underlying, with a fresh empty
// write buffer using the same blank node factory.
func NewOverlay(underlying *Store) *Overlay {
	return &Overlay{underlying: underlying, overlay: New(underlying.BlankNodes)}
}

// Insert adds (subj, pred, obj) to the overlay, returning false if it is
// already present in either the overlay or the underlying store.
func (o *Overlay) Insert(subj, pred, obj term.Term) bool {
	if o.underlying.Contains(subj, pred, obj) {
		return false
	}
	return o.overlay.Insert(subj, pred, obj)
}

// BulkInsert adds every triple in triples to the overlay that is not
// already present in the underlying store.
func (o *Overlay) BulkInsert(triples []term.Triple) {
	fresh := make([]term.Triple, 0, len(triples))
	for _, t := range triples {
		if !o.underlying.Contains(t.S, t.P, t.O) {
			fresh = append(fresh, t)
		}
	}
	o.overlay.BulkInsert(fresh)
}

// Contains reports whether (subj, pred, obj) is visible through the
// overlay, whether it lives in the write buffer or the underlying store.
func (o *Overlay) Contains(subj, pred, obj term.Term) bool {
	return o.overlay.Contains(subj, pred, obj) || o.underlying.Contains(subj, pred, obj)
}

// Triples returns every triple visible through the overlay, underlying
// store and write buffer merged, in ascending SPO order.
func (o *Overlay) Triples() []term.Triple {
	return mergeSortedTriples(o.underlying.All(), o.overlay.All())
}

// Find returns every visible triple for which keep returns true. It is the
// overlay's escape hatch for read patterns the six trunk/branch indexes
// don't serve directly, such as a rule callback looking for every other
// triple that shares its object and predicate.
func (o *Overlay) Find(keep func(term.Triple) bool) []term.Triple {
	var out []term.Triple
	for _, t := range o.Triples() {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of triples visible through the overlay.
func (o *Overlay) Len() int {
	return o.underlying.Len() + o.overlay.Len()
}

// Commit folds the write buffer into the underlying store with a single
// BulkInsert call, then clears the buffer. Calling Commit when the buffer
// is empty is a cheap no-op.
func (o *Overlay) Commit() {
	if o.overlay.Len() == 0 {
		return
	}
	o.underlying.BulkInsert(o.overlay.All())
	o.overlay = New(o.underlying.BlankNodes)
}

// WithOverlay runs fn against a fresh Overlay over underlying, committing
// the overlay's writes to underlying if fn returns nil and discarding them
// otherwise.
func WithOverlay(underlying *Store, fn func(*Overlay) error) error {
	ov := NewOverlay(underlying)
	if err := fn(ov); err != nil {
		return err
	}
	ov.Commit()
	return nil
}

// mergeSortedTriples merges two slices already in ascending SPO order,
// without introducing duplicates where both sides hold the same triple.
func mergeSortedTriples(a, b []term.Triple) []term.Triple {
	out := make([]term.Triple, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := term.Compare(a[i], b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
