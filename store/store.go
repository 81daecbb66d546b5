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

// Package store implements the hexastore: six sorted indexes over (subject,
// predicate, object) triples — spo, pos, osp, sop, ops, pso — that let the
// query planner pick whichever ordering matches a pattern's bound
// positions without a table scan. The three "natural" indexes (spo, pos,
// osp) and the three "reverse" indexes (sop, ops, pso) are paired (spo with
// pso, pos with ops, osp with sop) so that each reverse index resolves to
// its natural partner's leaf list, so a triple is stored once per pair
// rather than once per index.
package store

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mutantdb/hexastore/container"
	"github.com/mutantdb/hexastore/term"
)

// Kind names one of the six index orderings.
type Kind int

const (
	SPO Kind = iota
	POS
	OSP
	SOP
	OPS
	PSO
)

func (k Kind) String() string {
	switch k {
	case SPO:
		return "spo"
	case POS:
		return "pos"
	case OSP:
		return "osp"
	case SOP:
		return "sop"
	case OPS:
		return "ops"
	case PSO:
		return "pso"
	default:
		return "unknown"
	}
}

// leaf is the list shared between the natural/reverse index pair that
// addresses the same two terms.
type leaf = container.SortedList[term.Term]

// leafTable is the cache of (a, b) -> leaf list that one natural index and
// its paired reverse index read and write through. It is what makes the
// leaf sharing between the two indexes of a pair work: both paths that
// resolve to the same (a, b) pair get the same *leaf. Each pair has its own
// table, so an (a, b) pair under one ordering never aliases the same pair
// under another.
type leafTable struct {
	outer *container.DefaultSortedMap[term.Term, *container.DefaultSortedMap[term.Term, *leaf]]
}

func newLeafTable() *leafTable {
	return &leafTable{
		outer: container.NewDefaultSortedMap[term.Term, *container.DefaultSortedMap[term.Term, *leaf]](
			term.Compare,
			func(term.Term) *container.DefaultSortedMap[term.Term, *leaf] {
				return container.NewDefaultSortedMap[term.Term, *leaf](
					term.Compare,
					func(term.Term) *leaf { return container.NewSortedList[term.Term](term.Compare) },
				)
			},
		),
	}
}

func (lt *leafTable) get(a, b term.Term) *leaf {
	return lt.outer.GetOrInsert(a).GetOrInsert(b)
}

// Branch is the second level of a trunk: a mapping from the pattern's
// middle-position term to the leaf list of third-position terms.
type Branch struct {
	mapping *container.DefaultSortedMap[term.Term, *leaf]

	// n is the number of triples sharing this branch's leading term — the
	// per-trunk fanout count of the "Hexastore" invariant (spec'd as
	// TrunkPayload.n in the Python original).
	n int
}

// N reports the number of triples sharing this branch's leading term.
func (b *Branch) N() int { return b.n }

// Get returns the leaf list for mid, creating it if this is the first time
// mid has been seen under this branch.
func (b *Branch) Get(mid term.Term) *leaf {
	return b.mapping.GetOrInsert(mid)
}

// Lookup returns the leaf list for mid without creating one if absent —
// the read path queries use so that probing a pattern never pollutes the
// index with empty branches for terms that don't occur in the store.
func (b *Branch) Lookup(mid term.Term) (*leaf, bool) {
	return b.mapping.Get(mid)
}

// Items walks (mid, leaf) pairs in the given direction.
func (b *Branch) Items(dir container.Direction) *container.Iterator[container.KV[term.Term, *leaf]] {
	return b.mapping.Items(dir)
}

// Trunk is the first level of an index: a mapping from the pattern's
// leading-position term to a Branch.
type Trunk struct {
	mapping *container.DefaultSortedMap[term.Term, *Branch]
}

func newTrunk(lt *leafTable, natural bool) *Trunk {
	return &Trunk{
		mapping: container.NewDefaultSortedMap[term.Term, *Branch](
			term.Compare,
			func(leading term.Term) *Branch {
				return &Branch{
					mapping: container.NewDefaultSortedMap[term.Term, *leaf](
						term.Compare,
						func(mid term.Term) *leaf {
							if natural {
								return lt.get(leading, mid)
							}
							return lt.get(mid, leading)
						},
					),
				}
			},
		),
	}
}

// Get returns the Branch for leading, creating it if necessary.
func (t *Trunk) Get(leading term.Term) *Branch {
	return t.mapping.GetOrInsert(leading)
}

// Lookup returns the Branch for leading without creating one if absent.
func (t *Trunk) Lookup(leading term.Term) (*Branch, bool) {
	return t.mapping.Get(leading)
}

// Items walks (leading, branch) pairs in the given direction.
func (t *Trunk) Items(dir container.Direction) *container.Iterator[container.KV[term.Term, *Branch]] {
	return t.mapping.Items(dir)
}

// Keys returns the leading terms this trunk has a Branch for.
func (t *Trunk) Keys() []term.Term {
	return t.mapping.Keys().Slice()
}

// Store is an in-memory hexastore: insert, delete and containment are
// O(log n) against a shared bisection-based leaf; iteration in any of the
// six orderings is a three-level walk of trunk, branch and leaf.
type Store struct {
	BlankNodes *term.BlankNodeFactory

	lists [3]*leafTable
	n     int

	SPO, POS, OSP, SOP, OPS, PSO *Trunk
}

// New returns an empty Store. blankNodes mints blank nodes created while
// reasoning or reifying over this store's contents; it may be shared across
// stores that are meant to treat each other's blank nodes as the same
// identity space, or left nil if the store never needs to mint one.
func New(blankNodes *term.BlankNodeFactory) *Store {
	spo, pos, osp := newLeafTable(), newLeafTable(), newLeafTable()
	return &Store{
		BlankNodes: blankNodes,
		lists:      [3]*leafTable{spo, pos, osp},
		SPO:        newTrunk(spo, true),
		POS:        newTrunk(pos, true),
		OSP:        newTrunk(osp, true),
		SOP:        newTrunk(osp, false),
		OPS:        newTrunk(pos, false),
		PSO:        newTrunk(spo, false),
	}
}

// Len returns the number of distinct triples in the store.
func (s *Store) Len() int { return s.n }

// Insert adds (subj, pred, obj) to the store, returning false if it was
// already present.
func (s *Store) Insert(subj, pred, obj term.Term) bool {
	spoBranch := s.SPO.Get(subj)
	_, inserted := spoBranch.Get(pred).IndexOrInsert(obj)
	if !inserted {
		return false
	}

	posBranch := s.POS.Get(pred)
	posBranch.Get(obj).Insert(subj)
	ospBranch := s.OSP.Get(obj)
	ospBranch.Get(subj).Insert(pred)

	// sop/ops/pso share their leaves with osp/pos/spo respectively (see the
	// package doc comment), so visiting them here only needs to walk their
	// own trunk and branch levels into existence — the leaf itself already
	// holds the value written above.
	sopBranch := s.SOP.Get(subj)
	sopBranch.Get(obj)
	opsBranch := s.OPS.Get(obj)
	opsBranch.Get(pred)
	psoBranch := s.PSO.Get(pred)
	psoBranch.Get(subj)

	spoBranch.n++
	sopBranch.n++
	ospBranch.n++
	opsBranch.n++
	posBranch.n++
	psoBranch.n++

	s.n++
	logrus.WithFields(logrus.Fields{"s": subj, "p": pred, "o": obj}).Trace("store: insert")
	return true
}

// BulkInsert adds every triple in triples, skipping ones already present.
// It sorts a copy of the batch into SPO order and then calls Insert once
// per triple; it does not group the batch by subject or predicate, so each
// triple still descends the trunk and branch levels on its own.
func (s *Store) BulkInsert(triples []term.Triple) {
	sorted := make([]term.Triple, len(triples))
	copy(sorted, triples)
	sortTriples(sorted)

	for _, t := range sorted {
		s.Insert(t.S, t.P, t.O)
	}
}

// Delete removes (subj, pred, obj) from the store, if present.
func (s *Store) Delete(subj, pred, obj term.Term) {
	spoBranch := s.SPO.Get(subj)
	if !spoBranch.Get(pred).Contains(obj) {
		return
	}

	s.n--

	spoBranch.Get(pred).Delete(obj)
	posBranch := s.POS.Get(pred)
	posBranch.Get(obj).Delete(subj)
	ospBranch := s.OSP.Get(obj)
	ospBranch.Get(subj).Delete(pred)

	sopBranch := s.SOP.Get(subj)
	sopBranch.Get(obj)
	opsBranch := s.OPS.Get(obj)
	opsBranch.Get(pred)
	psoBranch := s.PSO.Get(pred)
	psoBranch.Get(subj)

	spoBranch.n--
	sopBranch.n--
	ospBranch.n--
	opsBranch.n--
	posBranch.n--
	psoBranch.n--

	logrus.WithFields(logrus.Fields{"s": subj, "p": pred, "o": obj}).Trace("store: delete")
}

// Contains reports whether (subj, pred, obj) is in the store.
func (s *Store) Contains(subj, pred, obj term.Term) bool {
	return s.SPO.Get(subj).Get(pred).Contains(obj)
}

// IndexOf returns the position of t in SPO order, scanning from the start.
// It is intended for small stores and tests, not the query hot path.
func (s *Store) IndexOf(t term.Triple) (int, bool) {
	i := 0
	found := false
	s.Triples(SPO, [3]container.Direction{container.Ascending, container.Ascending, container.Ascending}, func(got term.Triple) bool {
		if term.Equal(got.S, t.S) && term.Equal(got.P, t.P) && term.Equal(got.O, t.O) {
			found = true
			return false
		}
		i++
		return true
	})
	if !found {
		return 0, false
	}
	return i, true
}

// Terms returns the union of the spo, pos and osp trunk keys, sorted in
// cross-type order. Trunk keys are not removed when a triple is deleted,
// and Contains and Delete create them for the terms they probe, so the
// result can include terms that no current triple uses.
func (s *Store) Terms() []term.Term {
	all := container.NewSortedList[term.Term](term.Compare)
	for _, k := range s.SPO.Keys() {
		all.Insert(k)
	}
	for _, k := range s.POS.Keys() {
		all.Insert(k)
	}
	for _, k := range s.OSP.Keys() {
		all.Insert(k)
	}
	return all.Slice()
}

// IndexTrunk returns the Trunk for the given index Kind, and a transform
// that reorders (a, b, c) — the natural iteration order of that Trunk —
// back into (subject, predicate, object). The query planner uses this to
// walk whichever index best matches a pattern's bound positions.
func (s *Store) IndexTrunk(kind Kind) (*Trunk, func(a, b, c term.Term) term.Triple) {
	return s.trunkFor(kind)
}

func (s *Store) trunkFor(kind Kind) (*Trunk, func(a, b, c term.Term) term.Triple) {
	switch kind {
	case SPO:
		return s.SPO, func(a, b, c term.Term) term.Triple { return term.Triple{S: a, P: b, O: c} }
	case POS:
		return s.POS, func(a, b, c term.Term) term.Triple { return term.Triple{S: c, P: a, O: b} }
	case OSP:
		return s.OSP, func(a, b, c term.Term) term.Triple { return term.Triple{S: b, P: c, O: a} }
	case SOP:
		return s.SOP, func(a, b, c term.Term) term.Triple { return term.Triple{S: a, P: c, O: b} }
	case OPS:
		return s.OPS, func(a, b, c term.Term) term.Triple { return term.Triple{S: c, P: b, O: a} }
	case PSO:
		return s.PSO, func(a, b, c term.Term) term.Triple { return term.Triple{S: b, P: a, O: c} }
	default:
		panic("store: unknown index kind")
	}
}

// Triples walks every triple in the store in the given index's order,
// calling visit for each. order[0..2] direct the trunk, branch and leaf
// walks respectively. visit returning false stops the walk early.
func (s *Store) Triples(kind Kind, order [3]container.Direction, visit func(term.Triple) bool) {
	trunk, transform := s.trunkFor(kind)

	tIt := trunk.Items(order[0])
	for tkv, ok := tIt.Next(); ok; tkv, ok = tIt.Next() {
		bIt := tkv.Value.Items(order[1])
		for bkv, ok := bIt.Next(); ok; bkv, ok = bIt.Next() {
			lIt := bkv.Value.Iter(order[2])
			for c, ok := lIt.Next(); ok; c, ok = lIt.Next() {
				if !visit(transform(tkv.Key, bkv.Key, c)) {
					return
				}
			}
		}
	}
}

// All returns every triple in ascending SPO order. It is a convenience
// wrapper over Triples for callers that want a slice rather than a
// callback.
func (s *Store) All() []term.Triple {
	var out []term.Triple
	s.Triples(SPO, [3]container.Direction{container.Ascending, container.Ascending, container.Ascending}, func(t term.Triple) bool {
		out = append(out, t)
		return true
	})
	return out
}

func sortTriples(triples []term.Triple) {
	sort.Slice(triples, func(i, j int) bool { return term.Compare(triples[i], triples[j]) < 0 })
}
