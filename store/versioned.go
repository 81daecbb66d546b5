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
	"sort"

	"github.com/mutantdb/hexastore/container"
	"github.com/mutantdb/hexastore/term"
)

// StatusItem records one insert/delete span: the triple is considered
// present for valid_from <= version < valid_to, with a nil bound meaning
// "no limit on that side yet."
type StatusItem struct {
	ValidFrom *int64
	ValidTo   *int64
}

// Status is the full history of one triple's presence in a VersionedStore.
// A triple currently inserted has its last StatusItem's ValidTo nil;
// deleting without a prior insert still records a StatusItem (ValidTo set,
// ValidFrom nil) so that Delete is never silently a no-op in the history —
// the triple is known to be absent as of valid_to even though it was never
// observed present.
type Status struct {
	Items []StatusItem
}

// Inserted reports whether the triple is present as of the most recent
// status entry.
func (s *Status) Inserted() bool {
	if len(s.Items) == 0 {
		return false
	}
	return s.Items[len(s.Items)-1].ValidTo == nil
}

type versionedLeaf = container.SortedMap[term.Term, *Status]

type versionedLeafTable struct {
	outer *container.DefaultSortedMap[term.Term, *container.DefaultSortedMap[term.Term, *versionedLeaf]]
}

func newVersionedLeafTable() *versionedLeafTable {
	return &versionedLeafTable{
		outer: container.NewDefaultSortedMap[term.Term, *container.DefaultSortedMap[term.Term, *versionedLeaf]](
			term.Compare,
			func(term.Term) *container.DefaultSortedMap[term.Term, *versionedLeaf] {
				return container.NewDefaultSortedMap[term.Term, *versionedLeaf](
					term.Compare,
					func(term.Term) *versionedLeaf { return container.NewSortedMap[term.Term, *Status](term.Compare) },
				)
			},
		),
	}
}

func (lt *versionedLeafTable) get(a, b term.Term) *versionedLeaf {
	return lt.outer.GetOrInsert(a).GetOrInsert(b)
}

// VersionedBranch is a Branch whose leaves map each third-position term to
// its Status history.
type VersionedBranch struct {
	mapping *container.DefaultSortedMap[term.Term, *versionedLeaf]

	// n is the number of currently-inserted triples sharing this branch's
	// leading term — the versioned counterpart of Branch.n.
	n int
}

// N reports the number of currently-inserted triples sharing this branch's
// leading term.
func (b *VersionedBranch) N() int { return b.n }

// Get returns the versioned leaf for mid.
func (b *VersionedBranch) Get(mid term.Term) *versionedLeaf {
	return b.mapping.GetOrInsert(mid)
}

// Items walks (mid, leaf) pairs in the given direction.
func (b *VersionedBranch) Items(dir container.Direction) *container.Iterator[container.KV[term.Term, *versionedLeaf]] {
	return b.mapping.Items(dir)
}

// VersionedTrunk is the leading-term level of a VersionedStore index.
type VersionedTrunk struct {
	mapping *container.DefaultSortedMap[term.Term, *VersionedBranch]
}

func newVersionedTrunk(lt *versionedLeafTable, natural bool) *VersionedTrunk {
	return &VersionedTrunk{
		mapping: container.NewDefaultSortedMap[term.Term, *VersionedBranch](
			term.Compare,
			func(leading term.Term) *VersionedBranch {
				return &VersionedBranch{
					mapping: container.NewDefaultSortedMap[term.Term, *versionedLeaf](
						term.Compare,
						func(mid term.Term) *versionedLeaf {
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

// Get returns the Branch for leading.
func (t *VersionedTrunk) Get(leading term.Term) *VersionedBranch {
	return t.mapping.GetOrInsert(leading)
}

// Items walks (leading, branch) pairs in the given direction.
func (t *VersionedTrunk) Items(dir container.Direction) *container.Iterator[container.KV[term.Term, *VersionedBranch]] {
	return t.mapping.Items(dir)
}

func (t *VersionedTrunk) Keys() []term.Term {
	return t.mapping.Keys().Slice()
}

// VersionedStore is a hexastore that keeps the full insert/delete history
// of every triple, addressed by an integer version counter the caller
// supplies (a write-ahead log's sequence number, for example). Triples
// function does not walk history by default — it reports whichever
// triples are currently inserted.
type VersionedStore struct {
	BlankNodes *term.BlankNodeFactory

	lists [3]*versionedLeafTable
	n     int

	SPO, POS, OSP, SOP, OPS, PSO *VersionedTrunk
}

// NewVersioned returns an empty VersionedStore.
func NewVersioned(blankNodes *term.BlankNodeFactory) *VersionedStore {
	spo, pos, osp := newVersionedLeafTable(), newVersionedLeafTable(), newVersionedLeafTable()
	return &VersionedStore{
		BlankNodes: blankNodes,
		lists:      [3]*versionedLeafTable{spo, pos, osp},
		SPO:        newVersionedTrunk(spo, true),
		POS:        newVersionedTrunk(pos, true),
		OSP:        newVersionedTrunk(osp, true),
		SOP:        newVersionedTrunk(osp, false),
		OPS:        newVersionedTrunk(pos, false),
		PSO:        newVersionedTrunk(spo, false),
	}
}

// Len returns the number of triples currently inserted.
func (s *VersionedStore) Len() int { return s.n }

// Insert records (subj, pred, obj) as present as of validFrom. It returns
// false if the triple was already inserted as of the most recent status.
func (s *VersionedStore) Insert(subj, pred, obj term.Term, validFrom int64) bool {
	spoBranch := s.SPO.Get(subj)
	leaf := spoBranch.Get(pred)

	status, ok := leaf.Get(obj)
	if ok && status.Inserted() {
		return false
	}
	if !ok {
		status = &Status{}
	}

	status.Items = append(status.Items, StatusItem{ValidFrom: &validFrom})

	leaf.Set(obj, status)
	posBranch := s.POS.Get(pred)
	posBranch.Get(obj).Set(subj, status)
	ospBranch := s.OSP.Get(obj)
	ospBranch.Get(subj).Set(pred, status)

	// sop/ops/pso share their leaves with osp/pos/spo respectively, so
	// visiting them here only needs to walk their own trunk and branch
	// levels into existence.
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
	return true
}

// BulkInsert inserts every triple in triples as of validFrom, skipping ones
// already present.
func (s *VersionedStore) BulkInsert(triples []term.Triple, validFrom int64) {
	sorted := make([]term.Triple, len(triples))
	copy(sorted, triples)
	sort.Slice(sorted, func(i, j int) bool { return term.Compare(sorted[i], sorted[j]) < 0 })

	for _, t := range sorted {
		s.Insert(t.S, t.P, t.O, validFrom)
	}
}

// Delete marks (subj, pred, obj) absent as of validTo. A triple that was
// never inserted still gets a StatusItem recording its absence, rather
// than being silently ignored — the history has to be able to answer "was
// t present at version v" for any v, including one where t was never
// inserted at all, and a closed-open StatusItem with a nil ValidFrom does
// that uniformly.
func (s *VersionedStore) Delete(subj, pred, obj term.Term, validTo int64) {
	spoBranch := s.SPO.Get(subj)
	posBranch := s.POS.Get(pred)
	ospBranch := s.OSP.Get(obj)
	sopBranch := s.SOP.Get(subj)
	opsBranch := s.OPS.Get(obj)
	psoBranch := s.PSO.Get(pred)

	leaf := spoBranch.Get(pred)

	status, ok := leaf.Get(obj)
	wasInserted := ok && status.Inserted()
	if wasInserted {
		s.n--

		spoBranch.n--
		sopBranch.n--
		ospBranch.n--
		opsBranch.n--
		posBranch.n--
		psoBranch.n--
	}

	if !ok {
		status = &Status{}
	}

	if len(status.Items) > 0 && status.Items[len(status.Items)-1].ValidTo == nil {
		status.Items[len(status.Items)-1].ValidTo = &validTo
	} else {
		status.Items = append(status.Items, StatusItem{ValidTo: &validTo})
	}

	leaf.Set(obj, status)
	posBranch.Get(obj).Set(subj, status)
	ospBranch.Get(subj).Set(pred, status)

	// sop/ops/pso share their leaves with osp/pos/spo respectively, so
	// visiting them here only needs to walk their own trunk and branch
	// levels into existence.
	sopBranch.Get(obj)
	opsBranch.Get(pred)
	psoBranch.Get(subj)
}

// Contains reports whether (subj, pred, obj) is currently inserted.
func (s *VersionedStore) Contains(subj, pred, obj term.Term) bool {
	status, ok := s.SPO.Get(subj).Get(pred).Get(obj)
	return ok && status.Inserted()
}

// StatusOf returns the full history for (subj, pred, obj), if the store
// has ever recorded anything about it.
func (s *VersionedStore) StatusOf(subj, pred, obj term.Term) (*Status, bool) {
	return s.SPO.Get(subj).Get(pred).Get(obj)
}

// Terms returns every distinct term that occurs in subject, predicate or
// object position across all history, inserted or not.
func (s *VersionedStore) Terms() []term.Term {
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

func (s *VersionedStore) trunkFor(kind Kind) (*VersionedTrunk, func(a, b, c term.Term) term.Triple) {
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

// Triples walks every currently-inserted triple in the given index's
// order, calling visit for each. visit returning false stops the walk.
func (s *VersionedStore) Triples(kind Kind, order [3]container.Direction, visit func(term.Triple) bool) {
	trunk, transform := s.trunkFor(kind)

	tIt := trunk.Items(order[0])
	for tkv, ok := tIt.Next(); ok; tkv, ok = tIt.Next() {
		bIt := tkv.Value.Items(order[1])
		for bkv, ok := bIt.Next(); ok; bkv, ok = bIt.Next() {
			lIt := bkv.Value.Items(order[2])
			for lkv, ok := lIt.Next(); ok; lkv, ok = lIt.Next() {
				if !lkv.Value.Inserted() {
					continue
				}
				if !visit(transform(tkv.Key, bkv.Key, lkv.Key)) {
					return
				}
			}
		}
	}
}
