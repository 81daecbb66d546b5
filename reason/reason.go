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

package reason

import (
	"sort"

	"github.com/mitchellh/hashstructure"
	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/mutantdb/hexastore/container"
	"github.com/mutantdb/hexastore/query"
	"github.com/mutantdb/hexastore/store"
	"github.com/mutantdb/hexastore/term"
)

// ErrInvariantViolation mirrors term.ErrInvariantViolation for faults that
// originate in the reasoner rather than the term model.
var ErrInvariantViolation = errors.NewKind("invariant violation: %s")

const keySeparator = "\x1f"

// Callback is invoked once for every triple matching a registered rule's
// pattern, whether that triple was already in the store when the rule
// registered or was derived afterward. It reports new triples by calling
// Adaptor.Insert, never by writing to the store directly — the reasoner
// decides whether an inference survives (it may be circular) and handles
// its provenance bookkeeping itself.
type Callback func(a *Adaptor, s, p, o term.Term)

type registeredRule struct {
	id       int
	pattern  query.Pattern
	callback Callback
}

type ruleLocation struct {
	bucket int
	key    string
	id     int
}

// Reasoner is a forward-chaining rule engine layered over a store. Rules
// are bucketed by which of their pattern's three positions are bound (eight
// buckets, one per subset of {S, P, O}), so applying a newly
// derived triple to the rule set only ever visits the rules that could
// possibly match it instead of every registered rule.
type Reasoner struct {
	store   *store.Store
	buckets [8]map[string][]*registeredRule

	// ruleDeletionIndex maps a premise triple to the rules that were
	// registered as a side effect of matching it — Delete uses this to
	// retract rules a retracted triple caused to exist, the way a
	// recursive rule can register a narrower rule mid-saturation.
	ruleDeletionIndex map[term.Triple][]ruleLocation

	nextID int
}

// New returns a Reasoner over st. st.BlankNodes must be non-nil if any
// registered rule ever derives a triple from more than one premise, since
// multi-premise provenance is recorded via a freshly minted rdf:Bag node.
func New(st *store.Store) *Reasoner {
	r := &Reasoner{store: st, ruleDeletionIndex: map[term.Triple][]ruleLocation{}}
	for i := range r.buckets {
		r.buckets[i] = map[string][]*registeredRule{}
	}
	return r
}

func isVariable(t term.Term) bool {
	_, ok := t.(term.Variable)
	return ok
}

func classify(p query.Pattern) (int, string) {
	bucket := 0
	var parts []term.Term
	if !isVariable(p.S) {
		bucket += 1
		parts = append(parts, p.S)
	}
	if !isVariable(p.P) {
		bucket += 2
		parts = append(parts, p.P)
	}
	if !isVariable(p.O) {
		bucket += 4
		parts = append(parts, p.O)
	}
	return bucket, buildKey(parts...)
}

func buildKey(parts ...term.Term) string {
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += keySeparator
		}
		s += p.String()
	}
	return s
}

// RegisterRule adds a rule: pattern selects which triples trigger
// callback, and inferredFrom (at most one triple) marks this rule as
// existing only because that premise does — Delete retracts it
// automatically if the premise is ever retracted. RegisterRule fires
// callback immediately for every triple already in the store that matches
// pattern before returning, exactly as if those triples had just been
// inserted, and then runs any resulting inferences to a fixpoint.
func (r *Reasoner) RegisterRule(pattern query.Pattern, callback Callback, inferredFrom ...term.Triple) error {
	if len(inferredFrom) > 1 {
		return ErrInvariantViolation.New("RegisterRule tracks deletion for at most one premise triple")
	}

	bucket, key := classify(pattern)
	id := r.nextID
	r.nextID++
	rule := &registeredRule{id: id, pattern: pattern, callback: callback}
	r.buckets[bucket][key] = append(r.buckets[bucket][key], rule)

	if len(inferredFrom) == 1 {
		r.ruleDeletionIndex[inferredFrom[0]] = append(r.ruleDeletionIndex[inferredFrom[0]], ruleLocation{bucket, key, id})
	}

	return store.WithOverlay(r.store, func(ov *store.Overlay) error {
		adaptor := newAdaptor(ov, r)

		for _, sol := range query.Execute(r.store, []query.Pattern{pattern}, nil, nil) {
			triples := sol.Triples()
			if len(triples) != 1 {
				continue
			}
			t := triples[0]
			callback(adaptor, t.S, t.P, t.O)
		}

		delta := map[term.Triple]struct{}{}
		for _, pending := range adaptor.nextDelta {
			if r.insertWithProvenance(pending.triple, pending.inferredFrom, ov) {
				delta[pending.triple] = struct{}{}
			}
		}
		r.applyRules(delta, ov)
		return nil
	})
}

// Insert adds (s, p, o) to the store with no provenance, then runs
// forward-chaining to a fixpoint.
func (r *Reasoner) Insert(s, p, o term.Term) {
	_ = store.WithOverlay(r.store, func(ov *store.Overlay) error {
		ov.Insert(s, p, o)
		r.applyRules(map[term.Triple]struct{}{{S: s, P: p, O: o}: {}}, ov)
		return nil
	})
}

// BulkInsert adds every triple in triples with no provenance, then runs
// forward-chaining to a fixpoint over the whole batch at once.
func (r *Reasoner) BulkInsert(triples []term.Triple) {
	_ = store.WithOverlay(r.store, func(ov *store.Overlay) error {
		ov.BulkInsert(triples)
		delta := make(map[term.Triple]struct{}, len(triples))
		for _, t := range triples {
			delta[t] = struct{}{}
		}
		r.applyRules(delta, ov)
		return nil
	})
}

// applyRules runs the saturation loop: every triple in delta is matched
// against the eight rule buckets, callbacks buffer their inferences on a
// fresh Adaptor, and whichever of those inferences insertWithProvenance
// accepts becomes the next round's delta. The loop ends the first round
// that derives nothing new.
func (r *Reasoner) applyRules(delta map[term.Triple]struct{}, ov *store.Overlay) {
	for round := 0; len(delta) > 0; round++ {
		logrus.WithFields(logrus.Fields{"round": round, "delta": len(delta)}).Debug("reason: saturation round")
		adaptor := newAdaptor(ov, r)

		for t := range delta {
			s, p, o := t.S, t.P, t.O

			for _, rule := range r.buckets[0][""] {
				rule.callback(adaptor, s, p, o)
			}
			for _, rule := range r.buckets[1][buildKey(s)] {
				rule.callback(adaptor, s, p, o)
			}
			for _, rule := range r.buckets[2][buildKey(p)] {
				rule.callback(adaptor, s, p, o)
			}
			for _, rule := range r.buckets[3][buildKey(s, p)] {
				rule.callback(adaptor, s, p, o)
			}
			for _, rule := range r.buckets[4][buildKey(o)] {
				rule.callback(adaptor, s, p, o)
			}
			for _, rule := range r.buckets[5][buildKey(s, o)] {
				rule.callback(adaptor, s, p, o)
			}
			for _, rule := range r.buckets[6][buildKey(p, o)] {
				rule.callback(adaptor, s, p, o)
			}
			for _, rule := range r.buckets[7][buildKey(s, p, o)] {
				rule.callback(adaptor, s, p, o)
			}
		}

		next := map[term.Triple]struct{}{}
		for _, pending := range adaptor.nextDelta {
			if r.insertWithProvenance(pending.triple, pending.inferredFrom, ov) {
				next[pending.triple] = struct{}{}
			}
		}
		delta = next
	}
}

// insertWithProvenance inserts t into ov and records its provenance
// against premises. It reports whether t belongs in the next round's
// delta: true when t is new, or when t was already present and this
// derivation's provenance had not been recorded yet. It rejects — leaving
// t absent from the delta and recording nothing — when t was already
// present and accepting it again would only be recording a circular
// justification (t derived from something t itself justified).
func (r *Reasoner) insertWithProvenance(t term.Triple, premises []term.Triple, ov *store.Overlay) bool {
	inserted := ov.Insert(t.S, t.P, t.O)

	if !inserted && r.isCircular(t, premises, ov) {
		return false
	}

	switch len(premises) {
	case 0:
		// No provenance to record.
	case 1:
		if ov.Insert(t, InferredFrom, premises[0]) {
			return true
		}
	default:
		sorted := make([]term.Triple, len(premises))
		copy(sorted, premises)
		sort.Slice(sorted, func(i, j int) bool { return term.Compare(sorted[i], sorted[j]) < 0 })

		if !inserted {
			wantHash := premiseHash(sorted)
			existing := ov.Find(func(x term.Triple) bool {
				return term.Equal(x.S, t) && term.Equal(x.P, InferredFrom)
			})
			for _, edge := range existing {
				if !ov.Contains(edge.O, Type, Bag) {
					continue
				}
				members := bagMembers(ov, edge.O)
				// Compare hashes first — cheap for the common case of many
				// bags with few members each — then fall back to the exact
				// comparison before accepting a match, since a hash
				// collision must never be mistaken for the same premise set.
				if premiseHash(members) == wantHash && sameTriples(members, sorted) {
					return inserted
				}
			}
		}

		if r.store.BlankNodes == nil {
			panic("reason: multi-premise provenance requires a non-nil blank node factory")
		}
		node := r.store.BlankNodes.New()
		ov.Insert(node, Type, Bag)
		ov.Insert(t, InferredFrom, node)
		for _, premise := range sorted {
			ov.Insert(node, Member, premise)
		}
		return true
	}

	return inserted
}

func bagMembers(ov *store.Overlay, node term.Term) []term.Triple {
	edges := ov.Find(func(x term.Triple) bool { return term.Equal(x.S, node) && term.Equal(x.P, Member) })
	members := make([]term.Triple, len(edges))
	for i, e := range edges {
		members[i] = e.O.(term.Triple)
	}
	sort.Slice(members, func(i, j int) bool { return term.Compare(members[i], members[j]) < 0 })
	return members
}

// premiseHash returns a structural hash of a sorted premise slice's string
// forms, used to short-circuit the exact bag-membership comparison in the
// common case of no match.
func premiseHash(premises []term.Triple) uint64 {
	strs := make([]string, len(premises))
	for i, p := range premises {
		strs[i] = p.String()
	}
	h, err := hashstructure.Hash(strs, nil)
	if err != nil {
		return 0
	}
	return h
}

func sameTriples(a, b []term.Triple) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !term.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// isCircular reports whether accepting t as a re-derivation from premises
// would close a justification loop: a premise that was itself justified by
// t (directly, or via a bag that has t as a member).
func (r *Reasoner) isCircular(t term.Triple, premises []term.Triple, ov *store.Overlay) bool {
	for _, premise := range premises {
		if ov.Contains(premise, InferredFrom, t) {
			return true
		}

		bags := ov.Find(func(x term.Triple) bool { return term.Equal(x.P, Member) && term.Equal(x.O, t) })
		for _, bag := range bags {
			if ov.Contains(premise, InferredFrom, bag.S) {
				return true
			}
		}
	}
	return false
}

// Delete removes (s, p, o) from the store and retracts what depended on
// it: every triple derived from it by a single-premise inference is
// deleted, and every bag it is a member of is torn down, deleting each
// triple for which that bag was the last remaining justification. Each of
// those deletions cascades the same way. Any rule that was registered
// solely because this triple existed is retracted too.
func (r *Reasoner) Delete(s, p, o term.Term) {
	t := term.Triple{S: s, P: p, O: o}
	r.store.Delete(s, p, o)

	if branch, ok := r.store.OPS.Lookup(t); ok {
		bIt := branch.Items(container.Ascending)
		for bkv, ok2 := bIt.Next(); ok2; bkv, ok2 = bIt.Next() {
			pred := bkv.Key

			var deadTerms []term.Term
			lIt := bkv.Value.Iter(container.Ascending)
			for v, ok3 := lIt.Next(); ok3; v, ok3 = lIt.Next() {
				deadTerms = append(deadTerms, v)
			}

			for _, dead := range deadTerms {
				if term.Equal(pred, InferredFrom) {
					if dt, ok := dead.(term.Triple); ok {
						r.store.Delete(dt, InferredFrom, t)
						r.Delete(dt.S, dt.P, dt.O)
					}
					continue
				}

				if ty, ok := typeOf(r.store, dead); ok && term.Equal(ty, Bag) {
					r.retractBag(dead)
				}
			}
		}
	}

	for _, loc := range r.ruleDeletionIndex[t] {
		rules := r.buckets[loc.bucket][loc.key]
		filtered := rules[:0]
		for _, rule := range rules {
			if rule.id != loc.id {
				filtered = append(filtered, rule)
			}
		}
		r.buckets[loc.bucket][loc.key] = filtered
	}
	delete(r.ruleDeletionIndex, t)
}

// retractBag tears down a bag node that justified one or more triples via
// a multi-premise inference: every dependent triple loses its link to the
// bag, is deleted outright if that was its last remaining justification,
// and the bag's own triples (its rdf:type and rdf:member edges) go too.
func (r *Reasoner) retractBag(bag term.Term) {
	var dependents []term.Triple
	if branch, ok := r.store.OPS.Lookup(bag); ok {
		if leaf, ok := branch.Lookup(InferredFrom); ok {
			it := leaf.Iter(container.Ascending)
			for v, ok2 := it.Next(); ok2; v, ok2 = it.Next() {
				if dt, ok := v.(term.Triple); ok {
					dependents = append(dependents, dt)
				}
			}
		}
	}

	for _, dt := range dependents {
		r.store.Delete(dt, InferredFrom, bag)

		stillJustified := false
		if branch, ok := r.store.SPO.Lookup(dt); ok {
			if leaf, ok := branch.Lookup(InferredFrom); ok {
				stillJustified = leaf.Len() > 0
			}
		}
		if !stillJustified {
			r.Delete(dt.S, dt.P, dt.O)
		}
	}

	deleteNode(r.store, bag)
}

func typeOf(st *store.Store, s term.Term) (term.Term, bool) {
	branch, ok := st.SPO.Lookup(s)
	if !ok {
		return term.Unbound, false
	}
	leaf, ok := branch.Lookup(Type)
	if !ok || leaf.Len() == 0 {
		return term.Unbound, false
	}
	return leaf.At(0), true
}

// deleteNode removes every triple with node as its subject.
func deleteNode(st *store.Store, node term.Term) {
	branch, ok := st.SPO.Lookup(node)
	if !ok {
		return
	}

	type po struct {
		p, o term.Term
	}
	var edges []po
	bIt := branch.Items(container.Ascending)
	for bkv, ok2 := bIt.Next(); ok2; bkv, ok2 = bIt.Next() {
		lIt := bkv.Value.Iter(container.Ascending)
		for v, ok3 := lIt.Next(); ok3; v, ok3 = lIt.Next() {
			edges = append(edges, po{bkv.Key, v})
		}
	}

	for _, e := range edges {
		st.Delete(node, e.p, e.o)
	}
}
