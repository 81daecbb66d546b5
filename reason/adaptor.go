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
	"github.com/mutantdb/hexastore/query"
	"github.com/mutantdb/hexastore/store"
	"github.com/mutantdb/hexastore/term"
)

type pendingInsert struct {
	triple       term.Triple
	inferredFrom []term.Triple
}

// Adaptor is the handle a Callback uses to read the store mid-saturation
// and to propose new triples. It never writes a triple directly — Insert
// only buffers the proposal, since whether it is actually accepted depends
// on the reasoner's circularity check, which runs once per round after
// every callback for that round has had a chance to fire.
type Adaptor struct {
	overlay   *store.Overlay
	reasoner  *Reasoner
	nextDelta []pendingInsert
}

func newAdaptor(overlay *store.Overlay, reasoner *Reasoner) *Adaptor {
	return &Adaptor{overlay: overlay, reasoner: reasoner}
}

// Contains reports whether (subj, pred, obj) is already visible, whether
// as an original fact or an inference accepted in an earlier round.
func (a *Adaptor) Contains(subj, pred, obj term.Term) bool {
	return a.overlay.Contains(subj, pred, obj)
}

// Find returns every visible triple for which keep returns true — the
// escape hatch for rules whose premise isn't expressible as a single bound
// pattern, such as "every other triple sharing this object and predicate".
func (a *Adaptor) Find(keep func(term.Triple) bool) []term.Triple {
	return a.overlay.Find(keep)
}

// Insert proposes (subj, pred, obj) as an inference justified by premises.
// The reasoner accepts it — and fires rules over it in a later round —
// unless doing so would only record a circular justification or one that
// is already recorded.
func (a *Adaptor) Insert(subj, pred, obj term.Term, premises ...term.Triple) {
	a.nextDelta = append(a.nextDelta, pendingInsert{
		triple:       term.Triple{S: subj, P: pred, O: obj},
		inferredFrom: premises,
	})
}

// RegisterRule lets a rule callback register a narrower rule of its own —
// the rdfs:subClassOf rule in the default rule pack, for example, registers
// one type-propagation rule per subClassOf edge it matches. The new
// rule's existence is tied to premise, the triple that caused it to be
// registered, so retracting premise retracts the rule too.
func (a *Adaptor) RegisterRule(pattern query.Pattern, callback Callback, premise term.Triple) {
	_ = a.reasoner.RegisterRule(pattern, callback, premise)
}
