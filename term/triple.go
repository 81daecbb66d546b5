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

package term

import "fmt"

// Triple is an ordered (subject, predicate, object). It also implements
// Term, so a Triple may be reified and used as a subject or object
// elsewhere in the store — this is how provenance bags reference the
// premises and conclusions they justify.
type Triple struct {
	S, P, O Term
}

func (Triple) kind() typeOrder { return orderReifiedTriple }
func (t Triple) String() string {
	return fmt.Sprintf("(%s %s %s)", t.S, t.P, t.O)
}

// IsGround reports whether none of the triple's positions is a Variable.
func (t Triple) IsGround() bool {
	_, s := t.S.(Variable)
	_, p := t.P.(Variable)
	_, o := t.O.(Variable)
	return !s && !p && !o
}
