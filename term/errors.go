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

import errors "gopkg.in/src-d/go-errors.v1"

// Error taxonomy, spec section 7. These are the two Kinds that originate in
// the term package itself; solution (ErrConflictingBinding) and reason (its
// own ErrInvariantViolation) define the rest against the same Kind type so
// callers can test them uniformly.
var (
	// ErrOrderingFailure signals that Compare was asked to order a Term
	// kind absent from the type-order table — a new Term kind was added
	// without extending it. Fatal; there is no local recovery.
	ErrOrderingFailure = errors.NewKind("ordering failure: no type-order entry for %T")

	// ErrInvariantViolation signals a contract breach inside the core,
	// such as blank-node arithmetic overflow. Fatal.
	ErrInvariantViolation = errors.NewKind("invariant violation: %s")
)
