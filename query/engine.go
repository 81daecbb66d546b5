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

package query

import (
	"sort"

	"github.com/mutantdb/hexastore/solution"
	"github.com/mutantdb/hexastore/store"
)

// Execute evaluates a basic graph pattern against st: patterns are matched
// in ascending order of free-variable count, so the most constrained
// patterns run first and narrow the candidate set for the rest, and each
// subsequent pattern has its already-bound variables substituted with
// their bound terms before matching, so the index selection in
// matchPattern benefits from bindings produced earlier in the join exactly
// as it would from a literal written into the pattern by hand.
//
// The returned solutions are sorted by order if order is non-empty.
func Execute(st *store.Store, patterns []Pattern, order []solution.OrderCondition, stats *Stats) []solution.Solution {
	ordered := make([]Pattern, len(patterns))
	copy(ordered, patterns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].variableCount() < ordered[j].variableCount()
	})

	current := []solution.Solution{solution.Empty(order)}

	for _, pat := range ordered {
		var next []solution.Solution
		for _, sol := range current {
			bound := substitute(pat, sol)
			for _, m := range matchPattern(st, bound, order, stats) {
				merged, err := sol.Mutate(m)
				if err != nil {
					continue
				}
				next = append(next, merged)
			}
		}
		current = next
	}

	if len(order) > 0 {
		sort.SliceStable(current, func(i, j int) bool { return current[i].Less(current[j]) })
	}

	return current
}
