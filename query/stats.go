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

// Stats accumulates counters over the course of one query's evaluation. A
// nil *Stats is valid and simply discards increments, so callers that don't
// care about statistics aren't forced to allocate one.
type Stats struct {
	TriplesVisited int
}

func (s *Stats) incrementTriples() {
	if s == nil {
		return
	}
	s.TriplesVisited++
}
