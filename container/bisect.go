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

// bisectLeft returns the smallest index i in a[lo:hi] such that
// cmp(a[i], x) >= 0, i.e. the insertion point that places x before any
// equal element already present.
func bisectLeft[T any](a []T, x T, lo, hi int, cmp Compare[T]) int {
	for lo < hi {
		mid := (lo + hi) / 2
		if cmp(a[mid], x) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// bisectRight returns the smallest index i in a[lo:hi] such that
// cmp(x, a[i]) < 0, i.e. the insertion point that places x after any equal
// element already present.
func bisectRight[T any](a []T, x T, lo, hi int, cmp Compare[T]) int {
	for lo < hi {
		mid := (lo + hi) / 2
		if cmp(x, a[mid]) < 0 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
