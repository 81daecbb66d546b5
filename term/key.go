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

import (
	"fmt"
	"strings"
)

// Compare imposes the total, cross-type order over Term values that every
// hexastore index and the query planner's bisections rely on. It first
// orders by typeOrder (unbound < reified triple < blank node < IRI <
// plain string < lang string < integer < decimal < double < typed literal
// < variable), then componentwise within a kind.
//
// Decimal must never be compared with Go's == — shopspring/decimal embeds a
// *big.Int, so == would compare pointer identity rather than numeric value.
// Compare always goes through decimal.Decimal.Cmp instead.
func Compare(a, b Term) int {
	ak, bk := a.kind(), b.kind()
	if ak != bk {
		if ak < bk {
			return -1
		}
		return 1
	}

	switch av := a.(type) {
	case unbound:
		return 0
	case Triple:
		bv := b.(Triple)
		if c := Compare(av.S, bv.S); c != 0 {
			return c
		}
		if c := Compare(av.P, bv.P); c != 0 {
			return c
		}
		return Compare(av.O, bv.O)
	case BlankNode:
		bv := b.(BlankNode)
		if av.factory != bv.factory {
			return comparePointers(av.factory, bv.factory)
		}
		return compareInt(av.counter, bv.counter)
	case IRI:
		return strings.Compare(string(av), string(b.(IRI)))
	case PlainString:
		return strings.Compare(string(av), string(b.(PlainString)))
	case LangString:
		bv := b.(LangString)
		if c := strings.Compare(av.Value, bv.Value); c != 0 {
			return c
		}
		return strings.Compare(av.Language, bv.Language)
	case Integer:
		return compareInt64(int64(av), int64(b.(Integer)))
	case Decimal:
		return av.Decimal.Cmp(b.(Decimal).Decimal)
	case Double:
		return compareFloat64(float64(av), float64(b.(Double)))
	case TypedLiteral:
		bv := b.(TypedLiteral)
		if c := strings.Compare(av.Lexical, bv.Lexical); c != 0 {
			return c
		}
		return strings.Compare(string(av.Datatype), string(bv.Datatype))
	case Variable:
		return strings.Compare(string(av), string(b.(Variable)))
	default:
		panic(ErrOrderingFailure.New(a))
	}
}

// Equal reports whether a and b are the same term. It is defined as
// Compare(a, b) == 0, never Go's ==, for the same Decimal-pointer reason
// documented on Compare.
func Equal(a, b Term) bool {
	return Compare(a, b) == 0
}

// Less reports whether a sorts strictly before b.
func Less(a, b Term) bool {
	return Compare(a, b) < 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparePointers(a, b *BlankNodeFactory) int {
	// Factory identity has no intrinsic order; the %p-formatted address only
	// needs to be a stable total order so bisection-based containers work,
	// not a meaningful one.
	return strings.Compare(fmt.Sprintf("%p", a), fmt.Sprintf("%p", b))
}
