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

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Integer is a native machine-width RDF integer term.
type Integer int64

func (Integer) kind() typeOrder  { return orderInteger }
func (i Integer) String() string { return fmt.Sprintf("%d", int64(i)) }

// Decimal is an arbitrary-precision RDF decimal term, backed by
// shopspring/decimal so lexical round-tripping doesn't lose precision the
// way a float64 would.
type Decimal struct {
	decimal.Decimal
}

// NewDecimal parses a decimal literal's lexical form.
func NewDecimal(lexical string) (Decimal, error) {
	d, err := decimal.NewFromString(lexical)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{d}, nil
}

func (Decimal) kind() typeOrder  { return orderDecimal }
func (d Decimal) String() string { return d.Decimal.String() }

// Double is an IEEE-754 double-precision RDF term.
type Double float64

func (Double) kind() typeOrder  { return orderDouble }
func (d Double) String() string { return fmt.Sprintf("%g", float64(d)) }

// ToFloat64 coerces a numeric term to a float64 for use in aggregate folds
// such as sum and average. Integer and Double convert directly; Decimal
// converts via its own arbitrary-precision Float64; anything else falls
// back to parsing the term's lexical form, so a TypedLiteral or
// PlainString holding a numeric lexical value still folds correctly.
func ToFloat64(t Term) (float64, bool) {
	switch v := t.(type) {
	case Integer:
		f, err := cast.ToFloat64E(int64(v))
		return f, err == nil
	case Decimal:
		f, _ := v.Decimal.Float64()
		return f, true
	case Double:
		return float64(v), true
	case TypedLiteral:
		f, err := cast.ToFloat64E(v.Lexical)
		return f, err == nil
	default:
		f, err := cast.ToFloat64E(t.String())
		return f, err == nil
	}
}
