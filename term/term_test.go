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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareCrossType(t *testing.T) {
	factory := NewBlankNodeFactory(0)
	ordered := []Term{
		Unbound,
		Triple{S: IRI("s"), P: IRI("p"), O: IRI("o")},
		factory.New(),
		IRI("http://example.org/a"),
		PlainString("a"),
		LangString{Value: "a", Language: "en"},
		Integer(1),
		mustDecimal(t, "1.5"),
		Double(2.5),
		TypedLiteral{Lexical: "x", Datatype: IRI("http://example.org/dt")},
		Variable("x"),
	}

	for i := range ordered {
		for j := range ordered {
			switch {
			case i < j:
				assert.Truef(t, Less(ordered[i], ordered[j]), "expected %v < %v", ordered[i], ordered[j])
			case i == j:
				assert.True(t, Equal(ordered[i], ordered[j]))
			default:
				assert.Falsef(t, Less(ordered[i], ordered[j]), "did not expect %v < %v", ordered[i], ordered[j])
			}
		}
	}
}

func TestCompareWithinKind(t *testing.T) {
	assert.True(t, Less(Integer(1), Integer(2)))
	assert.True(t, Less(PlainString("a"), PlainString("b")))
	assert.True(t, Less(IRI("http://a"), IRI("http://b")))

	d1 := mustDecimal(t, "1.10")
	d2 := mustDecimal(t, "1.1")
	assert.True(t, Equal(d1, d2), "1.10 and 1.1 are the same decimal value")

	d3 := mustDecimal(t, "1.2")
	assert.True(t, Less(d1, d3))
}

func TestBlankNodeFactoryIdentity(t *testing.T) {
	f1 := NewBlankNodeFactory(0)
	f2 := NewBlankNodeFactory(0)

	a := f1.New()
	b := f2.New()

	assert.False(t, Equal(a, b), "blank nodes from different factories are never equal")
	assert.Equal(t, 0, a.Counter())
	assert.Equal(t, 0, b.Counter())

	c := f1.New()
	assert.True(t, Less(a, c))
}

func TestTripleIsGround(t *testing.T) {
	ground := Triple{S: IRI("s"), P: IRI("p"), O: IRI("o")}
	assert.True(t, ground.IsGround())

	withVar := Triple{S: IRI("s"), P: IRI("p"), O: Variable("x")}
	assert.False(t, withVar.IsGround())
}

func mustDecimal(t *testing.T, lexical string) Decimal {
	t.Helper()
	d, err := NewDecimal(lexical)
	require.NoError(t, err)
	return d
}
