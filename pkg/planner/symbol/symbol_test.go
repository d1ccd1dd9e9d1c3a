// Copyright 2026 PingCAP, Inc.
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

package symbol

import (
	"testing"

	"github.com/pingcap/planrule/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestSetEqualIgnoresOrder(t *testing.T) {
	a, b, c := New("a"), New("b"), New("c")
	require.True(t, NewSet(a, b).Equal(NewSet(b, a)))
	require.True(t, NewSet(a, b, a).Equal(NewSet(b, a)))
	require.False(t, NewSet(a, b).Equal(NewSet(a)))
	require.False(t, NewSet(a, b).Equal(NewSet(a, c)))
	require.Equal(t, "[a, b, c]", NewSet(c, a, b).String())
}

func TestAllocatorUniqueNames(t *testing.T) {
	a := New("a")
	alloc := NewAllocator(map[Symbol]*types.FieldType{a: types.BigInt})
	s1 := alloc.NewSymbol("a", types.Double)
	s2 := alloc.NewSymbol("a", types.Double)
	s3 := alloc.NewSymbol("", types.Boolean)
	require.NotEqual(t, a, s1)
	require.NotEqual(t, s1, s2)
	require.Equal(t, "expr", s3.Name())

	tp := alloc.Types()
	require.Equal(t, 4, tp.Len())
	require.Equal(t, types.BigInt, tp.MustGet(a))
	require.Equal(t, types.Double, tp.MustGet(s2))

	// the snapshot does not see symbols created later.
	alloc.NewSymbol("late", types.BigInt)
	_, ok := tp.Get(New("late"))
	require.False(t, ok)
	require.Panics(t, func() { tp.MustGet(New("late")) })
}

func TestTypeProviderIsImmutable(t *testing.T) {
	a := New("a")
	m := map[Symbol]*types.FieldType{a: types.BigInt}
	tp := NewTypeProvider(m)
	m[a] = types.Double
	require.Equal(t, types.BigInt, tp.MustGet(a))

	all := tp.AllTypes()
	all[New("b")] = types.Double
	require.Equal(t, 1, tp.Len())
	require.Equal(t, 0, EmptyTypeProvider().Len())
}

func TestAllocatorTypeView(t *testing.T) {
	alloc := NewAllocator(nil)
	view := alloc.TypeView()
	require.Equal(t, 0, view.Len())
	late := alloc.NewSymbol("late", types.BigInt)
	require.Equal(t, types.BigInt, view.MustGet(late))
}
