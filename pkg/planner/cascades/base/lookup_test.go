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

package base

import (
	"testing"

	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
	"github.com/stretchr/testify/require"
)

func TestLookupFrom(t *testing.T) {
	a := symbol.New("a")
	values := logicalop.LogicalValues{Outputs: []symbol.Symbol{a}}.Init("0")
	other := logicalop.LogicalValues{Outputs: []symbol.Symbol{a}}.Init("1")
	ref := NewGroupReference("2", 7, []symbol.Symbol{a})
	require.Equal(t, []symbol.Symbol{a}, ref.OutputSymbols())
	require.Equal(t, "group:7", ref.ExplainInfo())
	require.Equal(t, "G7", ref.GroupID().String())

	calls := 0
	lookup := LookupFrom(func(r *GroupReference) ([]base.PlanNode, error) {
		calls++
		require.Equal(t, GroupID(7), r.GroupID())
		return []base.PlanNode{values}, nil
	})
	resolved, err := lookup.Resolve(ref)
	require.NoError(t, err)
	require.Same(t, values, resolved)
	require.Same(t, values, MustResolve(lookup, ref))

	// Non reference nodes resolve to themselves without calling the resolver.
	resolved, err = lookup.Resolve(other)
	require.NoError(t, err)
	require.Same(t, other, resolved)
	require.Equal(t, 2, calls)

	ambiguous := LookupFrom(func(*GroupReference) ([]base.PlanNode, error) {
		return []base.PlanNode{values, other}, nil
	})
	candidates, err := ambiguous.ResolveGroup(ref)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	_, err = ambiguous.Resolve(ref)
	require.True(t, plannererrors.ErrAmbiguousResolution.Equal(err))
}

func TestNoLookup(t *testing.T) {
	ref := NewGroupReference("0", 0, nil)
	_, err := NoLookup().Resolve(ref)
	require.True(t, plannererrors.ErrGroupReferenceNoMemo.Equal(err))
	require.Panics(t, func() { MustResolve(NoLookup(), ref) })

	values := logicalop.LogicalValues{}.Init("1")
	resolved, err := NoLookup().Resolve(values)
	require.NoError(t, err)
	require.Same(t, values, resolved)
}
