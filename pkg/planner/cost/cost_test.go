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

package cost_test

import (
	"math"
	"testing"

	"github.com/pingcap/planrule/pkg/planner/cardinality"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
	"github.com/pingcap/planrule/pkg/planner/cost"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/types"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
	"github.com/stretchr/testify/require"
)

type fixedStats map[base.PlanNodeID]*cardinality.PlanNodeStatsEstimate

func (f fixedStats) GetStats(node base.PlanNode) (*cardinality.PlanNodeStatsEstimate, error) {
	if est, ok := f[node.ID()]; ok {
		return est, nil
	}
	return cardinality.Unknown(), nil
}

type mapGroupCache map[cascadesbase.GroupID]cost.PlanCostEstimate

func (m mapGroupCache) Cost(group cascadesbase.GroupID) (cost.PlanCostEstimate, bool) {
	c, ok := m[group]
	return c, ok
}

func (m mapGroupCache) StoreCost(group cascadesbase.GroupID, c cost.PlanCostEstimate) {
	m[group] = c
}

func newSession(t *testing.T) *sessionctx.Session {
	sess, err := sessionctx.NewBuilder(nil).Build()
	require.NoError(t, err)
	return sess
}

func TestPlanCostEstimate(t *testing.T) {
	c := cost.PlanCostEstimate{CPU: 1, Memory: 2, Network: 3}
	require.Equal(t, cost.PlanCostEstimate{CPU: 2, Memory: 4, Network: 6}, c.Add(c))
	require.False(t, c.IsUnknown())
	require.True(t, cost.Unknown().IsUnknown())
	require.True(t, c.Add(cost.Unknown()).IsUnknown())
	require.Equal(t, "cpu: 1.00, memory: 2.00, network: 3.00", c.String())
	require.Equal(t, "cpu: ?, memory: ?, network: ?", cost.Unknown().String())
	require.Equal(t, cost.PlanCostEstimate{}, cost.Zero())
}

func TestCachingCostProvider(t *testing.T) {
	a := symbol.New("a")
	tp := symbol.NewTypeProvider(map[symbol.Symbol]*types.FieldType{a: types.BigInt})
	scan := logicalop.LogicalTableScan{TableName: "t", Columns: []logicalop.ScanColumn{{Symbol: a, Column: "a"}}}.Init("0")
	ref := cascadesbase.NewGroupReference("1", 5, scan.OutputSymbols())
	sort := logicalop.LogicalSort{}.Init("2", ref)
	stats := fixedStats{
		"0": cardinality.NewPlanNodeStatsEstimate(10),
		"2": cardinality.NewPlanNodeStatsEstimate(10),
	}
	lookup := cascadesbase.LookupFrom(func(*cascadesbase.GroupReference) ([]base.PlanNode, error) {
		return []base.PlanNode{scan}, nil
	})
	groups := mapGroupCache{}
	provider := cost.NewCachingCostProvider(cost.NewCostCalculator(), cardinality.StatsProvider(lookupStats{stats, lookup}), groups, lookup, newSession(t), tp)

	c, err := provider.GetCost(sort)
	require.NoError(t, err)
	// 80 bytes scanned, then 80 bytes sorted in memory.
	require.Equal(t, cost.PlanCostEstimate{CPU: 160, Memory: 80}, c)
	require.Equal(t, cost.PlanCostEstimate{CPU: 80}, groups[5])

	noMemo := cost.NewCachingCostProvider(cost.NewCostCalculator(), stats, nil, lookup, newSession(t), tp)
	_, err = noMemo.GetCost(sort)
	require.True(t, plannererrors.ErrGroupReferenceNoMemo.Equal(err))

	unknown, err := noMemo.GetCost(logicalop.LogicalLimit{Count: 1}.Init("3", logicalop.LogicalTableScan{TableName: "t"}.Init("4")))
	require.NoError(t, err)
	require.True(t, math.IsNaN(unknown.CPU))
}

// lookupStats resolves group references before reading fixed statistics.
type lookupStats struct {
	stats  fixedStats
	lookup cascadesbase.Lookup
}

func (l lookupStats) GetStats(node base.PlanNode) (*cardinality.PlanNodeStatsEstimate, error) {
	node, err := l.lookup.Resolve(node)
	if err != nil {
		return nil, err
	}
	return l.stats.GetStats(node)
}

func TestCreateStatsAndCosts(t *testing.T) {
	a := symbol.New("a")
	tp := symbol.NewTypeProvider(map[symbol.Symbol]*types.FieldType{a: types.BigInt})
	scan := logicalop.LogicalTableScan{TableName: "t", Columns: []logicalop.ScanColumn{{Symbol: a, Column: "a"}}}.Init("0")
	ref := cascadesbase.NewGroupReference("1", 5, scan.OutputSymbols())
	limit := logicalop.LogicalLimit{Count: 1}.Init("2", ref)
	stats := fixedStats{
		"0": cardinality.NewPlanNodeStatsEstimate(10),
		"2": cardinality.NewPlanNodeStatsEstimate(1),
	}
	lookup := cascadesbase.LookupFrom(func(*cascadesbase.GroupReference) ([]base.PlanNode, error) {
		return []base.PlanNode{scan}, nil
	})
	withLookup := lookupStats{stats, lookup}
	provider := cost.NewCachingCostProvider(cost.NewCostCalculator(), withLookup, mapGroupCache{}, lookup, newSession(t), tp)

	sc, err := cost.CreateStatsAndCosts(limit, withLookup, provider, lookup)
	require.NoError(t, err)
	require.False(t, sc.IsEmpty())
	est, ok := sc.Stats("0")
	require.True(t, ok)
	require.Equal(t, 10.0, est.OutputRowCount)
	_, ok = sc.Stats("1")
	require.False(t, ok)
	c, ok := sc.Cost("2")
	require.True(t, ok)
	require.Equal(t, 160.0, c.CPU)

	require.True(t, cost.EmptyStatsAndCosts().IsEmpty())
	_, err = cost.CreateStatsAndCosts(limit, withLookup, provider, cascadesbase.NoLookup())
	require.True(t, plannererrors.ErrGroupReferenceNoMemo.Equal(err))
	require.False(t, sc.Clone().IsEmpty())
}
