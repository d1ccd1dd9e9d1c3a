// Copyright 2024 PingCAP, Inc.
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

package cardinality_test

import (
	"math"
	"testing"

	"github.com/pingcap/planrule/pkg/expression"
	"github.com/pingcap/planrule/pkg/metrics"
	"github.com/pingcap/planrule/pkg/planner/cardinality"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/sessionctx/variable"
	"github.com/pingcap/planrule/pkg/types"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type mockTables map[string]int64

func (m mockTables) TableRowCount(_ *sessionctx.Session, table string) (int64, error) {
	rows, ok := m[table]
	if !ok {
		return 0, plannererrors.ErrUnknownTable.GenWithStackByArgs("local", table)
	}
	return rows, nil
}

type countingCalculator struct {
	cardinality.StatsCalculator
	calls map[base.PlanNodeID]int
}

func (c *countingCalculator) CalculateStats(node base.PlanNode, sourceStats cardinality.StatsProvider, lookup cascadesbase.Lookup,
	sess *sessionctx.Session, types *symbol.TypeProvider) (*cardinality.PlanNodeStatsEstimate, error) {
	c.calls[node.ID()]++
	return c.StatsCalculator.CalculateStats(node, sourceStats, lookup, sess, types)
}

type mapGroupCache map[cascadesbase.GroupID]*cardinality.PlanNodeStatsEstimate

func (m mapGroupCache) Stats(group cascadesbase.GroupID) (*cardinality.PlanNodeStatsEstimate, bool) {
	stats, ok := m[group]
	return stats, ok
}

func (m mapGroupCache) StoreStats(group cascadesbase.GroupID, stats *cardinality.PlanNodeStatsEstimate) {
	m[group] = stats
}

func newSession(t *testing.T, props ...string) *sessionctx.Session {
	b := sessionctx.NewBuilder(nil).SetCatalog("local")
	for i := 0; i+1 < len(props); i += 2 {
		b.SetSystemProperty(props[i], props[i+1])
	}
	sess, err := b.Build()
	require.NoError(t, err)
	return sess
}

func scan(id base.PlanNodeID, table string, cols ...string) *logicalop.LogicalTableScan {
	scanCols := make([]logicalop.ScanColumn, 0, len(cols))
	for _, col := range cols {
		scanCols = append(scanCols, logicalop.ScanColumn{Symbol: symbol.New(col), Column: col})
	}
	return logicalop.LogicalTableScan{TableName: table, Columns: scanCols}.Init(id)
}

func newProvider(t *testing.T, tables mockTables) *cardinality.CachingStatsProvider {
	return cardinality.NewCachingStatsProvider(cardinality.NewStatsCalculator(tables), nil,
		cascadesbase.NoLookup(), newSession(t), symbol.EmptyTypeProvider())
}

func mustGetStats(t *testing.T, provider cardinality.StatsProvider, node base.PlanNode) *cardinality.PlanNodeStatsEstimate {
	stats, err := provider.GetStats(node)
	require.NoError(t, err)
	return stats
}

func TestDeriveStats(t *testing.T) {
	tables := mockTables{"orders": 100, "nation": 25}
	a, n := symbol.New("a"), symbol.New("n")
	orders := scan("0", "orders", "a", "b")
	nation := scan("1", "nation", "n")
	provider := newProvider(t, tables)

	stats := mustGetStats(t, provider, orders)
	require.Equal(t, 100.0, stats.OutputRowCount)
	require.Equal(t, 80.0, stats.GetSymbolStatistics(a).NDV)

	gt := expression.NewComparison(expression.GT, expression.NewColumn(a, types.BigInt), expression.NewOne())
	sel := logicalop.LogicalSelection{Conditions: []expression.Expression{gt}}.Init("2", orders)
	require.InDelta(t, 90.0, mustGetStats(t, provider, sel).OutputRowCount, 1e-9)

	falseSel := logicalop.LogicalSelection{Conditions: []expression.Expression{expression.NewBoolConstant(false)}}.Init("3", orders)
	require.Equal(t, 0.0, mustGetStats(t, provider, falseSel).OutputRowCount)
	trueSel := logicalop.LogicalSelection{Conditions: []expression.Expression{expression.NewBoolConstant(true)}}.Init("4", orders)
	require.Same(t, stats, mustGetStats(t, provider, trueSel))

	require.Equal(t, 10.0, mustGetStats(t, provider, logicalop.LogicalLimit{Count: 10}.Init("5", orders)).OutputRowCount)
	require.Same(t, stats, mustGetStats(t, provider, logicalop.LogicalLimit{Count: 1000}.Init("6", orders)))
	require.Equal(t, 3.0, mustGetStats(t, provider, logicalop.LogicalTopN{Count: 3}.Init("7", orders)).OutputRowCount)
	require.Same(t, stats, mustGetStats(t, provider, logicalop.LogicalSort{}.Init("8", orders)))

	join := logicalop.LogicalJoin{JoinType: logicalop.InnerJoin, EqualConditions: []logicalop.EquiJoinClause{{Left: a, Right: n}}}.Init("9", orders, nation)
	require.InDelta(t, 100*25/80.0, mustGetStats(t, provider, join).OutputRowCount, 1e-9)
	cross := logicalop.LogicalJoin{JoinType: logicalop.CrossJoin}.Init("10", orders, nation)
	require.Equal(t, 2500.0, mustGetStats(t, provider, cross).OutputRowCount)
	sparse := logicalop.LogicalJoin{JoinType: logicalop.RightOuterJoin, EqualConditions: []logicalop.EquiJoinClause{{Left: a, Right: n}}}.Init("11", orders, nation)
	require.InDelta(t, 100*25/80.0, mustGetStats(t, provider, sparse).OutputRowCount, 1e-9)

	agg := logicalop.LogicalAggregation{GroupByItems: []symbol.Symbol{a}}.Init("12", orders)
	require.Equal(t, 80.0, mustGetStats(t, provider, agg).OutputRowCount)
	global := logicalop.LogicalAggregation{}.Init("13", orders)
	require.Equal(t, 1.0, mustGetStats(t, provider, global).OutputRowCount)
}

func TestDeriveValuesStats(t *testing.T) {
	a := symbol.New("a")
	values := logicalop.LogicalValues{
		Outputs: []symbol.Symbol{a},
		Rows: [][]expression.Expression{
			{expression.NewOne()},
			{expression.NewOne()},
			{expression.NewZero()},
			{expression.NewNull()},
		},
	}.Init("0")
	stats := mustGetStats(t, newProvider(t, nil), values)
	require.Equal(t, 4.0, stats.OutputRowCount)
	require.Equal(t, 2.0, stats.GetSymbolStatistics(a).NDV)
	require.Equal(t, 0.25, stats.GetSymbolStatistics(a).NullsFraction)
}

func TestCachingStatsProvider(t *testing.T) {
	calculator := &countingCalculator{
		StatsCalculator: cardinality.NewStatsCalculator(mockTables{"orders": 100}),
		calls:           make(map[base.PlanNodeID]int),
	}
	orders := scan("0", "orders", "a")
	limit := logicalop.LogicalLimit{Count: 10}.Init("1", orders)
	provider := cardinality.NewCachingStatsProvider(calculator, nil, cascadesbase.NoLookup(), newSession(t), symbol.EmptyTypeProvider())

	first := mustGetStats(t, provider, limit)
	second := mustGetStats(t, provider, limit)
	require.Same(t, first, second)
	require.Equal(t, map[base.PlanNodeID]int{"0": 1, "1": 1}, calculator.calls)

	ref := cascadesbase.NewGroupReference("2", 0, orders.OutputSymbols())
	_, err := provider.GetStats(ref)
	require.True(t, plannererrors.ErrGroupReferenceNoMemo.Equal(err))
}

func TestCachingStatsProviderWithMemo(t *testing.T) {
	calculator := &countingCalculator{
		StatsCalculator: cardinality.NewStatsCalculator(mockTables{"orders": 100}),
		calls:           make(map[base.PlanNodeID]int),
	}
	orders := scan("0", "orders", "a")
	ref := cascadesbase.NewGroupReference("1", 3, orders.OutputSymbols())
	limit := logicalop.LogicalLimit{Count: 10}.Init("2", ref)
	lookup := cascadesbase.LookupFrom(func(r *cascadesbase.GroupReference) ([]base.PlanNode, error) {
		require.Equal(t, cascadesbase.GroupID(3), r.GroupID())
		return []base.PlanNode{orders}, nil
	})
	groups := mapGroupCache{}
	provider := cardinality.NewCachingStatsProvider(calculator, groups, lookup, newSession(t), symbol.EmptyTypeProvider())

	require.Equal(t, 10.0, mustGetStats(t, provider, limit).OutputRowCount)
	require.Equal(t, 100.0, groups[3].OutputRowCount)

	// A fresh provider sharing the memo reuses the group statistics.
	other := cardinality.NewCachingStatsProvider(calculator, groups, lookup, newSession(t), symbol.EmptyTypeProvider())
	require.Same(t, groups[3], mustGetStats(t, other, ref))
	require.Equal(t, 1, calculator.calls["0"])
}

func TestCalculatorFailures(t *testing.T) {
	orders := scan("0", "missing", "a")
	calculator := cardinality.NewStatsCalculator(mockTables{})
	failures := metrics.StatsCalculationFailureCounter.WithLabelValues(logicalop.TypeTableScan)
	before := testutil.ToFloat64(failures)

	ignoring := cardinality.NewCachingStatsProvider(calculator, nil, cascadesbase.NoLookup(), newSession(t), symbol.EmptyTypeProvider())
	stats := mustGetStats(t, ignoring, orders)
	require.True(t, stats.IsOutputRowCountUnknown())
	require.True(t, math.IsNaN(stats.OutputSizeInBytes(orders.OutputSymbols(), symbol.EmptyTypeProvider())))

	strict := cardinality.NewCachingStatsProvider(calculator, nil, cascadesbase.NoLookup(),
		newSession(t, variable.IgnoreStatsCalculatorFailures, "OFF"), symbol.EmptyTypeProvider())
	_, err := strict.GetStats(orders)
	require.True(t, plannererrors.ErrUnknownTable.Equal(err))
	require.Equal(t, before+2, testutil.ToFloat64(failures))

	_, err = calculator.CalculateStats(cascadesbase.NewGroupReference("1", 0, nil), strict, cascadesbase.NoLookup(), newSession(t), symbol.EmptyTypeProvider())
	require.True(t, plannererrors.ErrUnsupportedPlanNode.Equal(err))
}
