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

package logicalop

import (
	"testing"

	"github.com/pingcap/planrule/pkg/expression"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/types"
	"github.com/stretchr/testify/require"
)

func newScan(id string, table string, cols ...string) *LogicalTableScan {
	scanCols := make([]ScanColumn, 0, len(cols))
	for _, col := range cols {
		scanCols = append(scanCols, ScanColumn{Symbol: symbol.New(col), Column: col})
	}
	return LogicalTableScan{TableName: table, Columns: scanCols}.Init(base.PlanNodeID(id))
}

func TestOutputSymbols(t *testing.T) {
	a, b, c := symbol.New("a"), symbol.New("b"), symbol.New("c")
	left := newScan("0", "t1", "a", "b")
	right := newScan("1", "t2", "c")
	require.Equal(t, []symbol.Symbol{a, b}, left.OutputSymbols())

	sel := LogicalSelection{Conditions: []expression.Expression{
		expression.NewComparison(expression.GT, expression.NewColumn(a, types.BigInt), expression.NewOne()),
	}}.Init("2", left)
	require.Equal(t, []symbol.Symbol{a, b}, sel.OutputSymbols())
	require.Equal(t, "gt(a, 1)", sel.ExplainInfo())

	join := LogicalJoin{JoinType: LeftOuterJoin, EqualConditions: []EquiJoinClause{{Left: a, Right: c}}}.Init("3", sel, right)
	require.Equal(t, []symbol.Symbol{a, b, c}, join.OutputSymbols())
	require.Equal(t, "left outer join, equal:[eq(a, c)]", join.ExplainInfo())

	agg := LogicalAggregation{
		GroupByItems: []symbol.Symbol{a},
		AggFuncs:     []*AggFuncDesc{{Output: symbol.New("cnt"), Name: "count", Args: []expression.Expression{expression.NewColumn(c, types.BigInt)}}},
	}.Init("4", join)
	require.Equal(t, []symbol.Symbol{a, symbol.New("cnt")}, agg.OutputSymbols())
	require.Equal(t, "group by:a, funcs:cnt:=count(c)", agg.ExplainInfo())
	require.False(t, agg.IsGlobal())
}

func TestReplaceChildrenKeepsID(t *testing.T) {
	scan := newScan("0", "t", "a", "b")
	other := newScan("1", "t", "a", "b")
	limit := LogicalLimit{Count: 10}.Init("2", scan)

	replaced := limit.ReplaceChildren([]base.PlanNode{other})
	require.NotSame(t, limit, replaced)
	require.Equal(t, limit.ID(), replaced.ID())
	require.Same(t, other, replaced.Children()[0])
	require.Same(t, scan, limit.Children()[0])
	require.Equal(t, uint64(10), replaced.(*LogicalLimit).Count)
	require.Same(t, scan, scan.ReplaceChildren(nil))
}

func TestProjectionIsIdentity(t *testing.T) {
	a, b := symbol.New("a"), symbol.New("b")
	scan := newScan("0", "t", "a", "b")
	identity := LogicalProjection{Assignments: []Assignment{
		{Symbol: a, Expr: expression.NewColumn(a, types.BigInt)},
		{Symbol: b, Expr: expression.NewColumn(b, types.BigInt)},
	}}.Init("1", scan)
	require.True(t, identity.IsIdentity())
	require.Equal(t, "a, b", identity.ExplainInfo())

	reordered := LogicalProjection{Assignments: []Assignment{
		{Symbol: b, Expr: expression.NewColumn(b, types.BigInt)},
		{Symbol: a, Expr: expression.NewColumn(a, types.BigInt)},
	}}.Init("2", scan)
	require.False(t, reordered.IsIdentity())

	pruned := LogicalProjection{Assignments: []Assignment{
		{Symbol: a, Expr: expression.NewColumn(a, types.BigInt)},
	}}.Init("3", scan)
	require.False(t, pruned.IsIdentity())

	computed := LogicalProjection{Assignments: []Assignment{
		{Symbol: a, Expr: expression.NewFunction(expression.Plus, types.BigInt, expression.NewColumn(a, types.BigInt), expression.NewOne())},
		{Symbol: b, Expr: expression.NewColumn(b, types.BigInt)},
	}}.Init("4", scan)
	require.False(t, computed.IsIdentity())
	require.Equal(t, "a:=plus(a, 1), b", computed.ExplainInfo())
}

func TestJoinTypeFlip(t *testing.T) {
	require.Equal(t, RightOuterJoin, LeftOuterJoin.Flip())
	require.Equal(t, LeftOuterJoin, RightOuterJoin.Flip())
	require.Equal(t, InnerJoin, InnerJoin.Flip())
	require.Equal(t, FullOuterJoin, FullOuterJoin.Flip())
	c := EquiJoinClause{Left: symbol.New("a"), Right: symbol.New("b")}
	require.Equal(t, "eq(b, a)", c.Flip().String())
}

func TestSortAndTopNExplain(t *testing.T) {
	a := symbol.New("a")
	scan := newScan("0", "t", "a")
	items := []*ByItems{{Expr: expression.NewColumn(a, types.BigInt), Desc: true}}
	require.Equal(t, "a:desc", LogicalSort{ByItems: items}.Init("1", scan).ExplainInfo())
	require.Equal(t, "a:desc, count:3", LogicalTopN{ByItems: items, Count: 3}.Init("2", scan).ExplainInfo())
	require.Equal(t, "rows:0", LogicalValues{Outputs: []symbol.Symbol{a}}.Init("3").ExplainInfo())
	require.Equal(t, "table:t, columns:[a]", scan.ExplainInfo())
}
