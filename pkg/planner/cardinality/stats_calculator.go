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

package cardinality

import (
	"math"

	"github.com/pingcap/planrule/pkg/expression"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
)

// SelectionFactor is the factor which is used to estimate the row count of selection.
const SelectionFactor = 0.9

// StatsProvider returns the statistics of any node of a plan.
type StatsProvider interface {
	GetStats(node base.PlanNode) (*PlanNodeStatsEstimate, error)
}

// StatsCalculator computes the statistics of a single node, reading the
// statistics of its children from sourceStats.
type StatsCalculator interface {
	CalculateStats(node base.PlanNode, sourceStats StatsProvider, lookup cascadesbase.Lookup,
		sess *sessionctx.Session, types *symbol.TypeProvider) (*PlanNodeStatsEstimate, error)
}

// TableStatsSource returns the row count of tables.
type TableStatsSource interface {
	TableRowCount(sess *sessionctx.Session, table string) (int64, error)
}

type statsCalculator struct {
	tables TableStatsSource
}

// NewStatsCalculator creates the default StatsCalculator. Table scans read
// their row count from tables.
func NewStatsCalculator(tables TableStatsSource) StatsCalculator {
	return &statsCalculator{tables: tables}
}

// CalculateStats implements StatsCalculator interface.
func (c *statsCalculator) CalculateStats(node base.PlanNode, sourceStats StatsProvider, _ cascadesbase.Lookup,
	sess *sessionctx.Session, _ *symbol.TypeProvider) (*PlanNodeStatsEstimate, error) {
	switch x := node.(type) {
	case *logicalop.LogicalTableScan:
		return c.deriveTableScanStats(x, sess)
	case *logicalop.LogicalValues:
		return deriveValuesStats(x), nil
	case *logicalop.LogicalSelection:
		child, err := sourceStats.GetStats(x.Child(0))
		if err != nil {
			return nil, err
		}
		return deriveSelectionStats(x, child), nil
	case *logicalop.LogicalProjection:
		child, err := sourceStats.GetStats(x.Child(0))
		if err != nil {
			return nil, err
		}
		return deriveProjectionStats(x, child), nil
	case *logicalop.LogicalLimit:
		child, err := sourceStats.GetStats(x.Child(0))
		if err != nil {
			return nil, err
		}
		return deriveLimitStats(x.OutputSymbols(), child, x.Count), nil
	case *logicalop.LogicalTopN:
		child, err := sourceStats.GetStats(x.Child(0))
		if err != nil {
			return nil, err
		}
		return deriveLimitStats(x.OutputSymbols(), child, x.Count), nil
	case *logicalop.LogicalSort:
		return sourceStats.GetStats(x.Child(0))
	case *logicalop.LogicalJoin:
		left, err := sourceStats.GetStats(x.Child(0))
		if err != nil {
			return nil, err
		}
		right, err := sourceStats.GetStats(x.Child(1))
		if err != nil {
			return nil, err
		}
		return deriveJoinStats(x, left, right), nil
	case *logicalop.LogicalAggregation:
		child, err := sourceStats.GetStats(x.Child(0))
		if err != nil {
			return nil, err
		}
		return deriveAggregationStats(x, child), nil
	}
	return nil, plannererrors.ErrUnsupportedPlanNode.GenWithStackByArgs(node)
}

func (c *statsCalculator) deriveTableScanStats(scan *logicalop.LogicalTableScan, sess *sessionctx.Session) (*PlanNodeStatsEstimate, error) {
	if c.tables == nil {
		return Unknown(), nil
	}
	rowCount, err := c.tables.TableRowCount(sess, scan.TableName)
	if err != nil {
		return nil, err
	}
	rows := float64(rowCount)
	stats := NewPlanNodeStatsEstimate(rows)
	for _, sym := range scan.OutputSymbols() {
		stats.AddSymbolStatistics(sym, SymbolStatsEstimate{
			NDV:            EstimateColumnNDV(rows),
			NullsFraction:  0,
			AverageRowSize: math.NaN(),
		})
	}
	return stats, nil
}

func deriveValuesStats(values *logicalop.LogicalValues) *PlanNodeStatsEstimate {
	rows := float64(len(values.Rows))
	stats := NewPlanNodeStatsEstimate(rows)
	for i, sym := range values.Outputs {
		distinct := make([]expression.Expression, 0, len(values.Rows))
		nulls := 0
		for _, row := range values.Rows {
			expr := row[i]
			if c, ok := expr.(*expression.Constant); ok && c.Value == nil {
				nulls++
				continue
			}
			if !containsExpr(distinct, expr) {
				distinct = append(distinct, expr)
			}
		}
		nullsFraction := 0.0
		if rows > 0 {
			nullsFraction = float64(nulls) / rows
		}
		stats.AddSymbolStatistics(sym, SymbolStatsEstimate{
			NDV:            float64(len(distinct)),
			NullsFraction:  nullsFraction,
			AverageRowSize: math.NaN(),
		})
	}
	return stats
}

func containsExpr(exprs []expression.Expression, target expression.Expression) bool {
	for _, expr := range exprs {
		if expr.Equal(target) {
			return true
		}
	}
	return false
}

// propagate copies the statistics of symbols from child, scaling the NDVs
// down to rows.
func propagate(symbols []symbol.Symbol, child *PlanNodeStatsEstimate, rows float64) *PlanNodeStatsEstimate {
	stats := NewPlanNodeStatsEstimate(rows)
	for _, sym := range symbols {
		symStats, ok := child.SymbolStatistics[sym]
		if !ok {
			continue
		}
		symStats.NDV = ScaleNDV(symStats.NDV, child.OutputRowCount, rows)
		stats.AddSymbolStatistics(sym, symStats)
	}
	return stats
}

func deriveSelectionStats(sel *logicalop.LogicalSelection, child *PlanNodeStatsEstimate) *PlanNodeStatsEstimate {
	alwaysTrue := true
	for _, cond := range sel.Conditions {
		if expression.IsConstFalse(cond) {
			return propagate(sel.OutputSymbols(), child, 0)
		}
		alwaysTrue = alwaysTrue && expression.IsConstTrue(cond)
	}
	if alwaysTrue {
		return child
	}
	return propagate(sel.OutputSymbols(), child, child.OutputRowCount*SelectionFactor)
}

func deriveProjectionStats(proj *logicalop.LogicalProjection, child *PlanNodeStatsEstimate) *PlanNodeStatsEstimate {
	stats := NewPlanNodeStatsEstimate(child.OutputRowCount)
	for _, a := range proj.Assignments {
		switch expr := a.Expr.(type) {
		case *expression.Column:
			if symStats, ok := child.SymbolStatistics[expr.Sym]; ok {
				stats.AddSymbolStatistics(a.Symbol, symStats)
			}
		case *expression.Constant:
			nullsFraction := 0.0
			if expr.Value == nil {
				nullsFraction = 1
			}
			stats.AddSymbolStatistics(a.Symbol, SymbolStatsEstimate{NDV: 1, NullsFraction: nullsFraction, AverageRowSize: math.NaN()})
		}
	}
	return stats
}

func deriveLimitStats(outputs []symbol.Symbol, child *PlanNodeStatsEstimate, count uint64) *PlanNodeStatsEstimate {
	limit := float64(count)
	if !child.IsOutputRowCountUnknown() && child.OutputRowCount <= limit {
		return child
	}
	return propagate(outputs, child, limit)
}

func deriveJoinStats(join *logicalop.LogicalJoin, left, right *PlanNodeStatsEstimate) *PlanNodeStatsEstimate {
	if left.IsOutputRowCountUnknown() || right.IsOutputRowCountUnknown() {
		return Unknown()
	}
	rows := left.OutputRowCount * right.OutputRowCount
	for _, clause := range join.EqualConditions {
		leftNDV := left.GetSymbolStatistics(clause.Left).NDV
		rightNDV := right.GetSymbolStatistics(clause.Right).NDV
		if math.IsNaN(leftNDV) || math.IsNaN(rightNDV) {
			continue
		}
		// The most selective clause decides the row count.
		rows = math.Min(rows, left.OutputRowCount*right.OutputRowCount/math.Max(math.Max(leftNDV, rightNDV), 1))
	}
	switch join.JoinType {
	case logicalop.LeftOuterJoin:
		rows = math.Max(rows, left.OutputRowCount)
	case logicalop.RightOuterJoin:
		rows = math.Max(rows, right.OutputRowCount)
	case logicalop.FullOuterJoin:
		rows = math.Max(rows, left.OutputRowCount+right.OutputRowCount)
	}
	stats := NewPlanNodeStatsEstimate(rows)
	for _, side := range []*PlanNodeStatsEstimate{left, right} {
		for sym, symStats := range side.SymbolStatistics {
			symStats.NDV = math.Min(symStats.NDV, rows)
			stats.AddSymbolStatistics(sym, symStats)
		}
	}
	return stats
}

func deriveAggregationStats(agg *logicalop.LogicalAggregation, child *PlanNodeStatsEstimate) *PlanNodeStatsEstimate {
	if agg.IsGlobal() {
		return NewPlanNodeStatsEstimate(1)
	}
	ndvs := make([]float64, 0, len(agg.GroupByItems))
	for _, sym := range agg.GroupByItems {
		ndvs = append(ndvs, child.GetSymbolStatistics(sym).NDV)
	}
	rows := EstimateSymbolsNDV(child, ndvs...)
	if math.IsNaN(rows) {
		rows = child.OutputRowCount
	}
	stats := NewPlanNodeStatsEstimate(rows)
	for _, sym := range agg.GroupByItems {
		if symStats, ok := child.SymbolStatistics[sym]; ok {
			stats.AddSymbolStatistics(sym, symStats)
		}
	}
	return stats
}
