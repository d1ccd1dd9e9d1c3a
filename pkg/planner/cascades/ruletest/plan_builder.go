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

package ruletest

import (
	"github.com/pingcap/planrule/pkg/expression"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/types"
	"github.com/pingcap/planrule/pkg/util/intest"
)

// PlanBuilder builds the plan a rule is applied to. It records the type of
// every symbol it declares, and assigns node ids from the allocator of the
// harness unless ID names the next node.
type PlanBuilder struct {
	idAllocator *base.IDAllocator
	types       map[symbol.Symbol]*types.FieldType
	nextID      base.PlanNodeID
}

func newPlanBuilder(idAllocator *base.IDAllocator) *PlanBuilder {
	return &PlanBuilder{
		idAllocator: idAllocator,
		types:       make(map[symbol.Symbol]*types.FieldType),
	}
}

// ID names the next node built, so its statistics can be overridden.
func (b *PlanBuilder) ID(id string) *PlanBuilder {
	b.nextID = base.PlanNodeID(id)
	return b
}

func (b *PlanBuilder) newID() base.PlanNodeID {
	if id := b.nextID; id != "" {
		b.nextID = ""
		return id
	}
	return b.idAllocator.NextID()
}

// Symbol declares a symbol of type tp. Declaring a symbol twice requires the
// same type.
func (b *PlanBuilder) Symbol(name string, tp *types.FieldType) symbol.Symbol {
	sym := symbol.New(name)
	if old, ok := b.types[sym]; ok {
		intest.Assert(old.Equal(tp), "symbol %s redeclared as %s, was %s", name, tp, old)
	}
	b.types[sym] = tp
	return sym
}

// Column returns the expression reading sym.
func (b *PlanBuilder) Column(sym symbol.Symbol) *expression.Column {
	tp, ok := b.types[sym]
	intest.Assert(ok, "symbol %s is not declared", sym)
	return expression.NewColumn(sym, tp)
}

// Types returns the types of the declared symbols.
func (b *PlanBuilder) Types() *symbol.TypeProvider {
	return symbol.NewTypeProvider(b.types)
}

// TableScan builds a scan of table reading the columns named like symbols.
func (b *PlanBuilder) TableScan(table string, symbols ...symbol.Symbol) *logicalop.LogicalTableScan {
	cols := make([]logicalop.ScanColumn, 0, len(symbols))
	for _, sym := range symbols {
		cols = append(cols, logicalop.ScanColumn{Symbol: sym, Column: sym.Name()})
	}
	return logicalop.LogicalTableScan{TableName: table, Columns: cols}.Init(b.newID())
}

// Values builds values producing rows over outputs.
func (b *PlanBuilder) Values(outputs []symbol.Symbol, rows ...[]expression.Expression) *logicalop.LogicalValues {
	for _, row := range rows {
		intest.Assert(len(row) == len(outputs), "row has %d values, expected %d", len(row), len(outputs))
	}
	return logicalop.LogicalValues{Outputs: outputs, Rows: rows}.Init(b.newID())
}

// Filter builds a selection of predicate over child.
func (b *PlanBuilder) Filter(predicate expression.Expression, child base.PlanNode) *logicalop.LogicalSelection {
	return logicalop.LogicalSelection{Conditions: expression.SplitCNFItems(predicate)}.Init(b.newID(), child)
}

// Project builds a projection computing assignments over child.
func (b *PlanBuilder) Project(assignments []logicalop.Assignment, child base.PlanNode) *logicalop.LogicalProjection {
	return logicalop.LogicalProjection{Assignments: assignments}.Init(b.newID(), child)
}

// IdentityProject builds a projection forwarding symbols of child.
func (b *PlanBuilder) IdentityProject(child base.PlanNode, symbols ...symbol.Symbol) *logicalop.LogicalProjection {
	assignments := make([]logicalop.Assignment, 0, len(symbols))
	for _, sym := range symbols {
		assignments = append(assignments, logicalop.Assignment{Symbol: sym, Expr: b.Column(sym)})
	}
	return b.Project(assignments, child)
}

// Limit builds a limit of count rows over child.
func (b *PlanBuilder) Limit(count uint64, child base.PlanNode) *logicalop.LogicalLimit {
	return logicalop.LogicalLimit{Count: count}.Init(b.newID(), child)
}

// Sort builds a sort of child.
func (b *PlanBuilder) Sort(byItems []*logicalop.ByItems, child base.PlanNode) *logicalop.LogicalSort {
	return logicalop.LogicalSort{ByItems: byItems}.Init(b.newID(), child)
}

// TopN builds a topN of count rows over child.
func (b *PlanBuilder) TopN(count uint64, byItems []*logicalop.ByItems, child base.PlanNode) *logicalop.LogicalTopN {
	return logicalop.LogicalTopN{ByItems: byItems, Count: count}.Init(b.newID(), child)
}

// Join builds a join of left and right.
func (b *PlanBuilder) Join(joinType logicalop.JoinType, left, right base.PlanNode, eqConds ...logicalop.EquiJoinClause) *logicalop.LogicalJoin {
	return logicalop.LogicalJoin{JoinType: joinType, EqualConditions: eqConds}.Init(b.newID(), left, right)
}

// Aggregation builds an aggregation of child grouped by groupBy.
func (b *PlanBuilder) Aggregation(groupBy []symbol.Symbol, aggFuncs []*logicalop.AggFuncDesc, child base.PlanNode) *logicalop.LogicalAggregation {
	return logicalop.LogicalAggregation{GroupByItems: groupBy, AggFuncs: aggFuncs}.Init(b.newID(), child)
}
