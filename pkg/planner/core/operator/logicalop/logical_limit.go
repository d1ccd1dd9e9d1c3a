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
	"fmt"
	"strings"

	"github.com/pingcap/planrule/pkg/expression"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/symbol"
)

// LogicalLimit represents offset and limit plan.
type LogicalLimit struct {
	BaseLogicalPlan

	Count uint64
}

// Init initializes LogicalLimit.
func (p LogicalLimit) Init(id base.PlanNodeID, child base.PlanNode) *LogicalLimit {
	p.BaseLogicalPlan = NewBaseLogicalPlan(id, TypeLimit, child)
	return &p
}

// OutputSymbols implements base.PlanNode interface.
func (p *LogicalLimit) OutputSymbols() []symbol.Symbol {
	return p.childOutputs()
}

// ReplaceChildren implements base.PlanNode interface.
func (p *LogicalLimit) ReplaceChildren(children []base.PlanNode) base.PlanNode {
	np := *p
	np.BaseLogicalPlan = p.withChildren(children)
	return &np
}

// ExplainInfo implements base.PlanNode interface.
func (p *LogicalLimit) ExplainInfo() string {
	return fmt.Sprintf("count:%d", p.Count)
}

// ByItems wraps a "by" item.
type ByItems struct {
	Expr expression.Expression
	Desc bool
}

// String implements fmt.Stringer interface.
func (by *ByItems) String() string {
	if by.Desc {
		return fmt.Sprintf("%s:desc", by.Expr)
	}
	return fmt.Sprintf("%s:asc", by.Expr)
}

func explainByItems(items []*ByItems) string {
	strs := make([]string, 0, len(items))
	for _, item := range items {
		strs = append(strs, item.String())
	}
	return strings.Join(strs, ", ")
}

// LogicalSort stands for the order by plan.
type LogicalSort struct {
	BaseLogicalPlan

	ByItems []*ByItems
}

// Init initializes LogicalSort.
func (p LogicalSort) Init(id base.PlanNodeID, child base.PlanNode) *LogicalSort {
	p.BaseLogicalPlan = NewBaseLogicalPlan(id, TypeSort, child)
	return &p
}

// OutputSymbols implements base.PlanNode interface.
func (p *LogicalSort) OutputSymbols() []symbol.Symbol {
	return p.childOutputs()
}

// ReplaceChildren implements base.PlanNode interface.
func (p *LogicalSort) ReplaceChildren(children []base.PlanNode) base.PlanNode {
	np := *p
	np.BaseLogicalPlan = p.withChildren(children)
	return &np
}

// ExplainInfo implements base.PlanNode interface.
func (p *LogicalSort) ExplainInfo() string {
	return explainByItems(p.ByItems)
}

// LogicalTopN represents a top-n plan.
type LogicalTopN struct {
	BaseLogicalPlan

	ByItems []*ByItems
	Count   uint64
}

// Init initializes LogicalTopN.
func (p LogicalTopN) Init(id base.PlanNodeID, child base.PlanNode) *LogicalTopN {
	p.BaseLogicalPlan = NewBaseLogicalPlan(id, TypeTopN, child)
	return &p
}

// OutputSymbols implements base.PlanNode interface.
func (p *LogicalTopN) OutputSymbols() []symbol.Symbol {
	return p.childOutputs()
}

// ReplaceChildren implements base.PlanNode interface.
func (p *LogicalTopN) ReplaceChildren(children []base.PlanNode) base.PlanNode {
	np := *p
	np.BaseLogicalPlan = p.withChildren(children)
	return &np
}

// ExplainInfo implements base.PlanNode interface.
func (p *LogicalTopN) ExplainInfo() string {
	return fmt.Sprintf("%s, count:%d", explainByItems(p.ByItems), p.Count)
}
