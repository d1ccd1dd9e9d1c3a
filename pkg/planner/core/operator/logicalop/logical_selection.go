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
	"strings"

	"github.com/pingcap/planrule/pkg/expression"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/symbol"
)

// LogicalSelection represents a where or having predicate.
type LogicalSelection struct {
	BaseLogicalPlan

	// Conditions are the items of a CNF predicate.
	Conditions []expression.Expression
}

// Init initializes LogicalSelection.
func (p LogicalSelection) Init(id base.PlanNodeID, child base.PlanNode) *LogicalSelection {
	p.BaseLogicalPlan = NewBaseLogicalPlan(id, TypeSel, child)
	return &p
}

// Predicate returns the conditions composed into one expression.
func (p *LogicalSelection) Predicate() expression.Expression {
	return expression.ComposeCNFCondition(p.Conditions...)
}

// OutputSymbols implements base.PlanNode interface.
func (p *LogicalSelection) OutputSymbols() []symbol.Symbol {
	return p.childOutputs()
}

// ReplaceChildren implements base.PlanNode interface.
func (p *LogicalSelection) ReplaceChildren(children []base.PlanNode) base.PlanNode {
	np := *p
	np.BaseLogicalPlan = p.withChildren(children)
	return &np
}

// ExplainInfo implements base.PlanNode interface.
func (p *LogicalSelection) ExplainInfo() string {
	conds := make([]string, 0, len(p.Conditions))
	for _, cond := range p.Conditions {
		conds = append(conds, cond.String())
	}
	return strings.Join(conds, ", ")
}
