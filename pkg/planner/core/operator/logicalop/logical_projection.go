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
	"slices"
	"strings"

	"github.com/pingcap/planrule/pkg/expression"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/symbol"
)

// Assignment computes an output symbol of a projection.
type Assignment struct {
	Symbol symbol.Symbol
	Expr   expression.Expression
}

// IsIdentity checks whether the assignment forwards a symbol unchanged.
func (a Assignment) IsIdentity() bool {
	col, ok := a.Expr.(*expression.Column)
	return ok && col.Sym == a.Symbol
}

// LogicalProjection represents a select fields plan.
type LogicalProjection struct {
	BaseLogicalPlan

	// Assignments are ordered, they decide the output order.
	Assignments []Assignment
}

// Init initializes LogicalProjection.
func (p LogicalProjection) Init(id base.PlanNodeID, child base.PlanNode) *LogicalProjection {
	p.BaseLogicalPlan = NewBaseLogicalPlan(id, TypeProj, child)
	return &p
}

// OutputSymbols implements base.PlanNode interface.
func (p *LogicalProjection) OutputSymbols() []symbol.Symbol {
	outputs := make([]symbol.Symbol, 0, len(p.Assignments))
	for _, a := range p.Assignments {
		outputs = append(outputs, a.Symbol)
	}
	return outputs
}

// IsIdentity checks whether the projection forwards the output of its child
// unchanged and in the same order.
func (p *LogicalProjection) IsIdentity() bool {
	for _, a := range p.Assignments {
		if !a.IsIdentity() {
			return false
		}
	}
	return slices.Equal(p.OutputSymbols(), p.childOutputs())
}

// ReplaceChildren implements base.PlanNode interface.
func (p *LogicalProjection) ReplaceChildren(children []base.PlanNode) base.PlanNode {
	np := *p
	np.BaseLogicalPlan = p.withChildren(children)
	return &np
}

// ExplainInfo implements base.PlanNode interface.
func (p *LogicalProjection) ExplainInfo() string {
	exprs := make([]string, 0, len(p.Assignments))
	for _, a := range p.Assignments {
		if a.IsIdentity() {
			exprs = append(exprs, a.Symbol.Name())
			continue
		}
		exprs = append(exprs, fmt.Sprintf("%s:=%s", a.Symbol, a.Expr))
	}
	return strings.Join(exprs, ", ")
}
