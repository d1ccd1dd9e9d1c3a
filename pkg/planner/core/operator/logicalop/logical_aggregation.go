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

// AggFuncDesc describes an aggregation function and the symbol it produces.
type AggFuncDesc struct {
	Output symbol.Symbol
	Name   string
	Args   []expression.Expression
}

// String implements fmt.Stringer interface.
func (a *AggFuncDesc) String() string {
	args := make([]string, 0, len(a.Args))
	for _, arg := range a.Args {
		args = append(args, arg.String())
	}
	return fmt.Sprintf("%s:=%s(%s)", a.Output, a.Name, strings.Join(args, ", "))
}

// LogicalAggregation represents an aggregate plan.
type LogicalAggregation struct {
	BaseLogicalPlan

	GroupByItems []symbol.Symbol
	AggFuncs     []*AggFuncDesc
}

// Init initializes LogicalAggregation.
func (p LogicalAggregation) Init(id base.PlanNodeID, child base.PlanNode) *LogicalAggregation {
	p.BaseLogicalPlan = NewBaseLogicalPlan(id, TypeAggregation, child)
	return &p
}

// OutputSymbols implements base.PlanNode interface. The group by symbols come
// first, followed by the aggregation outputs.
func (p *LogicalAggregation) OutputSymbols() []symbol.Symbol {
	outputs := make([]symbol.Symbol, 0, len(p.GroupByItems)+len(p.AggFuncs))
	outputs = append(outputs, p.GroupByItems...)
	for _, agg := range p.AggFuncs {
		outputs = append(outputs, agg.Output)
	}
	return outputs
}

// IsGlobal checks whether the aggregation has no group by item.
func (p *LogicalAggregation) IsGlobal() bool {
	return len(p.GroupByItems) == 0
}

// ReplaceChildren implements base.PlanNode interface.
func (p *LogicalAggregation) ReplaceChildren(children []base.PlanNode) base.PlanNode {
	np := *p
	np.BaseLogicalPlan = p.withChildren(children)
	return &np
}

// ExplainInfo implements base.PlanNode interface.
func (p *LogicalAggregation) ExplainInfo() string {
	var buf strings.Builder
	if len(p.GroupByItems) > 0 {
		fmt.Fprintf(&buf, "group by:%s, ", strings.Join(symbol.Names(p.GroupByItems), ", "))
	}
	funcs := make([]string, 0, len(p.AggFuncs))
	for _, agg := range p.AggFuncs {
		funcs = append(funcs, agg.String())
	}
	fmt.Fprintf(&buf, "funcs:%s", strings.Join(funcs, ", "))
	return buf.String()
}
