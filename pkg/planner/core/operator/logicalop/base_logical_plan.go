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
	"slices"

	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/util/intest"
)

// BaseLogicalPlan is the common structure embedded by every logical operator.
type BaseLogicalPlan struct {
	id       base.PlanNodeID
	tp       string
	children []base.PlanNode
}

// NewBaseLogicalPlan is the basic constructor of BaseLogicalPlan.
func NewBaseLogicalPlan(id base.PlanNodeID, tp string, children ...base.PlanNode) BaseLogicalPlan {
	intest.Assert(id != "", "plan node id can not be empty")
	return BaseLogicalPlan{id: id, tp: tp, children: children}
}

// ID implements base.PlanNode interface.
func (p *BaseLogicalPlan) ID() base.PlanNodeID {
	return p.id
}

// TP implements base.PlanNode interface.
func (p *BaseLogicalPlan) TP() string {
	return p.tp
}

// Children implements base.PlanNode interface.
func (p *BaseLogicalPlan) Children() []base.PlanNode {
	return p.children
}

// Child returns the i-th child.
func (p *BaseLogicalPlan) Child(i int) base.PlanNode {
	return p.children[i]
}

func (p *BaseLogicalPlan) withChildren(children []base.PlanNode) BaseLogicalPlan {
	intest.Assert(len(children) == len(p.children), "children count mismatch for %s", p.tp)
	return BaseLogicalPlan{id: p.id, tp: p.tp, children: slices.Clone(children)}
}

// childOutputs returns the output symbols of the only child.
func (p *BaseLogicalPlan) childOutputs() []symbol.Symbol {
	intest.Assert(len(p.children) == 1, "%s expects exactly one child", p.tp)
	return p.children[0].OutputSymbols()
}
