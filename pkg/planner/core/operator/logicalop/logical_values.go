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

	"github.com/pingcap/planrule/pkg/expression"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/util/intest"
)

// LogicalValues produces a fixed list of rows.
type LogicalValues struct {
	BaseLogicalPlan

	Outputs []symbol.Symbol
	Rows    [][]expression.Expression
}

// Init initializes LogicalValues.
func (p LogicalValues) Init(id base.PlanNodeID) *LogicalValues {
	p.BaseLogicalPlan = NewBaseLogicalPlan(id, TypeValues)
	return &p
}

// OutputSymbols implements base.PlanNode interface.
func (p *LogicalValues) OutputSymbols() []symbol.Symbol {
	return p.Outputs
}

// ReplaceChildren implements base.PlanNode interface.
func (p *LogicalValues) ReplaceChildren(children []base.PlanNode) base.PlanNode {
	intest.Assert(len(children) == 0, "%s has no children", p.TP())
	return p
}

// ExplainInfo implements base.PlanNode interface.
func (p *LogicalValues) ExplainInfo() string {
	return fmt.Sprintf("rows:%d", len(p.Rows))
}

// IsEmpty checks whether the values produce no row.
func (p *LogicalValues) IsEmpty() bool {
	return len(p.Rows) == 0
}
