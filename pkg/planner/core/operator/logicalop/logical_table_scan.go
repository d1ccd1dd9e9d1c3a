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

	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/util/intest"
)

// LogicalTableScan reads the columns of a table.
type LogicalTableScan struct {
	BaseLogicalPlan

	TableName string
	// Columns maps every output symbol to the table column it reads.
	Columns []ScanColumn
}

// ScanColumn binds an output symbol to a table column.
type ScanColumn struct {
	Symbol symbol.Symbol
	Column string
}

// Init initializes LogicalTableScan.
func (p LogicalTableScan) Init(id base.PlanNodeID) *LogicalTableScan {
	p.BaseLogicalPlan = NewBaseLogicalPlan(id, TypeTableScan)
	return &p
}

// OutputSymbols implements base.PlanNode interface.
func (p *LogicalTableScan) OutputSymbols() []symbol.Symbol {
	outputs := make([]symbol.Symbol, 0, len(p.Columns))
	for _, col := range p.Columns {
		outputs = append(outputs, col.Symbol)
	}
	return outputs
}

// ReplaceChildren implements base.PlanNode interface.
func (p *LogicalTableScan) ReplaceChildren(children []base.PlanNode) base.PlanNode {
	intest.Assert(len(children) == 0, "%s has no children", p.TP())
	return p
}

// ExplainInfo implements base.PlanNode interface.
func (p *LogicalTableScan) ExplainInfo() string {
	cols := make([]string, 0, len(p.Columns))
	for _, col := range p.Columns {
		if col.Column == col.Symbol.Name() {
			cols = append(cols, col.Column)
			continue
		}
		cols = append(cols, fmt.Sprintf("%s:=%s", col.Symbol, col.Column))
	}
	return fmt.Sprintf("table:%s, columns:[%s]", p.TableName, strings.Join(cols, ", "))
}
