// Copyright 2019 PingCAP, Inc.
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

package pattern

import (
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
)

// Operand is the node of a pattern tree, it represents a logical expression operator.
// Different from logical plan operator which holds the full information about an expression
// operator, Operand only stores the type information.
// An Operand may correspond to a concrete logical plan operator, or it can has special meaning,
// e.g, a placeholder for any logical plan operator.
type Operand int

const (
	// OperandAny is a placeholder for any Operand.
	OperandAny Operand = iota
	// OperandTableScan is the operand for LogicalTableScan.
	OperandTableScan
	// OperandValues is the operand for LogicalValues.
	OperandValues
	// OperandSelection is the operand for LogicalSelection.
	OperandSelection
	// OperandProjection is the operand for LogicalProjection.
	OperandProjection
	// OperandLimit is the operand for LogicalLimit.
	OperandLimit
	// OperandSort is the operand for LogicalSort.
	OperandSort
	// OperandTopN is the operand for LogicalTopN.
	OperandTopN
	// OperandJoin is the operand for LogicalJoin.
	OperandJoin
	// OperandAggregation is the operand for LogicalAggregation.
	OperandAggregation
	// OperandUnsupported is the operand for unsupported operators.
	OperandUnsupported
)

// GetOperand maps logical plan operator to Operand.
func GetOperand(p base.PlanNode) Operand {
	switch p.(type) {
	case *logicalop.LogicalTableScan:
		return OperandTableScan
	case *logicalop.LogicalValues:
		return OperandValues
	case *logicalop.LogicalSelection:
		return OperandSelection
	case *logicalop.LogicalProjection:
		return OperandProjection
	case *logicalop.LogicalLimit:
		return OperandLimit
	case *logicalop.LogicalSort:
		return OperandSort
	case *logicalop.LogicalTopN:
		return OperandTopN
	case *logicalop.LogicalJoin:
		return OperandJoin
	case *logicalop.LogicalAggregation:
		return OperandAggregation
	default:
		return OperandUnsupported
	}
}

// Match checks if current Operand matches specified one.
func (o Operand) Match(t Operand) bool {
	if o == OperandAny || t == OperandAny {
		return true
	}
	if o == t {
		return true
	}
	return false
}

// String implements fmt.Stringer interface.
func (o Operand) String() string {
	switch o {
	case OperandAny:
		return "Any"
	case OperandTableScan:
		return logicalop.TypeTableScan
	case OperandValues:
		return logicalop.TypeValues
	case OperandSelection:
		return logicalop.TypeSel
	case OperandProjection:
		return logicalop.TypeProj
	case OperandLimit:
		return logicalop.TypeLimit
	case OperandSort:
		return logicalop.TypeSort
	case OperandTopN:
		return logicalop.TypeTopN
	case OperandJoin:
		return logicalop.TypeJoin
	case OperandAggregation:
		return logicalop.TypeAggregation
	}
	return "Unsupported"
}
