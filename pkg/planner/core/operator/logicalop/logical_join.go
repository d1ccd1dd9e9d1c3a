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

// JoinType contains CrossJoin, InnerJoin, LeftOuterJoin, RightOuterJoin and FullOuterJoin.
type JoinType int

const (
	// InnerJoin means inner join.
	InnerJoin JoinType = iota
	// CrossJoin means cartesian product, it is an inner join without any condition.
	CrossJoin
	// LeftOuterJoin means left join.
	LeftOuterJoin
	// RightOuterJoin means right join.
	RightOuterJoin
	// FullOuterJoin means full join.
	FullOuterJoin
)

// String implements fmt.Stringer interface.
func (tp JoinType) String() string {
	switch tp {
	case InnerJoin:
		return "inner join"
	case CrossJoin:
		return "cross join"
	case LeftOuterJoin:
		return "left outer join"
	case RightOuterJoin:
		return "right outer join"
	case FullOuterJoin:
		return "full outer join"
	}
	return "unsupported join type"
}

// Flip returns the join type after swapping both sides.
func (tp JoinType) Flip() JoinType {
	switch tp {
	case LeftOuterJoin:
		return RightOuterJoin
	case RightOuterJoin:
		return LeftOuterJoin
	}
	return tp
}

// EquiJoinClause is an equal condition between a left and a right symbol.
type EquiJoinClause struct {
	Left  symbol.Symbol
	Right symbol.Symbol
}

// Flip swaps both sides of the clause.
func (c EquiJoinClause) Flip() EquiJoinClause {
	return EquiJoinClause{Left: c.Right, Right: c.Left}
}

// String implements fmt.Stringer interface.
func (c EquiJoinClause) String() string {
	return fmt.Sprintf("eq(%s, %s)", c.Left, c.Right)
}

// LogicalJoin is the logical join plan.
type LogicalJoin struct {
	BaseLogicalPlan

	JoinType        JoinType
	EqualConditions []EquiJoinClause
	OtherConditions []expression.Expression
}

// Init initializes LogicalJoin.
func (p LogicalJoin) Init(id base.PlanNodeID, left, right base.PlanNode) *LogicalJoin {
	p.BaseLogicalPlan = NewBaseLogicalPlan(id, TypeJoin, left, right)
	return &p
}

// OutputSymbols implements base.PlanNode interface. A join outputs the symbols
// of its left child followed by the symbols of its right child.
func (p *LogicalJoin) OutputSymbols() []symbol.Symbol {
	left, right := p.Child(0).OutputSymbols(), p.Child(1).OutputSymbols()
	outputs := make([]symbol.Symbol, 0, len(left)+len(right))
	outputs = append(outputs, left...)
	return append(outputs, right...)
}

// ReplaceChildren implements base.PlanNode interface.
func (p *LogicalJoin) ReplaceChildren(children []base.PlanNode) base.PlanNode {
	np := *p
	np.BaseLogicalPlan = p.withChildren(children)
	return &np
}

// ExplainInfo implements base.PlanNode interface.
func (p *LogicalJoin) ExplainInfo() string {
	var buf strings.Builder
	buf.WriteString(p.JoinType.String())
	if len(p.EqualConditions) > 0 {
		conds := make([]string, 0, len(p.EqualConditions))
		for _, c := range p.EqualConditions {
			conds = append(conds, c.String())
		}
		fmt.Fprintf(&buf, ", equal:[%s]", strings.Join(conds, ", "))
	}
	if len(p.OtherConditions) > 0 {
		conds := make([]string, 0, len(p.OtherConditions))
		for _, c := range p.OtherConditions {
			conds = append(conds, c.String())
		}
		fmt.Fprintf(&buf, ", other cond:%s", strings.Join(conds, ", "))
	}
	return buf.String()
}
