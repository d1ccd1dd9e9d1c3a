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

package join

import (
	"github.com/pingcap/planrule/pkg/expression"
	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule"
	corebase "github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/sessionctx/variable"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
)

var _ rule.Rule = &XFFlipJoinSides{}

// XFFlipJoinSides swaps the inputs of an inner join when the left input is
// larger than the right one by at least opt_join_flip_min_ratio. The flipped
// join is topped by a projection restoring the original output order.
type XFFlipJoinSides struct {
	*rule.BaseRule
}

// NewXFFlipJoinSides creates a new FlipJoinSides rule.
func NewXFFlipJoinSides() *XFFlipJoinSides {
	pa := pattern.NewPattern(pattern.OperandJoin).
		Matching(pattern.Typed(func(join *logicalop.LogicalJoin) bool {
			return join.JoinType == logicalop.InnerJoin || join.JoinType == logicalop.CrossJoin
		}))
	return &XFFlipJoinSides{
		BaseRule: rule.NewBaseRule(rule.XFFlipJoinSides, pa),
	}
}

// IsEnabled implements the Rule interface.
func (r *XFFlipJoinSides) IsEnabled(sess *sessionctx.Session) bool {
	return r.BaseRule.IsEnabled(sess) && sess.GetBoolProperty(variable.OptEnableJoinFlip)
}

// Apply implements the Rule interface.
func (*XFFlipJoinSides) Apply(node corebase.PlanNode, _ pattern.Captures, ctx *rule.Context) (rule.Result, error) {
	join := node.(*logicalop.LogicalJoin)
	stats := ctx.GetStatsProvider()
	left, err := stats.GetStats(join.Child(0))
	if err != nil {
		return rule.EmptyResult(), err
	}
	right, err := stats.GetStats(join.Child(1))
	if err != nil {
		return rule.EmptyResult(), err
	}
	if left.IsOutputRowCountUnknown() || right.IsOutputRowCountUnknown() {
		ctx.GetWarningCollector().AppendWarning(plannererrors.ErrJoinFlipStatsUnknown.GenWithStackByArgs(join.ID()))
		return rule.EmptyResult(), nil
	}
	ratio := ctx.GetSession().GetFloatProperty(variable.OptJoinFlipMinRatio)
	if left.OutputRowCount < right.OutputRowCount*ratio {
		return rule.EmptyResult(), nil
	}

	eqConds := make([]logicalop.EquiJoinClause, 0, len(join.EqualConditions))
	for _, c := range join.EqualConditions {
		eqConds = append(eqConds, c.Flip())
	}
	ids := ctx.GetIDAllocator()
	flipped := logicalop.LogicalJoin{
		JoinType:        join.JoinType.Flip(),
		EqualConditions: eqConds,
		OtherConditions: join.OtherConditions,
	}.Init(ids.NextID(), join.Child(1), join.Child(0))

	types := ctx.GetSymbolAllocator().Types()
	outputs := join.OutputSymbols()
	assignments := make([]logicalop.Assignment, 0, len(outputs))
	for _, sym := range outputs {
		assignments = append(assignments, logicalop.Assignment{
			Symbol: sym,
			Expr:   expression.NewColumn(sym, types.MustGet(sym)),
		})
	}
	proj := logicalop.LogicalProjection{Assignments: assignments}.Init(ids.NextID(), flipped)
	return rule.OfPlanNode(proj), nil
}
