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

package selection

import (
	"github.com/pingcap/planrule/pkg/expression"
	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule"
	corebase "github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
)

var _ rule.Rule = &XFRemoveTrivialSelection{}

// XFRemoveTrivialSelection removes a selection whose predicate is constant.
// An always true selection is replaced by its input, an always false one by
// empty values.
type XFRemoveTrivialSelection struct {
	*rule.BaseRule
}

// NewXFRemoveTrivialSelection creates a new RemoveTrivialSelection rule.
func NewXFRemoveTrivialSelection() *XFRemoveTrivialSelection {
	pa := pattern.NewPattern(pattern.OperandSelection).
		Matching(pattern.Typed(func(sel *logicalop.LogicalSelection) bool {
			_, ok := sel.Predicate().(*expression.Constant)
			return ok
		}))
	return &XFRemoveTrivialSelection{
		BaseRule: rule.NewBaseRule(rule.XFRemoveTrivialSelection, pa),
	}
}

// Apply implements the Rule interface.
func (*XFRemoveTrivialSelection) Apply(node corebase.PlanNode, _ pattern.Captures, ctx *rule.Context) (rule.Result, error) {
	sel := node.(*logicalop.LogicalSelection)
	pred := sel.Predicate()
	switch {
	case expression.IsConstTrue(pred):
		return rule.OfPlanNode(sel.Child(0)), nil
	case expression.IsConstFalse(pred):
		values := logicalop.LogicalValues{Outputs: sel.OutputSymbols()}.Init(ctx.GetIDAllocator().NextID())
		return rule.OfPlanNode(values), nil
	}
	return rule.EmptyResult(), nil
}
