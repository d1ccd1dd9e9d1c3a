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

package limit

import (
	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule"
	corebase "github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
)

var _ rule.Rule = &XFEvaluateZeroLimit{}

// XFEvaluateZeroLimit replaces a limit 0 by values producing no row.
type XFEvaluateZeroLimit struct {
	*rule.BaseRule
}

// NewXFEvaluateZeroLimit creates a new EvaluateZeroLimit rule.
func NewXFEvaluateZeroLimit() *XFEvaluateZeroLimit {
	pa := pattern.NewPattern(pattern.OperandLimit).
		Matching(pattern.Typed(func(limit *logicalop.LogicalLimit) bool {
			return limit.Count == 0
		}))
	return &XFEvaluateZeroLimit{
		BaseRule: rule.NewBaseRule(rule.XFEvaluateZeroLimit, pa),
	}
}

// Apply implements the Rule interface.
func (*XFEvaluateZeroLimit) Apply(node corebase.PlanNode, _ pattern.Captures, ctx *rule.Context) (rule.Result, error) {
	values := logicalop.LogicalValues{Outputs: node.OutputSymbols()}.Init(ctx.GetIDAllocator().NextID())
	return rule.OfPlanNode(values), nil
}
