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
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/sessionctx/variable"
)

var _ rule.Rule = &XFPushLimitThroughProjection{}

// XFPushLimitThroughProjection pushes a limit below the projection it
// consumes, so the projection is computed for fewer rows.
type XFPushLimitThroughProjection struct {
	*rule.BaseRule

	proj *pattern.Capture
}

// NewXFPushLimitThroughProjection creates a new PushLimitThroughProjection rule.
func NewXFPushLimitThroughProjection() *XFPushLimitThroughProjection {
	proj := pattern.NewCapture("projection")
	pa := pattern.BuildPattern(pattern.OperandLimit,
		pattern.NewPattern(pattern.OperandProjection).CapturedAs(proj))
	return &XFPushLimitThroughProjection{
		BaseRule: rule.NewBaseRule(rule.XFPushLimitThroughProjection, pa),
		proj:     proj,
	}
}

// IsEnabled implements the Rule interface.
func (r *XFPushLimitThroughProjection) IsEnabled(sess *sessionctx.Session) bool {
	return r.BaseRule.IsEnabled(sess) && sess.GetBoolProperty(variable.OptEnableLimitPushDown)
}

// Apply implements the Rule interface.
func (r *XFPushLimitThroughProjection) Apply(node corebase.PlanNode, captures pattern.Captures, ctx *rule.Context) (rule.Result, error) {
	limit := node.(*logicalop.LogicalLimit)
	proj := captures.MustGet(r.proj).(*logicalop.LogicalProjection)

	ids := ctx.GetIDAllocator()
	pushed := logicalop.LogicalLimit{Count: limit.Count}.Init(ids.NextID(), proj.Child(0))
	newProj := logicalop.LogicalProjection{Assignments: proj.Assignments}.Init(ids.NextID(), pushed)
	return rule.OfPlanNode(newProj), nil
}
