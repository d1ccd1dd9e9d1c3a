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

var _ rule.Rule = &XFMergeLimits{}

// XFMergeLimits merges two adjacent limits into one limit keeping the
// smaller count.
type XFMergeLimits struct {
	*rule.BaseRule

	child *pattern.Capture
}

// NewXFMergeLimits creates a new MergeLimits rule.
func NewXFMergeLimits() *XFMergeLimits {
	child := pattern.NewCapture("child")
	pa := pattern.BuildPattern(pattern.OperandLimit,
		pattern.NewPattern(pattern.OperandLimit).CapturedAs(child))
	return &XFMergeLimits{
		BaseRule: rule.NewBaseRule(rule.XFMergeLimits, pa),
		child:    child,
	}
}

// Apply implements the Rule interface.
func (r *XFMergeLimits) Apply(node corebase.PlanNode, captures pattern.Captures, ctx *rule.Context) (rule.Result, error) {
	parent := node.(*logicalop.LogicalLimit)
	child := captures.MustGet(r.child).(*logicalop.LogicalLimit)

	merged := logicalop.LogicalLimit{Count: min(parent.Count, child.Count)}.Init(ctx.GetIDAllocator().NextID(), child.Child(0))
	return rule.OfPlanNode(merged), nil
}
