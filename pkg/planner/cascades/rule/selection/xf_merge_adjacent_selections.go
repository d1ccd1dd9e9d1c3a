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
	"slices"

	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule"
	corebase "github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
)

var _ rule.Rule = &XFMergeAdjacentSelections{}

// XFMergeAdjacentSelections merges a selection with the selection below it
// into one selection holding the conditions of both.
type XFMergeAdjacentSelections struct {
	*rule.BaseRule

	child *pattern.Capture
}

// NewXFMergeAdjacentSelections creates a new MergeAdjacentSelections rule.
func NewXFMergeAdjacentSelections() *XFMergeAdjacentSelections {
	child := pattern.NewCapture("child")
	pa := pattern.BuildPattern(pattern.OperandSelection,
		pattern.NewPattern(pattern.OperandSelection).CapturedAs(child))
	return &XFMergeAdjacentSelections{
		BaseRule: rule.NewBaseRule(rule.XFMergeAdjacentSelections, pa),
		child:    child,
	}
}

// Apply implements the Rule interface.
func (r *XFMergeAdjacentSelections) Apply(node corebase.PlanNode, captures pattern.Captures, ctx *rule.Context) (rule.Result, error) {
	parent := node.(*logicalop.LogicalSelection)
	child := captures.MustGet(r.child).(*logicalop.LogicalSelection)

	conds := slices.Concat(child.Conditions, parent.Conditions)
	merged := logicalop.LogicalSelection{Conditions: conds}.Init(ctx.GetIDAllocator().NextID(), child.Child(0))
	return rule.OfPlanNode(merged), nil
}
