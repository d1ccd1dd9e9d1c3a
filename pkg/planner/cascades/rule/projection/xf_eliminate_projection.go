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

package projection

import (
	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule"
	corebase "github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
)

var _ rule.Rule = &XFEliminateProjection{}

// XFEliminateProjection removes a projection that forwards the output of its
// child unchanged.
type XFEliminateProjection struct {
	*rule.BaseRule
}

// NewXFEliminateProjection creates a new EliminateProjection rule.
func NewXFEliminateProjection() *XFEliminateProjection {
	pa := pattern.NewPattern(pattern.OperandProjection).
		Matching(pattern.Typed(func(proj *logicalop.LogicalProjection) bool {
			return proj.IsIdentity()
		}))
	return &XFEliminateProjection{
		BaseRule: rule.NewBaseRule(rule.XFEliminateProjection, pa),
	}
}

// ID implement the Rule interface.
func (*XFEliminateProjection) ID() uint {
	return uint(rule.XFEliminateProjection)
}

// Apply implements the Rule interface.
func (*XFEliminateProjection) Apply(node corebase.PlanNode, _ pattern.Captures, _ *rule.Context) (rule.Result, error) {
	proj := node.(*logicalop.LogicalProjection)
	// the child is the group reference of the projection input, returning it
	// lets the memo merge the projection group into the child group.
	return rule.OfPlanNode(proj.Child(0)), nil
}
