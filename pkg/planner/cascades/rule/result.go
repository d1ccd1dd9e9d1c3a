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

package rule

import (
	"github.com/pingcap/planrule/pkg/planner/core/base"
)

// Result is the outcome of Rule.Apply: either empty, the rule did not fire,
// or a replacement of the matched node.
type Result struct {
	fired bool
	plan  base.PlanNode
}

// EmptyResult returns a Result of a rule that did not fire.
func EmptyResult() Result {
	return Result{}
}

// OfPlanNode returns a Result replacing the matched node by plan.
func OfPlanNode(plan base.PlanNode) Result {
	return Result{fired: true, plan: plan}
}

// IsEmpty checks whether the rule did not fire.
func (r Result) IsEmpty() bool {
	return !r.fired
}

// TransformedPlan returns the replacement. The second return value is false
// when the rule fired without supplying a plan.
func (r Result) TransformedPlan() (base.PlanNode, bool) {
	return r.plan, r.plan != nil
}
