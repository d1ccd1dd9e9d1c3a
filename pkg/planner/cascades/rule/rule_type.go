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

// Type indicates the rule type.
type Type int

const (
	// DEFAULT_NONE indicates this is none rule.
	DEFAULT_NONE Type = iota
	// XFEliminateProjection removes a projection forwarding its input unchanged.
	XFEliminateProjection
	// XFMergeAdjacentSelections merges a selection into its child selection.
	XFMergeAdjacentSelections
	// XFRemoveTrivialSelection removes selections whose predicate is a constant.
	XFRemoveTrivialSelection
	// XFMergeLimits merges a limit into its child limit.
	XFMergeLimits
	// XFPushLimitThroughProjection pushes a limit below a projection.
	XFPushLimitThroughProjection
	// XFEvaluateZeroLimit replaces a limit 0 by empty values.
	XFEvaluateZeroLimit
	// XFFlipJoinSides swaps the inputs of a join.
	XFFlipJoinSides

	// XFMaxRuleID is the upper bound of the rule ids, it must stay the last one.
	XFMaxRuleID
)

// String implements fmt.Stringer interface.
func (tp Type) String() string {
	switch tp {
	case XFEliminateProjection:
		return "EliminateProjection"
	case XFMergeAdjacentSelections:
		return "MergeAdjacentSelections"
	case XFRemoveTrivialSelection:
		return "RemoveTrivialSelection"
	case XFMergeLimits:
		return "MergeLimits"
	case XFPushLimitThroughProjection:
		return "PushLimitThroughProjection"
	case XFEvaluateZeroLimit:
		return "EvaluateZeroLimit"
	case XFFlipJoinSides:
		return "FlipJoinSides"
	default:
		return "Unknown"
	}
}
