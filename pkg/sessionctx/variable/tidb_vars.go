// Copyright 2017 PingCAP, Inc.
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

package variable

// System property names.
const (
	// OptDisabledRules is a comma separated list of the rules that never fire.
	OptDisabledRules = "opt_disabled_rules"
	// OptEnableJoinFlip enables the rule swapping the inputs of an inner join.
	OptEnableJoinFlip = "opt_enable_join_flip"
	// OptJoinFlipMinRatio is the minimum ratio between the left and the right
	// input row counts for the join inputs to be swapped.
	OptJoinFlipMinRatio = "opt_join_flip_min_ratio"
	// OptEnableLimitPushDown enables pushing limits below projections.
	OptEnableLimitPushDown = "opt_enable_limit_push_down"
	// IgnoreStatsCalculatorFailures turns stats calculator failures into
	// unknown estimates instead of errors.
	IgnoreStatsCalculatorFailures = "ignore_stats_calculator_failures"
)

// Default values of the system properties.
const (
	DefOptDisabledRules              = ""
	DefOptEnableJoinFlip             = false
	DefOptJoinFlipMinRatio           = 1.5
	DefOptEnableLimitPushDown        = true
	DefIgnoreStatsCalculatorFailures = true
)
