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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Rule application harness metrics.
var (
	RuleApplyCounter  *prometheus.CounterVec
	RuleApplyDuration *prometheus.HistogramVec
)

// InitRuleTestMetrics initializes rule application harness metrics.
func InitRuleTestMetrics() {
	RuleApplyCounter = NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "planrule",
			Subsystem: "ruletest",
			Name:      "apply_total",
			Help:      "Counter of rule applications by rule and result.",
		}, []string{LblRule, LblResult})

	RuleApplyDuration = NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "planrule",
			Subsystem: "ruletest",
			Name:      "apply_duration_seconds",
			Help:      "Bucketed histogram of processing time (s) of a rule application.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20), // 10us ~ 5s
		}, []string{LblRule})
}
