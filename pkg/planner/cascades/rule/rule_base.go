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
	"slices"

	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/sessionctx/variable"
)

// Rule regulates the common interface of all transformation rules.
type Rule interface {
	// ID returns the id of the rule, unique among all rules.
	ID() uint

	// Name returns the name of the rule, as used by the opt_disabled_rules
	// system property.
	Name() string

	// Pattern returns the shape the root of the plan must have for the rule
	// to apply.
	Pattern() *pattern.Pattern

	// IsEnabled checks whether the rule may fire in sess.
	IsEnabled(sess *sessionctx.Session) bool

	// Apply tries to rewrite node, the node matched by the root of Pattern.
	// captures holds every capture bound by the match. An empty Result means
	// the rule did not fire.
	Apply(node base.PlanNode, captures pattern.Captures, ctx *Context) (Result, error)
}

// BaseRule is the abstract parent class of rule.
type BaseRule struct {
	tp      Type
	pattern *pattern.Pattern
}

// NewBaseRule creates a new BaseRule.
func NewBaseRule(tp Type, pa *pattern.Pattern) *BaseRule {
	return &BaseRule{tp: tp, pattern: pa}
}

// ID implements the Rule interface.
func (r *BaseRule) ID() uint {
	return uint(r.tp)
}

// Name implements the Rule interface.
func (r *BaseRule) Name() string {
	return r.tp.String()
}

// Pattern implements the Rule interface.
func (r *BaseRule) Pattern() *pattern.Pattern {
	return r.pattern
}

// IsEnabled implements the Rule interface. A rule is disabled when its name
// is listed in opt_disabled_rules.
func (r *BaseRule) IsEnabled(sess *sessionctx.Session) bool {
	disabled := variable.ParseRuleNames(sess.GetStringProperty(variable.OptDisabledRules))
	return !slices.Contains(disabled, r.Name())
}
