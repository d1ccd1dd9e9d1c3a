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

package ruletest

import (
	"testing"

	"github.com/pingcap/planrule/pkg/planner/assertions"
	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule/ruleset"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/sessionctx/variable"
	"github.com/pingcap/planrule/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestAssertThatRuleSet(t *testing.T) {
	require.Len(t, NewRuleTester().AssertThatRuleSet(pattern.OperandLimit, ruleset.XFSetSimplify), 2)
	require.Empty(t, NewRuleTester().AssertThatRuleSet(pattern.OperandValues, ruleset.XFSetSimplify))

	baseline, err := sessionctx.NewBuilder(NewRuleTester().Session()).
		SetSystemProperty(variable.OptDisabledRules, "MergeLimits").
		Build()
	require.NoError(t, err)
	asserts := NewRuleTester(WithBaseSession(baseline)).AssertThatRuleSet(pattern.OperandLimit, ruleset.XFSetSimplify)
	require.Len(t, asserts, 1)
	require.Equal(t, "EvaluateZeroLimit", asserts[0].rule.Name())
	asserts[0].
		On(func(b *PlanBuilder) base.PlanNode {
			return b.Limit(0, b.TableScan("orders", b.Symbol("a", types.BigInt)))
		}).
		Matches(t, assertions.Values().WithExactOutputs("a"))
}
