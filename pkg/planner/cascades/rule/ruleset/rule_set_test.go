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

package ruleset

import (
	"testing"

	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/sessionctx/variable"
	"github.com/stretchr/testify/require"
)

func ruleNames(rules ListRules) []string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name())
	}
	return names
}

func TestAllRules(t *testing.T) {
	all := AllRules()
	require.Len(t, all, int(rule.XFMaxRuleID)-1)
	for i, r := range all {
		require.Equal(t, uint(i+1), r.ID())
		found, ok := GetRuleByName(r.Name())
		require.True(t, ok)
		require.Same(t, r, found)
	}
	_, ok := GetRuleByName("NoSuchRule")
	require.False(t, ok)
}

func TestOperandRules(t *testing.T) {
	limits := DefaultRuleSets[pattern.OperandLimit]
	require.Equal(t, []string{"EvaluateZeroLimit", "MergeLimits", "PushLimitThroughProjection"}, ruleNames(limits.List()))
	require.Equal(t, []string{"PushLimitThroughProjection"}, ruleNames(limits.Set(XFSetReorder)))
	require.Empty(t, DefaultRuleSets[pattern.OperandJoin].Set(XFSetSimplify))
	for operand, ors := range DefaultRuleSets {
		for _, r := range ors.List() {
			require.Equal(t, operand, r.Pattern().Operand, r.Name())
		}
	}
}

func TestEnabledRuleMask(t *testing.T) {
	sess, err := sessionctx.NewBuilder(nil).
		SetSystemProperty(variable.OptDisabledRules, "MergeLimits,RemoveTrivialSelection").
		Build()
	require.NoError(t, err)
	mask := EnabledRuleMask(sess)
	require.False(t, mask.Test(uint(rule.XFMergeLimits)))
	require.False(t, mask.Test(uint(rule.XFRemoveTrivialSelection)))
	// Join flip is off by default.
	require.False(t, mask.Test(uint(rule.XFFlipJoinSides)))
	require.True(t, mask.Test(uint(rule.XFEliminateProjection)))

	limits := DefaultRuleSets[pattern.OperandLimit].List().Filter(mask)
	require.Equal(t, []string{"EvaluateZeroLimit", "PushLimitThroughProjection"}, ruleNames(limits))
}
