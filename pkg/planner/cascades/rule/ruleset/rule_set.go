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
	"maps"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule/join"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule/limit"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule/projection"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule/selection"
	"github.com/pingcap/planrule/pkg/sessionctx"
)

// SetType is the type of rule set.
type SetType uint

const (
	// DefaultNone indicates this is none rule.
	DefaultNone SetType = iota
	// XFSetSimplify indicates the rules removing or merging operators.
	XFSetSimplify
	// XFSetReorder indicates the rules moving operators around each other.
	XFSetReorder
)

// DefaultRuleSets indicates the all rule set.
var DefaultRuleSets = map[pattern.Operand]*OperandRules{
	pattern.OperandProjection: OperandProjectionRules,
	pattern.OperandSelection:  OperandSelectionRules,
	pattern.OperandLimit:      OperandLimitRules,
	pattern.OperandJoin:       OperandJoinRules,
}

// OperandRules wrapper all the rules rooted from one specified operator.
type OperandRules struct {
	setMap  map[SetType][]rule.Rule
	setList []rule.Rule
}

func newOperandRules(setMap map[SetType][]rule.Rule) *OperandRules {
	ors := &OperandRules{setMap: setMap}
	for _, tp := range slices.Sorted(maps.Keys(setMap)) {
		ors.setList = append(ors.setList, setMap[tp]...)
	}
	return ors
}

// Set returns the rules of the specified sub-set.
func (ors *OperandRules) Set(tp SetType) ListRules {
	return ors.setMap[tp]
}

// List returns all the rules rooted from the operand.
func (ors *OperandRules) List() ListRules {
	return ors.setList
}

// ListRules is a list of rules.
type ListRules []rule.Rule

// Filter mask out rules which is in mask uint64.
func (l ListRules) Filter(mask *bitset.BitSet) ListRules {
	res := make([]rule.Rule, 0, len(l))
	for _, one := range l {
		if mask.Test(one.ID()) {
			res = append(res, one)
		}
	}
	return res
}

// OperandProjectionRules is the rules rooted from a projection operand.
var OperandProjectionRules = newOperandRules(map[SetType][]rule.Rule{
	XFSetSimplify: {projection.NewXFEliminateProjection()},
})

// OperandSelectionRules is the rules rooted from a selection operand.
var OperandSelectionRules = newOperandRules(map[SetType][]rule.Rule{
	XFSetSimplify: {
		selection.NewXFRemoveTrivialSelection(),
		selection.NewXFMergeAdjacentSelections(),
	},
})

// OperandLimitRules is the rules rooted from a limit operand.
var OperandLimitRules = newOperandRules(map[SetType][]rule.Rule{
	XFSetSimplify: {
		limit.NewXFEvaluateZeroLimit(),
		limit.NewXFMergeLimits(),
	},
	XFSetReorder: {limit.NewXFPushLimitThroughProjection()},
})

// OperandJoinRules is the rules rooted from a join operand.
var OperandJoinRules = newOperandRules(map[SetType][]rule.Rule{
	XFSetReorder: {join.NewXFFlipJoinSides()},
})

// AllRules returns every rule of DefaultRuleSets ordered by id.
func AllRules() ListRules {
	var all ListRules
	for _, ors := range DefaultRuleSets {
		all = append(all, ors.setList...)
	}
	slices.SortFunc(all, func(a, b rule.Rule) int {
		return int(a.ID()) - int(b.ID())
	})
	return all
}

// GetRuleByName returns the rule named name.
func GetRuleByName(name string) (rule.Rule, bool) {
	for _, r := range AllRules() {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}

// EnabledRuleMask builds the mask of the rules enabled in sess.
func EnabledRuleMask(sess *sessionctx.Session) *bitset.BitSet {
	mask := bitset.New(uint(rule.XFMaxRuleID))
	for _, r := range AllRules() {
		if r.IsEnabled(sess) {
			mask.Set(r.ID())
		}
	}
	return mask
}
