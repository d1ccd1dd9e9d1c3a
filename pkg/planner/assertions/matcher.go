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

package assertions

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pingcap/planrule/pkg/planner/cardinality"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/sessionctx"
)

// MatchContext is what a Matcher may consult besides the node.
type MatchContext struct {
	Session *sessionctx.Session
	Stats   cardinality.StatsProvider
	Types   *symbol.TypeProvider
}

// Matcher checks a property of a plan node. An error means the property could
// not be evaluated, not that it does not hold.
type Matcher interface {
	Matches(node base.PlanNode, ctx *MatchContext) (bool, error)
	fmt.Stringer
}

type funcMatcher struct {
	desc string
	fn   func(base.PlanNode, *MatchContext) (bool, error)
}

func (m *funcMatcher) Matches(node base.PlanNode, ctx *MatchContext) (bool, error) {
	return m.fn(node, ctx)
}

func (m *funcMatcher) String() string {
	return m.desc
}

// MatcherFunc builds a Matcher from fn, desc describes it in mismatch reports.
func MatcherFunc(desc string, fn func(node base.PlanNode, ctx *MatchContext) (bool, error)) Matcher {
	return &funcMatcher{desc: desc, fn: fn}
}

func typedMatcher[T base.PlanNode](desc string, fn func(T) bool) Matcher {
	return MatcherFunc(desc, func(node base.PlanNode, _ *MatchContext) (bool, error) {
		typed, ok := node.(T)
		return ok && fn(typed), nil
	})
}

func tableMatcher(table string) Matcher {
	return typedMatcher(fmt.Sprintf("table=%s", table), func(scan *logicalop.LogicalTableScan) bool {
		return strings.EqualFold(scan.TableName, table)
	})
}

func predicateMatcher(predicate string) Matcher {
	return typedMatcher(fmt.Sprintf("predicate=%s", predicate), func(sel *logicalop.LogicalSelection) bool {
		return sel.Predicate().String() == predicate
	})
}

func limitMatcher(count uint64) Matcher {
	return typedMatcher(fmt.Sprintf("count=%d", count), func(limit *logicalop.LogicalLimit) bool {
		return limit.Count == count
	})
}

func topNMatcher(count uint64) Matcher {
	return typedMatcher(fmt.Sprintf("count=%d", count), func(topN *logicalop.LogicalTopN) bool {
		return topN.Count == count
	})
}

func joinTypeMatcher(tp logicalop.JoinType) Matcher {
	return typedMatcher(fmt.Sprintf("type=%s", tp), func(join *logicalop.LogicalJoin) bool {
		return join.JoinType == tp
	})
}

func outputsMatcher(names []string) Matcher {
	return MatcherFunc(fmt.Sprintf("outputs contain [%s]", strings.Join(names, ", ")), func(node base.PlanNode, _ *MatchContext) (bool, error) {
		outputs := symbol.Names(node.OutputSymbols())
		for _, name := range names {
			if !slices.Contains(outputs, name) {
				return false, nil
			}
		}
		return true, nil
	})
}

func exactOutputsMatcher(names []string) Matcher {
	return MatcherFunc(fmt.Sprintf("outputs=[%s]", strings.Join(names, ", ")), func(node base.PlanNode, _ *MatchContext) (bool, error) {
		return slices.Equal(symbol.Names(node.OutputSymbols()), names), nil
	})
}

func rowCountMatcher(rows float64) Matcher {
	return MatcherFunc(fmt.Sprintf("rows=%v", rows), func(node base.PlanNode, ctx *MatchContext) (bool, error) {
		if ctx.Stats == nil {
			return false, nil
		}
		stats, err := ctx.Stats.GetStats(node)
		if err != nil {
			return false, err
		}
		return stats.OutputRowCount == rows, nil
	})
}
