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
	"strings"

	"github.com/pingcap/planrule/pkg/planner/cardinality"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/core"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
	"github.com/pingcap/planrule/pkg/planner/util/planprinter"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
)

// PlanMatchPattern describes the expected shape of a plan tree. Children are
// positional and a node must have exactly as many children as its pattern,
// except for Any and AnyTree patterns without children which match any
// subtree.
type PlanMatchPattern struct {
	operand  pattern.Operand
	anyTree  bool
	children []*PlanMatchPattern
	matchers []Matcher
}

// Node matches a node of operand whose children match children.
func Node(operand pattern.Operand, children ...*PlanMatchPattern) *PlanMatchPattern {
	return &PlanMatchPattern{operand: operand, children: children}
}

// Any matches any node whose children match children.
func Any(children ...*PlanMatchPattern) *PlanMatchPattern {
	return Node(pattern.OperandAny, children...)
}

// AnyTree matches a node whose children match children, or whose only child
// matches AnyTree(children...). It skips any chain of single-child nodes.
func AnyTree(children ...*PlanMatchPattern) *PlanMatchPattern {
	p := Any(children...)
	p.anyTree = true
	return p
}

// TableScan matches a scan of table.
func TableScan(table string) *PlanMatchPattern {
	return Node(pattern.OperandTableScan).With(tableMatcher(table))
}

// Values matches values.
func Values() *PlanMatchPattern {
	return Node(pattern.OperandValues)
}

// Filter matches a selection whose predicate renders as predicate.
func Filter(predicate string, child *PlanMatchPattern) *PlanMatchPattern {
	return Node(pattern.OperandSelection, child).With(predicateMatcher(predicate))
}

// Project matches a projection.
func Project(child *PlanMatchPattern) *PlanMatchPattern {
	return Node(pattern.OperandProjection, child)
}

// Limit matches a limit of count rows.
func Limit(count uint64, child *PlanMatchPattern) *PlanMatchPattern {
	return Node(pattern.OperandLimit, child).With(limitMatcher(count))
}

// Sort matches a sort.
func Sort(child *PlanMatchPattern) *PlanMatchPattern {
	return Node(pattern.OperandSort, child)
}

// TopN matches a topN of count rows.
func TopN(count uint64, child *PlanMatchPattern) *PlanMatchPattern {
	return Node(pattern.OperandTopN, child).With(topNMatcher(count))
}

// Join matches a join of joinType.
func Join(joinType logicalop.JoinType, left, right *PlanMatchPattern) *PlanMatchPattern {
	return Node(pattern.OperandJoin, left, right).With(joinTypeMatcher(joinType))
}

// Aggregation matches an aggregation.
func Aggregation(child *PlanMatchPattern) *PlanMatchPattern {
	return Node(pattern.OperandAggregation, child)
}

// With adds matcher to the pattern.
func (p *PlanMatchPattern) With(matcher Matcher) *PlanMatchPattern {
	p.matchers = append(p.matchers, matcher)
	return p
}

// WithOutputs requires the node to output the named symbols, among others.
func (p *PlanMatchPattern) WithOutputs(names ...string) *PlanMatchPattern {
	return p.With(outputsMatcher(names))
}

// WithExactOutputs requires the node to output exactly the named symbols, in order.
func (p *PlanMatchPattern) WithExactOutputs(names ...string) *PlanMatchPattern {
	return p.With(exactOutputsMatcher(names))
}

// WithRowCount requires the estimated output row count of the node to be rows.
func (p *PlanMatchPattern) WithRowCount(rows float64) *PlanMatchPattern {
	return p.With(rowCountMatcher(rows))
}

// String implements fmt.Stringer interface.
func (p *PlanMatchPattern) String() string {
	var buf strings.Builder
	p.toString(&buf, 0)
	return strings.TrimRight(buf.String(), "\n")
}

func (p *PlanMatchPattern) toString(buf *strings.Builder, indent int) {
	buf.WriteString(strings.Repeat("    ", indent))
	buf.WriteString("- ")
	if p.anyTree {
		buf.WriteString("anyTree")
	} else {
		buf.WriteString(p.operand.String())
	}
	if len(p.matchers) > 0 {
		descs := make([]string, 0, len(p.matchers))
		for _, m := range p.matchers {
			descs = append(descs, m.String())
		}
		buf.WriteString("(" + strings.Join(descs, ", ") + ")")
	}
	buf.WriteString("\n")
	for _, child := range p.children {
		child.toString(buf, indent+1)
	}
}

// MatchPlan checks whether the tree rooted at root matches p. Group
// references are resolved through lookup.
func (p *PlanMatchPattern) MatchPlan(root base.PlanNode, lookup cascadesbase.Lookup, ctx *MatchContext) (bool, error) {
	node, err := lookup.Resolve(root)
	if err != nil {
		return false, err
	}
	ok, err := p.matchesHere(node, lookup, ctx)
	if err != nil || ok {
		return ok, err
	}
	if p.anyTree && len(node.Children()) == 1 {
		return p.MatchPlan(node.Children()[0], lookup, ctx)
	}
	return false, nil
}

func (p *PlanMatchPattern) matchesHere(node base.PlanNode, lookup cascadesbase.Lookup, ctx *MatchContext) (bool, error) {
	if !p.operand.Match(pattern.GetOperand(node)) {
		return false, nil
	}
	for _, m := range p.matchers {
		ok, err := m.Matches(node, ctx)
		if err != nil || !ok {
			return false, err
		}
	}
	if len(p.children) == 0 && p.operand == pattern.OperandAny {
		return true, nil
	}
	children := node.Children()
	if len(children) != len(p.children) {
		return false, nil
	}
	for i, child := range p.children {
		ok, err := child.MatchPlan(children[i], lookup, ctx)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// AssertPlan checks that plan matches expected, returning ErrPlanMismatch
// with both rendered otherwise. statsProvider serves the row count matchers.
func AssertPlan(sess *sessionctx.Session, statsProvider cardinality.StatsProvider, plan *core.Plan, lookup cascadesbase.Lookup, expected *PlanMatchPattern) error {
	ctx := &MatchContext{Session: sess, Stats: statsProvider, Types: plan.Types()}
	ok, err := expected.MatchPlan(plan.Root(), lookup, ctx)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	text, err := planprinter.TextLogicalPlan(plan, planprinter.Options{Lookup: lookup, PrintStats: true})
	if err != nil {
		return err
	}
	return plannererrors.ErrPlanMismatch.GenWithStackByArgs(expected, text)
}
