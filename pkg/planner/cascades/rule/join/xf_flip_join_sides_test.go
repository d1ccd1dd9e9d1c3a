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

package join_test

import (
	"testing"

	"github.com/pingcap/planrule/pkg/planner/assertions"
	"github.com/pingcap/planrule/pkg/planner/cardinality"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule/join"
	"github.com/pingcap/planrule/pkg/planner/cascades/ruletest"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
	"github.com/pingcap/planrule/pkg/sessionctx/variable"
	"github.com/pingcap/planrule/pkg/types"
)

func ordersJoinNation(joinType logicalop.JoinType) func(b *ruletest.PlanBuilder) base.PlanNode {
	return func(b *ruletest.PlanBuilder) base.PlanNode {
		custKey := b.Symbol("o_custkey", types.BigInt)
		nationKey := b.Symbol("n_nationkey", types.BigInt)
		orders := b.ID("orders").TableScan("orders", custKey)
		nation := b.ID("nation").TableScan("nation", nationKey)
		return b.Join(joinType, orders, nation, logicalop.EquiJoinClause{Left: custKey, Right: nationKey})
	}
}

func TestFlipJoinSides(t *testing.T) {
	tester := ruletest.NewRuleTester()
	tester.AssertThat(join.NewXFFlipJoinSides()).
		SetSystemProperty(variable.OptEnableJoinFlip, "ON").
		On(ordersJoinNation(logicalop.InnerJoin)).
		Matches(t, assertions.Project(
			assertions.Join(logicalop.InnerJoin,
				assertions.TableScan("nation"),
				assertions.TableScan("orders")).
				WithExactOutputs("n_nationkey", "o_custkey")).
			WithExactOutputs("o_custkey", "n_nationkey"))
}

func TestFlipJoinSidesDoesNotFire(t *testing.T) {
	tester := ruletest.NewRuleTester()
	// Disabled by default.
	tester.AssertThat(join.NewXFFlipJoinSides()).
		On(ordersJoinNation(logicalop.InnerJoin)).
		DoesNotFire(t)

	// Outer joins are not flipped.
	tester.AssertThat(join.NewXFFlipJoinSides()).
		SetSystemProperty(variable.OptEnableJoinFlip, "ON").
		On(ordersJoinNation(logicalop.LeftOuterJoin)).
		DoesNotFire(t)

	// The left input is not large enough.
	tester.AssertThat(join.NewXFFlipJoinSides()).
		SetSystemProperty(variable.OptEnableJoinFlip, "ON").
		OverrideStats("orders", cardinality.NewPlanNodeStatsEstimate(30)).
		On(ordersJoinNation(logicalop.InnerJoin)).
		DoesNotFire(t)

	tester.AssertThat(join.NewXFFlipJoinSides()).
		SetSystemProperty(variable.OptEnableJoinFlip, "ON").
		SetSystemProperty(variable.OptJoinFlipMinRatio, "100000").
		On(ordersJoinNation(logicalop.InnerJoin)).
		DoesNotFire(t)

	// Unknown statistics.
	tester.AssertThat(join.NewXFFlipJoinSides()).
		SetSystemProperty(variable.OptEnableJoinFlip, "ON").
		OverrideStats("nation", cardinality.Unknown()).
		On(ordersJoinNation(logicalop.InnerJoin)).
		DoesNotFire(t)
}

func TestFlipCrossJoin(t *testing.T) {
	tester := ruletest.NewRuleTester()
	tester.AssertThat(join.NewXFFlipJoinSides()).
		SetSystemProperty(variable.OptEnableJoinFlip, "ON").
		OverrideStats("orders", cardinality.NewPlanNodeStatsEstimate(40)).
		On(func(b *ruletest.PlanBuilder) base.PlanNode {
			orders := b.ID("orders").TableScan("orders", b.Symbol("o_orderkey", types.BigInt))
			region := b.TableScan("region", b.Symbol("r_regionkey", types.BigInt))
			return b.Join(logicalop.CrossJoin, orders, region)
		}).
		Matches(t, assertions.Project(
			assertions.Join(logicalop.CrossJoin, assertions.TableScan("region"), assertions.AnyTree()).
				WithExactOutputs("r_regionkey", "o_orderkey")))
}
