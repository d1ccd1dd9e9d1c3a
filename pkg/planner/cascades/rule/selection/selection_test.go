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

package selection_test

import (
	"testing"

	"github.com/pingcap/planrule/pkg/expression"
	"github.com/pingcap/planrule/pkg/planner/assertions"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule/selection"
	"github.com/pingcap/planrule/pkg/planner/cascades/ruletest"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/types"
)

func TestMergeAdjacentSelections(t *testing.T) {
	tester := ruletest.NewRuleTester()
	tester.AssertThat(selection.NewXFMergeAdjacentSelections()).
		On(func(b *ruletest.PlanBuilder) base.PlanNode {
			key, price := b.Symbol("o_orderkey", types.BigInt), b.Symbol("o_totalprice", types.Double)
			scan := b.TableScan("orders", key, price)
			inner := b.Filter(expression.NewComparison(expression.GT, b.Column(key), expression.NewOne()), scan)
			return b.Filter(expression.NewComparison(expression.LT, b.Column(price), expression.NewConstant(100.5, types.Double)), inner)
		}).
		Matches(t, assertions.Filter("and(gt(o_orderkey, 1), lt(o_totalprice, 100.5))", assertions.TableScan("orders")))

	tester.AssertThat(selection.NewXFMergeAdjacentSelections()).
		On(func(b *ruletest.PlanBuilder) base.PlanNode {
			key := b.Symbol("o_orderkey", types.BigInt)
			return b.Filter(expression.NewComparison(expression.GT, b.Column(key), expression.NewOne()), b.TableScan("orders", key))
		}).
		DoesNotFire(t)
}

func TestRemoveTrivialSelection(t *testing.T) {
	tester := ruletest.NewRuleTester()
	onRegion := func(pred func(b *ruletest.PlanBuilder) expression.Expression) func(b *ruletest.PlanBuilder) base.PlanNode {
		return func(b *ruletest.PlanBuilder) base.PlanNode {
			key := b.Symbol("r_regionkey", types.BigInt)
			return b.Filter(pred(b), b.TableScan("region", key))
		}
	}

	tester.AssertThat(selection.NewXFRemoveTrivialSelection()).
		On(onRegion(func(*ruletest.PlanBuilder) expression.Expression { return expression.NewBoolConstant(true) })).
		Matches(t, assertions.TableScan("region").WithRowCount(5))

	tester.AssertThat(selection.NewXFRemoveTrivialSelection()).
		On(onRegion(func(*ruletest.PlanBuilder) expression.Expression { return expression.NewBoolConstant(false) })).
		Matches(t, assertions.Values().WithExactOutputs("r_regionkey").WithRowCount(0))

	tester.AssertThat(selection.NewXFRemoveTrivialSelection()).
		On(onRegion(func(*ruletest.PlanBuilder) expression.Expression { return expression.NewNull() })).
		Matches(t, assertions.Values().WithExactOutputs("r_regionkey"))

	// A constant that is not a boolean is left alone.
	tester.AssertThat(selection.NewXFRemoveTrivialSelection()).
		On(onRegion(func(*ruletest.PlanBuilder) expression.Expression { return expression.NewOne() })).
		DoesNotFire(t)

	tester.AssertThat(selection.NewXFRemoveTrivialSelection()).
		On(onRegion(func(b *ruletest.PlanBuilder) expression.Expression {
			return expression.NewComparison(expression.EQ, b.Column(b.Symbol("r_regionkey", types.BigInt)), expression.NewOne())
		})).
		DoesNotFire(t)
}
