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
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pingcap/planrule/pkg/metrics"
	"github.com/pingcap/planrule/pkg/planner/assertions"
	"github.com/pingcap/planrule/pkg/planner/cardinality"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/cascades/memo"
	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule"
	"github.com/pingcap/planrule/pkg/planner/core"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/cost"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/planner/util/planprinter"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/sessiontxn"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
	"github.com/pingcap/planrule/pkg/util/logutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// RuleAssert applies one rule once to one plan and checks the outcome.
type RuleAssert struct {
	tester          *RuleTester
	statsCalculator *testingStatsCalculator
	session         *sessionctx.Session
	rule            rule.Rule

	idAllocator *base.IDAllocator
	types       *symbol.TypeProvider
	plan        base.PlanNode
}

func newRuleAssert(rt *RuleTester, r rule.Rule) *RuleAssert {
	return &RuleAssert{
		tester:          rt,
		statsCalculator: newTestingStatsCalculator(rt.statsCalculator),
		session:         rt.session,
		rule:            r,
		idAllocator:     base.NewIDAllocator(),
	}
}

// SetSystemProperty rebuilds the session with a system property set. It
// panics when the property is unknown or the value invalid.
func (ra *RuleAssert) SetSystemProperty(name, value string) *RuleAssert {
	sess, err := sessionctx.NewBuilder(ra.session).SetSystemProperty(name, value).Build()
	if err != nil {
		panic(err)
	}
	return ra.WithSession(sess)
}

// WithSession replaces the session.
func (ra *RuleAssert) WithSession(sess *sessionctx.Session) *RuleAssert {
	ra.session = sess
	return ra
}

// OverrideStats makes the statistics of node id be stats, whatever the stats
// calculator says. The id is the one given to PlanBuilder.ID.
func (ra *RuleAssert) OverrideStats(id string, stats *cardinality.PlanNodeStatsEstimate) *RuleAssert {
	ra.statsCalculator.setNodeStats(base.PlanNodeID(id), stats)
	return ra
}

// On builds the plan the rule is applied to. It panics when a plan is
// already bound.
func (ra *RuleAssert) On(planProvider func(b *PlanBuilder) base.PlanNode) *RuleAssert {
	if ra.plan != nil {
		panic(plannererrors.ErrPlanAlreadyBound.GenWithStackByArgs())
	}
	b := newPlanBuilder(ra.idAllocator)
	ra.plan = planProvider(b)
	ra.types = b.Types()
	return ra
}

// DoesNotFire fails t unless the rule does not fire.
func (ra *RuleAssert) DoesNotFire(t testing.TB) {
	t.Helper()
	require.NoError(t, ra.CheckDoesNotFire())
}

// Matches fails t unless the rule fires and produces a plan matching expected.
func (ra *RuleAssert) Matches(t testing.TB, expected *assertions.PlanMatchPattern) {
	t.Helper()
	require.NoError(t, ra.CheckMatches(expected))
}

// CheckDoesNotFire returns ErrRuleFired when the rule fires.
func (ra *RuleAssert) CheckDoesNotFire() error {
	app, err := ra.applyRule()
	if err != nil {
		return err
	}
	if !app.wasRuleApplied() {
		return nil
	}
	var text string
	err = ra.inTransaction(func(*sessionctx.Session) error {
		var formatErr error
		text, formatErr = planprinter.TextLogicalPlan(core.NewPlan(ra.plan, app.types, cost.EmptyStatsAndCosts()),
			planprinter.Options{Indent: ra.tester.planIndent})
		return formatErr
	})
	if err != nil {
		return err
	}
	return plannererrors.ErrRuleFired.GenWithStackByArgs(ra.rule.Name(), text)
}

// CheckMatches checks that the rule fires, returns a new plan with the output
// symbols of the original one, and that plan matches expected.
func (ra *RuleAssert) CheckMatches(expected *assertions.PlanMatchPattern) error {
	app, err := ra.applyRule()
	if err != nil {
		return err
	}
	name := ra.rule.Name()
	if !app.wasRuleApplied() {
		text, err := ra.formatPlan(ra.plan, app.types)
		if err != nil {
			return err
		}
		return plannererrors.ErrRuleDidNotFire.GenWithStackByArgs(name, text)
	}

	actual := app.transformedPlan(name)
	if actual == app.root || actual == ra.plan {
		text, err := ra.formatPlan(ra.plan, app.types)
		if err != nil {
			return err
		}
		return plannererrors.ErrRuleReturnedOriginal.GenWithStackByArgs(name, text)
	}

	expectedOutputs, actualOutputs := ra.plan.OutputSymbols(), actual.OutputSymbols()
	if !symbol.NewSet(expectedOutputs...).Equal(symbol.NewSet(actualOutputs...)) {
		text, err := ra.formatTransformedPlan(app, actual)
		if err != nil {
			return err
		}
		return plannererrors.ErrOutputSchemaMismatch.GenWithStackByArgs(name, formatSymbols(expectedOutputs), formatSymbols(actualOutputs), text)
	}

	err = ra.inTransaction(func(sess *sessionctx.Session) error {
		return assertions.AssertPlan(sess, app.statsProvider, core.NewPlan(actual, app.types, cost.EmptyStatsAndCosts()), app.lookup, expected)
	})
	if err == nil {
		metrics.RuleApplyCounter.WithLabelValues(name, metrics.ResultMatched).Inc()
		return nil
	}
	if !plannererrors.ErrPlanMismatch.Equal(err) {
		return err
	}
	text, err := ra.formatTransformedPlan(app, actual)
	if err != nil {
		return err
	}
	return plannererrors.ErrPlanMismatch.GenWithStackByArgs(expected, text)
}

func (ra *RuleAssert) mustHavePlan() {
	if ra.plan == nil {
		panic(plannererrors.ErrPlanNotBound.GenWithStackByArgs())
	}
}

func (ra *RuleAssert) applyRule() (*ruleApplication, error) {
	ra.mustHavePlan()
	symbolAllocator := symbol.NewAllocator(ra.types.AllTypes())
	m := memo.NewMemo(ra.idAllocator, ra.plan)
	lookup := m.Lookup()
	root, err := m.GetNode(m.GetRootGroup())
	if err != nil {
		return nil, err
	}

	var app *ruleApplication
	err = ra.inTransaction(func(sess *sessionctx.Session) error {
		ctx := ra.ruleContext(symbolAllocator, m, lookup, sess)
		start := time.Now()
		applied, applyErr := applyRule(ra.rule, root, ctx)
		ra.observe(sess, applied, applyErr, time.Since(start), ctx.GetWarningCollector().GetWarnings())
		app = applied
		return applyErr
	})
	if err != nil {
		return nil, err
	}
	app.memo = m
	app.root = root
	return app, nil
}

func (ra *RuleAssert) ruleContext(symbolAllocator *symbol.Allocator, m *memo.Memo, lookup cascadesbase.Lookup, sess *sessionctx.Session) *rule.Context {
	types := symbolAllocator.TypeView()
	stats := cardinality.NewCachingStatsProvider(ra.statsCalculator, m, lookup, sess, types)
	costs := cost.NewCachingCostProvider(ra.tester.costCalculator, stats, m, lookup, sess, types)
	return rule.NewContext(rule.ContextConfig{
		Lookup:          lookup,
		IDAllocator:     ra.idAllocator,
		SymbolAllocator: symbolAllocator,
		Session:         sess,
		StatsProvider:   stats,
		CostProvider:    costs,
	})
}

func (ra *RuleAssert) observe(sess *sessionctx.Session, app *ruleApplication, err error, elapsed time.Duration, warnings []error) {
	name := ra.rule.Name()
	result := metrics.ResultNotFired
	switch {
	case err != nil:
		result = metrics.ResultFailed
	case app.wasRuleApplied():
		result = metrics.ResultFired
	}
	metrics.RuleApplyCounter.WithLabelValues(name, result).Inc()
	metrics.RuleApplyDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	logger := logutil.RuleTestLogger().With(
		zap.String(logutil.LogFieldRule, name),
		zap.String(logutil.LogFieldQueryID, sess.QueryID().String()))
	logger.Debug("apply rule", zap.String("result", result), zap.Duration("elapsed", elapsed), zap.Error(err))
	for _, warn := range warnings {
		logger.Debug("rule warning", zap.Error(warn))
	}
}

// formatPlan renders plan, a tree without group references, with its
// statistics and costs.
func (ra *RuleAssert) formatPlan(plan base.PlanNode, types *symbol.TypeProvider) (string, error) {
	var text string
	err := ra.inTransaction(func(sess *sessionctx.Session) error {
		lookup := cascadesbase.NoLookup()
		stats := cardinality.NewCachingStatsProvider(ra.statsCalculator, nil, lookup, sess, types)
		costs := cost.NewCachingCostProvider(ra.tester.costCalculator, stats, nil, lookup, sess, types)
		var err error
		text, err = ra.renderPlan(plan, types, stats, costs, lookup)
		return err
	})
	return text, err
}

// formatTransformedPlan renders plan, the result of the application, with
// the statistics computed while applying the rule.
func (ra *RuleAssert) formatTransformedPlan(app *ruleApplication, plan base.PlanNode) (string, error) {
	var text string
	err := ra.inTransaction(func(sess *sessionctx.Session) error {
		costs := cost.NewCachingCostProvider(ra.tester.costCalculator, app.statsProvider, app.memo, app.lookup, sess, app.types)
		var err error
		text, err = ra.renderPlan(plan, app.types, app.statsProvider, costs, app.lookup)
		return err
	})
	return text, err
}

func (ra *RuleAssert) renderPlan(plan base.PlanNode, types *symbol.TypeProvider, stats cardinality.StatsProvider, costs cost.CostProvider, lookup cascadesbase.Lookup) (string, error) {
	sc := cost.EmptyStatsAndCosts()
	if ra.tester.printStats {
		var err error
		sc, err = cost.CreateStatsAndCosts(plan, stats, costs, lookup)
		if err != nil {
			return "", err
		}
	}
	return planprinter.TextLogicalPlan(core.NewPlan(plan, types, sc), planprinter.Options{
		Indent:     ra.tester.planIndent,
		PrintStats: ra.tester.printStats,
		Lookup:     lookup,
	})
}

// inTransaction runs f in its own transaction, with the catalog of the
// session registered in it.
func (ra *RuleAssert) inTransaction(f func(sess *sessionctx.Session) error) error {
	rt := ra.tester
	return sessiontxn.RunInTxn(context.Background(), rt.txnMgr, rt.accessControl, ra.session, func(_ context.Context, sess *sessionctx.Session) error {
		if catalog := sess.Catalog(); catalog != "" {
			if _, err := rt.metadata.GetCatalogHandle(sess, catalog); err != nil {
				return err
			}
		}
		return f(sess)
	})
}

// ruleApplication is the outcome of applying a rule once.
type ruleApplication struct {
	lookup        cascadesbase.Lookup
	statsProvider cardinality.StatsProvider
	types         *symbol.TypeProvider
	result        rule.Result

	memo *memo.Memo
	root base.PlanNode
}

// applyRule matches the pattern of r against node and applies r when it is
// enabled and the pattern matches.
func applyRule(r rule.Rule, node base.PlanNode, ctx *rule.Context) (*ruleApplication, error) {
	result := rule.EmptyResult()
	if r.IsEnabled(ctx.GetSession()) {
		capture := pattern.NewCapture(r.Name())
		matches, err := r.Pattern().CapturedAs(capture).Match(node, ctx.GetLookup())
		if err != nil {
			return nil, err
		}
		if len(matches) > 1 {
			return nil, plannererrors.ErrMultipleRootMatches.GenWithStackByArgs(r.Name(), len(matches))
		}
		if len(matches) == 1 {
			result, err = r.Apply(matches[0].Capture(capture), matches[0].Captures, ctx)
			if err != nil {
				return nil, err
			}
		}
	}
	return &ruleApplication{
		lookup:        ctx.GetLookup(),
		statsProvider: ctx.GetStatsProvider(),
		types:         ctx.GetSymbolAllocator().Types(),
		result:        result,
	}, nil
}

func (app *ruleApplication) wasRuleApplied() bool {
	return app != nil && !app.result.IsEmpty()
}

func (app *ruleApplication) transformedPlan(ruleName string) base.PlanNode {
	plan, ok := app.result.TransformedPlan()
	if !ok {
		panic(plannererrors.ErrNoTransformedPlan.GenWithStackByArgs(ruleName))
	}
	return plan
}

func formatSymbols(symbols []symbol.Symbol) string {
	return "[" + strings.Join(symbol.Names(symbols), ", ") + "]"
}
