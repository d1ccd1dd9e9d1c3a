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
	"maps"
	"slices"

	"github.com/pingcap/planrule/pkg/config"
	"github.com/pingcap/planrule/pkg/infoschema"
	"github.com/pingcap/planrule/pkg/planner/cardinality"
	"github.com/pingcap/planrule/pkg/planner/cascades/pattern"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule"
	"github.com/pingcap/planrule/pkg/planner/cascades/rule/ruleset"
	"github.com/pingcap/planrule/pkg/planner/cost"
	"github.com/pingcap/planrule/pkg/privilege"
	"github.com/pingcap/planrule/pkg/privilege/privileges"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/sessiontxn"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
)

// RuleTester holds what every RuleAssert it creates shares: the metadata,
// the transaction manager, the access control, the stats and cost
// calculators and the baseline session.
type RuleTester struct {
	txnMgr          *sessiontxn.TransactionManager
	metadata        *infoschema.Metadata
	accessControl   privilege.AccessControl
	statsCalculator cardinality.StatsCalculator
	costCalculator  cost.CostCalculator
	session         *sessionctx.Session
	planIndent      int
	printStats      bool
}

// Option customizes a RuleTester.
type Option func(*RuleTester)

// WithCatalog adds a catalog holding tables to the metadata.
func WithCatalog(name string, tables ...*infoschema.TableInfo) Option {
	return func(rt *RuleTester) {
		rt.metadata.CreateCatalog(name)
		for _, tbl := range tables {
			if err := rt.metadata.AddTable(name, tbl); err != nil {
				panic(err)
			}
		}
	}
}

// WithAccessControl replaces the default AccessControl granting everything.
func WithAccessControl(ac privilege.AccessControl) Option {
	return func(rt *RuleTester) {
		rt.accessControl = ac
	}
}

// WithStatsCalculator replaces the default stats calculator.
func WithStatsCalculator(calculator cardinality.StatsCalculator) Option {
	return func(rt *RuleTester) {
		rt.statsCalculator = calculator
	}
}

// WithCostCalculator replaces the default cost calculator.
func WithCostCalculator(calculator cost.CostCalculator) Option {
	return func(rt *RuleTester) {
		rt.costCalculator = calculator
	}
}

// WithBaseSession replaces the baseline session built from the config.
func WithBaseSession(sess *sessionctx.Session) Option {
	return func(rt *RuleTester) {
		rt.session = sess
	}
}

// NewRuleTester creates a RuleTester. Unless options say otherwise, the
// metadata holds the tpch catalog, every access is granted and the baseline
// session is built from the rule-test section of the global config.
func NewRuleTester(opts ...Option) *RuleTester {
	cfg := config.GetGlobalConfig().RuleTest
	txnMgr := sessiontxn.NewTransactionManager()
	metadata := infoschema.NewTPCHMetadata(txnMgr)
	rt := &RuleTester{
		txnMgr:          txnMgr,
		metadata:        metadata,
		accessControl:   privileges.AllowAll(),
		statsCalculator: cardinality.NewStatsCalculator(metadata),
		costCalculator:  cost.NewCostCalculator(),
		session:         mustBuildSession(cfg),
		planIndent:      cfg.PlanIndent,
		printStats:      cfg.PrintStats,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func mustBuildSession(cfg config.RuleTest) *sessionctx.Session {
	b := sessionctx.NewBuilder(nil).
		SetIdentity(sessionctx.Identity{Username: cfg.User}).
		SetCatalog(cfg.Catalog).
		SetSchema(cfg.Schema)
	for _, name := range slices.Sorted(maps.Keys(cfg.SystemProperties)) {
		b.SetSystemProperty(name, cfg.SystemProperties[name])
	}
	sess, err := b.Build()
	if err != nil {
		panic(err)
	}
	return sess
}

// Session returns the baseline session.
func (rt *RuleTester) Session() *sessionctx.Session {
	return rt.session
}

// Metadata returns the metadata.
func (rt *RuleTester) Metadata() *infoschema.Metadata {
	return rt.metadata
}

// TransactionManager returns the transaction manager.
func (rt *RuleTester) TransactionManager() *sessiontxn.TransactionManager {
	return rt.txnMgr
}

// AssertThat starts the test of r.
func (rt *RuleTester) AssertThat(r rule.Rule) *RuleAssert {
	return newRuleAssert(rt, r)
}

// AssertThatRule starts the test of the rule named name. It panics when no
// such rule exists.
func (rt *RuleTester) AssertThatRule(name string) *RuleAssert {
	r, ok := ruleset.GetRuleByName(name)
	if !ok {
		panic(plannererrors.ErrUnknownRule.GenWithStackByArgs(name))
	}
	return rt.AssertThat(r)
}

// AssertThatRuleSet starts the test of every rule of the set tp rooted at
// operand, skipping the rules the baseline session disables.
func (rt *RuleTester) AssertThatRuleSet(operand pattern.Operand, tp ruleset.SetType) []*RuleAssert {
	ors, ok := ruleset.DefaultRuleSets[operand]
	if !ok {
		return nil
	}
	enabled := ors.Set(tp).Filter(ruleset.EnabledRuleMask(rt.session))
	asserts := make([]*RuleAssert, 0, len(enabled))
	for _, r := range enabled {
		asserts = append(asserts, rt.AssertThat(r))
	}
	return asserts
}
