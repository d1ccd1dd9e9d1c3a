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

package cost

import (
	"github.com/pingcap/planrule/pkg/planner/cardinality"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
)

// CostProvider returns the cumulative cost of any node of a plan.
type CostProvider interface {
	GetCost(node base.PlanNode) (PlanCostEstimate, error)
}

// GroupCostCache stores the cumulative cost of memo groups.
type GroupCostCache interface {
	Cost(group cascadesbase.GroupID) (PlanCostEstimate, bool)
	StoreCost(group cascadesbase.GroupID, cost PlanCostEstimate)
}

// CachingCostProvider computes cumulative costs, the local cost of a node
// plus the cumulative costs of its children, and caches them per node.
type CachingCostProvider struct {
	calculator CostCalculator
	stats      cardinality.StatsProvider
	memo       GroupCostCache
	lookup     cascadesbase.Lookup
	sess       *sessionctx.Session
	types      *symbol.TypeProvider

	cache map[base.PlanNode]PlanCostEstimate
}

var _ CostProvider = &CachingCostProvider{}

// NewCachingCostProvider creates a CachingCostProvider. memo may be nil, in
// which case group references can not be handled.
func NewCachingCostProvider(calculator CostCalculator, stats cardinality.StatsProvider, memo GroupCostCache,
	lookup cascadesbase.Lookup, sess *sessionctx.Session, types *symbol.TypeProvider) *CachingCostProvider {
	return &CachingCostProvider{
		calculator: calculator,
		stats:      stats,
		memo:       memo,
		lookup:     lookup,
		sess:       sess,
		types:      types,
		cache:      make(map[base.PlanNode]PlanCostEstimate),
	}
}

// GetCost implements CostProvider interface.
func (p *CachingCostProvider) GetCost(node base.PlanNode) (PlanCostEstimate, error) {
	if ref, ok := node.(*cascadesbase.GroupReference); ok {
		return p.getGroupCost(ref)
	}
	if c, ok := p.cache[node]; ok {
		return c, nil
	}
	cumulative, err := p.calculator.CalculateCost(node, p.stats, p.lookup, p.sess, p.types)
	if err != nil {
		return Unknown(), err
	}
	for _, child := range node.Children() {
		childCost, err := p.GetCost(child)
		if err != nil {
			return Unknown(), err
		}
		cumulative = cumulative.Add(childCost)
	}
	p.cache[node] = cumulative
	return cumulative, nil
}

func (p *CachingCostProvider) getGroupCost(ref *cascadesbase.GroupReference) (PlanCostEstimate, error) {
	if p.memo == nil {
		return Unknown(), plannererrors.ErrGroupReferenceNoMemo.GenWithStackByArgs("CachingCostProvider")
	}
	if c, ok := p.memo.Cost(ref.GroupID()); ok {
		return c, nil
	}
	node, err := p.lookup.Resolve(ref)
	if err != nil {
		return Unknown(), err
	}
	c, err := p.GetCost(node)
	if err != nil {
		return Unknown(), err
	}
	p.memo.StoreCost(ref.GroupID(), c)
	return c, nil
}
