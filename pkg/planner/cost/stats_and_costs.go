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
	"maps"

	"github.com/pingcap/planrule/pkg/planner/cardinality"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/core/base"
)

// StatsAndCosts holds the statistics and cumulative costs of the nodes of a
// plan tree, keyed by node id.
type StatsAndCosts struct {
	stats map[base.PlanNodeID]*cardinality.PlanNodeStatsEstimate
	costs map[base.PlanNodeID]PlanCostEstimate
}

// EmptyStatsAndCosts returns a StatsAndCosts without any entry.
func EmptyStatsAndCosts() *StatsAndCosts {
	return &StatsAndCosts{
		stats: make(map[base.PlanNodeID]*cardinality.PlanNodeStatsEstimate),
		costs: make(map[base.PlanNodeID]PlanCostEstimate),
	}
}

// CreateStatsAndCosts collects the statistics and costs of every node reachable
// from root. Group references are resolved through lookup and the entries are
// recorded for the resolved nodes.
func CreateStatsAndCosts(root base.PlanNode, stats cardinality.StatsProvider, costs CostProvider, lookup cascadesbase.Lookup) (*StatsAndCosts, error) {
	sc := EmptyStatsAndCosts()
	if err := sc.collect(root, stats, costs, lookup); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *StatsAndCosts) collect(node base.PlanNode, stats cardinality.StatsProvider, costs CostProvider, lookup cascadesbase.Lookup) error {
	node, err := lookup.Resolve(node)
	if err != nil {
		return err
	}
	est, err := stats.GetStats(node)
	if err != nil {
		return err
	}
	c, err := costs.GetCost(node)
	if err != nil {
		return err
	}
	sc.stats[node.ID()] = est
	sc.costs[node.ID()] = c
	for _, child := range node.Children() {
		if err := sc.collect(child, stats, costs, lookup); err != nil {
			return err
		}
	}
	return nil
}

// IsEmpty checks whether there is no entry.
func (sc *StatsAndCosts) IsEmpty() bool {
	return len(sc.stats) == 0 && len(sc.costs) == 0
}

// Stats returns the statistics of node id.
func (sc *StatsAndCosts) Stats(id base.PlanNodeID) (*cardinality.PlanNodeStatsEstimate, bool) {
	est, ok := sc.stats[id]
	return est, ok
}

// Cost returns the cumulative cost of node id.
func (sc *StatsAndCosts) Cost(id base.PlanNodeID) (PlanCostEstimate, bool) {
	c, ok := sc.costs[id]
	return c, ok
}

// Clone returns a copy of sc.
func (sc *StatsAndCosts) Clone() *StatsAndCosts {
	return &StatsAndCosts{stats: maps.Clone(sc.stats), costs: maps.Clone(sc.costs)}
}
