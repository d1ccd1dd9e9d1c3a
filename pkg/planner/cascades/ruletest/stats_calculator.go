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
	"github.com/pingcap/planrule/pkg/planner/cardinality"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/sessionctx"
)

var _ cardinality.StatsCalculator = &testingStatsCalculator{}

// testingStatsCalculator returns the overridden statistics of a node verbatim
// and delegates the other nodes.
type testingStatsCalculator struct {
	delegate cardinality.StatsCalculator
	stats    map[base.PlanNodeID]*cardinality.PlanNodeStatsEstimate
}

func newTestingStatsCalculator(delegate cardinality.StatsCalculator) *testingStatsCalculator {
	return &testingStatsCalculator{
		delegate: delegate,
		stats:    make(map[base.PlanNodeID]*cardinality.PlanNodeStatsEstimate),
	}
}

// CalculateStats implements cardinality.StatsCalculator interface.
func (c *testingStatsCalculator) CalculateStats(node base.PlanNode, sourceStats cardinality.StatsProvider, lookup cascadesbase.Lookup,
	sess *sessionctx.Session, types *symbol.TypeProvider) (*cardinality.PlanNodeStatsEstimate, error) {
	if stats, ok := c.stats[node.ID()]; ok {
		return stats, nil
	}
	return c.delegate.CalculateStats(node, sourceStats, lookup, sess, types)
}

func (c *testingStatsCalculator) setNodeStats(id base.PlanNodeID, stats *cardinality.PlanNodeStatsEstimate) {
	c.stats[id] = stats
}
