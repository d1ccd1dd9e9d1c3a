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

package core

import (
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/cost"
	"github.com/pingcap/planrule/pkg/planner/symbol"
)

// Plan is a plan tree together with the types of its symbols and, possibly
// empty, the statistics and costs of its nodes.
type Plan struct {
	root          base.PlanNode
	types         *symbol.TypeProvider
	statsAndCosts *cost.StatsAndCosts
}

// NewPlan creates a Plan. A nil statsAndCosts means no statistics.
func NewPlan(root base.PlanNode, types *symbol.TypeProvider, statsAndCosts *cost.StatsAndCosts) *Plan {
	if statsAndCosts == nil {
		statsAndCosts = cost.EmptyStatsAndCosts()
	}
	return &Plan{root: root, types: types, statsAndCosts: statsAndCosts}
}

// Root returns the root node.
func (p *Plan) Root() base.PlanNode {
	return p.root
}

// Types returns the types of the symbols of the plan.
func (p *Plan) Types() *symbol.TypeProvider {
	return p.types
}

// StatsAndCosts returns the statistics and costs of the plan nodes.
func (p *Plan) StatsAndCosts() *cost.StatsAndCosts {
	return p.statsAndCosts
}
