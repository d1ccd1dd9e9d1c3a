// Copyright 2024 PingCAP, Inc.
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

package memo

import (
	"maps"
	"slices"

	"github.com/pingcap/planrule/pkg/planner/cardinality"
	"github.com/pingcap/planrule/pkg/planner/cascades/base"
	corebase "github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/cost"
)

// GroupIDGenerator is used to generate group id.
type GroupIDGenerator struct {
	id base.GroupID
}

// NextGroupID generates the next group id.
func (gi *GroupIDGenerator) NextGroupID() base.GroupID {
	id := gi.id
	gi.id++
	return id
}

// Group is an equivalence class of plan nodes. Groups in this memo keep a
// single representative, whose children are references to other groups.
type Group struct {
	// groupID indicates the uniqueness of this group.
	groupID base.GroupID

	// node is the current representative.
	node corebase.PlanNode

	// incoming counts the references held by every parent group.
	incoming map[base.GroupID]int

	// stats and cost are derived from node, they are dropped whenever node
	// or any descendant changes.
	stats *cardinality.PlanNodeStatsEstimate
	cost  *cost.PlanCostEstimate
}

// NewGroup creates a new Group holding node.
func NewGroup(groupID base.GroupID, node corebase.PlanNode) *Group {
	return &Group{
		groupID:  groupID,
		node:     node,
		incoming: make(map[base.GroupID]int),
	}
}

// GetGroupID returns the group id.
func (g *Group) GetGroupID() base.GroupID {
	return g.groupID
}

// GetNode returns the representative node.
func (g *Group) GetNode() corebase.PlanNode {
	return g.node
}

// ReferenceCount returns the number of references pointing at the group.
func (g *Group) ReferenceCount() int {
	total := 0
	for _, cnt := range g.incoming {
		total += cnt
	}
	return total
}

// Parents returns the groups referencing this group.
func (g *Group) Parents() []base.GroupID {
	return slices.Collect(maps.Keys(g.incoming))
}

func (g *Group) addReference(parent base.GroupID) {
	g.incoming[parent]++
}

func (g *Group) removeReference(parent base.GroupID) {
	g.incoming[parent]--
	if g.incoming[parent] <= 0 {
		delete(g.incoming, parent)
	}
}

func (g *Group) invalidate() {
	g.stats = nil
	g.cost = nil
}
