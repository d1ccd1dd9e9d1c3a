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
	"container/list"
	"slices"

	"github.com/pingcap/planrule/pkg/planner/cardinality"
	"github.com/pingcap/planrule/pkg/planner/cascades/base"
	corebase "github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/cost"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
	"github.com/pingcap/planrule/pkg/util/intest"
	"github.com/pingcap/planrule/pkg/util/logutil"
	"go.uber.org/zap"
)

var (
	_ cardinality.GroupStatsCache = &Memo{}
	_ cost.GroupCostCache         = &Memo{}
)

// Memo is the main structure of the memo package.
type Memo struct {
	// idAllocator allocates the ids of the group references.
	idAllocator *corebase.IDAllocator

	// groupIDGen is the incremental group id for internal usage.
	groupIDGen *GroupIDGenerator

	// rootGroup is the root group of the memo.
	rootGroup base.GroupID

	// groups is the list of all groups in the memo, in creation order.
	groups *list.List

	// groupID2Group is the map from group id to group.
	groupID2Group map[base.GroupID]*list.Element
}

// NewMemo copies plan into a new memo, one group per node. The children of
// every node are replaced by references to the groups of the children.
//
//	  lp                          ┌──────────┐
//	 /  \                         │ memo:    │
//	lp   lp       --NewMemo->     │  G(lp)   │
//	    /  \                      │   /  \   │
//	  ...  ...                    │  G    G  │
//	                              └──────────┘
func NewMemo(idAllocator *corebase.IDAllocator, plan corebase.PlanNode) *Memo {
	mm := &Memo{
		idAllocator:   idAllocator,
		groupIDGen:    &GroupIDGenerator{},
		groups:        list.New(),
		groupID2Group: make(map[base.GroupID]*list.Element),
	}
	mm.rootGroup = mm.insertRecursive(plan)
	return mm
}

// insertRecursive creates the group of node and of every non reference child.
func (mm *Memo) insertRecursive(node corebase.PlanNode) base.GroupID {
	intest.Assert(!isGroupReference(node), "a group reference can not be a group representative")
	groupID := mm.groupIDGen.NextGroupID()
	group := NewGroup(groupID, nil)
	mm.groupID2Group[groupID] = mm.groups.PushBack(group)
	group.node = mm.referenceChildren(groupID, node)
	return groupID
}

// referenceChildren returns node with every child replaced by a group
// reference, inserting the children which are not references yet. It records
// the new references as held by parent.
func (mm *Memo) referenceChildren(parent base.GroupID, node corebase.PlanNode) corebase.PlanNode {
	children := node.Children()
	if len(children) == 0 {
		return node
	}
	refs := make([]corebase.PlanNode, 0, len(children))
	for _, child := range children {
		ref, ok := child.(*base.GroupReference)
		if !ok {
			childGroup := mm.insertRecursive(child)
			ref = base.NewGroupReference(mm.idAllocator.NextID(), childGroup, child.OutputSymbols())
		}
		mm.mustGetGroup(ref.GroupID()).addReference(parent)
		refs = append(refs, ref)
	}
	return node.ReplaceChildren(refs)
}

func isGroupReference(node corebase.PlanNode) bool {
	_, ok := node.(*base.GroupReference)
	return ok
}

// GetRootGroup gets the root group of the memo.
func (mm *Memo) GetRootGroup() base.GroupID {
	return mm.rootGroup
}

// GetGroup returns the group of id.
func (mm *Memo) GetGroup(id base.GroupID) (*Group, error) {
	elem, ok := mm.groupID2Group[id]
	if !ok {
		return nil, plannererrors.ErrUnknownGroup.GenWithStackByArgs(int(id))
	}
	return elem.Value.(*Group), nil
}

func (mm *Memo) mustGetGroup(id base.GroupID) *Group {
	group, err := mm.GetGroup(id)
	if err != nil {
		panic(err)
	}
	return group
}

// GetNode returns the current representative of group.
func (mm *Memo) GetNode(group base.GroupID) (corebase.PlanNode, error) {
	g, err := mm.GetGroup(group)
	if err != nil {
		return nil, err
	}
	return g.node, nil
}

// Resolve returns the current representative of the group ref points at.
func (mm *Memo) Resolve(ref *base.GroupReference) (corebase.PlanNode, error) {
	return mm.GetNode(ref.GroupID())
}

// Lookup returns a Lookup resolving every group reference to the single
// representative of its group.
func (mm *Memo) Lookup() base.Lookup {
	return base.LookupFrom(func(ref *base.GroupReference) ([]corebase.PlanNode, error) {
		node, err := mm.Resolve(ref)
		if err != nil {
			return nil, err
		}
		return []corebase.PlanNode{node}, nil
	})
}

// Replace makes node the representative of group. The children of node which
// are not group references are inserted as new groups. Groups nothing refers
// to anymore are evicted. The stats and cost of group and of all its
// ancestors are dropped.
func (mm *Memo) Replace(group base.GroupID, node corebase.PlanNode, reason string) (corebase.PlanNode, error) {
	g, err := mm.GetGroup(group)
	if err != nil {
		return nil, err
	}
	for _, child := range node.Children() {
		if ref, ok := child.(*base.GroupReference); ok {
			if _, err := mm.GetGroup(ref.GroupID()); err != nil {
				return nil, err
			}
		}
	}
	if ref, ok := node.(*base.GroupReference); ok {
		// Replacing a group by a reference means taking over the referenced representative.
		resolved, err := mm.Resolve(ref)
		if err != nil {
			return nil, err
		}
		node = resolved
	}
	old := g.node
	g.node = mm.referenceChildren(group, node)
	for _, child := range old.Children() {
		mm.dereference(group, child.(*base.GroupReference).GroupID())
	}
	mm.invalidate(group)
	logutil.BgLogger().Debug("memo group replaced",
		zap.Int("group", int(group)),
		zap.String("old", old.TP()),
		zap.String("new", g.node.TP()),
		zap.String("reason", reason))
	return g.node, nil
}

// dereference drops a reference from parent to child and evicts child, and
// recursively its own children, when nothing refers to it anymore.
func (mm *Memo) dereference(parent, child base.GroupID) {
	g := mm.mustGetGroup(child)
	g.removeReference(parent)
	if g.ReferenceCount() > 0 || child == mm.rootGroup {
		return
	}
	mm.groups.Remove(mm.groupID2Group[child])
	delete(mm.groupID2Group, child)
	for _, grandChild := range g.node.Children() {
		mm.dereference(child, grandChild.(*base.GroupReference).GroupID())
	}
}

// invalidate drops the derived properties of group and its ancestors.
func (mm *Memo) invalidate(group base.GroupID) {
	visited := make(map[base.GroupID]struct{})
	pending := []base.GroupID{group}
	for len(pending) > 0 {
		id := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		g := mm.mustGetGroup(id)
		g.invalidate()
		pending = append(pending, g.Parents()...)
	}
}

// Extract rebuilds the whole plan tree, resolving every group reference.
func (mm *Memo) Extract() (corebase.PlanNode, error) {
	return mm.extract(mm.rootGroup)
}

func (mm *Memo) extract(group base.GroupID) (corebase.PlanNode, error) {
	node, err := mm.GetNode(group)
	if err != nil {
		return nil, err
	}
	children := node.Children()
	if len(children) == 0 {
		return node, nil
	}
	extracted := make([]corebase.PlanNode, 0, len(children))
	for _, child := range children {
		c, err := mm.extract(child.(*base.GroupReference).GroupID())
		if err != nil {
			return nil, err
		}
		extracted = append(extracted, c)
	}
	return node.ReplaceChildren(extracted), nil
}

// GroupCount returns the number of groups.
func (mm *Memo) GroupCount() int {
	return mm.groups.Len()
}

// GroupIDs returns the ids of all groups, sorted.
func (mm *Memo) GroupIDs() []base.GroupID {
	ids := make([]base.GroupID, 0, mm.groups.Len())
	mm.ForEachGroup(func(g *Group) bool {
		ids = append(ids, g.groupID)
		return true
	})
	slices.Sort(ids)
	return ids
}

// ForEachGroup traverse the groups with f call on them each.
func (mm *Memo) ForEachGroup(f func(g *Group) bool) {
	for elem := mm.groups.Front(); elem != nil; elem = elem.Next() {
		if !f(elem.Value.(*Group)) {
			break
		}
	}
}

// Stats implements cardinality.GroupStatsCache interface.
func (mm *Memo) Stats(group base.GroupID) (*cardinality.PlanNodeStatsEstimate, bool) {
	g, err := mm.GetGroup(group)
	if err != nil || g.stats == nil {
		return nil, false
	}
	return g.stats, true
}

// StoreStats implements cardinality.GroupStatsCache interface.
func (mm *Memo) StoreStats(group base.GroupID, stats *cardinality.PlanNodeStatsEstimate) {
	mm.mustGetGroup(group).stats = stats
}

// Cost implements cost.GroupCostCache interface.
func (mm *Memo) Cost(group base.GroupID) (cost.PlanCostEstimate, bool) {
	g, err := mm.GetGroup(group)
	if err != nil || g.cost == nil {
		return cost.PlanCostEstimate{}, false
	}
	return *g.cost, true
}

// StoreCost implements cost.GroupCostCache interface.
func (mm *Memo) StoreCost(group base.GroupID, c cost.PlanCostEstimate) {
	mm.mustGetGroup(group).cost = &c
}
