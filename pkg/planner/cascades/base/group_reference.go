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

package base

import (
	"fmt"

	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/util/intest"
)

// GroupID is the identity of a memo group.
type GroupID int

// String implements fmt.Stringer interface.
func (id GroupID) String() string {
	return fmt.Sprintf("G%d", int(id))
}

// TypeGroupReference is the operator name of GroupReference.
const TypeGroupReference = "GroupReference"

// GroupReference is a leaf placeholder standing for the current representative
// of a memo group. It carries the output symbols of the group so that its
// parent can compute its own output without resolving the group.
type GroupReference struct {
	id      base.PlanNodeID
	groupID GroupID
	outputs []symbol.Symbol
}

var _ base.PlanNode = &GroupReference{}

// NewGroupReference creates a GroupReference.
func NewGroupReference(id base.PlanNodeID, groupID GroupID, outputs []symbol.Symbol) *GroupReference {
	return &GroupReference{id: id, groupID: groupID, outputs: outputs}
}

// GroupID returns the referenced group.
func (g *GroupReference) GroupID() GroupID {
	return g.groupID
}

// ID implements base.PlanNode interface.
func (g *GroupReference) ID() base.PlanNodeID {
	return g.id
}

// TP implements base.PlanNode interface.
func (*GroupReference) TP() string {
	return TypeGroupReference
}

// Children implements base.PlanNode interface.
func (*GroupReference) Children() []base.PlanNode {
	return nil
}

// OutputSymbols implements base.PlanNode interface.
func (g *GroupReference) OutputSymbols() []symbol.Symbol {
	return g.outputs
}

// ReplaceChildren implements base.PlanNode interface.
func (g *GroupReference) ReplaceChildren(children []base.PlanNode) base.PlanNode {
	intest.Assert(len(children) == 0, "group reference has no children")
	return g
}

// ExplainInfo implements base.PlanNode interface.
func (g *GroupReference) ExplainInfo() string {
	return fmt.Sprintf("group:%d", int(g.groupID))
}
