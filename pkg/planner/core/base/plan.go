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
	"strconv"

	"github.com/pingcap/planrule/pkg/planner/symbol"
)

// PlanNodeID is the identity of a plan node.
type PlanNodeID string

// String implements fmt.Stringer interface.
func (id PlanNodeID) String() string {
	return string(id)
}

// PlanNode is a node of a logical plan tree. A PlanNode is never mutated once
// it has been built: rewrites produce new nodes.
type PlanNode interface {
	// ID returns the identity of the node.
	ID() PlanNodeID

	// TP returns the operator name, e.g. "Selection".
	TP() string

	// Children returns the inputs of the node.
	Children() []PlanNode

	// OutputSymbols returns the symbols produced by this node. They only depend
	// on the node itself and the output symbols of its children.
	OutputSymbols() []symbol.Symbol

	// ReplaceChildren returns a copy of the node, with the same id, reading
	// from children instead.
	ReplaceChildren(children []PlanNode) PlanNode

	// ExplainInfo returns operator specific information for plan printing.
	ExplainInfo() string
}

// IDAllocator allocates PlanNodeIDs monotonically.
type IDAllocator struct {
	nextID int
}

// NewIDAllocator creates an IDAllocator starting from 0.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// NextID returns a new PlanNodeID.
func (a *IDAllocator) NextID() PlanNodeID {
	id := PlanNodeID(strconv.Itoa(a.nextID))
	a.nextID++
	return id
}

// OutputSymbolSet returns the output symbols of p as an unordered set.
func OutputSymbolSet(p PlanNode) symbol.Set {
	return symbol.NewSet(p.OutputSymbols()...)
}
