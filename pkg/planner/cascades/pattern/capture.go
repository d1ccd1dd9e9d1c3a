// Copyright 2019 PingCAP, Inc.
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

package pattern

import (
	"fmt"

	"github.com/pingcap/planrule/pkg/planner/core/base"
	"go.uber.org/atomic"
)

var captureIDGen atomic.Uint64

// Capture is a token binding the node matched by a pattern. Every capture is
// unique, even when two captures share a description.
type Capture struct {
	id   uint64
	desc string
}

// NewCapture creates a unique Capture.
func NewCapture(desc ...string) *Capture {
	c := &Capture{id: captureIDGen.Inc()}
	if len(desc) > 0 {
		c.desc = desc[0]
	}
	return c
}

// String implements fmt.Stringer interface.
func (c *Capture) String() string {
	if c.desc == "" {
		return fmt.Sprintf("@%d", c.id)
	}
	return fmt.Sprintf("@%s#%d", c.desc, c.id)
}

// Captures binds captures to the nodes they matched. A Captures value is
// never modified, binding returns a new one.
type Captures struct {
	bindings map[*Capture]base.PlanNode
}

// EmptyCaptures returns a Captures without any binding.
func EmptyCaptures() Captures {
	return Captures{}
}

func (cs Captures) with(c *Capture, node base.PlanNode) Captures {
	bindings := make(map[*Capture]base.PlanNode, len(cs.bindings)+1)
	for k, v := range cs.bindings {
		bindings[k] = v
	}
	bindings[c] = node
	return Captures{bindings: bindings}
}

// Get returns the node bound to c.
func (cs Captures) Get(c *Capture) (base.PlanNode, bool) {
	node, ok := cs.bindings[c]
	return node, ok
}

// MustGet returns the node bound to c, it panics when c is not bound.
func (cs Captures) MustGet(c *Capture) base.PlanNode {
	node, ok := cs.bindings[c]
	if !ok {
		panic(fmt.Sprintf("capture %s is not bound", c))
	}
	return node
}

// Len returns the number of bindings.
func (cs Captures) Len() int {
	return len(cs.bindings)
}
