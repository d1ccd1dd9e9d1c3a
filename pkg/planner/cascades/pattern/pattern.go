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
	"slices"

	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/core/base"
)

// Pattern defines the match pattern for a rule.
// It's a tree-like structure and each node in the tree is an Operand.
// A child pattern matches the child at the same position, a pattern with
// children only matches nodes with the same number of children. A pattern
// without children does not constrain the children of the node.
type Pattern struct {
	Operand  Operand
	Children []*Pattern

	predicates []func(base.PlanNode) bool
	capture    *Capture
}

// NewPattern creates a pattern node according to the Operand.
func NewPattern(operand Operand) *Pattern {
	return &Pattern{Operand: operand}
}

// SetChildren sets the Children information for a pattern node.
func (p *Pattern) SetChildren(children ...*Pattern) {
	p.Children = children
}

// BuildPattern builds a Pattern from Operand and child Patterns.
// Used in Pattern() of Rule interface to generate a Pattern.
func BuildPattern(operand Operand, children ...*Pattern) *Pattern {
	p := &Pattern{Operand: operand}
	p.SetChildren(children...)
	return p
}

func (p *Pattern) clone() *Pattern {
	np := *p
	np.Children = slices.Clone(p.Children)
	np.predicates = slices.Clone(p.predicates)
	return &np
}

// Matching returns a copy of p which additionally requires pred to hold.
func (p *Pattern) Matching(pred func(base.PlanNode) bool) *Pattern {
	np := p.clone()
	np.predicates = append(np.predicates, pred)
	return np
}

// CapturedAs returns a copy of p which binds the matched node to c. p itself
// is left untouched.
func (p *Pattern) CapturedAs(c *Capture) *Pattern {
	np := p.clone()
	np.capture = c
	return np
}

// Typed adapts a predicate on a concrete node type to Matching. Nodes of
// another type never satisfy it.
func Typed[T base.PlanNode](pred func(T) bool) func(base.PlanNode) bool {
	return func(node base.PlanNode) bool {
		x, ok := node.(T)
		return ok && pred(x)
	}
}

// Match is one way a node satisfies a pattern.
type Match struct {
	// Value is the resolved node matched by the root of the pattern.
	Value    base.PlanNode
	Captures Captures
}

// Capture returns the node bound to c.
func (m Match) Capture(c *Capture) base.PlanNode {
	return m.Captures.MustGet(c)
}

// Match matches node against the pattern. The node and every visited child
// are resolved through lookup, and every candidate of a resolution is tried,
// so the result is the cross product of the matches of all candidates.
func (p *Pattern) Match(node base.PlanNode, lookup cascadesbase.Lookup) ([]Match, error) {
	return p.matchWith(node, lookup, EmptyCaptures())
}

func (p *Pattern) matchWith(node base.PlanNode, lookup cascadesbase.Lookup, captures Captures) ([]Match, error) {
	candidates, err := lookup.ResolveGroup(node)
	if err != nil {
		return nil, err
	}
	var matches []Match
	for _, candidate := range candidates {
		if !p.matchesNode(candidate) {
			continue
		}
		bound := captures
		if p.capture != nil {
			bound = bound.with(p.capture, candidate)
		}
		if len(p.Children) == 0 {
			matches = append(matches, Match{Value: candidate, Captures: bound})
			continue
		}
		children := candidate.Children()
		if len(children) != len(p.Children) {
			continue
		}
		partials := []Captures{bound}
		for i, childPattern := range p.Children {
			var next []Captures
			for _, partial := range partials {
				childMatches, err := childPattern.matchWith(children[i], lookup, partial)
				if err != nil {
					return nil, err
				}
				for _, m := range childMatches {
					next = append(next, m.Captures)
				}
			}
			partials = next
			if len(partials) == 0 {
				break
			}
		}
		for _, partial := range partials {
			matches = append(matches, Match{Value: candidate, Captures: partial})
		}
	}
	return matches, nil
}

func (p *Pattern) matchesNode(node base.PlanNode) bool {
	if !p.Operand.Match(GetOperand(node)) {
		return false
	}
	for _, pred := range p.predicates {
		if !pred(node) {
			return false
		}
	}
	return true
}
