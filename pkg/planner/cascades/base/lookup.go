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
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
)

// Lookup resolves group references to the nodes they stand for. Any other
// node resolves to itself. Resolving the same node twice during one rule
// application must give the same result.
type Lookup interface {
	// Resolve resolves node to exactly one concrete node.
	Resolve(node base.PlanNode) (base.PlanNode, error)

	// ResolveGroup resolves node to every candidate it may stand for.
	ResolveGroup(node base.PlanNode) ([]base.PlanNode, error)
}

// GroupResolver returns the candidates of a group reference.
type GroupResolver func(ref *GroupReference) ([]base.PlanNode, error)

type resolverLookup struct {
	resolver GroupResolver
}

// LookupFrom builds a Lookup on top of resolver.
func LookupFrom(resolver GroupResolver) Lookup {
	return &resolverLookup{resolver: resolver}
}

// NoLookup returns a Lookup that refuses group references.
func NoLookup() Lookup {
	return LookupFrom(func(ref *GroupReference) ([]base.PlanNode, error) {
		return nil, plannererrors.ErrGroupReferenceNoMemo.GenWithStackByArgs("Lookup")
	})
}

// ResolveGroup implements Lookup interface.
func (l *resolverLookup) ResolveGroup(node base.PlanNode) ([]base.PlanNode, error) {
	ref, ok := node.(*GroupReference)
	if !ok {
		return []base.PlanNode{node}, nil
	}
	return l.resolver(ref)
}

// Resolve implements Lookup interface.
func (l *resolverLookup) Resolve(node base.PlanNode) (base.PlanNode, error) {
	candidates, err := l.ResolveGroup(node)
	if err != nil {
		return nil, err
	}
	if len(candidates) != 1 {
		return nil, plannererrors.ErrAmbiguousResolution.GenWithStackByArgs(node.ID(), len(candidates))
	}
	return candidates[0], nil
}

// MustResolve resolves node and panics on error. It is meant for callers that
// already know node is resolvable, e.g. the children of a matched node.
func MustResolve(lookup Lookup, node base.PlanNode) base.PlanNode {
	resolved, err := lookup.Resolve(node)
	if err != nil {
		panic(err)
	}
	return resolved
}
