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
	"github.com/pingcap/planrule/pkg/planner/cardinality"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/core/operator/logicalop"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
)

// CostCalculator computes the local cost of a node, excluding its children.
type CostCalculator interface {
	CalculateCost(node base.PlanNode, stats cardinality.StatsProvider, lookup cascadesbase.Lookup,
		sess *sessionctx.Session, types *symbol.TypeProvider) (PlanCostEstimate, error)
}

type costCalculator struct{}

// NewCostCalculator creates the default CostCalculator. Every operator is
// charged the bytes it reads as cpu and the bytes it keeps as memory.
func NewCostCalculator() CostCalculator {
	return costCalculator{}
}

// CalculateCost implements CostCalculator interface.
func (costCalculator) CalculateCost(node base.PlanNode, stats cardinality.StatsProvider, _ cascadesbase.Lookup,
	_ *sessionctx.Session, types *symbol.TypeProvider) (PlanCostEstimate, error) {
	switch x := node.(type) {
	case *logicalop.LogicalTableScan:
		output, err := outputSize(x, stats, types)
		if err != nil {
			return Unknown(), err
		}
		return PlanCostEstimate{CPU: output}, nil
	case *logicalop.LogicalValues:
		return Zero(), nil
	case *logicalop.LogicalSelection, *logicalop.LogicalProjection, *logicalop.LogicalLimit:
		input, err := outputSize(x.Children()[0], stats, types)
		if err != nil {
			return Unknown(), err
		}
		return PlanCostEstimate{CPU: input}, nil
	case *logicalop.LogicalSort:
		input, err := outputSize(x.Child(0), stats, types)
		if err != nil {
			return Unknown(), err
		}
		return PlanCostEstimate{CPU: input, Memory: input}, nil
	case *logicalop.LogicalTopN, *logicalop.LogicalAggregation:
		input, err := outputSize(x.Children()[0], stats, types)
		if err != nil {
			return Unknown(), err
		}
		output, err := outputSize(x, stats, types)
		if err != nil {
			return Unknown(), err
		}
		return PlanCostEstimate{CPU: input, Memory: output}, nil
	case *logicalop.LogicalJoin:
		probe, err := outputSize(x.Child(0), stats, types)
		if err != nil {
			return Unknown(), err
		}
		build, err := outputSize(x.Child(1), stats, types)
		if err != nil {
			return Unknown(), err
		}
		// The right side is the build side, it is kept in memory.
		return PlanCostEstimate{CPU: probe + build, Memory: build}, nil
	}
	return Unknown(), plannererrors.ErrUnsupportedPlanNode.GenWithStackByArgs(node)
}

func outputSize(node base.PlanNode, stats cardinality.StatsProvider, types *symbol.TypeProvider) (float64, error) {
	est, err := stats.GetStats(node)
	if err != nil {
		return 0, err
	}
	return est.OutputSizeInBytes(node.OutputSymbols(), types), nil
}
