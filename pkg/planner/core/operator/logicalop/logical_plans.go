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

package logicalop

import (
	"github.com/pingcap/planrule/pkg/planner/core/base"
)

var (
	_ base.PlanNode = &LogicalTableScan{}
	_ base.PlanNode = &LogicalValues{}
	_ base.PlanNode = &LogicalSelection{}
	_ base.PlanNode = &LogicalProjection{}
	_ base.PlanNode = &LogicalLimit{}
	_ base.PlanNode = &LogicalSort{}
	_ base.PlanNode = &LogicalTopN{}
	_ base.PlanNode = &LogicalJoin{}
	_ base.PlanNode = &LogicalAggregation{}
)

// Operator names returned by PlanNode.TP.
const (
	TypeTableScan   = "TableScan"
	TypeValues      = "Values"
	TypeSel         = "Selection"
	TypeProj        = "Projection"
	TypeLimit       = "Limit"
	TypeSort        = "Sort"
	TypeTopN        = "TopN"
	TypeJoin        = "Join"
	TypeAggregation = "Aggregation"
)
