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
	"fmt"
	"math"
)

// PlanCostEstimate is the estimated cost of a plan. Unknown parts are NaN.
type PlanCostEstimate struct {
	CPU     float64
	Memory  float64
	Network float64
}

// Zero returns a cost of nothing.
func Zero() PlanCostEstimate {
	return PlanCostEstimate{}
}

// Unknown returns a cost where nothing is known.
func Unknown() PlanCostEstimate {
	return PlanCostEstimate{CPU: math.NaN(), Memory: math.NaN(), Network: math.NaN()}
}

// IsUnknown checks whether any part of the cost is unknown.
func (c PlanCostEstimate) IsUnknown() bool {
	return math.IsNaN(c.CPU) || math.IsNaN(c.Memory) || math.IsNaN(c.Network)
}

// Add returns the sum of both costs.
func (c PlanCostEstimate) Add(other PlanCostEstimate) PlanCostEstimate {
	return PlanCostEstimate{
		CPU:     c.CPU + other.CPU,
		Memory:  c.Memory + other.Memory,
		Network: c.Network + other.Network,
	}
}

// String implements fmt.Stringer interface.
func (c PlanCostEstimate) String() string {
	return fmt.Sprintf("cpu: %s, memory: %s, network: %s", formatCost(c.CPU), formatCost(c.Memory), formatCost(c.Network))
}

func formatCost(v float64) string {
	if math.IsNaN(v) {
		return "?"
	}
	return fmt.Sprintf("%.2f", v)
}
