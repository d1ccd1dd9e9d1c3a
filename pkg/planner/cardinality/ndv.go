// Copyright 2017 PingCAP, Inc.
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

package cardinality

import (
	"math"
)

// distinctFactor is the NDV ratio assumed for a column without statistics.
const distinctFactor = 0.8

// EstimateColumnNDV estimates the NDV of a column read from a table of
// rowCount rows when no histogram is available.
func EstimateColumnNDV(rowCount float64) float64 {
	return rowCount * distinctFactor
}

// ScaleNDV scales the original NDV of a column down to the number of rows
// that survive a filter, assuming the values are uniformly distributed.
func ScaleNDV(originalNDV, originalRows, selectedRows float64) float64 {
	if math.IsNaN(originalNDV) || math.IsNaN(originalRows) || math.IsNaN(selectedRows) {
		return math.NaN()
	}
	if originalNDV <= 0 || originalRows <= 0 || selectedRows <= 0 {
		return 0
	}
	if selectedRows >= originalRows {
		return originalNDV
	}
	selectivity := selectedRows / originalRows
	// Probability that a given distinct value does not appear in the selected rows.
	pNotSelected := math.Pow(1-selectivity, originalRows/originalNDV)
	// At least one distinct value survives when a row does.
	return math.Max(originalNDV*(1-pNotSelected), math.Min(1, selectedRows))
}

// EstimateSymbolsNDV returns the NDV of a couple of symbols. The product of
// the single symbol NDVs is capped by the row count. It returns NaN when the
// NDV of any symbol is unknown.
func EstimateSymbolsNDV(stats *PlanNodeStatsEstimate, ndvs ...float64) float64 {
	ndv := 1.0
	for _, v := range ndvs {
		if math.IsNaN(v) {
			return math.NaN()
		}
		ndv *= math.Max(v, 1)
	}
	if stats.IsOutputRowCountUnknown() {
		return ndv
	}
	return math.Min(ndv, stats.OutputRowCount)
}
