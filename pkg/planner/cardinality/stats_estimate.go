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
	"fmt"
	"maps"
	"math"

	"github.com/pingcap/planrule/pkg/planner/symbol"
)

// defaultDataSizePerSymbol is the assumed width in bytes of a variable length
// symbol without statistics.
const defaultDataSizePerSymbol = 50

// SymbolStatsEstimate is the estimated distribution of one symbol. Unknown
// values are NaN.
type SymbolStatsEstimate struct {
	NDV            float64
	NullsFraction  float64
	AverageRowSize float64
}

// UnknownSymbolStats returns an estimate where nothing is known.
func UnknownSymbolStats() SymbolStatsEstimate {
	return SymbolStatsEstimate{NDV: math.NaN(), NullsFraction: math.NaN(), AverageRowSize: math.NaN()}
}

// IsNDVUnknown checks whether the NDV is unknown.
func (s SymbolStatsEstimate) IsNDVUnknown() bool {
	return math.IsNaN(s.NDV)
}

// PlanNodeStatsEstimate is the estimated output of a plan node. It must not be
// modified once handed to a StatsProvider.
type PlanNodeStatsEstimate struct {
	OutputRowCount   float64
	SymbolStatistics map[symbol.Symbol]SymbolStatsEstimate
}

// NewPlanNodeStatsEstimate creates an estimate of rowCount rows without
// symbol statistics.
func NewPlanNodeStatsEstimate(rowCount float64) *PlanNodeStatsEstimate {
	return &PlanNodeStatsEstimate{
		OutputRowCount:   rowCount,
		SymbolStatistics: make(map[symbol.Symbol]SymbolStatsEstimate),
	}
}

// Unknown returns an estimate where nothing is known.
func Unknown() *PlanNodeStatsEstimate {
	return NewPlanNodeStatsEstimate(math.NaN())
}

// AddSymbolStatistics records the statistics of sym and returns the estimate
// itself, so that it can be chained while building.
func (e *PlanNodeStatsEstimate) AddSymbolStatistics(sym symbol.Symbol, stats SymbolStatsEstimate) *PlanNodeStatsEstimate {
	e.SymbolStatistics[sym] = stats
	return e
}

// IsOutputRowCountUnknown checks whether the row count is unknown.
func (e *PlanNodeStatsEstimate) IsOutputRowCountUnknown() bool {
	return math.IsNaN(e.OutputRowCount)
}

// GetSymbolStatistics returns the statistics of sym, unknown when absent.
func (e *PlanNodeStatsEstimate) GetSymbolStatistics(sym symbol.Symbol) SymbolStatsEstimate {
	if stats, ok := e.SymbolStatistics[sym]; ok {
		return stats
	}
	return UnknownSymbolStats()
}

// OutputSizeInBytes estimates the size of the output restricted to symbols.
func (e *PlanNodeStatsEstimate) OutputSizeInBytes(symbols []symbol.Symbol, types *symbol.TypeProvider) float64 {
	if e.IsOutputRowCountUnknown() {
		return math.NaN()
	}
	var rowSize float64
	for _, sym := range symbols {
		if ft, ok := types.Get(sym); ok {
			if size, fixed := ft.FixedSize(); fixed {
				rowSize += float64(size)
				continue
			}
		}
		if avg := e.GetSymbolStatistics(sym).AverageRowSize; !math.IsNaN(avg) {
			rowSize += avg
			continue
		}
		rowSize += defaultDataSizePerSymbol
	}
	return rowSize * e.OutputRowCount
}

// Clone returns a deep copy of the estimate.
func (e *PlanNodeStatsEstimate) Clone() *PlanNodeStatsEstimate {
	return &PlanNodeStatsEstimate{
		OutputRowCount:   e.OutputRowCount,
		SymbolStatistics: maps.Clone(e.SymbolStatistics),
	}
}

// String implements fmt.Stringer interface.
func (e *PlanNodeStatsEstimate) String() string {
	if e.IsOutputRowCountUnknown() {
		return "rows: ?"
	}
	return fmt.Sprintf("rows: %.0f", e.OutputRowCount)
}
