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

package cardinality

import (
	"github.com/pingcap/planrule/pkg/metrics"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/sessionctx/variable"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
	"github.com/pingcap/planrule/pkg/util/logutil"
	"go.uber.org/zap"
)

// GroupStatsCache stores the statistics of memo groups.
type GroupStatsCache interface {
	Stats(group cascadesbase.GroupID) (*PlanNodeStatsEstimate, bool)
	StoreStats(group cascadesbase.GroupID, stats *PlanNodeStatsEstimate)
}

// CachingStatsProvider computes statistics with a StatsCalculator and caches
// them per node. Statistics of group references are cached in the memo.
type CachingStatsProvider struct {
	calculator StatsCalculator
	memo       GroupStatsCache
	lookup     cascadesbase.Lookup
	sess       *sessionctx.Session
	types      *symbol.TypeProvider

	cache map[base.PlanNode]*PlanNodeStatsEstimate
}

var _ StatsProvider = &CachingStatsProvider{}

// NewCachingStatsProvider creates a CachingStatsProvider. memo may be nil,
// in which case group references can not be handled.
func NewCachingStatsProvider(calculator StatsCalculator, memo GroupStatsCache, lookup cascadesbase.Lookup,
	sess *sessionctx.Session, types *symbol.TypeProvider) *CachingStatsProvider {
	return &CachingStatsProvider{
		calculator: calculator,
		memo:       memo,
		lookup:     lookup,
		sess:       sess,
		types:      types,
		cache:      make(map[base.PlanNode]*PlanNodeStatsEstimate),
	}
}

// GetStats implements StatsProvider interface.
func (p *CachingStatsProvider) GetStats(node base.PlanNode) (*PlanNodeStatsEstimate, error) {
	if ref, ok := node.(*cascadesbase.GroupReference); ok {
		return p.getGroupStats(ref)
	}
	if stats, ok := p.cache[node]; ok {
		return stats, nil
	}
	stats, err := p.calculator.CalculateStats(node, p, p.lookup, p.sess, p.types)
	if err != nil {
		metrics.StatsCalculationFailureCounter.WithLabelValues(node.TP()).Inc()
		if !p.sess.GetBoolProperty(variable.IgnoreStatsCalculatorFailures) {
			return nil, err
		}
		logutil.BgLogger().Warn("error occurred when computing stats",
			zap.String(logutil.LogFieldQueryID, p.sess.QueryID().String()),
			zap.String("node", string(node.ID())),
			zap.String("operator", node.TP()),
			zap.Error(err))
		stats = Unknown()
	}
	p.cache[node] = stats
	return stats, nil
}

func (p *CachingStatsProvider) getGroupStats(ref *cascadesbase.GroupReference) (*PlanNodeStatsEstimate, error) {
	if p.memo == nil {
		return nil, plannererrors.ErrGroupReferenceNoMemo.GenWithStackByArgs("CachingStatsProvider")
	}
	if stats, ok := p.memo.Stats(ref.GroupID()); ok {
		return stats, nil
	}
	node, err := p.lookup.Resolve(ref)
	if err != nil {
		return nil, err
	}
	stats, err := p.GetStats(node)
	if err != nil {
		return nil, err
	}
	p.memo.StoreStats(ref.GroupID(), stats)
	return stats, nil
}
