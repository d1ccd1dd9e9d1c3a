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

package rule

import (
	"sync"

	"github.com/pingcap/planrule/pkg/planner/cardinality"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/pingcap/planrule/pkg/planner/cost"
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/sessionctx"
)

// WarningCollector collects the warnings raised while applying rules.
type WarningCollector interface {
	AppendWarning(warn error)
	GetWarnings() []error
}

type warningCollector struct {
	mu       sync.Mutex
	warnings []error
}

// NewWarningCollector creates an in-memory WarningCollector.
func NewWarningCollector() WarningCollector {
	return &warningCollector{}
}

// AppendWarning implements WarningCollector interface.
func (c *warningCollector) AppendWarning(warn error) {
	c.mu.Lock()
	c.warnings = append(c.warnings, warn)
	c.mu.Unlock()
}

// GetWarnings implements WarningCollector interface.
func (c *warningCollector) GetWarnings() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.warnings...)
}

// Context bundles what a rule may consult while it is applied. A Context is
// never modified once created.
type Context struct {
	lookup           cascadesbase.Lookup
	idAllocator      *base.IDAllocator
	symbolAllocator  *symbol.Allocator
	session          *sessionctx.Session
	statsProvider    cardinality.StatsProvider
	costProvider     cost.CostProvider
	warningCollector WarningCollector
}

// ContextConfig is the content of a Context.
type ContextConfig struct {
	Lookup           cascadesbase.Lookup
	IDAllocator      *base.IDAllocator
	SymbolAllocator  *symbol.Allocator
	Session          *sessionctx.Session
	StatsProvider    cardinality.StatsProvider
	CostProvider     cost.CostProvider
	WarningCollector WarningCollector
}

// NewContext creates a Context.
func NewContext(cfg ContextConfig) *Context {
	if cfg.WarningCollector == nil {
		cfg.WarningCollector = NewWarningCollector()
	}
	return &Context{
		lookup:           cfg.Lookup,
		idAllocator:      cfg.IDAllocator,
		symbolAllocator:  cfg.SymbolAllocator,
		session:          cfg.Session,
		statsProvider:    cfg.StatsProvider,
		costProvider:     cfg.CostProvider,
		warningCollector: cfg.WarningCollector,
	}
}

// GetLookup returns the Lookup resolving group references.
func (c *Context) GetLookup() cascadesbase.Lookup {
	return c.lookup
}

// GetIDAllocator returns the allocator of plan node ids.
func (c *Context) GetIDAllocator() *base.IDAllocator {
	return c.idAllocator
}

// GetSymbolAllocator returns the allocator of new symbols.
func (c *Context) GetSymbolAllocator() *symbol.Allocator {
	return c.symbolAllocator
}

// GetSession returns the session.
func (c *Context) GetSession() *sessionctx.Session {
	return c.session
}

// GetStatsProvider returns the statistics of the plan.
func (c *Context) GetStatsProvider() cardinality.StatsProvider {
	return c.statsProvider
}

// GetCostProvider returns the costs of the plan.
func (c *Context) GetCostProvider() cost.CostProvider {
	return c.costProvider
}

// GetWarningCollector returns the WarningCollector.
func (c *Context) GetWarningCollector() WarningCollector {
	return c.warningCollector
}

// CheckTimeoutNotExhausted checks whether the optimization may continue. A
// single rule application never times out.
func (*Context) CheckTimeoutNotExhausted() error {
	return nil
}
