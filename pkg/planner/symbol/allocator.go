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

package symbol

import (
	"maps"
	"strconv"

	"github.com/pingcap/planrule/pkg/types"
	"github.com/pingcap/planrule/pkg/util/intest"
)

// TypeProvider maps symbols to their types. Providers built from a map never
// change, a view of an Allocator sees every symbol it mints.
type TypeProvider struct {
	types map[Symbol]*types.FieldType
}

// NewTypeProvider copies m into a new TypeProvider.
func NewTypeProvider(m map[Symbol]*types.FieldType) *TypeProvider {
	return &TypeProvider{types: maps.Clone(m)}
}

// EmptyTypeProvider returns a TypeProvider without any symbol.
func EmptyTypeProvider() *TypeProvider {
	return &TypeProvider{types: map[Symbol]*types.FieldType{}}
}

// Get returns the type of sym.
func (tp *TypeProvider) Get(sym Symbol) (*types.FieldType, bool) {
	ft, ok := tp.types[sym]
	return ft, ok
}

// MustGet returns the type of sym, it panics when sym is unknown.
func (tp *TypeProvider) MustGet(sym Symbol) *types.FieldType {
	ft, ok := tp.types[sym]
	if !ok {
		panic("no type found for symbol '" + sym.name + "'")
	}
	return ft
}

// AllTypes returns a copy of the whole symbol to type mapping.
func (tp *TypeProvider) AllTypes() map[Symbol]*types.FieldType {
	return maps.Clone(tp.types)
}

// Len returns the number of typed symbols.
func (tp *TypeProvider) Len() int {
	return len(tp.types)
}

// Allocator mints unique symbols and records their types.
type Allocator struct {
	types  map[Symbol]*types.FieldType
	nextID int
}

// NewAllocator creates an Allocator seeded with initial symbols.
func NewAllocator(initial map[Symbol]*types.FieldType) *Allocator {
	a := &Allocator{types: make(map[Symbol]*types.FieldType, len(initial))}
	maps.Copy(a.types, initial)
	return a
}

// NewSymbol creates a fresh symbol named after nameHint.
func (a *Allocator) NewSymbol(nameHint string, tp *types.FieldType) Symbol {
	intest.AssertNotNil(tp, "symbol type can not be nil")
	if nameHint == "" {
		nameHint = "expr"
	}
	sym := New(nameHint)
	for {
		if _, ok := a.types[sym]; !ok {
			break
		}
		sym = New(nameHint + "_" + strconv.Itoa(a.nextID))
		a.nextID++
	}
	a.types[sym] = tp
	return sym
}

// Types returns a snapshot TypeProvider of every symbol known so far.
func (a *Allocator) Types() *TypeProvider {
	return NewTypeProvider(a.types)
}

// TypeView returns a TypeProvider backed by the allocator itself.
func (a *Allocator) TypeView() *TypeProvider {
	return &TypeProvider{types: a.types}
}
