// Copyright 2015 PingCAP, Inc.
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

package expression

import (
	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/types"
)

// Column represents a reference to a symbol produced by a child plan node.
type Column struct {
	Sym     symbol.Symbol
	RetType *types.FieldType
}

// NewColumn creates a Column referencing sym.
func NewColumn(sym symbol.Symbol, tp *types.FieldType) *Column {
	return &Column{Sym: sym, RetType: tp}
}

// GetType implements Expression interface.
func (col *Column) GetType() *types.FieldType {
	return col.RetType
}

// Equal implements Expression interface.
func (col *Column) Equal(e Expression) bool {
	if other, ok := e.(*Column); ok {
		return col.Sym == other.Sym
	}
	return false
}

// ExtractSymbols implements Expression interface.
func (col *Column) ExtractSymbols() []symbol.Symbol {
	return []symbol.Symbol{col.Sym}
}

// String implements fmt.Stringer interface.
func (col *Column) String() string {
	return col.Sym.Name()
}
