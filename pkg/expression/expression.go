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
	"fmt"

	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/types"
)

// Function names.
const (
	LogicAnd = "and"
	LogicOr  = "or"
	UnaryNot = "not"
	EQ       = "eq"
	NE       = "ne"
	LT       = "lt"
	LE       = "le"
	GT       = "gt"
	GE       = "ge"
	Plus     = "plus"
	Minus    = "minus"
	IsNull   = "isnull"
)

// Expression represents all scalar expression in the plan.
type Expression interface {
	fmt.Stringer

	// GetType gets the type that the expression returns.
	GetType() *types.FieldType

	// Equal checks whether two expressions are equal.
	Equal(e Expression) bool

	// ExtractSymbols returns the symbols referenced by the expression, in
	// the order they appear.
	ExtractSymbols() []symbol.Symbol
}

// ExtractSymbolSet returns the symbols referenced by exprs as a set.
func ExtractSymbolSet(exprs ...Expression) symbol.Set {
	set := symbol.NewSet()
	for _, expr := range exprs {
		for _, sym := range expr.ExtractSymbols() {
			set[sym] = struct{}{}
		}
	}
	return set
}
