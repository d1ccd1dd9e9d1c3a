// Copyright 2016 PingCAP, Inc.
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
	"strings"

	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/types"
)

// ScalarFunction is the function that returns a value.
type ScalarFunction struct {
	FuncName string
	RetType  *types.FieldType
	Args     []Expression
}

// NewFunction creates a ScalarFunction.
func NewFunction(funcName string, retType *types.FieldType, args ...Expression) *ScalarFunction {
	return &ScalarFunction{FuncName: funcName, RetType: retType, Args: args}
}

// NewComparison creates a boolean comparison function such as eq, gt or lt.
func NewComparison(funcName string, left, right Expression) *ScalarFunction {
	return NewFunction(funcName, types.Boolean, left, right)
}

// GetType implements Expression interface.
func (sf *ScalarFunction) GetType() *types.FieldType {
	return sf.RetType
}

// GetArgs gets arguments of function.
func (sf *ScalarFunction) GetArgs() []Expression {
	return sf.Args
}

// Equal implements Expression interface.
func (sf *ScalarFunction) Equal(e Expression) bool {
	other, ok := e.(*ScalarFunction)
	if !ok || sf.FuncName != other.FuncName || len(sf.Args) != len(other.Args) {
		return false
	}
	if !sf.RetType.Equal(other.RetType) {
		return false
	}
	for i, arg := range sf.Args {
		if !arg.Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// ExtractSymbols implements Expression interface.
func (sf *ScalarFunction) ExtractSymbols() []symbol.Symbol {
	var result []symbol.Symbol
	for _, arg := range sf.Args {
		result = append(result, arg.ExtractSymbols()...)
	}
	return result
}

// String implements fmt.Stringer interface.
func (sf *ScalarFunction) String() string {
	var buf strings.Builder
	buf.WriteString(sf.FuncName)
	buf.WriteString("(")
	for i, arg := range sf.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(arg.String())
	}
	buf.WriteString(")")
	return buf.String()
}

// SplitCNFItems splits CNF items.
// CNF means conjunctive normal form, e.g. "a and b and c".
func SplitCNFItems(onExpr Expression) []Expression {
	sf, ok := onExpr.(*ScalarFunction)
	if !ok || sf.FuncName != LogicAnd {
		return []Expression{onExpr}
	}
	var items []Expression
	for _, arg := range sf.Args {
		items = append(items, SplitCNFItems(arg)...)
	}
	return items
}

// ComposeCNFCondition composes CNF items into a balance deep CNF tree, which
// benefits a lot for pb decoder/encoder.
func ComposeCNFCondition(conditions ...Expression) Expression {
	length := len(conditions)
	if length == 0 {
		return NewBoolConstant(true)
	}
	if length == 1 {
		return conditions[0]
	}
	return NewFunction(LogicAnd, types.Boolean,
		ComposeCNFCondition(conditions[:length/2]...),
		ComposeCNFCondition(conditions[length/2:]...))
}
