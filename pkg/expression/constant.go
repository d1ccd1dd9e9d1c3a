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
	"fmt"
	"reflect"

	"github.com/pingcap/planrule/pkg/planner/symbol"
	"github.com/pingcap/planrule/pkg/types"
)

// Constant stands for a constant value.
type Constant struct {
	Value   any
	RetType *types.FieldType
}

// NewConstant creates a Constant. A nil value stands for NULL.
func NewConstant(value any, tp *types.FieldType) *Constant {
	return &Constant{Value: value, RetType: tp}
}

// NewOne stands for a number 1.
func NewOne() *Constant {
	return NewConstant(int64(1), types.BigInt)
}

// NewZero stands for a number 0.
func NewZero() *Constant {
	return NewConstant(int64(0), types.BigInt)
}

// NewNull stands for null constant.
func NewNull() *Constant {
	return NewConstant(nil, types.NewFieldType(types.TypeUnspecified))
}

// NewBoolConstant stands for a boolean TRUE or FALSE.
func NewBoolConstant(b bool) *Constant {
	return NewConstant(b, types.Boolean)
}

// GetType implements Expression interface.
func (c *Constant) GetType() *types.FieldType {
	return c.RetType
}

// Equal implements Expression interface.
func (c *Constant) Equal(e Expression) bool {
	other, ok := e.(*Constant)
	if !ok {
		return false
	}
	return c.RetType.Equal(other.RetType) && reflect.DeepEqual(c.Value, other.Value)
}

// ExtractSymbols implements Expression interface.
func (*Constant) ExtractSymbols() []symbol.Symbol {
	return nil
}

// String implements fmt.Stringer interface.
func (c *Constant) String() string {
	switch v := c.Value.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("'%s'", v)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	}
	return fmt.Sprintf("%v", c.Value)
}

// IsConstTrue checks whether expr is the constant TRUE.
func IsConstTrue(expr Expression) bool {
	c, ok := expr.(*Constant)
	if !ok {
		return false
	}
	b, ok := c.Value.(bool)
	return ok && b
}

// IsConstFalse checks whether expr is the constant FALSE or NULL. Both filter
// out every row.
func IsConstFalse(expr Expression) bool {
	c, ok := expr.(*Constant)
	if !ok {
		return false
	}
	if c.Value == nil {
		return true
	}
	b, ok := c.Value.(bool)
	return ok && !b
}
