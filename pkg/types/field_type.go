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

package types

import "fmt"

// Field types.
const (
	TypeUnspecified byte = iota
	TypeBoolean
	TypeLonglong
	TypeDouble
	TypeNewDecimal
	TypeVarchar
	TypeDate
	TypeTimestamp
)

var type2Str = map[byte]string{
	TypeUnspecified: "unknown",
	TypeBoolean:     "boolean",
	TypeLonglong:    "bigint",
	TypeDouble:      "double",
	TypeNewDecimal:  "decimal",
	TypeVarchar:     "varchar",
	TypeDate:        "date",
	TypeTimestamp:   "timestamp",
}

// UnspecifiedLength is unspecified length.
const UnspecifiedLength = -1

// FieldType records field type information.
type FieldType struct {
	tp   byte
	flen int
}

// NewFieldType returns a FieldType with a type and other information about field type.
func NewFieldType(tp byte) *FieldType {
	return &FieldType{tp: tp, flen: UnspecifiedLength}
}

// NewVarcharType returns a varchar FieldType of length flen.
func NewVarcharType(flen int) *FieldType {
	return &FieldType{tp: TypeVarchar, flen: flen}
}

// Predefined field types.
var (
	Boolean   = NewFieldType(TypeBoolean)
	BigInt    = NewFieldType(TypeLonglong)
	Double    = NewFieldType(TypeDouble)
	Decimal   = NewFieldType(TypeNewDecimal)
	Varchar   = NewVarcharType(UnspecifiedLength)
	Date      = NewFieldType(TypeDate)
	Timestamp = NewFieldType(TypeTimestamp)
)

// GetType returns the type of the FieldType.
func (ft *FieldType) GetType() byte {
	return ft.tp
}

// GetFlen returns the length of the field.
func (ft *FieldType) GetFlen() int {
	return ft.flen
}

// FixedSize returns the in-memory width of a value of this type, and whether
// the width is fixed.
func (ft *FieldType) FixedSize() (int, bool) {
	switch ft.tp {
	case TypeBoolean:
		return 1, true
	case TypeLonglong, TypeDouble, TypeTimestamp:
		return 8, true
	case TypeDate:
		return 4, true
	case TypeNewDecimal:
		return 16, true
	}
	return 0, false
}

// Equal checks whether two FieldType objects are equal.
func (ft *FieldType) Equal(other *FieldType) bool {
	if ft == nil || other == nil {
		return ft == other
	}
	return ft.tp == other.tp && ft.flen == other.flen
}

// String implements fmt.Stringer interface.
func (ft *FieldType) String() string {
	name, ok := type2Str[ft.tp]
	if !ok {
		name = type2Str[TypeUnspecified]
	}
	if ft.tp == TypeVarchar && ft.flen != UnspecifiedLength {
		return fmt.Sprintf("%s(%d)", name, ft.flen)
	}
	return name
}
