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

package variable

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
)

// TypeFlag is the SysVar type.
type TypeFlag byte

const (
	// TypeStr is the default
	TypeStr TypeFlag = 0
	// TypeBool for boolean
	TypeBool TypeFlag = 1
	// TypeInt for integer
	TypeInt TypeFlag = 2
	// TypeEnum for Enum
	TypeEnum TypeFlag = 3
	// TypeFloat for Double
	TypeFloat TypeFlag = 4

	// BoolOff is the canonical string representation of a boolean false.
	BoolOff = "OFF"
	// BoolOn is the canonical string representation of a boolean true.
	BoolOn = "ON"
)

// SysVar is a system property a session can override.
type SysVar struct {
	// Name is the variable name.
	Name string
	// Value is the default value.
	Value string
	// Type is the value type (optional)
	Type TypeFlag
	// MinValue will automatically be validated when specified (optional)
	MinValue int64
	// MaxValue will automatically be validated when specified (optional)
	MaxValue uint64
	// PossibleValues applies to ENUM type
	PossibleValues []string
	// Validation is a callback after the type validation has been performed
	Validation func(normalizedValue string, originalValue string) (string, error)
	// Description is shown by tooling listing the variables.
	Description string
}

// Validate checks value against the type of the variable and its hook. It
// returns the normalized value.
func (sv *SysVar) Validate(value string) (string, error) {
	normalized, err := sv.ValidateFromType(value)
	if err != nil {
		return normalized, err
	}
	return sv.ValidateFromHook(normalized, value)
}

// ValidateFromType provides automatic validation based on the SysVar's type
func (sv *SysVar) ValidateFromType(value string) (string, error) {
	// The string "DEFAULT" restores the compiled value.
	if strings.EqualFold(value, "DEFAULT") {
		return sv.Value, nil
	}
	switch sv.Type {
	case TypeInt:
		return sv.checkInt64SystemVar(value)
	case TypeBool:
		return sv.checkBoolSystemVar(value)
	case TypeFloat:
		return sv.checkFloatSystemVar(value)
	case TypeEnum:
		return sv.checkEnumSystemVar(value)
	}
	return value, nil // typeString
}

// ValidateFromHook calls the anonymous function on the sysvar if it exists.
func (sv *SysVar) ValidateFromHook(normalizedValue string, originalValue string) (string, error) {
	if sv.Validation != nil {
		return sv.Validation(normalizedValue, originalValue)
	}
	return normalizedValue, nil
}

func (sv *SysVar) wrongValue(value string) error {
	return plannererrors.ErrWrongValueForProperty.GenWithStackByArgs(sv.Name, value)
}

func (sv *SysVar) checkInt64SystemVar(value string) (string, error) {
	val, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return value, sv.wrongValue(value)
	}
	if val < sv.MinValue || (sv.MaxValue > 0 && uint64(val) > sv.MaxValue) {
		return value, sv.wrongValue(value)
	}
	return strconv.FormatInt(val, 10), nil
}

func (sv *SysVar) checkEnumSystemVar(value string) (string, error) {
	// The value could be either a string or the ordinal position in the PossibleValues.
	for i, v := range sv.PossibleValues {
		if strings.EqualFold(value, v) || value == strconv.Itoa(i) {
			return v, nil
		}
	}
	return value, sv.wrongValue(value)
}

func (sv *SysVar) checkFloatSystemVar(value string) (string, error) {
	if len(value) == 0 {
		return value, sv.wrongValue(value)
	}
	val, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(val) {
		return value, sv.wrongValue(value)
	}
	if val < float64(sv.MinValue) || val > float64(sv.MaxValue) {
		return value, sv.wrongValue(value)
	}
	return value, nil
}

func (sv *SysVar) checkBoolSystemVar(value string) (string, error) {
	if strings.EqualFold(value, "ON") || strings.EqualFold(value, "TRUE") {
		return BoolOn, nil
	} else if strings.EqualFold(value, "OFF") || strings.EqualFold(value, "FALSE") {
		return BoolOff, nil
	}
	val, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		if val == 0 {
			return BoolOff, nil
		} else if val == 1 {
			return BoolOn, nil
		}
	}
	return value, sv.wrongValue(value)
}

// String implements fmt.Stringer interface.
func (sv *SysVar) String() string {
	return fmt.Sprintf("%s=%s", sv.Name, sv.Value)
}

var (
	sysVars     map[string]*SysVar
	sysVarsLock sync.RWMutex
)

// RegisterSysVar adds a sysvar to the SysVars list.
func RegisterSysVar(sv *SysVar) error {
	name := strings.ToLower(sv.Name)
	sysVarsLock.Lock()
	defer sysVarsLock.Unlock()
	if _, ok := sysVars[name]; ok {
		return plannererrors.ErrDuplicateSystemProperty.GenWithStackByArgs(sv.Name)
	}
	sysVars[name] = sv
	return nil
}

// UnregisterSysVar removes a sysvar from the SysVars list.
func UnregisterSysVar(name string) {
	name = strings.ToLower(name)
	sysVarsLock.Lock()
	delete(sysVars, name)
	sysVarsLock.Unlock()
}

// GetSysVar returns sys var info for name as key.
func GetSysVar(name string) *SysVar {
	name = strings.ToLower(name)
	sysVarsLock.RLock()
	defer sysVarsLock.RUnlock()
	return sysVars[name]
}

// GetSysVarNames returns the registered names, sorted.
func GetSysVarNames() []string {
	sysVarsLock.RLock()
	defer sysVarsLock.RUnlock()
	return slices.Sorted(maps.Keys(sysVars))
}

// ValidateSysVar validates value for the variable called name and returns the
// normalized value.
func ValidateSysVar(name, value string) (string, error) {
	sv := GetSysVar(name)
	if sv == nil {
		return value, plannererrors.ErrUnknownSystemProperty.GenWithStackByArgs(name)
	}
	return sv.Validate(value)
}

func init() {
	sysVars = make(map[string]*SysVar)
	for _, v := range defaultSysVars {
		if err := RegisterSysVar(v); err != nil {
			panic(err)
		}
	}
}

var defaultSysVars = []*SysVar{
	{Name: OptDisabledRules, Value: DefOptDisabledRules, Type: TypeStr, Validation: func(normalizedValue string, _ string) (string, error) {
		return strings.Join(ParseRuleNames(normalizedValue), ","), nil
	}, Description: "comma separated names of the rules that never fire"},
	{Name: OptEnableJoinFlip, Value: BoolToOnOff(DefOptEnableJoinFlip), Type: TypeBool,
		Description: "allow rules to swap the inputs of an inner join"},
	{Name: OptJoinFlipMinRatio, Value: strconv.FormatFloat(DefOptJoinFlipMinRatio, 'f', -1, 64), Type: TypeFloat, MinValue: 1, MaxValue: math.MaxInt32,
		Description: "minimum left to right row count ratio before the join inputs are swapped"},
	{Name: OptEnableLimitPushDown, Value: BoolToOnOff(DefOptEnableLimitPushDown), Type: TypeBool,
		Description: "allow limits to be pushed below projections"},
	{Name: IgnoreStatsCalculatorFailures, Value: BoolToOnOff(DefIgnoreStatsCalculatorFailures), Type: TypeBool,
		Description: "turn stats calculator failures into unknown estimates"},
}
