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

package intest

import (
	"fmt"
	"reflect"
)

// Assert asserts a condition is true. It only takes effect in test builds.
func Assert(cond bool, msgAndArgs ...any) {
	if InTest && !cond {
		doPanic("", msgAndArgs...)
	}
}

// AssertNotNil asserts an object is not nil. It only takes effect in test builds.
func AssertNotNil(obj any, msgAndArgs ...any) {
	if !InTest {
		return
	}
	Assert(obj != nil, msgAndArgs...)
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Func, reflect.Chan, reflect.Map, reflect.Pointer, reflect.Interface, reflect.Slice:
		Assert(!value.IsNil(), msgAndArgs...)
	}
}

// AssertFunc asserts a function condition. It only takes effect in test builds.
func AssertFunc(fn func() bool, msgAndArgs ...any) {
	if InTest {
		Assert(fn(), msgAndArgs...)
	}
}

func doPanic(extraMsg string, userMsgAndArgs ...any) {
	panic(assertionFailedMsg(extraMsg, userMsgAndArgs...))
}

func assertionFailedMsg(extraMsg string, userMsgAndArgs ...any) string {
	msg := "assert failed"
	if len(userMsgAndArgs) == 0 {
		if extraMsg != "" {
			msg = fmt.Sprintf("%s, %s", msg, extraMsg)
		}
		return msg
	}
	if len(userMsgAndArgs) == 1 {
		if s, ok := userMsgAndArgs[0].(string); ok {
			return fmt.Sprintf("%s, %s", msg, s)
		}
		return fmt.Sprintf("%s, %v", msg, userMsgAndArgs[0])
	}
	if format, ok := userMsgAndArgs[0].(string); ok {
		return fmt.Sprintf("%s, %s", msg, fmt.Sprintf(format, userMsgAndArgs[1:]...))
	}
	return fmt.Sprintf("%s, %v", msg, userMsgAndArgs)
}
