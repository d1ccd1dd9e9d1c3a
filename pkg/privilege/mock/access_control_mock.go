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

package mock

import (
	"reflect"

	"github.com/pingcap/planrule/pkg/privilege"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"go.uber.org/mock/gomock"
)

// MockAccessControl is a mock of privilege.AccessControl.
type MockAccessControl struct {
	ctrl     *gomock.Controller
	recorder *MockAccessControlMockRecorder
}

// MockAccessControlMockRecorder is the mock recorder for MockAccessControl.
type MockAccessControlMockRecorder struct {
	mock *MockAccessControl
}

var _ privilege.AccessControl = &MockAccessControl{}

// NewMockAccessControl creates a new mock instance.
func NewMockAccessControl(ctrl *gomock.Controller) *MockAccessControl {
	mock := &MockAccessControl{ctrl: ctrl}
	mock.recorder = &MockAccessControlMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAccessControl) EXPECT() *MockAccessControlMockRecorder {
	return m.recorder
}

// CheckCanAccessCatalog mocks base method.
func (m *MockAccessControl) CheckCanAccessCatalog(identity sessionctx.Identity, catalog string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckCanAccessCatalog", identity, catalog)
	ret0, _ := ret[0].(error)
	return ret0
}

// CheckCanAccessCatalog indicates an expected call of CheckCanAccessCatalog.
func (mr *MockAccessControlMockRecorder) CheckCanAccessCatalog(identity, catalog any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckCanAccessCatalog", reflect.TypeOf((*MockAccessControl)(nil).CheckCanAccessCatalog), identity, catalog)
}
