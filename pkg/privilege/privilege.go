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

package privilege

import (
	"github.com/pingcap/planrule/pkg/sessionctx"
)

// AccessControl checks whether an identity may use metadata objects.
type AccessControl interface {
	// CheckCanAccessCatalog returns an error when identity is not allowed to
	// use catalog.
	CheckCanAccessCatalog(identity sessionctx.Identity, catalog string) error
}
