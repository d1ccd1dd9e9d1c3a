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

package privileges

import (
	"strings"

	"github.com/pingcap/planrule/pkg/privilege"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
)

var (
	_ privilege.AccessControl = allowAll{}
	_ privilege.AccessControl = &catalogDenier{}
)

type allowAll struct{}

// AllowAll returns an AccessControl granting every access.
func AllowAll() privilege.AccessControl {
	return allowAll{}
}

// CheckCanAccessCatalog implements privilege.AccessControl interface.
func (allowAll) CheckCanAccessCatalog(sessionctx.Identity, string) error {
	return nil
}

type catalogDenier struct {
	denied map[string]struct{}
}

// DenyCatalogs returns an AccessControl denying access to the named catalogs
// for every identity. Names are case-insensitive.
func DenyCatalogs(names ...string) privilege.AccessControl {
	d := &catalogDenier{denied: make(map[string]struct{}, len(names))}
	for _, name := range names {
		d.denied[strings.ToLower(name)] = struct{}{}
	}
	return d
}

// CheckCanAccessCatalog implements privilege.AccessControl interface.
func (d *catalogDenier) CheckCanAccessCatalog(identity sessionctx.Identity, catalog string) error {
	if _, ok := d.denied[strings.ToLower(catalog)]; ok {
		return plannererrors.ErrCatalogAccessDenied.GenWithStackByArgs(identity.Username, catalog)
	}
	return nil
}
