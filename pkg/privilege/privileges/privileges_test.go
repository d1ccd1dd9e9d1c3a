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

package privileges_test

import (
	"testing"

	"github.com/pingcap/planrule/pkg/privilege/privileges"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
	"github.com/stretchr/testify/require"
)

func TestAllowAll(t *testing.T) {
	ac := privileges.AllowAll()
	require.NoError(t, ac.CheckCanAccessCatalog(sessionctx.Identity{Username: "user"}, "tpch"))
	require.NoError(t, ac.CheckCanAccessCatalog(sessionctx.Identity{}, ""))
}

func TestDenyCatalogs(t *testing.T) {
	ac := privileges.DenyCatalogs("secret", "Hidden")
	user := sessionctx.Identity{Username: "user"}

	require.NoError(t, ac.CheckCanAccessCatalog(user, "tpch"))

	err := ac.CheckCanAccessCatalog(user, "secret")
	require.Error(t, err)
	require.True(t, plannererrors.ErrCatalogAccessDenied.Equal(err))
	require.ErrorContains(t, err, "user 'user' cannot access catalog 'secret'")

	err = ac.CheckCanAccessCatalog(user, "HIDDEN")
	require.True(t, plannererrors.ErrCatalogAccessDenied.Equal(err))
}
