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

package infoschema_test

import (
	"context"
	"testing"

	"github.com/pingcap/planrule/pkg/infoschema"
	"github.com/pingcap/planrule/pkg/privilege/privileges"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/sessiontxn"
	"github.com/pingcap/planrule/pkg/types"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
	"github.com/stretchr/testify/require"
)

func runInTxn(t *testing.T, mgr *sessiontxn.TransactionManager, catalog string, f func(sess *sessionctx.Session)) {
	sess, err := sessionctx.NewBuilder(nil).SetCatalog(catalog).Build()
	require.NoError(t, err)
	err = sessiontxn.RunInTxn(context.Background(), mgr, privileges.AllowAll(), sess, func(_ context.Context, txnSess *sessionctx.Session) error {
		f(txnSess)
		return nil
	})
	require.NoError(t, err)
}

func TestTPCHMetadata(t *testing.T) {
	mgr := sessiontxn.NewTransactionManager()
	m := infoschema.NewTPCHMetadata(mgr)
	require.Equal(t, []string{"tpch"}, m.CatalogNames())

	runInTxn(t, mgr, "tpch", func(sess *sessionctx.Session) {
		rows, err := m.TableRowCount(sess, "nation")
		require.NoError(t, err)
		require.EqualValues(t, 25, rows)

		rows, err = m.TableRowCount(sess, "LINEITEM")
		require.NoError(t, err)
		require.EqualValues(t, 6_001_215, rows)

		tbl, err := m.GetTable(sess, "tpch", "orders")
		require.NoError(t, err)
		col, ok := tbl.FindColumn("orderdate")
		require.True(t, ok)
		require.True(t, col.Type.Equal(types.Date))
		_, ok = tbl.FindColumn("missing")
		require.False(t, ok)

		_, err = m.TableRowCount(sess, "missing")
		require.True(t, plannererrors.ErrUnknownTable.Equal(err))

		txnID, _ := sess.TransactionID()
		catalogs, err := mgr.GetCatalogs(txnID)
		require.NoError(t, err)
		require.Equal(t, []string{"tpch"}, catalogs)
	})
}

func TestGetCatalogHandle(t *testing.T) {
	mgr := sessiontxn.NewTransactionManager()
	m := infoschema.NewMetadata(mgr)
	m.CreateCatalog("Local")
	m.CreateCatalog("local")
	require.Equal(t, []string{"local"}, m.CatalogNames())
	require.NoError(t, m.AddTable("local", &infoschema.TableInfo{Name: "t", RowCount: 7}))
	err := m.AddTable("missing", &infoschema.TableInfo{Name: "t"})
	require.True(t, plannererrors.ErrUnknownCatalog.Equal(err))

	sess, err := sessionctx.NewBuilder(nil).SetCatalog("local").Build()
	require.NoError(t, err)
	_, err = m.GetCatalogHandle(sess, "local")
	require.True(t, plannererrors.ErrTxnNotBound.Equal(err))

	runInTxn(t, mgr, "local", func(sess *sessionctx.Session) {
		handle, err := m.GetCatalogHandle(sess, "LOCAL")
		require.NoError(t, err)
		require.Equal(t, "local", handle.Name)
		_, err = m.GetCatalogHandle(sess, "LOCAL")
		require.NoError(t, err)

		_, err = m.GetCatalogHandle(sess, "missing")
		require.True(t, plannererrors.ErrUnknownCatalog.Equal(err))

		rows, err := m.TableRowCount(sess, "t")
		require.NoError(t, err)
		require.EqualValues(t, 7, rows)
	})
	require.Equal(t, 0, mgr.ActiveTransactionCount())
}
