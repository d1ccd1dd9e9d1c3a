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

package sessiontxn

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pingcap/errors"
	"github.com/pingcap/failpoint"
	"github.com/pingcap/planrule/pkg/privilege/privileges"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func newSession(t *testing.T, catalog string) *sessionctx.Session {
	sess, err := sessionctx.NewBuilder(nil).
		SetIdentity(sessionctx.Identity{Username: "user"}).
		SetCatalog(catalog).
		Build()
	require.NoError(t, err)
	return sess
}

func TestTransactionManager(t *testing.T) {
	mgr := NewTransactionManager()
	id := mgr.Begin()
	require.True(t, mgr.IsActive(id))
	require.Equal(t, 1, mgr.ActiveTransactionCount())

	require.NoError(t, mgr.RegisterCatalog(id, "tpch"))
	require.NoError(t, mgr.RegisterCatalog(id, "tpch"))
	require.NoError(t, mgr.RegisterCatalog(id, "local"))
	catalogs, err := mgr.GetCatalogs(id)
	require.NoError(t, err)
	require.Equal(t, []string{"local", "tpch"}, catalogs)

	require.NoError(t, mgr.Commit(id))
	require.False(t, mgr.IsActive(id))
	require.Equal(t, 0, mgr.ActiveTransactionCount())

	err = mgr.Commit(id)
	require.True(t, plannererrors.ErrTxnNotFound.Equal(err))
	err = mgr.Rollback(id)
	require.True(t, plannererrors.ErrTxnNotFound.Equal(err))
	err = mgr.RegisterCatalog(uuid.New(), "tpch")
	require.True(t, plannererrors.ErrTxnNotFound.Equal(err))
	_, err = mgr.GetCatalogs(uuid.New())
	require.True(t, plannererrors.ErrTxnNotFound.Equal(err))
}

func TestRunInTxnCommits(t *testing.T) {
	mgr := NewTransactionManager()
	sess := newSession(t, "tpch")

	var seen uuid.UUID
	err := RunInTxn(context.Background(), mgr, privileges.AllowAll(), sess, func(_ context.Context, txnSess *sessionctx.Session) error {
		id, ok := txnSess.TransactionID()
		require.True(t, ok)
		require.True(t, mgr.IsActive(id))
		require.Equal(t, sess.QueryID(), txnSess.QueryID())
		seen = id
		return mgr.RegisterCatalog(id, txnSess.Catalog())
	})
	require.NoError(t, err)
	require.False(t, mgr.IsActive(seen))
	_, ok := sess.TransactionID()
	require.False(t, ok)
}

func TestRunInTxnRollsBack(t *testing.T) {
	mgr := NewTransactionManager()
	sess := newSession(t, "tpch")
	boom := errors.New("boom")

	err := RunInTxn(context.Background(), mgr, privileges.AllowAll(), sess, func(context.Context, *sessionctx.Session) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Len(t, multierr.Errors(err), 1)
	require.Equal(t, 0, mgr.ActiveTransactionCount())

	// rollback failure is combined with the callback error.
	err = RunInTxn(context.Background(), mgr, privileges.AllowAll(), sess, func(_ context.Context, txnSess *sessionctx.Session) error {
		id, _ := txnSess.TransactionID()
		require.NoError(t, mgr.Rollback(id))
		return boom
	})
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	require.ErrorIs(t, errs[0], boom)
	require.True(t, plannererrors.ErrTxnNotFound.Equal(errs[1]))
}

func TestRunInTxnAccessDenied(t *testing.T) {
	mgr := NewTransactionManager()
	called := false
	err := RunInTxn(context.Background(), mgr, privileges.DenyCatalogs("tpch"), newSession(t, "tpch"), func(context.Context, *sessionctx.Session) error {
		called = true
		return nil
	})
	require.True(t, plannererrors.ErrCatalogAccessDenied.Equal(err))
	require.False(t, called)
	require.Equal(t, 0, mgr.ActiveTransactionCount())
}

func TestRunInTxnPanic(t *testing.T) {
	mgr := NewTransactionManager()
	require.Panics(t, func() {
		_ = RunInTxn(context.Background(), mgr, privileges.AllowAll(), newSession(t, ""), func(context.Context, *sessionctx.Session) error {
			panic("usage error")
		})
	})
	require.Equal(t, 0, mgr.ActiveTransactionCount())
}

func TestRunInTxnCanceled(t *testing.T) {
	mgr := NewTransactionManager()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunInTxn(ctx, mgr, privileges.AllowAll(), newSession(t, ""), func(context.Context, *sessionctx.Session) error {
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 0, mgr.ActiveTransactionCount())
}

func TestMockCommitError(t *testing.T) {
	require.NoError(t, failpoint.Enable(mockCommitErrorFP, "return(true)"))
	defer func() {
		require.NoError(t, failpoint.Disable(mockCommitErrorFP))
	}()
	mgr := NewTransactionManager()
	err := RunInTxn(context.Background(), mgr, privileges.AllowAll(), newSession(t, "tpch"), func(context.Context, *sessionctx.Session) error {
		return nil
	})
	require.ErrorContains(t, err, "mock commit error")
	require.Equal(t, 0, mgr.ActiveTransactionCount())
}
