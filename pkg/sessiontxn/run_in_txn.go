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

	"github.com/google/uuid"
	"github.com/pingcap/planrule/pkg/privilege"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"go.uber.org/multierr"
)

// RunInTxn runs f in a new transaction. f receives a session bound to the
// transaction, whose catalog has been checked against ac. The transaction is
// committed when f succeeds and rolled back otherwise, the rollback error
// being combined with the error of f. Nothing is retried.
func RunInTxn(ctx context.Context, mgr *TransactionManager, ac privilege.AccessControl, sess *sessionctx.Session, f func(context.Context, *sessionctx.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txnID := mgr.Begin()
	finished := false
	defer func() {
		if !finished {
			// f panicked.
			_ = mgr.Rollback(txnID)
		}
	}()

	err := runWithSession(ctx, txnID, ac, sess, f)
	finished = true
	if err != nil {
		return multierr.Append(err, mgr.Rollback(txnID))
	}
	return mgr.Commit(txnID)
}

func runWithSession(ctx context.Context, txnID uuid.UUID, ac privilege.AccessControl, sess *sessionctx.Session, f func(context.Context, *sessionctx.Session) error) error {
	txnSess, err := sessionctx.NewBuilder(sess).SetTransactionID(txnID).Build()
	if err != nil {
		return err
	}
	if catalog := txnSess.Catalog(); catalog != "" {
		if err := ac.CheckCanAccessCatalog(txnSess.Identity(), catalog); err != nil {
			return err
		}
	}
	return f(ctx, txnSess)
}
