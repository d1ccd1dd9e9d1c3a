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
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/pingcap/errors"
	"github.com/pingcap/failpoint"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
	"github.com/pingcap/planrule/pkg/util/logutil"
	"go.uber.org/zap"
)

const mockCommitErrorFP = "github.com/pingcap/planrule/pkg/sessiontxn/mockCommitError"

type transaction struct {
	catalogs map[string]struct{}
}

// TransactionManager keeps the metadata transactions in memory. Committing or
// rolling back a transaction forgets it.
type TransactionManager struct {
	mu   sync.Mutex
	txns map[uuid.UUID]*transaction
}

// NewTransactionManager creates a TransactionManager.
func NewTransactionManager() *TransactionManager {
	return &TransactionManager{txns: make(map[uuid.UUID]*transaction)}
}

// Begin starts a new transaction.
func (m *TransactionManager) Begin() uuid.UUID {
	id := uuid.New()
	m.mu.Lock()
	m.txns[id] = &transaction{catalogs: make(map[string]struct{})}
	m.mu.Unlock()
	return id
}

// IsActive checks whether the transaction is neither committed nor rolled back.
func (m *TransactionManager) IsActive(txnID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.txns[txnID]
	return ok
}

// ActiveTransactionCount returns the number of active transactions.
func (m *TransactionManager) ActiveTransactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txns)
}

// RegisterCatalog records that the transaction uses catalog. Registering a
// catalog twice is a no-op.
func (m *TransactionManager) RegisterCatalog(txnID uuid.UUID, catalog string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.txns[txnID]
	if !ok {
		return plannererrors.ErrTxnNotFound.GenWithStackByArgs(txnID)
	}
	txn.catalogs[catalog] = struct{}{}
	return nil
}

// GetCatalogs returns the sorted catalogs registered in the transaction.
func (m *TransactionManager) GetCatalogs(txnID uuid.UUID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.txns[txnID]
	if !ok {
		return nil, plannererrors.ErrTxnNotFound.GenWithStackByArgs(txnID)
	}
	catalogs := make([]string, 0, len(txn.catalogs))
	for c := range txn.catalogs {
		catalogs = append(catalogs, c)
	}
	slices.Sort(catalogs)
	return catalogs, nil
}

// Commit commits the transaction.
func (m *TransactionManager) Commit(txnID uuid.UUID) error {
	txn, err := m.remove(txnID)
	if err != nil {
		return err
	}
	if val, _err_ := failpoint.Eval(mockCommitErrorFP); _err_ == nil {
		if val.(bool) {
			return errors.New("mock commit error")
		}
	}
	logutil.BgLogger().Debug("commit transaction",
		zap.Stringer("txn", txnID), zap.Int("catalogs", len(txn.catalogs)))
	return nil
}

// Rollback aborts the transaction.
func (m *TransactionManager) Rollback(txnID uuid.UUID) error {
	_, err := m.remove(txnID)
	if err != nil {
		return err
	}
	logutil.BgLogger().Debug("rollback transaction", zap.Stringer("txn", txnID))
	return nil
}

func (m *TransactionManager) remove(txnID uuid.UUID) (*transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.txns[txnID]
	if !ok {
		return nil, plannererrors.ErrTxnNotFound.GenWithStackByArgs(txnID)
	}
	delete(m.txns, txnID)
	return txn, nil
}
