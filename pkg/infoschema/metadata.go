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

package infoschema

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/pingcap/planrule/pkg/planner/cardinality"
	"github.com/pingcap/planrule/pkg/sessionctx"
	"github.com/pingcap/planrule/pkg/sessiontxn"
	"github.com/pingcap/planrule/pkg/types"
	"github.com/pingcap/planrule/pkg/util/dbterror/plannererrors"
)

var _ cardinality.TableStatsSource = &Metadata{}

// ColumnInfo provides meta data describing a table column.
type ColumnInfo struct {
	Name string
	Type *types.FieldType
}

// TableInfo provides meta data describing a table.
type TableInfo struct {
	Name     string
	Columns  []*ColumnInfo
	RowCount int64
}

// FindColumn finds the column named name, case-insensitively.
func (t *TableInfo) FindColumn(name string) (*ColumnInfo, bool) {
	for _, col := range t.Columns {
		if strings.EqualFold(col.Name, name) {
			return col, true
		}
	}
	return nil, false
}

// CatalogHandle is a catalog opened in a transaction.
type CatalogHandle struct {
	Name string
}

// Metadata holds catalogs of tables. Every access goes through the
// transaction of the session, which records the catalogs it uses.
type Metadata struct {
	txnMgr *sessiontxn.TransactionManager

	mu       sync.RWMutex
	catalogs map[string]map[string]*TableInfo
}

// NewMetadata creates an empty Metadata.
func NewMetadata(txnMgr *sessiontxn.TransactionManager) *Metadata {
	return &Metadata{
		txnMgr:   txnMgr,
		catalogs: make(map[string]map[string]*TableInfo),
	}
}

// CreateCatalog creates an empty catalog. Creating an existing catalog is a no-op.
func (m *Metadata) CreateCatalog(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = strings.ToLower(name)
	if _, ok := m.catalogs[name]; !ok {
		m.catalogs[name] = make(map[string]*TableInfo)
	}
}

// AddTable adds tbl to catalog, replacing the table of the same name.
func (m *Metadata) AddTable(catalog string, tbl *TableInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tables, ok := m.catalogs[strings.ToLower(catalog)]
	if !ok {
		return plannererrors.ErrUnknownCatalog.GenWithStackByArgs(catalog)
	}
	tables[strings.ToLower(tbl.Name)] = tbl
	return nil
}

// CatalogNames returns the sorted catalog names.
func (m *Metadata) CatalogNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.catalogs))
}

// GetCatalogHandle opens catalog in the transaction of sess.
func (m *Metadata) GetCatalogHandle(sess *sessionctx.Session, catalog string) (*CatalogHandle, error) {
	name := strings.ToLower(catalog)
	m.mu.RLock()
	_, ok := m.catalogs[name]
	m.mu.RUnlock()
	if !ok {
		return nil, plannererrors.ErrUnknownCatalog.GenWithStackByArgs(catalog)
	}
	txnID, ok := sess.TransactionID()
	if !ok {
		return nil, plannererrors.ErrTxnNotBound.GenWithStackByArgs(sess.QueryID())
	}
	if err := m.txnMgr.RegisterCatalog(txnID, name); err != nil {
		return nil, err
	}
	return &CatalogHandle{Name: name}, nil
}

// GetTable returns the table named table of catalog.
func (m *Metadata) GetTable(sess *sessionctx.Session, catalog, table string) (*TableInfo, error) {
	handle, err := m.GetCatalogHandle(sess, catalog)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	tbl, ok := m.catalogs[handle.Name][strings.ToLower(table)]
	if !ok {
		return nil, plannererrors.ErrUnknownTable.GenWithStackByArgs(catalog, table)
	}
	return tbl, nil
}

// TableRowCount implements cardinality.TableStatsSource interface. The table
// is looked up in the catalog of sess.
func (m *Metadata) TableRowCount(sess *sessionctx.Session, table string) (int64, error) {
	tbl, err := m.GetTable(sess, sess.Catalog(), table)
	if err != nil {
		return 0, err
	}
	return tbl.RowCount, nil
}
