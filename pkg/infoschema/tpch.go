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
	"github.com/pingcap/planrule/pkg/sessiontxn"
	"github.com/pingcap/planrule/pkg/types"
)

// TPCHCatalog is the name of the catalog created by NewTPCHMetadata.
const TPCHCatalog = "tpch"

func col(name string, tp *types.FieldType) *ColumnInfo {
	return &ColumnInfo{Name: name, Type: tp}
}

// tpchTables are the tables of the TPC-H benchmark at scale factor 1.
var tpchTables = []*TableInfo{
	{
		Name:     "region",
		RowCount: 5,
		Columns: []*ColumnInfo{
			col("regionkey", types.BigInt),
			col("name", types.NewVarcharType(25)),
			col("comment", types.NewVarcharType(152)),
		},
	},
	{
		Name:     "nation",
		RowCount: 25,
		Columns: []*ColumnInfo{
			col("nationkey", types.BigInt),
			col("name", types.NewVarcharType(25)),
			col("regionkey", types.BigInt),
			col("comment", types.NewVarcharType(152)),
		},
	},
	{
		Name:     "supplier",
		RowCount: 10_000,
		Columns: []*ColumnInfo{
			col("suppkey", types.BigInt),
			col("name", types.NewVarcharType(25)),
			col("address", types.NewVarcharType(40)),
			col("nationkey", types.BigInt),
			col("phone", types.NewVarcharType(15)),
			col("acctbal", types.Double),
			col("comment", types.NewVarcharType(101)),
		},
	},
	{
		Name:     "customer",
		RowCount: 150_000,
		Columns: []*ColumnInfo{
			col("custkey", types.BigInt),
			col("name", types.NewVarcharType(25)),
			col("address", types.NewVarcharType(40)),
			col("nationkey", types.BigInt),
			col("phone", types.NewVarcharType(15)),
			col("acctbal", types.Double),
			col("mktsegment", types.NewVarcharType(10)),
			col("comment", types.NewVarcharType(117)),
		},
	},
	{
		Name:     "part",
		RowCount: 200_000,
		Columns: []*ColumnInfo{
			col("partkey", types.BigInt),
			col("name", types.NewVarcharType(55)),
			col("mfgr", types.NewVarcharType(25)),
			col("brand", types.NewVarcharType(10)),
			col("type", types.NewVarcharType(25)),
			col("size", types.BigInt),
			col("container", types.NewVarcharType(10)),
			col("retailprice", types.Double),
			col("comment", types.NewVarcharType(23)),
		},
	},
	{
		Name:     "partsupp",
		RowCount: 800_000,
		Columns: []*ColumnInfo{
			col("partkey", types.BigInt),
			col("suppkey", types.BigInt),
			col("availqty", types.BigInt),
			col("supplycost", types.Double),
			col("comment", types.NewVarcharType(199)),
		},
	},
	{
		Name:     "orders",
		RowCount: 1_500_000,
		Columns: []*ColumnInfo{
			col("orderkey", types.BigInt),
			col("custkey", types.BigInt),
			col("orderstatus", types.NewVarcharType(1)),
			col("totalprice", types.Double),
			col("orderdate", types.Date),
			col("orderpriority", types.NewVarcharType(15)),
			col("clerk", types.NewVarcharType(15)),
			col("shippriority", types.BigInt),
			col("comment", types.NewVarcharType(79)),
		},
	},
	{
		Name:     "lineitem",
		RowCount: 6_001_215,
		Columns: []*ColumnInfo{
			col("orderkey", types.BigInt),
			col("partkey", types.BigInt),
			col("suppkey", types.BigInt),
			col("linenumber", types.BigInt),
			col("quantity", types.Double),
			col("extendedprice", types.Double),
			col("discount", types.Double),
			col("tax", types.Double),
			col("returnflag", types.NewVarcharType(1)),
			col("linestatus", types.NewVarcharType(1)),
			col("shipdate", types.Date),
			col("commitdate", types.Date),
			col("receiptdate", types.Date),
			col("shipinstruct", types.NewVarcharType(25)),
			col("shipmode", types.NewVarcharType(10)),
			col("comment", types.NewVarcharType(44)),
		},
	},
}

// NewTPCHMetadata creates a Metadata holding the TPC-H tables in the tpch catalog.
func NewTPCHMetadata(txnMgr *sessiontxn.TransactionManager) *Metadata {
	m := NewMetadata(txnMgr)
	m.CreateCatalog(TPCHCatalog)
	for _, tbl := range tpchTables {
		// the catalog exists, AddTable cannot fail.
		_ = m.AddTable(TPCHCatalog, tbl)
	}
	return m
}
