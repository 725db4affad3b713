package boardstore

import (
	"github.com/Leonardotrentini/vestogestao-sub000/internal/storage"
)

// query names
const (
	GroupsGetByBoardID      = "GroupsGetByBoardID"
	ItemsGetByGroupID       = "ItemsGetByGroupID"
	ColumnsGetByBoardID     = "ColumnsGetByBoardID"
	ColumnValuesGetByItemID = "ColumnValuesGetByItemID"
)

const (
	// a sync rewrites everything it touches, so day-scale staleness is fine
	DefaultTTL = 3600 * 24
)

var groupsTable = &storage.Table{
	Struct:          Group{},
	PrimaryKeyField: "group_id",
	UpsertQuery:     groupsUpsert,
	DeleteQuery:     groupsDelete,
	Queries: []*storage.Query{
		{
			Name:         GroupsGetByBoardID,
			CacheKey:     "service:vestogestao|groups|board_id:%v",
			Query:        "select * from groups where board_id=:board_id order by position",
			CacheTTL:     DefaultTTL,
			WriteAction:  storage.CacheDel,
			SelectAction: storage.CacheSet,
		},
	},
}

var itemsTable = &storage.Table{
	Struct:          Item{},
	PrimaryKeyField: "item_id",
	UpsertQuery:     itemsUpsert,
	DeleteQuery:     itemsDelete,
	Queries: []*storage.Query{
		{
			Name:         ItemsGetByGroupID,
			CacheKey:     "service:vestogestao|items|group_id:%v",
			Query:        "select * from items where group_id=:group_id order by position",
			CacheTTL:     DefaultTTL,
			WriteAction:  storage.CacheDel,
			SelectAction: storage.CacheSet,
		},
	},
}

var columnsTable = &storage.Table{
	Struct:          Column{},
	PrimaryKeyField: "column_id",
	UpsertQuery:     columnsUpsert,
	Queries: []*storage.Query{
		{
			Name:         ColumnsGetByBoardID,
			CacheKey:     "service:vestogestao|columns|board_id:%v",
			Query:        "select * from columns where board_id=:board_id order by position",
			CacheTTL:     DefaultTTL,
			WriteAction:  storage.CacheDel,
			SelectAction: storage.CacheSet,
		},
	},
}

var columnValuesTable = &storage.Table{
	Struct:           ColumnValue{},
	PrimaryKeyField:  "value_id",
	UpsertQuery:      columnValuesUpsert,
	BatchInsertQuery: columnValuesBatchUpsert,
	DeleteQuery:      columnValuesDeleteByItem,
	Queries: []*storage.Query{
		{
			Name:         ColumnValuesGetByItemID,
			CacheKey:     "service:vestogestao|column_values|item_id:%v",
			Query:        "select * from column_values where item_id=:item_id",
			CacheTTL:     DefaultTTL,
			WriteAction:  storage.CacheDel,
			SelectAction: storage.CacheSet,
		},
	},
}
