package storage

import "fmt"

const (
	objMapStructNameKey = "_structName"
	objMapPrimaryKeyKey = "_primaryKey"
)

// CacheAction defines what happens to a query's cache entry when a row it
// covers is written or read.
type CacheAction int32

const (
	CacheDefault CacheAction = iota
	CacheNoAction
	CacheDel
	CacheSet
)

/*
Query is a named read backed by both the cache and the database.

The CacheKey follows the format `service:<name>|<table>|field:%v[|field:%v]`
where the field names are the json tags of the struct fields that make the
key unique (e.g. `service:vestogestao|groups|board_id:%v`).
*/
type Query struct {
	Name     string
	CacheKey string

	// Query is the sql run on cache miss. Use sqlx named parameters with the
	// struct's json tags (e.g. `select * from groups where board_id=:board_id`).
	Query string

	CacheTTL int // seconds; 0 = no expiry

	// WriteAction is taken against this query's key when any row of the
	// owning table is inserted, updated or deleted.
	WriteAction CacheAction
	// SelectAction is taken after a cache-miss read (most likely CacheSet).
	SelectAction CacheAction

	cacheKeyFields []string // parsed out of CacheKey
}

// getKeyName renders the CacheKey with the object's field values filled in.
func (q *Query) getKeyName(objMap map[string]interface{}) string {
	args := []interface{}{}
	for _, field := range q.cacheKeyFields {
		args = append(args, objMap[field])
	}
	return fmt.Sprintf(q.CacheKey, args...)
}

// Table binds a db struct to its write queries and the read queries that
// must be invalidated when it changes.
type Table struct {
	Struct          interface{} // zero value of the db struct, json tags = column names
	PrimaryKeyField string      // json tag of the primary key e.g. "item_id"

	InsertQuery string // must end with `returning *`
	UpdateQuery string // must end with `returning *`
	UpsertQuery string // must end with `returning *`
	DeleteQuery string // plain delete, named params

	// BatchInsertQuery is a single-VALUES insert without `returning *`,
	// expanded by sqlx over a slice of rows. Optional.
	BatchInsertQuery string

	Queries []*Query

	tableName string
	objMap    map[string]interface{}
}
