package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
)

// Storage is the cache-through persistence API this package exposes. Objects
// are plain structs whose json tags name their db columns; reads are served
// from the cache when possible and fall back to the configured named query.
type Storage interface {
	Insert(ctx context.Context, obj interface{}) error
	Update(ctx context.Context, obj interface{}) error
	// Upsert runs the table's UpsertQuery and fills obj from `returning *`.
	Upsert(ctx context.Context, obj interface{}) error
	// InsertBatch runs the table's BatchInsertQuery over all objs at once.
	// All objs must be of the same table's struct type.
	InsertBatch(ctx context.Context, objs ...interface{}) error
	Delete(ctx context.Context, obj interface{}) error

	// SelectOne fills obj with the single row the named query returns for it.
	SelectOne(ctx context.Context, obj interface{}, queryName string) error
	// SelectAll fills dest (pointer to a slice) with every row the named
	// query returns for obj's field values.
	SelectAll(ctx context.Context, obj interface{}, dest interface{}, queryName string) error

	// InvalidateKeys drops the cache entries covering the given objects.
	InvalidateKeys(ctx context.Context, objs ...interface{}) error
}

type storage struct {
	db    *db
	cache *cache

	serviceName string
	useCache    bool

	queries       map[string]*Query
	queryToTable  map[string]*Table
	structToTable map[string]*Table
}

type Config struct {
	ReadOnlyDbConn  *sqlx.DB
	WriteOnlyDbConn *sqlx.DB
	Redis           *redis.Client
	Tables          []*Table
	ServiceName     string
	DoNotUseCache   bool
	Debugger        bool
}

// New validates the table/query configuration and returns the storage.
func New(conf *Config) (Storage, error) {
	debug = &logger{debuggerEnabled: conf.Debugger}

	s := &storage{
		db:            newDB(conf),
		cache:         newCache(conf.Redis),
		serviceName:   conf.ServiceName,
		useCache:      !conf.DoNotUseCache && conf.Redis != nil,
		queries:       make(map[string]*Query),
		queryToTable:  make(map[string]*Table),
		structToTable: make(map[string]*Table),
	}

	for _, table := range conf.Tables {
		if err := table.validate(); err != nil {
			return nil, err
		}

		s.structToTable[table.tableName] = table
		for _, q := range table.Queries {
			if _, dup := s.queries[q.Name]; dup {
				return nil, errors.New("duplicate query name: " + q.Name)
			}
			s.queries[q.Name] = q
			s.queryToTable[q.Name] = table
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *storage) Insert(ctx context.Context, obj interface{}) error {
	return s.write(ctx, obj, func(t *Table) string { return t.InsertQuery })
}

func (s *storage) Update(ctx context.Context, obj interface{}) error {
	return s.write(ctx, obj, func(t *Table) string { return t.UpdateQuery })
}

func (s *storage) Upsert(ctx context.Context, obj interface{}) error {
	return s.write(ctx, obj, func(t *Table) string { return t.UpsertQuery })
}

// write runs a `returning *` query for obj and merges the returned row back
// into it, then takes the table's cache write actions.
func (s *storage) write(ctx context.Context, obj interface{}, pick func(*Table) string) error {
	objMap, err := structToMap(obj)
	if err != nil {
		return err
	}

	table, err := s.tableFor(objMap)
	if err != nil {
		return err
	}

	query := pick(table)
	if query == "" {
		return errors.New("storage: no query configured for " + table.tableName)
	}

	res, err := s.db.query(ctx, objMap, query, s.db.writeConn())
	if err != nil {
		return err
	}
	if len(res) != 1 {
		return fmt.Errorf("storage: write returned %d rows, want 1", len(res))
	}

	// objMap may hold fields the row doesn't, so overlay rather than replace
	for k, v := range res[0] {
		objMap[k] = v
	}

	s.cacheWriteActions(ctx, table, objMap)
	return mapToStruct(objMap, obj)
}

func (s *storage) InsertBatch(ctx context.Context, objs ...interface{}) error {
	if len(objs) == 0 {
		return nil
	}

	rows := make([]map[string]interface{}, 0, len(objs))
	var table *Table
	for _, obj := range objs {
		objMap, err := structToMap(obj)
		if err != nil {
			return err
		}
		t, err := s.tableFor(objMap)
		if err != nil {
			return err
		}
		if table == nil {
			table = t
		} else if table != t {
			return errors.New("storage: InsertBatch objs span multiple tables")
		}
		rows = append(rows, objMap)
	}

	if table.BatchInsertQuery == "" {
		return errors.New("storage: no BatchInsertQuery configured for " + table.tableName)
	}

	if err := s.db.exec(ctx, table.BatchInsertQuery, rows); err != nil {
		return err
	}

	for _, row := range rows {
		s.cacheWriteActions(ctx, table, row)
	}
	return nil
}

func (s *storage) Delete(ctx context.Context, obj interface{}) error {
	objMap, err := structToMap(obj)
	if err != nil {
		return err
	}

	table, err := s.tableFor(objMap)
	if err != nil {
		return err
	}
	if table.DeleteQuery == "" {
		return errors.New("storage: no DeleteQuery configured for " + table.tableName)
	}

	if err := s.db.exec(ctx, table.DeleteQuery, objMap); err != nil {
		return err
	}

	s.cacheWriteActions(ctx, table, objMap)
	return nil
}

func (s *storage) SelectOne(ctx context.Context, obj interface{}, queryName string) error {
	q, ok := s.queries[queryName]
	if !ok {
		return errors.New("config query not found; have you configured storage properly?")
	}

	objMap, err := structToMap(obj)
	if err != nil {
		return err
	}

	keyName := q.getKeyName(objMap)

	if s.useCache {
		err = s.cache.get(ctx, keyName, obj)
		if err == nil {
			return nil
		}
		if err != redis.Nil {
			return err
		}
	}

	res, err := s.db.query(ctx, objMap, q.Query, s.db.readConn())
	if err != nil {
		return err
	}
	if len(res) == 0 {
		return ErrNotFound
	}

	if s.useCache && q.SelectAction == CacheSet {
		s.cache.set(ctx, keyName, res[0], q.CacheTTL)
	}

	return mapToStruct(res[0], obj)
}

func (s *storage) SelectAll(ctx context.Context, obj interface{}, dest interface{}, queryName string) error {
	q, ok := s.queries[queryName]
	if !ok {
		return errors.New("config query not found; have you configured storage properly?")
	}

	objMap, err := structToMap(obj)
	if err != nil {
		return err
	}

	keyName := q.getKeyName(objMap)

	if s.useCache && q.SelectAction == CacheSet {
		err = s.cache.get(ctx, keyName, dest)
		if err == nil {
			d("cache hit: %s", keyName)
			return nil
		}
		if err != redis.Nil {
			return err
		}
	}

	res, err := s.db.query(ctx, objMap, q.Query, s.db.readConn())
	if err != nil {
		return err
	}

	if err := mapsToStruct(res, dest); err != nil {
		return err
	}

	if s.useCache && q.SelectAction == CacheSet {
		s.cache.set(ctx, keyName, dest, q.CacheTTL)
	}
	return nil
}

func (s *storage) InvalidateKeys(ctx context.Context, objs ...interface{}) error {
	for _, obj := range objs {
		objMap, err := structToMap(obj)
		if err != nil {
			return err
		}
		table, err := s.tableFor(objMap)
		if err != nil {
			return err
		}
		for _, q := range table.Queries {
			if err := s.cache.del(ctx, q.getKeyName(objMap)); err != nil {
				return err
			}
		}
	}
	return nil
}

// cacheWriteActions takes each query's WriteAction after a row write. Cache
// trouble never fails the write; the entry is at worst re-read from the db.
func (s *storage) cacheWriteActions(ctx context.Context, table *Table, objMap map[string]interface{}) {
	if !s.useCache {
		return
	}
	for _, q := range table.Queries {
		switch q.WriteAction {
		case CacheNoAction:
		case CacheSet:
			if err := s.cache.set(ctx, q.getKeyName(objMap), objMap, q.CacheTTL); err != nil {
				d("cache set failed for %s: %v", q.Name, err)
			}
		default:
			// deleting the key is never the wrong move
			if err := s.cache.del(ctx, q.getKeyName(objMap)); err != nil {
				d("cache del failed for %s: %v", q.Name, err)
			}
		}
	}
}

func (s *storage) tableFor(objMap map[string]interface{}) (*Table, error) {
	structName, _ := objMap[objMapStructNameKey].(string)
	if structName == "" {
		return nil, errors.New("struct name cannot be blank")
	}
	table, ok := s.structToTable[structName]
	if !ok {
		return nil, errors.New("no table config found for " + structName)
	}
	return table, nil
}

// ErrNotFound is returned by SelectOne when the query matches no row.
var ErrNotFound = errors.New("storage: no results found")
