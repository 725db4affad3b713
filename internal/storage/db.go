package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type db struct {
	writeConnection *sqlx.DB
	readConnection  *sqlx.DB
}

func newDB(conf *Config) *db {
	// use the json tag instead of the db tag so structs carry one tag set
	conf.ReadOnlyDbConn.Mapper = jsonMapper()
	if conf.WriteOnlyDbConn != conf.ReadOnlyDbConn {
		conf.WriteOnlyDbConn.Mapper = jsonMapper()
	}

	return &db{
		writeConnection: conf.WriteOnlyDbConn,
		readConnection:  conf.ReadOnlyDbConn,
	}
}

func (db *db) query(ctx context.Context, objMap map[string]interface{}, query string, conn *sqlx.DB) ([]map[string]interface{}, error) {
	rows, err := conn.NamedQueryContext(ctx, query, objMap)
	if err != nil {
		return nil, err
	}
	// Let's make sure we don't have a memory leak!! :)
	defer rows.Close()

	objs := []map[string]interface{}{}

	for rows.Next() {
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}

		// carry the struct name through so the row maps back to its table
		row[objMapStructNameKey] = objMap[objMapStructNameKey]
		objs = append(objs, row)
	}

	return objs, rows.Err()
}

// exec runs a named statement that returns no rows. arg may be a single map
// or a slice of maps (sqlx expands the latter into a multi-row VALUES).
func (db *db) exec(ctx context.Context, query string, arg interface{}) error {
	_, err := sqlx.NamedExecContext(ctx, db.writeConnection, query, arg)
	return err
}

func (db *db) writeConn() *sqlx.DB {
	return db.writeConnection
}

func (db *db) readConn() *sqlx.DB {
	return db.readConnection
}
