package storage

import (
	"errors"
	"fmt"
	"strings"
)

func (s *storage) validate() error {
	if s.serviceName == "" {
		return errors.New("serviceName must be set")
	}

	for _, q := range s.queries {
		if q.Query == "" {
			return errors.New("Query must be set in " + q.Name)
		}
	}
	return nil
}

func (t *Table) validate() error {
	if t.Struct == nil {
		return fmt.Errorf("Struct must be set")
	}

	t.parseTableName()

	if t.PrimaryKeyField == "" && t.InsertQuery != "" {
		return fmt.Errorf("Table: %s Err: PrimaryKeyField must be set", t.tableName)
	}

	if len(t.Queries) == 0 {
		return fmt.Errorf("Table: %s Err: Queries must be set", t.tableName)
	}

	if err := t.validateWriteQueries(); err != nil {
		return fmt.Errorf("Table: %s Err: %s", t.tableName, err)
	}

	if err := t.parseObjMap(); err != nil {
		return err
	}

	for _, q := range t.Queries {
		if err := q.parseCacheFields(); err != nil {
			return fmt.Errorf("Table: %s Err: %s", t.tableName, err)
		}
	}
	return nil
}

func (t *Table) validateWriteQueries() error {
	// insert/update/upsert aren't required (read-only tables exist) but when
	// present they must hand the row back so the caller's struct gets filled
	for _, q := range []string{t.InsertQuery, t.UpdateQuery, t.UpsertQuery} {
		if q != "" && !strings.HasSuffix(strings.ToLower(strings.TrimSpace(q)), "returning *") {
			return errors.New("write queries must end with `returning *`")
		}
	}

	if t.BatchInsertQuery != "" && strings.Contains(strings.ToLower(t.BatchInsertQuery), "returning") {
		return errors.New("BatchInsertQuery must not have a returning clause")
	}
	return nil
}

func (t *Table) parseObjMap() error {
	objMap, err := structToMap(t.Struct)
	if err != nil {
		return fmt.Errorf("error getting struct map for %s: %s", t.tableName, err)
	}

	objMap[objMapPrimaryKeyKey] = t.PrimaryKeyField
	t.objMap = objMap
	return nil
}

func (t *Table) parseTableName() {
	// cached because it's read on every write and uses reflection
	t.tableName = getStructName(t.Struct)
}

// parseCacheFields takes a generic key e.g. `service:vestogestao|groups|board_id:%v`
// and places the board_id into cacheKeyFields.
func (q *Query) parseCacheFields() error {
	q.cacheKeyFields = []string{}

	keys := strings.Split(q.CacheKey, "|")
	if len(keys) <= 2 {
		return errors.New("invalid CacheKey; please see documentation for common format")
	}

	if !strings.HasPrefix(keys[0], "service:") {
		return errors.New("invalid CacheKey; must start with `service:` in first pipe")
	}

	if strings.Contains(keys[1], `%v`) {
		return errors.New("invalid CacheKey; must not contain `%v` in second pipe")
	}

	fields := []string{}
	for _, key := range keys[2:] {
		if !strings.Contains(key, `:%v`) {
			// field doesn't have a placeholder value; continue
			continue
		}

		parts := strings.Split(key, ":")
		if len(parts) != 2 {
			return errors.New("invalid CacheKey; a pipe can only have one colon & must be in the format `field:%v`")
		}

		fields = append(fields, parts[0])
	}

	q.cacheKeyFields = fields
	return nil
}
