package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	WidgetID string `json:"widget_id"`
	OwnerID  string `json:"owner_id"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

func TestStructToMapRoundTrip(t *testing.T) {
	w := &widget{WidgetID: "w1", OwnerID: "o1", Label: "caixa", Count: 3}

	m, err := structToMap(w)
	require.NoError(t, err)
	assert.Equal(t, "w1", m["widget_id"])
	assert.Equal(t, "widget", m[objMapStructNameKey])

	out := &widget{}
	require.NoError(t, mapToStruct(m, out))
	assert.Equal(t, w, out)
}

func TestMapToStructHandlesDriverBytes(t *testing.T) {
	// MapScan hands text columns back as []byte; they must not get base64'd
	m := map[string]interface{}{
		"widget_id":         []byte("w2"),
		"label":             []byte("célula"),
		"count":             int64(7),
		objMapStructNameKey: "widget",
	}

	out := &widget{}
	require.NoError(t, mapToStruct(m, out))
	assert.Equal(t, "w2", out.WidgetID)
	assert.Equal(t, "célula", out.Label)
	assert.Equal(t, 7, out.Count)
}

func TestMapsToStruct(t *testing.T) {
	rows := []map[string]interface{}{
		{"widget_id": "a", objMapStructNameKey: "widget"},
		{"widget_id": "b", objMapStructNameKey: "widget"},
	}

	out := []widget{}
	require.NoError(t, mapsToStruct(rows, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].WidgetID)
	assert.Equal(t, "b", out[1].WidgetID)
}

func TestParseCacheFields(t *testing.T) {
	q := &Query{CacheKey: "service:vestogestao|widgets|owner_id:%v"}
	require.NoError(t, q.parseCacheFields())
	assert.Equal(t, []string{"owner_id"}, q.cacheKeyFields)

	name := q.getKeyName(map[string]interface{}{"owner_id": "o9"})
	assert.Equal(t, "service:vestogestao|widgets|owner_id:o9", name)
}

func TestParseCacheFieldsRejectsBadKeys(t *testing.T) {
	for _, bad := range []string{
		"widgets|owner_id:%v",             // missing service prefix
		"service:x|widgets",               // too few pipes
		"service:x|wid%vgets|owner_id:%v", // placeholder in table pipe
		"service:x|widgets|owner:%v:id",   // double colon
	} {
		q := &Query{CacheKey: bad}
		assert.Error(t, q.parseCacheFields(), "key %q", bad)
	}
}

func TestTableValidate(t *testing.T) {
	table := &Table{
		Struct:          widget{},
		PrimaryKeyField: "widget_id",
		InsertQuery:     "insert into widgets (label) values (:label) returning *",
		Queries: []*Query{
			{
				Name:     "WidgetsGetByOwnerID",
				CacheKey: "service:vestogestao|widgets|owner_id:%v",
				Query:    "select * from widgets where owner_id=:owner_id",
			},
		},
	}
	require.NoError(t, table.validate())
	assert.Equal(t, "widget", table.tableName)
}

func TestTableValidateRejectsMissingReturning(t *testing.T) {
	table := &Table{
		Struct:          widget{},
		PrimaryKeyField: "widget_id",
		InsertQuery:     "insert into widgets (label) values (:label)",
		Queries:         []*Query{{Name: "q", CacheKey: "service:x|widgets|id:%v", Query: "select 1"}},
	}
	assert.Error(t, table.validate())
}

func TestTableValidateRejectsReturningInBatch(t *testing.T) {
	table := &Table{
		Struct:           widget{},
		PrimaryKeyField:  "widget_id",
		BatchInsertQuery: "insert into widgets (label) values (:label) returning *",
		Queries:          []*Query{{Name: "q", CacheKey: "service:x|widgets|id:%v", Query: "select 1"}},
	}
	assert.Error(t, table.validate())
}
