package storage

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx/reflectx"
)

func jsonMapper() *reflectx.Mapper {
	return reflectx.NewMapperFunc("json", strings.ToLower)
}

func getStructName(myvar interface{}) string {
	if t := reflect.TypeOf(myvar); t.Kind() == reflect.Ptr {
		return t.Elem().Name()
	} else {
		return t.Name()
	}
}

/*
structToMap round-trips the struct through json so the map keys are the
struct's json tags, which are also the db column names. The struct name is
tucked into the map so a row can always be traced back to its table config.
*/
func structToMap(obj interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}

	objMap := map[string]interface{}{}
	if err := json.Unmarshal(raw, &objMap); err != nil {
		return nil, err
	}

	objMap[objMapStructNameKey] = getStructName(obj)
	return objMap, nil
}

// mapToStruct writes a row map back into the struct it came from.
func mapToStruct(objMap map[string]interface{}, obj interface{}) error {
	cleaned := cleanRow(objMap)

	raw, err := json.Marshal(cleaned)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, obj)
}

// mapsToStruct writes row maps into dest, a pointer to a slice of structs.
func mapsToStruct(objMaps []map[string]interface{}, dest interface{}) error {
	cleaned := make([]map[string]interface{}, 0, len(objMaps))
	for _, m := range objMaps {
		cleaned = append(cleaned, cleanRow(m))
	}

	raw, err := json.Marshal(cleaned)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// cleanRow drops the bookkeeping keys and turns driver []byte values into
// strings so the json round trip doesn't base64 them.
func cleanRow(objMap map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(objMap))
	for k, v := range objMap {
		if k == objMapStructNameKey || k == objMapPrimaryKeyKey {
			continue
		}
		if b, ok := v.([]byte); ok {
			out[k] = string(b)
			continue
		}
		out[k] = v
	}
	return out
}
