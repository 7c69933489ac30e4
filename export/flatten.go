package export

import (
	"fmt"
	"sort"

	gojson "github.com/goccy/go-json"
)

// row is one flattened table row: surfaced scalar columns plus the original
// record as opaque JSON.
type row struct {
	designation string
	category    string
	values      map[string]any
	data        []byte
}

// flattenRows normalizes an arbitrary decoded JSON shape into rows using a
// fixed set of heuristics, applied in order:
//
//	(a) {designation -> record}               one row per entry
//	(b) {category -> {designation -> record}} one row per leaf, tagged
//	(c) [record, ...]                         one row per index
//	(d) anything else                         a single row
func flattenRows(raw any) ([]row, error) {
	switch data := raw.(type) {
	case map[string]any:
		if allValuesAreObjects(data) {
			return flattenMapping(data)
		}
		// Single object with scalar values.
		r, err := rowFromObject(data, "", "")
		if err != nil {
			return nil, err
		}
		return []row{r}, nil

	case []any:
		rows := make([]row, 0, len(data))
		for i, item := range data {
			designation := fmt.Sprintf("ITEM_%d", i)
			if obj, ok := item.(map[string]any); ok {
				r, err := rowFromObject(obj, "", designation)
				if err != nil {
					return nil, err
				}
				rows = append(rows, r)
				continue
			}
			r, err := rowFromScalar(item, designation)
			if err != nil {
				return nil, err
			}
			rows = append(rows, r)
		}
		return rows, nil

	default:
		r, err := rowFromScalar(raw, "ITEM")
		if err != nil {
			return nil, err
		}
		return []row{r}, nil
	}
}

// flattenMapping handles shapes (a) and (b). A value whose entries are
// themselves all objects is treated as a category level.
func flattenMapping(data map[string]any) ([]row, error) {
	var rows []row
	for _, key := range sortedKeys(data) {
		obj := data[key].(map[string]any)

		if len(obj) > 0 && allValuesAreObjects(obj) {
			// category -> {designation -> record}
			for _, sub := range sortedKeys(obj) {
				r, err := rowFromObject(obj[sub].(map[string]any), key, sub)
				if err != nil {
					return nil, err
				}
				rows = append(rows, r)
			}
			continue
		}

		// designation -> record
		r, err := rowFromObject(obj, "", key)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// rowFromObject surfaces the object's scalar fields as columns and keeps the
// full object as the data payload.
func rowFromObject(obj map[string]any, category, designation string) (row, error) {
	r := row{values: make(map[string]any, len(obj))}

	for k, v := range obj {
		if isScalar(v) {
			r.values[k] = v
		}
	}

	data, err := gojson.Marshal(obj)
	if err != nil {
		return row{}, fmt.Errorf("encode data payload: %w", err)
	}
	r.data = data

	r.category = category
	switch {
	case designation != "":
		r.designation = designation
	default:
		if d, ok := obj["designation"].(string); ok && d != "" {
			r.designation = d
		} else {
			r.designation = "ITEM"
		}
	}

	return r, nil
}

func rowFromScalar(v any, designation string) (row, error) {
	data, err := gojson.Marshal(v)
	if err != nil {
		return row{}, fmt.Errorf("encode data payload: %w", err)
	}
	return row{
		designation: designation,
		values:      map[string]any{"value": v},
		data:        data,
	}, nil
}

// sortedKeys gives raw (unordered Go map) input a deterministic row order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func allValuesAreObjects(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for _, v := range m {
		if _, ok := v.(map[string]any); !ok {
			return false
		}
	}
	return true
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, float64, float32, int, int64, gojson.Number:
		return true
	default:
		return false
	}
}
