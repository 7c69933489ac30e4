package property

import (
	"fmt"
	"unique"

	gojson "github.com/goccy/go-json"
)

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	type Alias Value
	aux := &struct {
		S string `json:"s,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(&v),
	}
	if v.Kind == KindString {
		aux.S = v.s.Value()
	}
	return gojson.Marshal(aux)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	type Alias Value
	aux := &struct {
		S string `json:"s,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(v),
	}
	if err := gojson.Unmarshal(data, &aux); err != nil {
		return err
	}
	if v.Kind == KindString {
		v.s = unique.Make(aux.S)
	}
	return nil
}

// MarshalPlain encodes the record as a plain JSON object, the same shape it
// was loaded from (numbers, strings, booleans, nulls), not the tagged Value
// encoding. Reserved keys are included; strip with Clean first if unwanted.
func (r Record) MarshalPlain() ([]byte, error) {
	return gojson.Marshal(r.Plain())
}

// RecordFromJSON decodes a plain JSON object into a Record.
//
// Nested objects or arrays inside a record are not domain properties; they
// are preserved as their raw JSON text in a string value so nothing is lost.
func RecordFromJSON(data []byte) (Record, error) {
	var raw map[string]any
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return RecordFromAny(raw)
}
