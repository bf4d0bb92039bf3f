package csvexport

import (
	"maps"
	"slices"
)

// Record is an ordered mapping from field name to value. Keys keep the
// position of their first Set. Copies of a Record are independent: Set on
// one never changes another.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord returns an empty record.
func NewRecord() Record {
	return Record{values: map[string]Value{}}
}

// Set stores value under key. Re-setting a key keeps its original position.
func (r *Record) Set(key string, value Value) {
	values := maps.Clone(r.values)
	if values == nil {
		values = map[string]Value{}
	}
	if !slices.Contains(r.keys, key) {
		r.keys = append(slices.Clip(r.keys), key)
	}
	values[key] = value
	r.values = values
}

// Get returns the value stored under key.
func (r Record) Get(key string) (Value, bool) {
	value, ok := r.values[key]
	return value, ok
}

// Keys returns a copy of the field names in insertion order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.keys)
}
