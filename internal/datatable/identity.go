// SPDX-License-Identifier: MPL-2.0

package datatable

import (
	"fmt"
	"math"
	"reflect"
)

// DefaultKeyField is the field KeyByField reads when no field is given.
const DefaultKeyField = "id"

type (
	// KeyFunc derives the identity of a row. index is the row's position in
	// the collection as supplied, before any sorting.
	//
	// Identities must be unique within a collection. Rows sharing an identity
	// are selected and deselected together.
	KeyFunc[T any, K comparable] func(row T, index int) K

	// Record is a row made of named fields, as produced by dataset loaders.
	Record map[string]any
)

// KeyByFunc adapts a function of the row alone into a KeyFunc.
func KeyByFunc[T any, K comparable](fn func(row T) K) KeyFunc[T, K] {
	return func(row T, _ int) K { return fn(row) }
}

// KeyByIndex identifies rows by their position in the supplied collection.
func KeyByIndex[T any]() KeyFunc[T, int] {
	return func(_ T, index int) int { return index }
}

// KeyByField identifies records by the value of field name (DefaultKeyField
// when empty). A record whose field is missing or holds an empty value (nil,
// "", 0, false, NaN) falls back to its positional index as an int64.
// Positional identities shift if the collection is filtered between renders.
//
// Identities are in NormalizeKey form, so an id parsed from text matches the
// row whatever integer type the loader produced.
func KeyByField(name string) KeyFunc[Record, any] {
	if name == "" {
		name = DefaultKeyField
	}
	return func(r Record, index int) any {
		v, ok := r[name]
		if !ok || isEmptyKey(v) {
			return int64(index)
		}
		return NormalizeKey(v)
	}
}

// Field returns the value of field name.
func (r Record) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func isEmptyKey(v any) bool {
	v = normalizeValue(v)
	if isAbsent(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	switch classify(rv.Kind()) {
	case classString:
		return rv.Len() == 0
	case classBool:
		return !rv.Bool()
	case classInt:
		return rv.Int() == 0
	case classUint:
		return rv.Uint() == 0
	case classFloat:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	default:
		return false
	}
}

// NormalizeKey returns the canonical form of a record identity: integers of
// any type and integral floats become int64 (uint64 above math.MaxInt64),
// strings and bools keep their value, and anything else is formatted.
func NormalizeKey(v any) any {
	v = normalizeValue(v)
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch classify(rv.Kind()) {
	case classInt:
		return rv.Int()
	case classUint:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return u
		}
		return int64(u)
	case classFloat:
		f := rv.Float()
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f)
		}
		return f
	case classString:
		return rv.String()
	case classBool:
		return rv.Bool()
	}
	return fmt.Sprint(v)
}
