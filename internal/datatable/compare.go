// SPDX-License-Identifier: MPL-2.0

package datatable

import (
	"cmp"
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	classOther valueClass = iota
	classString
	classBool
	classInt
	classUint
	classFloat
)

// DefaultLanguage is the collation language used when none is configured.
var DefaultLanguage = language.English

type (
	// Comparer orders column values. Strings are compared with a collator for
	// the configured language, other values by their natural order.
	//
	// A Comparer holds collation buffers and must not be shared between
	// goroutines.
	Comparer struct {
		tag      language.Tag
		collator *collate.Collator
	}

	// nuller is implemented by values that can represent an absent value
	// without being nil.
	nuller interface {
		IsNull() bool
	}

	valueClass int
)

// NewComparer returns a Comparer collating strings for the given language.
func NewComparer(tag language.Tag, opts ...collate.Option) *Comparer {
	return &Comparer{
		tag:      tag,
		collator: collate.New(tag, opts...),
	}
}

// Language returns the collation language.
func (c *Comparer) Language() language.Tag {
	return c.tag
}

// Compare orders a and b ascending. It returns a negative number when a sorts
// before b, zero when they are equal and a positive number otherwise.
func (c *Comparer) Compare(a, b any) int {
	return c.CompareDirected(a, b, SortAscending)
}

// CompareDirected orders a and b for the given direction.
//
// Absent values (nil, nil pointers, sql null values, values whose IsNull
// reports true) sort before present ones in both directions; only the
// comparison of two present values is inverted for SortDescending.
func (c *Comparer) CompareDirected(a, b any, dir SortDirection) int {
	a, b = normalizeValue(a), normalizeValue(b)

	aAbsent, bAbsent := isAbsent(a), isAbsent(b)
	switch {
	case aAbsent && bAbsent:
		return 0
	case aAbsent:
		return -1
	case bAbsent:
		return 1
	}

	if equalValues(a, b) {
		return 0
	}

	r := c.compareValues(a, b)
	if dir == SortDescending {
		return -r
	}
	return r
}

func (c *Comparer) compareValues(a, b any) int {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)

	if r, ok := compareByMethod(ra, rb); ok {
		return r
	}

	ca, cb := classify(ra.Kind()), classify(rb.Kind())
	switch {
	case ca == classString && cb == classString:
		return c.collatorOrDefault().CompareString(ra.String(), rb.String())
	case ca == classBool && cb == classBool:
		return compareBool(ra.Bool(), rb.Bool())
	case isNumeric(ca) && isNumeric(cb):
		return compareNumbers(ra, ca, rb, cb)
	}

	// Mixed types: callers are expected to keep a column homogeneous. Order
	// by type name, then by formatted text, so the result is at least stable.
	if r := strings.Compare(ra.Type().String(), rb.Type().String()); r != 0 {
		return r
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func (c *Comparer) collatorOrDefault() *collate.Collator {
	if c == nil || c.collator == nil {
		return collate.New(DefaultLanguage)
	}
	return c.collator
}

// compareByMethod uses a Compare(T) int method, as found on time.Time.
func compareByMethod(a, b reflect.Value) (int, bool) {
	m := a.MethodByName("Compare")
	if !m.IsValid() {
		return 0, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Int {
		return 0, false
	}
	if !b.Type().AssignableTo(mt.In(0)) {
		return 0, false
	}
	out := m.Call([]reflect.Value{b})
	return cmp.Compare(out[0].Int(), 0), true
}

func compareNumbers(a reflect.Value, ca valueClass, b reflect.Value, cb valueClass) int {
	switch {
	case ca == classInt && cb == classInt:
		return cmp.Compare(a.Int(), b.Int())
	case ca == classUint && cb == classUint:
		return cmp.Compare(a.Uint(), b.Uint())
	case ca == classInt && cb == classUint:
		if a.Int() < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.Int()), b.Uint())
	case ca == classUint && cb == classInt:
		if b.Int() < 0 {
			return 1
		}
		return cmp.Compare(a.Uint(), uint64(b.Int()))
	default:
		return cmp.Compare(toFloat(a, ca), toFloat(b, cb))
	}
}

func toFloat(v reflect.Value, c valueClass) float64 {
	switch c {
	case classInt:
		return float64(v.Int())
	case classUint:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func classify(k reflect.Kind) valueClass {
	switch k {
	case reflect.String:
		return classString
	case reflect.Bool:
		return classBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return classUint
	case reflect.Float32, reflect.Float64:
		return classFloat
	default:
		return classOther
	}
}

func isNumeric(c valueClass) bool {
	return c == classInt || c == classUint || c == classFloat
}

// equalValues reports value equality for two present values of the same
// comparable type.
func equalValues(a, b any) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	if ta.Kind() == reflect.Struct || ta.Kind() == reflect.Array {
		// A comparable struct type can still hold interface fields with
		// incomparable dynamic values; == would panic on those.
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

// isAbsent reports whether v stands for a missing value.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return true
		}
	}
	if n, ok := v.(nuller); ok {
		return n.IsNull()
	}
	return false
}

// normalizeValue dereferences pointers and unwraps driver values so that
// *string compares like string and sql.NullInt64 like int64.
func normalizeValue(v any) any {
	return unwrapValuer(deref(v))
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() == reflect.Pointer {
		return v
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

// unwrapValuer replaces sql null wrappers and other driver.Valuer values with
// the value they carry.
func unwrapValuer(v any) any {
	valuer, ok := v.(driver.Valuer)
	if !ok || isAbsent(v) {
		return v
	}
	inner, err := valuer.Value()
	if err != nil {
		return v
	}
	return inner
}
