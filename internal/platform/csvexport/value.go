package csvexport

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind is the closed set of value shapes a record field may hold.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindNested
)

// String returns the kind label.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Value is one serializable field value. The zero Value is null.
type Value struct {
	kind Kind
	text string
}

// Kind reports the value shape.
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the field text before CSV quoting.
func (v Value) Text() string {
	return v.text
}

// String builds a text value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Int builds an integer number value.
func Int(n int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(n, 10)}
}

// Float builds a number value using the shortest exact representation.
// Magnitudes from 1e-6 up to 1e21 use plain decimals; anything outside
// that range uses an exponent such as 1e+21 or 1.5e-7. NaN and infinities
// render as NaN, Infinity and -Infinity.
func Float(f float64) Value {
	switch {
	case math.IsNaN(f):
		return Value{kind: KindNumber, text: "NaN"}
	case math.IsInf(f, 1):
		return Value{kind: KindNumber, text: "Infinity"}
	case math.IsInf(f, -1):
		return Value{kind: KindNumber, text: "-Infinity"}
	}
	if abs := math.Abs(f); abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return Value{kind: KindNumber, text: exponent(strconv.FormatFloat(f, 'e', -1, 64))}
	}
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// exponent drops the zero padding strconv puts on exponents, so 1e-07
// becomes 1e-7.
func exponent(text string) string {
	mantissa, exp, ok := strings.Cut(text, "e")
	if !ok || len(exp) < 2 {
		return text
	}
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + exp[:1] + digits
}

// Bool builds a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, text: strconv.FormatBool(b)}
}

// Null builds an empty value.
func Null() Value {
	return Value{}
}

// Nested stores a structure as its JSON text.
func Nested(v any) (Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("marshal nested value: %w", err)
	}
	return Value{kind: KindNested, text: string(data)}, nil
}

// Of classifies an arbitrary Go value. Named string, bool and numeric types
// classify like their underlying kind. Maps, slices, arrays and structs
// become nested JSON; times are written in RFC 3339 with milliseconds.
func Of(v any) (Value, error) {
	switch typed := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return typed, nil
	case string:
		return String(typed), nil
	case bool:
		return Bool(typed), nil
	case int:
		return Int(int64(typed)), nil
	case int8:
		return Int(int64(typed)), nil
	case int16:
		return Int(int64(typed)), nil
	case int32:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case uint:
		return Value{kind: KindNumber, text: strconv.FormatUint(uint64(typed), 10)}, nil
	case uint8:
		return Int(int64(typed)), nil
	case uint16:
		return Int(int64(typed)), nil
	case uint32:
		return Int(int64(typed)), nil
	case uint64:
		return Value{kind: KindNumber, text: strconv.FormatUint(typed, 10)}, nil
	case float32:
		return Float(float64(typed)), nil
	case float64:
		return Float(typed), nil
	case time.Time:
		if typed.IsZero() {
			return Null(), nil
		}
		return String(typed.UTC().Format(isoLayout)), nil
	case *time.Time:
		if typed == nil {
			return Null(), nil
		}
		return Of(*typed)
	case fmt.Stringer:
		return String(typed.String()), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return Of(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return Nested(v)
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Value{kind: KindNumber, text: strconv.FormatUint(rv.Uint(), 10)}, nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	}
	return Value{}, fmt.Errorf("unsupported csv value type %T", v)
}
