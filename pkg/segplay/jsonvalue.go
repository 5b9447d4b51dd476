package segplay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Kind enumerates the six JSON value kinds
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a closed variant over any JSON document. It is immutable once
// decoded; all JSON numbers are held as float64, the integer distinction is
// lost at decode time.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	a    []Value
	o    map[string]Value
}

// Constructors for programmatic trees

func Null() Value            { return Value{kind: KindNull} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }
func String(s string) Value  { return Value{kind: KindString, s: s} }
func Array(vs ...Value) Value { return Value{kind: KindArray, a: vs} }

func Object(m map[string]Value) Value { return Value{kind: KindObject, o: m} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolValue returns the boolean payload and whether the value holds one
func (v Value) BoolValue() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) NumberValue() (float64, bool) { return v.n, v.kind == KindNumber }

func (v Value) StringValue() (string, bool) { return v.s, v.kind == KindString }

func (v Value) ArrayValue() ([]Value, bool) { return v.a, v.kind == KindArray }

func (v Value) ObjectValue() (map[string]Value, bool) { return v.o, v.kind == KindObject }

// Get returns the member of an object value, or a null value when absent
// or when v is not an object.
func (v Value) Get(key string) Value {
	if v.kind != KindObject {
		return Null()
	}
	m, ok := v.o[key]
	if !ok {
		return Null()
	}
	return m
}

// UnmarshalJSON tries the six interpretations in a fixed order: null, bool,
// number, string, array, object. The order matters: a permissive parse must
// not read a boolean literal as anything else.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = Value{kind: KindNull}
		return nil
	}
	var b bool
	if err := json.Unmarshal(trimmed, &b); err == nil {
		*v = Value{kind: KindBool, b: b}
		return nil
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		*v = Value{kind: KindNumber, n: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*v = Value{kind: KindString, s: s}
		return nil
	}
	var a []Value
	if err := json.Unmarshal(trimmed, &a); err == nil {
		*v = Value{kind: KindArray, a: a}
		return nil
	}
	var o map[string]Value
	if err := json.Unmarshal(trimmed, &o); err == nil {
		*v = Value{kind: KindObject, o: o}
		return nil
	}
	return fmt.Errorf("not a JSON value: %s", shorten(trimmed))
}

// MarshalJSON is total over the stored representation
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		if v.a == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.a)
	case KindObject:
		if v.o == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.o)
	}
	return nil, fmt.Errorf("unknown kind %d", int(v.kind))
}

// Equal compares two trees structurally. Numbers compare exactly as float64.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindNumber:
		return v.n == w.n || (math.IsNaN(v.n) && math.IsNaN(w.n))
	case KindString:
		return v.s == w.s
	case KindArray:
		if len(v.a) != len(w.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(w.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.o) != len(w.o) {
			return false
		}
		for k, m := range v.o {
			wm, ok := w.o[k]
			if !ok || !m.Equal(wm) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("!%v", err)
	}
	return string(data)
}

// Keys returns the sorted member names of an object value
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.o))
	for k := range v.o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode parses a raw document into a Value tree
func Decode(data []byte) (Value, error) {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return Value{}, err
	}
	return v, nil
}

// Validator is implemented by record types that enforce required fields
// after decoding.
type Validator interface {
	Validate() error
}

// As re-serializes a subtree and decodes it into a concrete record type.
// When T implements Validator the decoded record is validated, which is
// where missing-required-field errors come from.
func As[T any](v Value) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	if val, ok := any(out).(Validator); ok {
		if err := val.Validate(); err != nil {
			return out, err
		}
	} else if val, ok := any(&out).(Validator); ok {
		if err := val.Validate(); err != nil {
			return out, err
		}
	}
	return out, nil
}

func shorten(data []byte) []byte {
	const limit = 40
	if len(data) <= limit {
		return data
	}
	return append(append([]byte{}, data[:limit]...), "..."...)
}
