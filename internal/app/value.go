package app

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Kind identifies the JSON shape held by a Value.
type Kind int

const (
	KindMissing Kind = iota
	KindNull
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
	return "missing"
}

// Value is one entry of an open field bag: any JSON value kept verbatim.
//
// Records carry fields whose shape varies from entry to entry. Value keeps
// the raw JSON and offers typed accessors that report whether the stored
// shape matches, so callers never have to type-switch on interface{}.
type Value struct {
	res gjson.Result
}

// ParseValue wraps raw JSON text. Invalid JSON yields a missing Value.
func ParseValue(raw string) Value {
	if !gjson.Valid(raw) {
		return Value{}
	}
	return Value{res: gjson.Parse(raw)}
}

func valueOf(res gjson.Result) Value {
	return Value{res: res}
}

// Kind reports the JSON shape of the value.
func (v Value) Kind() Kind {
	if !v.res.Exists() {
		return KindMissing
	}
	switch v.res.Type {
	case gjson.Null:
		return KindNull
	case gjson.True, gjson.False:
		return KindBool
	case gjson.Number:
		return KindNumber
	case gjson.String:
		return KindString
	}
	if v.res.IsArray() {
		return KindArray
	}
	return KindObject
}

// Exists is false for a lookup that found nothing.
func (v Value) Exists() bool {
	return v.res.Exists()
}

// Str returns the value when it is a JSON string.
func (v Value) Str() (string, bool) {
	if v.res.Type != gjson.String {
		return "", false
	}
	return v.res.Str, true
}

// Int returns the value when it is an integral JSON number.
func (v Value) Int() (int64, bool) {
	if v.res.Type != gjson.Number {
		return 0, false
	}
	i, err := strconv.ParseInt(v.res.Raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Bool returns the value when it is a JSON boolean.
func (v Value) Bool() (bool, bool) {
	switch v.res.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	}
	return false, false
}

// Text renders a string verbatim or an integer in decimal.
func (v Value) Text() (string, bool) {
	if s, ok := v.Str(); ok {
		return s, true
	}
	if i, ok := v.Int(); ok {
		return strconv.FormatInt(i, 10), true
	}
	return "", false
}

// Field looks up a member of an object value. Keys are matched literally,
// so names containing path syntax such as "半径(m)" are safe.
func (v Value) Field(key string) Value {
	if !v.res.IsObject() {
		return Value{}
	}
	var found gjson.Result
	v.res.ForEach(func(k, val gjson.Result) bool {
		if k.Str == key {
			found = val
			return false
		}
		return true
	})
	return valueOf(found)
}

// Raw returns the JSON text of the value.
func (v Value) Raw() string {
	return v.res.Raw
}

// MarshalJSON writes the stored JSON back unchanged.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.res.Exists() {
		return []byte("null"), nil
	}
	return []byte(v.res.Raw), nil
}

// UnmarshalJSON keeps a copy of the raw JSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid JSON value")
	}
	v.res = gjson.Parse(string(data))
	return nil
}

// Fields is an open bag of record fields keyed by their JSON name.
type Fields map[string]Value

// Get returns the named field, or a missing Value.
func (f Fields) Get(key string) Value {
	if f == nil {
		return Value{}
	}
	return f[key]
}
