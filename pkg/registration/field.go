// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package registration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind describes which JSON scalar a Field was decoded from.
type Kind int

const (
	Null Kind = iota
	Text
	Number
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	}
	return "null"
}

// Field is one scalar column of a Registration. Registrations are exported by several
// systems, so the same column can arrive as a JSON string ("4,000"), a number or a
// boolean. Field keeps the original kind so callers can tell an absent value from an
// empty or zero one.
type Field struct {
	kind Kind
	text string
	num  float64
	b    bool
}

// String returns a text Field.
func String(s string) Field {
	return Field{kind: Text, text: s}
}

// Float returns a numeric Field.
func Float(f float64) Field {
	return Field{kind: Number, num: f}
}

// Bool returns a boolean Field.
func Bool(b bool) Field {
	return Field{kind: Boolean, b: b}
}

// FromInterface converts a decoded JSON value into a Field. Objects and arrays are
// rendered back to their JSON text.
func FromInterface(v interface{}) Field {
	switch vv := v.(type) {
	case nil:
		return Field{}
	case string:
		return String(vv)
	case float64:
		return Float(vv)
	case int:
		return Float(float64(vv))
	case int64:
		return Float(float64(vv))
	case json.Number:
		f, err := vv.Float64()
		if err != nil {
			return String(vv.String())
		}
		return Float(f)
	case bool:
		return Bool(vv)
	case Field:
		return vv
	default:
		bs, _ := json.Marshal(vv)
		return String(string(bs))
	}
}

func (f Field) Kind() Kind {
	return f.kind
}

// Present is true unless the Field was null or missing.
func (f Field) Present() bool {
	return f.kind != Null
}

// Truthy reports if the Field holds a meaningful value: a non-empty string, a non-zero
// number or true.
func (f Field) Truthy() bool {
	switch f.kind {
	case Text:
		return f.text != ""
	case Number:
		return f.num != 0 && !math.IsNaN(f.num)
	case Boolean:
		return f.b
	}
	return false
}

// String renders the Field as text. Null renders as an empty string and numbers never
// use exponent notation.
func (f Field) String() string {
	switch f.kind {
	case Text:
		return f.text
	case Number:
		return strconv.FormatFloat(f.num, 'f', -1, 64)
	case Boolean:
		return strconv.FormatBool(f.b)
	}
	return ""
}

// Text returns the Field as text, or nil when it is null.
func (f Field) Text() *string {
	if !f.Present() {
		return nil
	}
	s := f.String()
	return &s
}

// Number converts the Field to a float64 without stripping any characters. Blank text
// is zero and text that is not a number is NaN.
func (f Field) Number() float64 {
	switch f.kind {
	case Number:
		return f.num
	case Boolean:
		if f.b {
			return 1
		}
		return 0
	case Text:
		s := strings.TrimSpace(f.text)
		if s == "" {
			return 0
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	}
	return 0
}

// Or returns f when it is present, otherwise fallback.
func (f Field) Or(fallback Field) Field {
	if f.Present() {
		return f
	}
	return fallback
}

func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = Field{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = String(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*f = Bool(b)
	case '{', '[':
		return fmt.Errorf("registration: unexpected JSON value %.20s for scalar field", data)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = Float(n)
	}
	return nil
}

func (f Field) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case Text:
		return json.Marshal(f.text)
	case Number:
		if math.IsNaN(f.num) || math.IsInf(f.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(f.num)
	case Boolean:
		return json.Marshal(f.b)
	}
	return []byte("null"), nil
}
