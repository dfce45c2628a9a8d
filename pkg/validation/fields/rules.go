// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package fields

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// Kind is the primitive type a field must hold.
type Kind string

const (
	String  Kind = "string"
	Number  Kind = "number"
	Boolean Kind = "boolean"
)

// Bounds is an inclusive numeric range.
type Bounds struct {
	Min, Max float64
}

// Rule describes the checks for one field of a payload. Every field is required; the
// remaining checks only run when their option is set. For a given field the first
// failing check is reported.
type Rule struct {
	// Field is the dotted json path into the payload.
	Field string

	// Label is the name used in messages. Defaults to Field.
	Label string

	Type      Kind
	Exact     int
	MaxLength int
	Between   *Bounds
	OneOf     []string
}

func (r Rule) label() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Field
}

func (r Rule) fail(kind RuleKind, format string, args ...interface{}) *FieldError {
	return &FieldError{
		Field:   r.Field,
		Rule:    kind,
		Message: fmt.Sprintf(`"registration.%s" `, r.label()) + fmt.Sprintf(format, args...),
	}
}

// Mismatch is the error reported when the value has the wrong type.
func (r Rule) Mismatch() FieldError {
	return *r.fail(Type, "must be a %s", r.Type)
}

// Check validates value against the rule.
func (r Rule) Check(value interface{}, present bool) *FieldError {
	if !present {
		return r.fail(Required, "cannot be null or empty")
	}
	if r.Type != "" && kindOf(value) != r.Type {
		err := r.Mismatch()
		return &err
	}
	if r.Exact > 0 && length(value) != r.Exact {
		return r.fail(ExactLength, "must be exactly %d chars long", r.Exact)
	}
	if r.MaxLength > 0 && length(value) > r.MaxLength {
		return r.fail(MaxLength, "must be less than %d chars long", r.MaxLength)
	}
	if r.Between != nil {
		if n, ok := number(value); ok && (n < r.Between.Min || n > r.Between.Max) {
			return r.fail(Range, "must be between %v and %v", r.Between.Min, r.Between.Max)
		}
	}
	if len(r.OneOf) > 0 && !oneOf(value, r.OneOf) {
		return r.fail(OneOf, "isn't in the list of possible values")
	}
	return nil
}

// Validate runs every rule against payload and collects all failures. The result is
// nil when payload passes.
func Validate(payload interface{}, rules []Rule) Errors {
	var errs Errors
	for i := range rules {
		value, present := Lookup(payload, rules[i].Field)
		if err := rules[i].Check(value, present); err != nil {
			errs = append(errs, *err)
		}
	}
	return errs
}

func kindOf(v interface{}) Kind {
	switch vv := v.(type) {
	case string:
		return String
	case bool:
		return Boolean
	case float32:
		if math.IsNaN(float64(vv)) || math.IsInf(float64(vv), 0) {
			return ""
		}
		return Number
	case float64:
		if math.IsNaN(vv) || math.IsInf(vv, 0) {
			return ""
		}
		return Number
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Number
	}
	return ""
}

func number(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// length is the character count of the value's text form.
func length(v interface{}) int {
	switch vv := v.(type) {
	case string:
		return utf8.RuneCountInString(vv)
	case float32:
		return len(strconv.FormatFloat(float64(vv), 'f', -1, 32))
	case float64:
		return len(strconv.FormatFloat(vv, 'f', -1, 64))
	}
	return utf8.RuneCountInString(fmt.Sprintf("%v", v))
}

func oneOf(v interface{}, options []string) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for i := range options {
		if options[i] == s {
			return true
		}
	}
	return false
}
