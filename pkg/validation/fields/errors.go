// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package fields

import (
	"encoding/json"
	"strings"
)

// RuleKind identifies the check that produced a FieldError.
type RuleKind string

const (
	Required    RuleKind = "required"
	Type        RuleKind = "type"
	ExactLength RuleKind = "exact_length"
	MaxLength   RuleKind = "max_length"
	Range       RuleKind = "range"
	OneOf       RuleKind = "one_of"
	CrossField  RuleKind = "cross_field"
	Missing     RuleKind = "missing"
)

// FieldError is one violated rule.
type FieldError struct {
	// Field is the dotted path of the offending value, e.g. "business_address.region".
	Field   string   `json:"field"`
	Rule    RuleKind `json:"rule"`
	Message string   `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// Errors is an ordered set of FieldError values. It is only ever returned non-empty.
type Errors []FieldError

func (es Errors) Error() string {
	return strings.Join(es.Messages(), "; ")
}

// Messages returns the human readable message of every error, in order.
func (es Errors) Messages() []string {
	out := make([]string, len(es))
	for i := range es {
		out[i] = es[i].Message
	}
	return out
}

// Has reports if any error was raised for field.
func (es Errors) Has(field string) bool {
	for i := range es {
		if es[i].Field == field {
			return true
		}
	}
	return false
}

// MarshalJSON renders the set the way API callers expect it: {"errors": ["..."]}
func (es Errors) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Errors []string `json:"errors"`
	}{
		Errors: es.Messages(),
	})
}
