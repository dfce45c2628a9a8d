// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package finix

import (
	"encoding/json"
	"fmt"

	"github.com/moov-io/onboarding/pkg/validation/fields"
)

// Resource names a processor payload type.
type Resource string

const (
	IdentityResource          Resource = "identity"
	PaymentInstrumentResource Resource = "payment_instrument"
	FeeProfileResource        Resource = "fee_profile"
)

const emptyInput = "The input cannot be null or empty"

// ValidationError is returned by a builder when the registration is empty or the
// assembled payload breaks one of its field rules.
type ValidationError struct {
	Resource Resource
	Errors   fields.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Resource, e.Errors)
}

func (e *ValidationError) Messages() []string {
	return e.Errors.Messages()
}

func (e *ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Errors)
}

func rejectEmpty(resource Resource) *ValidationError {
	return &ValidationError{
		Resource: resource,
		Errors: fields.Errors{
			{Field: "registration", Rule: fields.Required, Message: emptyInput},
		},
	}
}

// RequirementError is returned before any payload is assembled when the registration
// lacks a field the Configuration depends on.
type RequirementError struct {
	Configuration Configuration
	Errors        fields.Errors
}

func (e *RequirementError) Error() string {
	return fmt.Sprintf("registration does not meet %v requirements: %v", e.Configuration, e.Errors)
}

func (e *RequirementError) Messages() []string {
	return e.Errors.Messages()
}

func (e *RequirementError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Errors)
}
