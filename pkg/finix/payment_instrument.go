// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package finix

import (
	"github.com/moov-io/onboarding/pkg/registration"
	"github.com/moov-io/onboarding/pkg/validation/fields"
)

const (
	BankAccount = "BANK_ACCOUNT"
	Checking    = "CHECKING"
)

// PaymentInstrument is the settlement bank account of a merchant Identity.
type PaymentInstrument struct {
	AccountNumber *string `json:"account_number"`
	BankCode      *string `json:"bank_code"`
	Name          *string `json:"name"`
	Type          string  `json:"type"`
	AccountType   string  `json:"account_type"`
	Identity      string  `json:"identity"`
	Tags          Tags    `json:"tags"`
}

// type, account_type and identity are set by the builder and never checked.
var paymentInstrumentRules = []fields.Rule{
	{Field: "account_number", Label: "bank_account_number", Type: fields.String},
	{Field: "bank_code", Label: "bank_routing_number", Type: fields.String},
	{Field: "name", Label: "bank_account_owner_name", Type: fields.String, MaxLength: 40},
}

// BuildPaymentInstrument assembles the checking account payload linked to identityID.
func BuildPaymentInstrument(reg *registration.Registration, identityID string, tags Tags) (*PaymentInstrument, error) {
	if reg.Empty() {
		return nil, rejectEmpty(PaymentInstrumentResource)
	}
	pi := &PaymentInstrument{
		AccountNumber: reg.BankAccountNumber.Text(),
		BankCode:      reg.BankRoutingNumber.Text(),
		Name:          reg.BankAccountOwnerName.Text(),
		Type:          BankAccount,
		AccountType:   Checking,
		Identity:      identityID,
		Tags:          tags.orEmpty(),
	}
	if errs := fields.Validate(pi, paymentInstrumentRules); len(errs) > 0 {
		return nil, &ValidationError{Resource: PaymentInstrumentResource, Errors: errs}
	}
	return pi, nil
}
