// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package finix

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/moov-io/onboarding/pkg/normalize"
	"github.com/moov-io/onboarding/pkg/registration"
	"github.com/moov-io/onboarding/pkg/validation/fields"
)

// Tags are arbitrary key/value pairs attached to every processor resource.
type Tags map[string]string

func (t Tags) orEmpty() Tags {
	if t == nil {
		return Tags{}
	}
	return t
}

const (
	PrivateOwnership = "PRIVATE"
	PublicOwnership  = "PUBLIC"
)

// Identity describes the merchant business and its principal owner.
type Identity struct {
	BusinessName                     *string           `json:"business_name"`
	DoingBusinessAs                  *string           `json:"doing_business_as"`
	BusinessType                     *BusinessType     `json:"business_type"`
	BusinessTaxID                    *string           `json:"business_tax_id"`
	URL                              *string           `json:"url"`
	BusinessPhone                    *string           `json:"business_phone"`
	IncorporationDate                normalize.Date    `json:"incorporation_date"`
	BusinessAddress                  normalize.Address `json:"business_address"`
	OwnershipType                    *string           `json:"ownership_type"`
	FirstName                        *string           `json:"first_name"`
	LastName                         *string           `json:"last_name"`
	Title                            *string           `json:"title"`
	TaxID                            *string           `json:"tax_id"`
	DOB                              normalize.Date    `json:"dob"`
	Phone                            *string           `json:"phone"`
	Email                            *string           `json:"email"`
	PersonalAddress                  normalize.Address `json:"personal_address"`
	AnnualCardVolume                 *int64            `json:"annual_card_volume"`
	MaxTransactionAmount             *int64            `json:"max_transaction_amount"`
	MCC                              *string           `json:"mcc"`
	DefaultStatementDescriptor       *string           `json:"default_statement_descriptor"`
	PrincipalPercentageOwnership     *float64          `json:"principal_percentage_ownership"`
	HasAcceptedCreditCardsPreviously bool              `json:"has_accepted_credit_cards_previously"`
}

// IdentityRequest is the body used to create a merchant Identity.
type IdentityRequest struct {
	Entity Identity `json:"entity"`
	Tags   Tags     `json:"tags"`
}

var (
	months = &fields.Bounds{Min: 1, Max: 12}
	days   = &fields.Bounds{Min: 1, Max: 31}
)

var identityRules = []fields.Rule{
	{Field: "business_name", Type: fields.String, MaxLength: 120},
	{Field: "doing_business_as", Type: fields.String, MaxLength: 60},
	{Field: "business_tax_id", Type: fields.String},
	{Field: "url", Type: fields.String, MaxLength: 100},
	{Field: "business_phone", Type: fields.String, MaxLength: 10},
	{Field: "incorporation_date.year", Type: fields.Number, MaxLength: 4},
	{Field: "incorporation_date.month", Type: fields.Number, Between: months},
	{Field: "incorporation_date.day", Type: fields.Number, Between: days},
	{Field: "business_address.line1", Type: fields.String, MaxLength: 60},
	{Field: "business_address.city", Type: fields.String, MaxLength: 20},
	{Field: "business_address.region", Type: fields.String, Exact: 2},
	{Field: "business_address.postal_code", Type: fields.String, MaxLength: 7},
	{Field: "business_address.country", Type: fields.String, Exact: 3},
	{Field: "ownership_type", Type: fields.String, OneOf: []string{PrivateOwnership, PublicOwnership}},
	{Field: "first_name", Type: fields.String, MaxLength: 20},
	{Field: "last_name", Type: fields.String, MaxLength: 20},
	{Field: "title", Type: fields.String, MaxLength: 60},
	{Field: "principal_percentage_ownership", Type: fields.Number, Between: &fields.Bounds{Min: 0, Max: 100}},
	{Field: "tax_id", Type: fields.String, Exact: 9},
	{Field: "dob.year", Type: fields.Number, MaxLength: 4},
	{Field: "dob.month", Type: fields.Number, Between: months},
	{Field: "dob.day", Type: fields.Number, Between: days},
	{Field: "phone", Type: fields.String, MaxLength: 10},
	{Field: "email", Type: fields.String},
	{Field: "personal_address.line1", Type: fields.String, MaxLength: 60},
	{Field: "personal_address.city", Type: fields.String, MaxLength: 20},
	{Field: "personal_address.region", Type: fields.String, Exact: 2},
	{Field: "personal_address.postal_code", Type: fields.String, MaxLength: 7},
	{Field: "personal_address.country", Type: fields.String, Exact: 3},
	{Field: "default_statement_descriptor", Type: fields.String, MaxLength: 20},
	{Field: "annual_card_volume", Type: fields.Number, MaxLength: 23},
	{Field: "max_transaction_amount", Type: fields.Number, MaxLength: 12},
}

// publicOwnershipTypes may register with an ownership type of PUBLIC.
var publicOwnershipTypes = map[BusinessType]bool{
	GovernmentAgency:        true,
	TaxExemptOrganization:   true,
	LimitedLiabilityCompany: true,
	Partnership:             true,
	Corporation:             true,
}

const (
	statementDescriptorLength = 19
	mccLength                 = 4
)

// BuildIdentity assembles and validates the Identity payload for reg.
//
// The registration is checked against cfg's requirements first and a RequirementError
// is returned before anything is assembled. Rule failures on the assembled Identity are
// returned together as a ValidationError.
func BuildIdentity(reg *registration.Registration, tags Tags, cfg Configuration, channel Channel) (*IdentityRequest, error) {
	if reg.Empty() {
		return nil, rejectEmpty(IdentityResource)
	}
	if cfg == nil {
		return nil, ErrMissingConfiguration
	}
	if errs := ValidateRegistrationModelByConfiguration(reg, cfg); len(errs) > 0 {
		return nil, &RequirementError{Configuration: cfg, Errors: errs}
	}

	soleProp := isSoleProprietor(reg)

	var notNumbers []string
	identity := Identity{
		BusinessName:                     reg.BusinessLegalName.Text(),
		DoingBusinessAs:                  reg.BusinessDBA.Text(),
		BusinessTaxID:                    GetBusinessTaxID(reg, soleProp),
		URL:                              reg.BusinessWebsite.Text(),
		BusinessPhone:                    normalize.FormatNumeric(reg.BusinessPhoneNumber),
		IncorporationDate:                normalize.FormatDate(reg.BusinessOpenDate),
		BusinessAddress:                  normalize.FormatAddress(reg, registration.BusinessLocationAddress),
		OwnershipType:                    reg.EntityOwnershipType.Text(),
		FirstName:                        reg.FirstName.Text(),
		LastName:                         reg.LastName.Text(),
		Title:                            reg.JobTitle.Text(),
		TaxID:                            normalize.FormatNumeric(reg.UserSSN),
		DOB:                              normalize.FormatDate(reg.UserDOB),
		Phone:                            normalize.FormatNumeric(reg.PhoneNumber),
		Email:                            reg.Email.Text(),
		PersonalAddress:                  normalize.FormatAddress(reg, registration.OwnerAddress),
		DefaultStatementDescriptor:       statementDescriptor(reg.BusinessDBA),
		PrincipalPercentageOwnership:     GetOwnershipPercentage(reg),
		HasAcceptedCreditCardsPreviously: GetHasAcceptedCardsPreviously(reg),
	}
	if bt, ok := GetBusinessType(reg); ok {
		identity.BusinessType = &bt
	}
	if reg.MCC.Truthy() {
		identity.MCC = reg.MCC.Text()
	}
	if volume, err := CalculateAnnualVolumeByConfiguration(reg, cfg, channel); err == nil {
		identity.AnnualCardVolume = &volume
	} else {
		notNumbers = append(notNumbers, "annual_card_volume")
	}
	if amount, ok := maxTransactionAmount(reg, channel); ok {
		identity.MaxTransactionAmount = &amount
	} else {
		notNumbers = append(notNumbers, "max_transaction_amount")
	}

	if errs := validateIdentity(&identity, notNumbers); len(errs) > 0 {
		return nil, &ValidationError{Resource: IdentityResource, Errors: errs}
	}
	return &IdentityRequest{
		Entity: identity,
		Tags:   tags.orEmpty(),
	}, nil
}

// maxTransactionAmount is the larger of the card and ACH highest transactions, in cents.
func maxTransactionAmount(reg *registration.Registration, channel Channel) (int64, bool) {
	highest := reg.HighestTransAmount
	if channel == ShoppingCart {
		highest = reg.LargestShoppingCartTransaction
	}
	card := normalize.Numeric(highest, 0)
	ach := normalize.Numeric(reg.LargestACHTransaction, 0)
	if math.IsNaN(card) || math.IsNaN(ach) {
		return 0, false
	}
	return toCents(math.Max(card, ach))
}

func statementDescriptor(dba registration.Field) *string {
	if !dba.Truthy() {
		return nil
	}
	s := dba.String()
	if utf8.RuneCountInString(s) > statementDescriptorLength {
		s = string([]rune(s)[:statementDescriptorLength])
	}
	return &s
}

func validateIdentity(identity *Identity, notNumbers []string) fields.Errors {
	errs := fields.Validate(identity, identityRules)

	// Formulas that produced NaN leave their field empty, report them as the wrong type.
	for _, name := range notNumbers {
		for i := range errs {
			if errs[i].Field != name {
				continue
			}
			for _, rule := range identityRules {
				if rule.Field == name {
					errs[i] = rule.Mismatch()
				}
			}
		}
	}

	if identity.MCC != nil && utf8.RuneCountInString(*identity.MCC) != mccLength {
		errs = append(errs, fields.FieldError{
			Field:   "mcc",
			Rule:    fields.ExactLength,
			Message: fmt.Sprintf(`"registration.mcc" must be null or %d characters long`, mccLength),
		})
	}
	if identity.OwnershipType != nil && *identity.OwnershipType == PublicOwnership {
		if identity.BusinessType == nil || !publicOwnershipTypes[*identity.BusinessType] {
			errs = append(errs, fields.FieldError{
				Field:   "ownership_type",
				Rule:    fields.CrossField,
				Message: `Only Government, Tax-Exempt Organizations, Limited Liability Companies, Partnerships and Corporations may have an ownership type of "PUBLIC".`,
			})
		}
	}
	return errs
}
