// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package finix

import (
	"errors"
	"math"

	"github.com/moov-io/onboarding/pkg/normalize"
	"github.com/moov-io/onboarding/pkg/registration"
)

// BusinessType is the processor's legal entity classification.
type BusinessType string

const (
	AssociationEstateTrust       BusinessType = "ASSOCIATION_ESTATE_TRUST"
	TaxExemptOrganization        BusinessType = "TAX_EXEMPT_ORGANIZATION"
	GovernmentAgency             BusinessType = "GOVERNMENT_AGENCY"
	LimitedLiabilityCompany      BusinessType = "LIMITED_LIABILITY_COMPANY"
	Partnership                  BusinessType = "PARTNERSHIP"
	IndividualSoleProprietorship BusinessType = "INDIVIDUAL_SOLE_PROPRIETORSHIP"
	Corporation                  BusinessType = "CORPORATION"
)

// companyTypes maps registration company type codes. "F" and "R" have no processor
// equivalent and are left out on purpose.
var companyTypes = map[string]BusinessType{
	"A":               AssociationEstateTrust,
	"E":               TaxExemptOrganization,
	"G":               GovernmentAgency,
	"L":               LimitedLiabilityCompany,
	"P":               Partnership,
	"S":               IndividualSoleProprietorship,
	"Sole Proprietor": IndividualSoleProprietorship,
	"B":               Corporation,
	"V":               Corporation,
}

// GetBusinessType converts the registration's company type code. The second return is
// false for unsupported or unknown codes.
func GetBusinessType(reg *registration.Registration) (BusinessType, bool) {
	if reg == nil {
		return "", false
	}
	bt, ok := companyTypes[reg.CompanyType.String()]
	return bt, ok
}

func isSoleProprietor(reg *registration.Registration) bool {
	code := reg.CompanyType.String()
	return code == "S" || code == "Sole Proprietor"
}

// GetBusinessTaxID returns the owner's SSN for sole proprietors and the business tax id
// otherwise, stripped to digits. It is nil when that source is empty.
func GetBusinessTaxID(reg *registration.Registration, soleProp bool) *string {
	source := reg.BusinessTaxID
	if soleProp {
		source = reg.UserSSN
	}
	if !source.Truthy() {
		return nil
	}
	return normalize.FormatNumeric(source)
}

// GetOwnershipPercentage reads the principal's ownership from the registration meta.
func GetOwnershipPercentage(reg *registration.Registration) *float64 {
	if reg.Meta == nil {
		return nil
	}
	v := reg.Meta.Get("ownership_percentage")
	if !v.Present() {
		return nil
	}
	n := v.Number()
	if math.IsNaN(n) {
		return nil
	}
	return &n
}

const neverAcceptedCards = "Never Accepted Cards Before"

// GetHasAcceptedCardsPreviously is false only when the merchant applied because they
// never accepted cards.
func GetHasAcceptedCardsPreviously(reg *registration.Registration) bool {
	return reg.ReasonForApplying.String() != neverAcceptedCards
}

// ErrNotANumber is returned when a volume formula is fed values that are not numbers.
var ErrNotANumber = errors.New("annual volume is not a number")

// CalculateAnnualVolumeByConfiguration applies the annual volume formula of cfg and
// returns the result in cents.
//
// Keyed transactions use annual_volume with the card present / not present split from
// the registration. Shopping cart merchants use their cart revenue and cart card present
// percentage, with card not present as the remainder.
func CalculateAnnualVolumeByConfiguration(reg *registration.Registration, cfg Configuration, channel Channel) (int64, error) {
	if cfg == nil {
		return 0, ErrMissingConfiguration
	}
	v := volumes{
		card:           normalize.Numeric(reg.AnnualVolume, 0),
		ach:            normalize.Numeric(reg.AnnualGrossACHRevenue, 0),
		cardPresent:    normalize.Numeric(reg.CardPresentPercent, 0),
		cardNotPresent: normalize.Numeric(reg.CardNotPresentPercent, 0),
	}
	if channel == ShoppingCart {
		v.card = normalize.Numeric(reg.AnnualGrossShoppingCartRevenue, 0)
		v.cardPresent = normalize.Numeric(reg.ShoppingCartCardPresentPercent, 0)
		v.cardNotPresent = 100 - v.cardPresent
	}
	amount, ok := toCents(cfg.annualVolume(v))
	if !ok {
		return 0, ErrNotANumber
	}
	return amount, nil
}

// maxCents bounds the cents an int64 can hold, 2^63 is exact as a float64.
const maxCents = 1 << 63

// toCents converts a dollar amount to whole cents, rounding halves up. Amounts that
// do not fit in an int64 are rejected like NaN.
func toCents(dollars float64) (int64, bool) {
	c := math.Floor(dollars*100 + 0.5)
	if math.IsNaN(c) || c >= maxCents || c < -maxCents {
		return 0, false
	}
	return int64(c), true
}
