// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package finix

import (
	"github.com/moov-io/onboarding/pkg/registration"
	"github.com/moov-io/onboarding/pkg/validation/fields"
)

// requirement is a registration field a configuration cannot be computed without.
type requirement struct {
	field string
	label string
	value func(*registration.Registration) registration.Field
}

var (
	needAnnualVolume = requirement{"annual_volume", "Annual Volume", func(r *registration.Registration) registration.Field {
		return r.AnnualVolume
	}}
	needAvgTransSize = requirement{"avg_trans_size", "Average Transaction Size", func(r *registration.Registration) registration.Field {
		return r.AvgTransSize
	}}
	needHighestTransAmount = requirement{"highest_trans_amount", "Highest Transaction Amount", func(r *registration.Registration) registration.Field {
		return r.HighestTransAmount
	}}
	needCardPresentPercent = requirement{"card_present_percent", "Card Present %", func(r *registration.Registration) registration.Field {
		return r.CardPresentPercent
	}}
	needCardNotPresentPercent = requirement{"card_not_present_percent", "Card Not Present %", func(r *registration.Registration) registration.Field {
		return r.CardNotPresentPercent
	}}
	needAnnualGrossACHRevenue = requirement{"annual_gross_ach_revenue", "Annual Gross ACH Revenue", func(r *registration.Registration) registration.Field {
		return r.AnnualGrossACHRevenue
	}}
	needAvgACHTransaction = requirement{"avg_ach_transaction", "Average ACH Transaction Size", func(r *registration.Registration) registration.Field {
		return r.AvgACHTransaction
	}}
	needLargestACHTransaction = requirement{"largest_ach_transaction", "Largest ACH Transaction Size", func(r *registration.Registration) registration.Field {
		return r.LargestACHTransaction
	}}
	needCardPresentTransactionRate = requirement{"cp_transaction_rate", "Card Present Discount Fees", func(r *registration.Registration) registration.Field {
		return r.CPTransactionRate
	}}
	needCardPresentPerItemRate = requirement{"cp_per_item_rate", "Card Present Transaction Amount", func(r *registration.Registration) registration.Field {
		return r.CPPerItemRate
	}}
)

// ValidateRegistrationModelByConfiguration confirms reg carries every field the
// formulas of cfg read. It returns one "Missing field: <label>" error per absent field,
// or nil when nothing is missing.
func ValidateRegistrationModelByConfiguration(reg *registration.Registration, cfg Configuration) fields.Errors {
	if reg == nil {
		reg = &registration.Registration{}
	}

	var needs []requirement
	if cfg != nil && cfg.achVolumes() {
		needs = append(needs, needAnnualGrossACHRevenue, needAvgACHTransaction, needLargestACHTransaction)
	} else {
		needs = append(needs, needAnnualVolume, needAvgTransSize, needHighestTransAmount)
	}
	if cfg != nil {
		needs = append(needs, cfg.required()...)
	}

	var errs fields.Errors
	for _, need := range needs {
		if errs.Has(need.field) {
			continue
		}
		if !need.value(reg).Truthy() {
			errs = append(errs, fields.FieldError{
				Field:   need.field,
				Rule:    fields.Missing,
				Message: "Missing field: " + need.label,
			})
		}
	}
	return errs
}
