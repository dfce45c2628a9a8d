// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package registration

import (
	"reflect"
)

// Registration is a merchant application record as exported by the onboarding
// system. Each column keeps its source name in the json tag.
type Registration struct {
	// Business
	BusinessLegalName   Field `json:"business_legal_name"`
	BusinessDBA         Field `json:"business_dba"`
	CompanyType         Field `json:"company_type"`
	BusinessTaxID       Field `json:"business_tax_id"`
	BusinessWebsite     Field `json:"business_website"`
	BusinessPhoneNumber Field `json:"business_phone_number"`
	BusinessOpenDate    Field `json:"business_open_date"`
	EntityOwnershipType Field `json:"entity_ownership_type"`
	MCC                 Field `json:"mcc"`
	ReasonForApplying   Field `json:"reason_for_applying"`

	// Business location
	BusinessAddress1 Field `json:"business_location_address_1"`
	BusinessAddress2 Field `json:"business_location_address_2"`
	BusinessCity     Field `json:"business_location_address_city"`
	BusinessState    Field `json:"business_location_address_state"`
	BusinessZip      Field `json:"business_location_address_zip"`
	BusinessCountry  Field `json:"business_location_address_country"`

	// Principal owner
	FirstName     Field `json:"first_name"`
	LastName      Field `json:"last_name"`
	JobTitle      Field `json:"job_title"`
	UserSSN       Field `json:"user_ssn"`
	UserDOB       Field `json:"user_dob"`
	PhoneNumber   Field `json:"phone_number"`
	Email         Field `json:"email"`
	OwnerAddress1 Field `json:"owner_address_1"`
	OwnerAddress2 Field `json:"owner_address_2"`
	OwnerCity     Field `json:"owner_address_city"`
	OwnerState    Field `json:"owner_address_state"`
	OwnerZip      Field `json:"owner_address_zip"`
	OwnerCountry  Field `json:"owner_address_country"`

	Meta Meta `json:"meta"`

	// Settlement bank account
	BankAccountNumber    Field `json:"bank_account_number"`
	BankRoutingNumber    Field `json:"bank_routing_number"`
	BankAccountOwnerName Field `json:"bank_account_owner_name"`

	// Card processing volumes
	AnnualVolume          Field `json:"annual_volume"`
	AvgTransSize          Field `json:"avg_trans_size"`
	HighestTransAmount    Field `json:"highest_trans_amount"`
	CardPresentPercent    Field `json:"card_present_percent"`
	CardNotPresentPercent Field `json:"card_not_present_percent"`

	// Shopping cart volumes
	AnnualGrossShoppingCartRevenue Field `json:"annual_gross_shopping_cart_revenue"`
	ShoppingCartCardPresentPercent Field `json:"shopping_cart_card_present_percent"`
	LargestShoppingCartTransaction Field `json:"largest_shopping_cart_transaction"`

	// ACH volumes
	AnnualGrossACHRevenue Field `json:"annual_gross_ach_revenue"`
	AvgACHTransaction     Field `json:"avg_ach_transaction"`
	LargestACHTransaction Field `json:"largest_ach_transaction"`

	// Pricing
	PricingPlan        Field `json:"pricing_plan"`
	IsFlatRate         Field `json:"is_flat_rate"`
	PlanTxAmount       Field `json:"plan_txamnt"`
	PlanDiscountAmount Field `json:"plan_dcamnt"`
	AmexMidTransFee    Field `json:"amex_mid_trans_fee"`
	AmexMidDiscRate    Field `json:"amex_mid_disc_rate"`
	CPTransactionRate  Field `json:"cp_transaction_rate"`
	CPPerItemRate      Field `json:"cp_per_item_rate"`
	CPAmexPerItemRate  Field `json:"cp_amex_per_item_rate"`
	CPAmexRate         Field `json:"cp_amex_rate"`
}

// Empty is true for a nil Registration or one where every column is null.
func (r *Registration) Empty() bool {
	if r == nil {
		return true
	}
	if len(r.Meta) > 0 {
		return false
	}
	cp := *r
	cp.Meta = nil
	return reflect.DeepEqual(cp, Registration{})
}

// AddressPrefix names one of the address column groups on a Registration.
type AddressPrefix string

const (
	BusinessLocationAddress AddressPrefix = "business_location_address_"
	OwnerAddress            AddressPrefix = "owner_address_"
)

// AddressColumns holds the raw columns of one address group.
type AddressColumns struct {
	Line1   Field
	Line2   Field
	City    Field
	State   Field
	Zip     Field
	Country Field
}

// Address returns the columns stored under prefix. Unknown prefixes return null columns.
func (r *Registration) Address(prefix AddressPrefix) AddressColumns {
	if r == nil {
		return AddressColumns{}
	}
	switch prefix {
	case BusinessLocationAddress:
		return AddressColumns{
			Line1:   r.BusinessAddress1,
			Line2:   r.BusinessAddress2,
			City:    r.BusinessCity,
			State:   r.BusinessState,
			Zip:     r.BusinessZip,
			Country: r.BusinessCountry,
		}
	case OwnerAddress:
		return AddressColumns{
			Line1:   r.OwnerAddress1,
			Line2:   r.OwnerAddress2,
			City:    r.OwnerCity,
			State:   r.OwnerState,
			Zip:     r.OwnerZip,
			Country: r.OwnerCountry,
		}
	}
	return AddressColumns{}
}
