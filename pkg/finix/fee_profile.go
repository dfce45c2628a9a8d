// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package finix

import (
	"math"
	"strings"

	"github.com/moov-io/onboarding/pkg/registration"
	"github.com/moov-io/onboarding/pkg/validation/fields"
)

const (
	// DisputeInquiryFixedFee is $15.00
	DisputeInquiryFixedFee int64 = 1500
	// DisputeFixedFee is $25.00
	DisputeFixedFee int64 = 2500

	trustPlanSuffix = "-trust"
)

// FeeProfile is the pricing schedule charged to a merchant. Amounts are in cents and
// rates in basis points.
type FeeProfile struct {
	Application       string `json:"application"`
	ChargeInterchange bool   `json:"charge_interchange"`
	FixedFee          *int64 `json:"fixed_fee"`
	BasisPoints       *int64 `json:"basis_points"`

	// ACH fees are calculated per transaction by the gateway.
	ACHFixedFee    int64 `json:"ach_fixed_fee"`
	ACHBasisPoints int64 `json:"ach_basis_points"`

	AmericanExpressFixedFee          *int64 `json:"american_express_fixed_fee"`
	AmericanExpressBasisPoints       *int64 `json:"american_express_basis_points"`
	AmericanExpressChargeInterchange bool   `json:"american_express_charge_interchange"`
	DisputeInquiryFixedFee           int64  `json:"dispute_inquiry_fixed_fee"`
	DisputeFixedFee                  int64  `json:"dispute_fixed_fee"`

	// NetworkFees is only sent for trust accounts.
	*NetworkFees

	Tags Tags `json:"tags"`
}

// NetworkFees overrides the fees of each card network.
type NetworkFees struct {
	VisaBasisPoints                int64 `json:"visa_basis_points"`
	VisaFixedFee                   int64 `json:"visa_fixed_fee"`
	VisaChargeInterchange          bool  `json:"visa_charge_interchange"`
	VisaAssessmentsBasisPoints     int64 `json:"visa_assessments_basis_points"`
	VisaAcquirerProcessingFixedFee int64 `json:"visa_acquirer_processing_fixed_fee"`
	VisaCreditVoucherFixedFee      int64 `json:"visa_credit_voucher_fixed_fee"`
	VisaKilobyteAccessFixedFee     int64 `json:"visa_kilobyte_access_fixed_fee"`

	DiscoverBasisPoints                  int64 `json:"discover_basis_points"`
	DiscoverFixedFee                     int64 `json:"discover_fixed_fee"`
	DiscoverChargeInterchange            bool  `json:"discover_charge_interchange"`
	DiscoverAssessmentsBasisPoints       int64 `json:"discover_assessments_basis_points"`
	DiscoverDataUsageFixedFee            int64 `json:"discover_data_usage_fixed_fee"`
	DiscoverNetworkAuthorizationFixedFee int64 `json:"discover_network_authorization_fixed_fee"`

	DinersClubBasisPoints       int64 `json:"diners_club_basis_points"`
	DinersClubFixedFee          int64 `json:"diners_club_fixed_fee"`
	DinersClubChargeInterchange bool  `json:"diners_club_charge_interchange"`

	MastercardBasisPoints                   int64 `json:"mastercard_basis_points"`
	MastercardFixedFee                      int64 `json:"mastercard_fixed_fee"`
	MastercardChargeInterchange             bool  `json:"mastercard_charge_interchange"`
	MastercardAssessmentsUnder1kBasisPoints int64 `json:"mastercard_assessments_under1k_basis_points"`
	MastercardAssessmentsOver1kBasisPoints  int64 `json:"mastercard_assessments_over1k_basis_points"`
	MastercardAcquirerFeesBasisPoints       int64 `json:"mastercard_acquirer_fees_basis_points"`

	JCBBasisPoints       int64 `json:"jcb_basis_points"`
	JCBFixedFee          int64 `json:"jcb_fixed_fee"`
	JCBChargeInterchange bool  `json:"jcb_charge_interchange"`

	AmericanExpressAssessmentBasisPoints int64 `json:"american_express_assessment_basis_points"`
}

var feeProfileRules = []fields.Rule{
	{Field: "fixed_fee", Label: "plan_txamnt", Type: fields.Number},
	{Field: "basis_points", Label: "plan_dcamnt", Type: fields.Number},
	{Field: "ach_fixed_fee", Label: "plan_ach_txamnt", Type: fields.Number},
	{Field: "ach_basis_points", Label: "plan_ach_dcamnt", Type: fields.Number},
	{Field: "american_express_fixed_fee", Label: "amex_mid_trans_fee", Type: fields.Number},
	{Field: "american_express_basis_points", Label: "amex_qual_disc_rate", Type: fields.Number},
	{Field: "american_express_charge_interchange", Label: "is_flat_rate", Type: fields.Boolean},
}

// IsTrustAccount reports if reg is on a trust pricing plan. Trust accounts are never
// charged processing fees directly.
func IsTrustAccount(reg *registration.Registration) bool {
	return strings.HasSuffix(reg.PricingPlan.String(), trustPlanSuffix)
}

// BuildFeeProfile assembles the pricing schedule for reg under cfg.
func BuildFeeProfile(reg *registration.Registration, applicationID string, tags Tags, cfg Configuration) (*FeeProfile, error) {
	if reg.Empty() {
		return nil, rejectEmpty(FeeProfileResource)
	}
	if IsTrustAccount(reg) {
		return trustFeeProfile(applicationID, tags), nil
	}

	for _, col := range []struct {
		name  string
		value registration.Field
	}{
		{"plan_txamnt", reg.PlanTxAmount},
		{"plan_dcamnt", reg.PlanDiscountAmount},
	} {
		if !col.value.Present() {
			return nil, missingPricing(col.name)
		}
	}

	fixed, rate := reg.PlanTxAmount, reg.PlanDiscountAmount
	amexFixed := reg.AmexMidTransFee.Or(reg.PlanTxAmount)
	amexRate := reg.AmexMidDiscRate.Or(reg.PlanDiscountAmount)

	if cfg != nil && cfg.cardPresentPricing() {
		if !reg.CPTransactionRate.Present() {
			return nil, missingPricing("cp_transaction_rate")
		}
		if !reg.CPPerItemRate.Present() {
			return nil, missingPricing("cp_per_item_rate")
		}
		fixed, rate = reg.CPPerItemRate, reg.CPTransactionRate
		amexFixed = reg.CPAmexPerItemRate.Or(reg.CPPerItemRate)
		amexRate = reg.CPAmexRate.Or(reg.CPTransactionRate)
	}

	chargeInterchange := !reg.IsFlatRate.Truthy()
	fp := &FeeProfile{
		Application:                      applicationID,
		ChargeInterchange:                chargeInterchange,
		FixedFee:                         fieldCents(fixed),
		BasisPoints:                      fieldCents(rate),
		AmericanExpressFixedFee:          fieldCents(amexFixed),
		AmericanExpressBasisPoints:       fieldCents(amexRate),
		AmericanExpressChargeInterchange: chargeInterchange,
		DisputeInquiryFixedFee:           DisputeInquiryFixedFee,
		DisputeFixedFee:                  DisputeFixedFee,
		Tags:                             tags.orEmpty(),
	}
	if errs := validateFeeProfile(fp); len(errs) > 0 {
		return nil, &ValidationError{Resource: FeeProfileResource, Errors: errs}
	}
	return fp, nil
}

func trustFeeProfile(applicationID string, tags Tags) *FeeProfile {
	var zero int64
	return &FeeProfile{
		Application:                applicationID,
		FixedFee:                   &zero,
		BasisPoints:                &zero,
		AmericanExpressFixedFee:    &zero,
		AmericanExpressBasisPoints: &zero,
		NetworkFees:                &NetworkFees{},
		Tags:                       tags.orEmpty(),
	}
}

func missingPricing(column string) *ValidationError {
	rule := fields.Rule{Field: column}
	return &ValidationError{
		Resource: FeeProfileResource,
		Errors:   fields.Errors{*rule.Check(nil, false)},
	}
}

// fieldCents scales a dollar (or percent) column by 100. Values that are not numbers
// come back nil.
func fieldCents(f registration.Field) *int64 {
	n := f.Number()
	if math.IsNaN(n) {
		return nil
	}
	c, ok := toCents(n)
	if !ok {
		return nil
	}
	return &c
}

// validateFeeProfile reports amounts that could not be converted as the wrong type.
func validateFeeProfile(fp *FeeProfile) fields.Errors {
	errs := fields.Validate(fp, feeProfileRules)
	for i := range errs {
		for _, rule := range feeProfileRules {
			if rule.Field == errs[i].Field && errs[i].Rule == fields.Required {
				errs[i] = rule.Mismatch()
			}
		}
	}
	return errs
}
