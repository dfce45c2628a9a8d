// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package finix

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/moov-io/onboarding/pkg/registration"
	"github.com/moov-io/onboarding/pkg/validation/fields"

	"github.com/stretchr/testify/require"
)

func TestBuildFeeProfile(t *testing.T) {
	fp, err := BuildFeeProfile(readRegistration(t), "APgPDQrLD52TYvqazjHJJchM", Tags{"plan": "gold"}, CoreCNP)
	require.NoError(t, err)

	require.Equal(t, "APgPDQrLD52TYvqazjHJJchM", fp.Application)
	require.True(t, fp.ChargeInterchange)
	require.Equal(t, int64(30), *fp.FixedFee)
	require.Equal(t, int64(290), *fp.BasisPoints)
	require.Equal(t, int64(0), fp.ACHFixedFee)
	require.Equal(t, int64(0), fp.ACHBasisPoints)
	require.Equal(t, int64(30), *fp.AmericanExpressFixedFee) // falls back to plan_txamnt
	require.Equal(t, int64(350), *fp.AmericanExpressBasisPoints)
	require.True(t, fp.AmericanExpressChargeInterchange)
	require.Equal(t, int64(1500), fp.DisputeInquiryFixedFee)
	require.Equal(t, int64(2500), fp.DisputeFixedFee)
	require.Nil(t, fp.NetworkFees)
	require.Equal(t, Tags{"plan": "gold"}, fp.Tags)

	bs, err := json.Marshal(fp)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"application": "APgPDQrLD52TYvqazjHJJchM",
		"charge_interchange": true,
		"fixed_fee": 30,
		"basis_points": 290,
		"ach_fixed_fee": 0,
		"ach_basis_points": 0,
		"american_express_fixed_fee": 30,
		"american_express_basis_points": 350,
		"american_express_charge_interchange": true,
		"dispute_inquiry_fixed_fee": 1500,
		"dispute_fixed_fee": 2500,
		"tags": {"plan": "gold"}
	}`, string(bs))
}

func TestBuildFeeProfile__corePresent(t *testing.T) {
	reg := *readRegistration(t)

	fp, err := BuildFeeProfile(&reg, "AP1", nil, CoreCP)
	require.NoError(t, err)
	require.Equal(t, int64(10), *fp.FixedFee)
	require.Equal(t, int64(260), *fp.BasisPoints)
	require.Equal(t, int64(10), *fp.AmericanExpressFixedFee)
	require.Equal(t, int64(260), *fp.AmericanExpressBasisPoints)

	// Amex specific card present rates win when set
	reg.CPAmexPerItemRate = registration.Float(0.15)
	reg.CPAmexRate = registration.String("3.25")
	fp, err = BuildFeeProfile(&reg, "AP1", nil, CoreCP)
	require.NoError(t, err)
	require.Equal(t, int64(15), *fp.AmericanExpressFixedFee)
	require.Equal(t, int64(325), *fp.AmericanExpressBasisPoints)

	reg.CPTransactionRate = registration.Field{}
	_, err = BuildFeeProfile(&reg, "AP1", nil, CoreCP)
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	require.Equal(t, []string{`"registration.cp_transaction_rate" cannot be null or empty`}, valErr.Messages())

	// other configurations ignore the card present rates
	_, err = BuildFeeProfile(&reg, "AP1", nil, CoreCNPCP)
	require.NoError(t, err)
}

func TestBuildFeeProfile__trust(t *testing.T) {
	reg := *readRegistration(t)
	reg.PricingPlan = registration.String("silver-trust")
	reg.PlanTxAmount = registration.String("not a number")
	reg.PlanDiscountAmount = registration.Field{}

	for _, cfg := range Configurations {
		fp, err := BuildFeeProfile(&reg, "AP1", nil, cfg)
		require.NoError(t, err, cfg.String())

		bs, err := json.Marshal(fp)
		require.NoError(t, err)

		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(bs, &out))
		require.Equal(t, "AP1", out["application"])
		require.Equal(t, map[string]interface{}{}, out["tags"])
		delete(out, "application")
		delete(out, "tags")

		require.Len(t, out, 36)
		for k, v := range out {
			switch vv := v.(type) {
			case float64:
				require.Equal(t, 0.0, vv, k)
			case bool:
				require.False(t, vv, k)
			default:
				t.Errorf("%s: unexpected %T", k, v)
			}
		}
		for _, k := range []string{"visa_kilobyte_access_fixed_fee", "mastercard_assessments_over1k_basis_points", "american_express_assessment_basis_points", "dispute_fixed_fee"} {
			require.Contains(t, out, k)
		}
	}
}

func TestBuildFeeProfile__missingPlan(t *testing.T) {
	reg := *readRegistration(t)
	reg.PlanTxAmount = registration.Field{}
	reg.PlanDiscountAmount = registration.Field{}

	_, err := BuildFeeProfile(&reg, "AP1", nil, CoreCNP)

	// fails on the first missing column only
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	require.Equal(t, []string{`"registration.plan_txamnt" cannot be null or empty`}, valErr.Messages())

	reg.PlanTxAmount = registration.Float(0)
	_, err = BuildFeeProfile(&reg, "AP1", nil, CoreCNP)
	require.True(t, errors.As(err, &valErr))
	require.Equal(t, []string{`"registration.plan_dcamnt" cannot be null or empty`}, valErr.Messages())
}

func TestBuildFeeProfile__notANumber(t *testing.T) {
	reg := *readRegistration(t)
	reg.PlanTxAmount = registration.String("thirty cents")
	reg.AmexMidDiscRate = registration.String("3,5")

	_, err := BuildFeeProfile(&reg, "AP1", nil, CoreCNP)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	require.Equal(t, []string{
		`"registration.plan_txamnt" must be a number`,
		`"registration.amex_mid_trans_fee" must be a number`,
		`"registration.amex_qual_disc_rate" must be a number`,
	}, valErr.Messages())
	for _, e := range valErr.Errors {
		require.Equal(t, fields.Type, e.Rule)
	}
}

func TestBuildFeeProfile__overflow(t *testing.T) {
	reg := *readRegistration(t)
	reg.PlanTxAmount = registration.String("99999999999999999999")

	fp, err := BuildFeeProfile(&reg, "AP1", nil, CoreCNP)
	require.Nil(t, fp)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	require.Equal(t, []string{
		`"registration.plan_txamnt" must be a number`,
		`"registration.amex_mid_trans_fee" must be a number`,
	}, valErr.Messages())
}

func TestBuildFeeProfile__flatRate(t *testing.T) {
	reg := *readRegistration(t)
	reg.IsFlatRate = registration.Bool(true)

	fp, err := BuildFeeProfile(&reg, "AP1", nil, CoreCNP)
	require.NoError(t, err)
	require.False(t, fp.ChargeInterchange)
	require.False(t, fp.AmericanExpressChargeInterchange)

	reg.IsFlatRate = registration.Field{}
	fp, err = BuildFeeProfile(&reg, "AP1", nil, CoreCNP)
	require.NoError(t, err)
	require.True(t, fp.ChargeInterchange)
}

func TestBuildFeeProfile__empty(t *testing.T) {
	_, err := BuildFeeProfile(nil, "AP1", nil, CoreCNP)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	require.Equal(t, FeeProfileResource, valErr.Resource)
	require.Equal(t, []string{"The input cannot be null or empty"}, valErr.Messages())
}

func TestBuildFeeProfile__idempotent(t *testing.T) {
	reg := readRegistration(t)
	for _, cfg := range Configurations {
		first, err := BuildFeeProfile(reg, "AP1", Tags{"k": "v"}, cfg)
		require.NoError(t, err)
		second, err := BuildFeeProfile(reg, "AP1", Tags{"k": "v"}, cfg)
		require.NoError(t, err)

		b1, _ := json.Marshal(first)
		b2, _ := json.Marshal(second)
		require.True(t, bytes.Equal(b1, b2), cfg.String())
	}
}

func TestIsTrustAccount(t *testing.T) {
	require.True(t, IsTrustAccount(&registration.Registration{PricingPlan: registration.String("gold-trust")}))
	require.False(t, IsTrustAccount(&registration.Registration{PricingPlan: registration.String("trust-gold")}))
	require.False(t, IsTrustAccount(&registration.Registration{}))
}
