// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package fields

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type testAddress struct {
	Region *string `json:"region"`
}

type Extras struct {
	Flag *bool `json:"flag"`
}

type testPayload struct {
	Name    *string           `json:"name"`
	Count   *int              `json:"count"`
	Amount  *float64          `json:"amount"`
	Kind    string            `json:"kind"`
	Address testAddress       `json:"address"`
	Tags    map[string]string `json:"tags"`
	hidden  string
	*Extras
}

func str(s string) *string { return &s }

func TestRule__Check(t *testing.T) {
	cases := []struct {
		rule    Rule
		value   interface{}
		present bool
		kind    RuleKind
		message string
	}{
		{Rule{Field: "name", Type: String}, nil, false, Required, `"registration.name" cannot be null or empty`},
		{Rule{Field: "name", Type: String}, 12, true, Type, `"registration.name" must be a string`},
		{Rule{Field: "count", Type: Number}, math.NaN(), true, Type, `"registration.count" must be a number`},
		{Rule{Field: "flag", Type: Boolean}, "true", true, Type, `"registration.flag" must be a boolean`},
		{Rule{Field: "region", Type: String, Exact: 2}, "Cal", true, ExactLength, `"registration.region" must be exactly 2 chars long`},
		{Rule{Field: "name", Type: String, MaxLength: 5}, "Acme Widgets", true, MaxLength, `"registration.name" must be less than 5 chars long`},
		{Rule{Field: "year", Type: Number, MaxLength: 4}, 19850, true, MaxLength, `"registration.year" must be less than 4 chars long`},
		{Rule{Field: "month", Type: Number, Between: &Bounds{1, 12}}, 13, true, Range, `"registration.month" must be between 1 and 12`},
		{Rule{Field: "kind", Type: String, OneOf: []string{"PRIVATE", "PUBLIC"}}, "private", true, OneOf, `"registration.kind" isn't in the list of possible values`},
		{Rule{Field: "account_number", Label: "bank_account_number", Type: String}, nil, false, Required, `"registration.bank_account_number" cannot be null or empty`},
	}
	for i := range cases {
		err := cases[i].rule.Check(cases[i].value, cases[i].present)
		require.NotNil(t, err, "case #%d", i)
		require.Equal(t, cases[i].kind, err.Rule, "case #%d", i)
		require.Equal(t, cases[i].message, err.Message, "case #%d", i)
		require.Equal(t, cases[i].rule.Field, err.Field, "case #%d", i)
	}
}

func TestRule__CheckPasses(t *testing.T) {
	require.Nil(t, Rule{Field: "name", Type: String, MaxLength: 5}.Check("Acme", true))
	require.Nil(t, Rule{Field: "month", Type: Number, Between: &Bounds{1, 12}}.Check(12, true))
	require.Nil(t, Rule{Field: "month", Type: Number, Between: &Bounds{1, 12}}.Check(1, true))
	require.Nil(t, Rule{Field: "volume", Type: Number, MaxLength: 23}.Check(int64(3000000), true))
	require.Nil(t, Rule{Field: "pct", Type: Number, Between: &Bounds{0, 100}}.Check(33.5, true))
	require.Nil(t, Rule{Field: "kind", OneOf: []string{"PRIVATE", "PUBLIC"}}.Check("PUBLIC", true))
	require.Nil(t, Rule{Field: "flag", Type: Boolean}.Check(false, true))

	// only the first failing check is reported for a field
	err := Rule{Field: "region", Type: String, Exact: 2, MaxLength: 1}.Check("abc", true)
	require.Equal(t, ExactLength, err.Rule)
}

func TestValidate(t *testing.T) {
	count := 7
	payload := &testPayload{
		Count:   &count,
		Kind:    "OTHER",
		Address: testAddress{Region: str("F")},
	}
	errs := Validate(payload, []Rule{
		{Field: "name", Type: String},
		{Field: "count", Type: Number, Between: &Bounds{1, 10}},
		{Field: "kind", Type: String, OneOf: []string{"A", "B"}},
		{Field: "address.region", Type: String, Exact: 2},
		{Field: "flag", Type: Boolean},
	})
	require.Len(t, errs, 4)
	require.Equal(t, []string{
		`"registration.name" cannot be null or empty`,
		`"registration.kind" isn't in the list of possible values`,
		`"registration.address.region" must be exactly 2 chars long`,
		`"registration.flag" cannot be null or empty`,
	}, errs.Messages())
	require.True(t, errs.Has("address.region"))
	require.False(t, errs.Has("count"))

	payload.Name = str("Acme")
	payload.Kind = "A"
	payload.Address.Region = str("FL")
	payload.Extras = &Extras{Flag: new(bool)}
	require.Empty(t, Validate(payload, []Rule{
		{Field: "name", Type: String},
		{Field: "kind", Type: String, OneOf: []string{"A", "B"}},
		{Field: "address.region", Type: String, Exact: 2},
		{Field: "flag", Type: Boolean},
	}))
}

func TestLookup(t *testing.T) {
	payload := testPayload{
		Name:   str("Acme"),
		Tags:   map[string]string{"env": "test"},
		hidden: "secret",
	}

	v, ok := Lookup(payload, "name")
	require.True(t, ok)
	require.Equal(t, "Acme", v)

	v, ok = Lookup(&payload, "tags.env")
	require.True(t, ok)
	require.Equal(t, "test", v)

	_, ok = Lookup(payload, "tags.missing")
	require.False(t, ok)

	_, ok = Lookup(payload, "address.region")
	require.False(t, ok)

	_, ok = Lookup(payload, "hidden")
	require.False(t, ok)

	_, ok = Lookup(payload, "flag") // nil embedded struct
	require.False(t, ok)

	_, ok = Lookup(payload, "name.first")
	require.False(t, ok)

	_, ok = Lookup(nil, "name")
	require.False(t, ok)
}

func TestErrors__MarshalJSON(t *testing.T) {
	errs := Errors{
		{Field: "a", Rule: Required, Message: "first"},
		{Field: "b", Rule: Type, Message: "second"},
	}
	bs, err := json.Marshal(errs)
	require.NoError(t, err)
	require.JSONEq(t, `{"errors": ["first", "second"]}`, string(bs))
	require.Equal(t, "first; second", errs.Error())
}
