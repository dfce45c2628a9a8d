// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"testing"
)

func TestAmount__NewAmountFromCents(t *testing.T) {
	if amt, _ := NewAmountFromCents("USD", 1266); amt.String() != "USD 12.66" {
		t.Errorf("got %q", amt.String())
	}
	if amt, _ := NewAmountFromCents("USD", 5); amt.String() != "USD 0.05" {
		t.Errorf("got %q", amt.String())
	}
	if amt, _ := NewAmountFromCents("GBP", 3000000); amt.String() != "GBP 30000.00" {
		t.Errorf("got %q", amt.String())
	}

	if _, err := NewAmountFromCents("", 12); err == nil {
		t.Error("expected error")
	}
	if _, err := NewAmountFromCents("USD", -1); err == nil {
		t.Error("expected error")
	}
}

func TestAmount__USD(t *testing.T) {
	if v := USD(150000).String(); v != "USD 1500.00" {
		t.Errorf("got %q", v)
	}
	if v := USD(-10).Cents(); v != 0 {
		t.Errorf("got %d", v)
	}
}

func TestAmount__Cents(t *testing.T) {
	var amt *Amount
	if v := amt.Cents(); v != 0 {
		t.Errorf("got %d", v)
	}
	if v := USD(2500).Cents(); v != 2500 {
		t.Errorf("got %d", v)
	}
}

func TestAmount__String(t *testing.T) {
	var amt *Amount
	if v := amt.String(); v != "USD 0.00" {
		t.Errorf("got %q", v)
	}
	amt = &Amount{}
	if v := amt.String(); v != "USD 0.00" {
		t.Errorf("got %q", v)
	}
}

func TestAmount__Validate(t *testing.T) {
	var amt *Amount
	if err := amt.Validate(); err == nil {
		t.Error("expected error")
	}
	if err := USD(1).Validate(); err != nil {
		t.Error(err)
	}
	amt = &Amount{symbol: "ZZZ"}
	if err := amt.Validate(); err == nil {
		t.Error("expected error")
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]int64{
		"USD 12.53":  1253,
		"USD 12":     1200,
		"USD 0.5":    50,
		"USD 4.025":  403,
		"USD 4.024":  402,
		"USD 15.00":  1500,
		"USD 100000": 10000000,
	}
	for in, want := range cases {
		amt, err := ParseAmount(in)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if amt.Cents() != want {
			t.Errorf("%s: got %d want %d", in, amt.Cents(), want)
		}
	}

	for _, in := range []string{"", "USD", "12.00", "USD -1.00", "USD abc", "USD 1.a", "XYZ1 1.00"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestAmount__json(t *testing.T) {
	bs, err := json.Marshal(USD(2500))
	if err != nil {
		t.Fatal(err)
	}
	if v := string(bs); v != `"USD 25.00"` {
		t.Errorf("got %s", v)
	}

	var amt Amount
	if err := json.Unmarshal([]byte(`"USD 15.00"`), &amt); err != nil {
		t.Fatal(err)
	}
	if amt.Cents() != 1500 {
		t.Errorf("got %d", amt.Cents())
	}
	if err := json.Unmarshal([]byte(`12`), &amt); err == nil {
		t.Error("expected error")
	}
	if err := json.Unmarshal([]byte(`"USD"`), &amt); err == nil {
		t.Error("expected error")
	}
}
