// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

// Amount is a whole number of cents in a particular currency. Processor payloads carry
// bare cents, Amount gives them a readable form for logs and error messages.
type Amount struct {
	cents  int64
	symbol string // ISO 4217, i.e. USD, GBP
}

// NewAmountFromCents validates the ISO 4217 currency symbol and returns an Amount.
func NewAmountFromCents(symbol string, cents int64) (*Amount, error) {
	unit, err := currency.ParseISO(symbol)
	if err != nil {
		return nil, err
	}
	if cents < 0 {
		return nil, fmt.Errorf("negative amount: %d", cents)
	}
	return &Amount{cents: cents, symbol: unit.String()}, nil
}

// USD is shorthand for NewAmountFromCents("USD", cents). Negative values are clamped to zero.
func USD(cents int64) *Amount {
	if cents < 0 {
		cents = 0
	}
	return &Amount{cents: cents, symbol: "USD"}
}

// Cents returns the amount as an integer.
// Example: "USD 1.11" returns 111
func (a *Amount) Cents() int64 {
	if a == nil {
		return 0
	}
	return a.cents
}

func (a *Amount) Validate() error {
	if a == nil {
		return errors.New("nil Amount")
	}
	_, err := currency.ParseISO(a.symbol)
	return err
}

// String returns an amount formatted with the currency.
// Examples:
//   USD 12.53
//   GBP 4.02
func (a *Amount) String() string {
	if a == nil || a.symbol == "" {
		return "USD 0.00"
	}
	return fmt.Sprintf("%s %d.%02d", a.symbol, a.cents/100, a.cents%100)
}

// ParseAmount reads a currency symbol and decimal quantity. Digits past the second
// decimal place round the cents half up.
// Examples:
//   USD 12.53
//   GBP 4.025
func ParseAmount(in string) (*Amount, error) {
	parts := strings.Fields(in)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid Amount format: %q", in)
	}
	if strings.HasPrefix(parts[1], "-") {
		return nil, fmt.Errorf("negative amount: %q", parts[1])
	}
	whole, frac := parts[1], ""
	if idx := strings.Index(parts[1], "."); idx >= 0 {
		whole, frac = parts[1][:idx], parts[1][idx+1:]
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid Amount quantity %q: %v", parts[1], err)
	}
	for len(frac) < 3 {
		frac += "0"
	}
	mills, err := strconv.ParseInt(frac[:3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid Amount quantity %q: %v", parts[1], err)
	}
	cents := mills / 10
	if mills%10 >= 5 {
		cents++
	}
	return NewAmountFromCents(parts[0], dollars*100+cents)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	amt, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = *amt
	return nil
}
