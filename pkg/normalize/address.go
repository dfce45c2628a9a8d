// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package normalize

import (
	"github.com/moov-io/onboarding/pkg/registration"
)

// Address is the processor's address object.
type Address struct {
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	City       *string `json:"city"`
	Region     *string `json:"region"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

// FormatAddress reads the address columns stored under prefix. Region is cut to the
// first two characters of the state column and is never null.
func FormatAddress(reg *registration.Registration, prefix registration.AddressPrefix) Address {
	cols := reg.Address(prefix)
	region := truncate(cols.State.String(), 2)
	return Address{
		Line1:      cols.Line1.Text(),
		Line2:      cols.Line2.Text(),
		City:       cols.City.Text(),
		Region:     &region,
		PostalCode: cols.Zip.Text(),
		Country:    cols.Country.Text(),
	}
}

// truncate returns at most n characters of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
