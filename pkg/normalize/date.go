// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package normalize

import (
	"strconv"
	"strings"

	"github.com/moov-io/onboarding/pkg/registration"
)

// Date is the processor's date object.
type Date struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

// FormatDate splits a MM/DD/YYYY value into its components. Ranges are not checked here.
// A component that is missing or not an integer is left nil so field validation rejects it.
func FormatDate(f registration.Field) Date {
	parts := strings.Split(f.String(), "/")
	return Date{
		Year:  component(parts, 2),
		Month: component(parts, 0),
		Day:   component(parts, 1),
	}
}

func component(parts []string, idx int) *int {
	if idx >= len(parts) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[idx]))
	if err != nil {
		return nil
	}
	return &n
}
