// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package normalize

import (
	"math"
	"regexp"
	"strconv"

	"github.com/moov-io/onboarding/pkg/registration"
)

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// FormatNumeric strips every character that is not a digit or a decimal point.
// Null fields return nil.
//
//   FormatNumeric("4,000") // "4000"
func FormatNumeric(f registration.Field) *string {
	if !f.Present() {
		return nil
	}
	out := nonNumeric.ReplaceAllString(f.String(), "")
	return &out
}

// Numeric is FormatNumeric read as a number. Null fields return fallback, an empty
// result is zero and anything that still isn't a number (e.g. "1.2.3") is NaN.
func Numeric(f registration.Field, fallback float64) float64 {
	s := FormatNumeric(f)
	if s == nil {
		return fallback
	}
	if *s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}
