// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package mask

import (
	"testing"
)

func TestPassword(t *testing.T) {
	cases := map[string]string{
		"":         "**",
		"ab":       "**",
		"abc":      "a*c",
		"password": "p******d",
		"pässwörd": "p******d",
	}
	for in, want := range cases {
		if got := Password(in); got != want {
			t.Errorf("Password(%q)=%q want %q", in, got, want)
		}
	}
}

func TestAccountNumber(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"12":          "**",
		"1234":        "****",
		"123456789":   "*****6789",
		" 987654321 ": "*****4321",
	}
	for in, want := range cases {
		if got := AccountNumber(in); got != want {
			t.Errorf("AccountNumber(%q)=%q want %q", in, got, want)
		}
	}
}
