// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"strconv"
	"strings"
)

// Or returns the first option that isn't blank, trimmed.
func Or(options ...string) string {
	for i := range options {
		if v := strings.TrimSpace(options[i]); v != "" {
			return v
		}
	}
	return ""
}

// Yes parses a flag value from the environment. Besides what strconv.ParseBool
// accepts it understands 'yes', 'y' and 'on' in any case.
func Yes(in string) bool {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "yes", "y", "on":
		return true
	}
	v, _ := strconv.ParseBool(strings.TrimSpace(in))
	return v
}

// Env returns the trimmed value of the environment variable key and whether it was set
// to something other than whitespace.
func Env(key string) (string, bool) {
	v := Or(os.Getenv(key))
	return v, v != ""
}
