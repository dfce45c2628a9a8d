// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"strings"

	"github.com/moov-io/onboarding/pkg/util"
	"github.com/moov-io/onboarding/x/mask"
)

const DefaultBaseURL = "https://finix.sandbox-payments-api.com/"

// Finix holds the processor credentials. Missing credentials are reported by the
// payload builder but never fail config validation, payloads can be previewed without them.
type Finix struct {
	Username      string `mapstructure:"username" json:"username"`
	Password      string `mapstructure:"password" json:"password"`
	BaseURL       string `mapstructure:"base_url" json:"base_url" validate:"required,url,endswith=/"`
	ApplicationID string `mapstructure:"application_id" json:"application_id"`
}

func (cfg *Finix) overrideFromEnv() {
	if v, ok := util.Env("FINIX_USERNAME"); ok {
		cfg.Username = v
	}
	if v, ok := util.Env("FINIX_PASSWORD"); ok {
		cfg.Password = v
	}
	if v, ok := util.Env("FINIX_BASE_URL"); ok {
		cfg.BaseURL = v
	}
	if v, ok := util.Env("FINIX_APPLICATION_ID"); ok {
		cfg.ApplicationID = v
	}
}

func (cfg Finix) HasCredentials() bool {
	return cfg.Username != "" && cfg.Password != ""
}

// Masked returns a copy safe to log or render.
func (cfg Finix) Masked() Finix {
	if cfg.Password != "" {
		cfg.Password = mask.Password(cfg.Password)
	}
	return cfg
}

func (cfg Finix) Validate() error {
	return validate.Struct(cfg)
}

func withTrailingSlash(u string) string {
	if u == "" {
		u = DefaultBaseURL
	}
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}
