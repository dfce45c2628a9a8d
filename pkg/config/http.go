// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

type HTTP struct {
	BindAddress string `mapstructure:"bind_address" json:"bind_address"`
}

type Admin struct {
	BindAddress string `mapstructure:"bind_address" json:"bind_address"`

	// DisableConfigEndpoint hides GET /config on the admin server.
	DisableConfigEndpoint bool `mapstructure:"disable_config_endpoint" json:"disable_config_endpoint"`
}

type Tracing struct {
	Enabled     bool    `mapstructure:"enabled" json:"enabled"`
	ServiceName string  `mapstructure:"service_name" json:"service_name" validate:"required_with=Enabled"`
	SampleRate  float64 `mapstructure:"sample_rate" json:"sample_rate" validate:"gte=0,lte=1"`
}

func (cfg Tracing) Validate() error {
	if !cfg.Enabled {
		return nil
	}
	return validate.Struct(cfg)
}
