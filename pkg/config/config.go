// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/moov-io/onboarding/pkg/util"

	"github.com/moov-io/base/http/bind"

	"github.com/go-kit/kit/log"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const serviceName = "onboarding"

type Config struct {
	Logger  log.Logger `json:"-"`
	Logging Logging    `json:"logging"`

	Http  HTTP  `json:"http"`
	Admin Admin `json:"admin"`

	Finix   Finix   `json:"finix"`
	Tracing Tracing `json:"tracing"`
}

type Logging struct {
	Format string `json:"format" validate:"omitempty,oneof=json plain logfmt"`
}

func Empty() *Config {
	return &Config{
		Logger: log.NewNopLogger(),
		Admin: Admin{
			BindAddress: bind.Admin(serviceName),
		},
		Http: HTTP{
			BindAddress: bind.HTTP(serviceName),
		},
		Finix: Finix{
			BaseURL: DefaultBaseURL,
		},
		Tracing: Tracing{
			ServiceName: serviceName,
			SampleRate:  1.0,
		},
	}
}

// FromFile reads the YAML config at path. An empty path returns the defaults. In both
// cases environment overrides are applied before validation.
func FromFile(path string) (*Config, error) {
	if path != "" {
		bs, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %v", path, err)
		}
		return Read(bs)
	}
	return finish(Empty())
}

func Read(data []byte) (*Config, error) {
	vip := viper.New()
	vip.SetConfigType("yaml")
	if err := vip.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("problem reading config: %v", err)
	}

	cfg := Empty()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("problem unmarshaling config: %v", err)
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.overrideFromEnv()
	cfg.Finix.BaseURL = withTrailingSlash(cfg.Finix.BaseURL)

	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg *Config) overrideFromEnv() {
	if v, ok := util.Env("LOG_FORMAT"); ok {
		cfg.Logging.Format = v
	}
	if v, ok := util.Env("HTTP_BIND_ADDRESS"); ok {
		cfg.Http.BindAddress = v
	}
	if v, ok := util.Env("HTTP_ADMIN_BIND_ADDRESS"); ok {
		cfg.Admin.BindAddress = v
	}
	if v, ok := util.Env("ADMIN_DISABLE_CONFIG_ENDPOINT"); ok {
		cfg.Admin.DisableConfigEndpoint = util.Yes(v)
	}
	if v, ok := util.Env("TRACING_ENABLED"); ok {
		cfg.Tracing.Enabled = util.Yes(v)
	}
	cfg.Finix.overrideFromEnv()
}

func setupLogger(cfg *Config) *Config {
	if strings.EqualFold(cfg.Logging.Format, "json") {
		cfg.Logger = log.NewJSONLogger(os.Stderr)
	} else {
		cfg.Logger = log.NewLogfmtLogger(os.Stderr)
	}

	cfg.Logger = log.With(cfg.Logger, "ts", log.DefaultTimestampUTC)
	cfg.Logger = log.With(cfg.Logger, "caller", log.DefaultCaller)

	return cfg
}

var validate = validator.New()

// Validate checks a Config fields and performs various confirmations
// their values conform to expectations.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.New("missing Config")
	}

	if err := validate.Struct(cfg.Logging); err != nil {
		return fmt.Errorf("logging: %v", err)
	}
	if err := cfg.Finix.Validate(); err != nil {
		return fmt.Errorf("finix: %v", err)
	}
	if err := cfg.Tracing.Validate(); err != nil {
		return fmt.Errorf("tracing: %v", err)
	}
	return nil
}
