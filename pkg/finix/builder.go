// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package finix

import (
	"errors"

	"github.com/moov-io/onboarding/pkg/config"
	"github.com/moov-io/onboarding/pkg/registration"

	"github.com/go-kit/kit/log"
)

// Builder runs the payload builders with the processor settings of one deployment.
// It holds no per-call state and is safe for concurrent use.
type Builder struct {
	cfg    config.Finix
	logger log.Logger
}

// NewBuilder returns a Builder for cfg. Missing credentials are logged but do not stop
// payloads from being built.
func NewBuilder(logger log.Logger, cfg config.Finix) *Builder {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = log.With(logger, "package", "finix")
	if !cfg.HasCredentials() {
		logger.Log("finix", "Missing Finix credentials.", "baseURL", cfg.BaseURL)
	}
	return &Builder{
		cfg:    cfg,
		logger: logger,
	}
}

// BaseURL is where built payloads are submitted, it always ends with a slash.
func (b *Builder) BaseURL() string {
	return b.cfg.BaseURL
}

func (b *Builder) Identity(reg *registration.Registration, tags Tags, cfg Configuration, channel Channel) (*IdentityRequest, error) {
	req, err := BuildIdentity(reg, tags, cfg, channel)
	if err != nil {
		b.rejected(IdentityResource, cfg, err)
		return nil, err
	}
	return req, nil
}

func (b *Builder) PaymentInstrument(reg *registration.Registration, identityID string, tags Tags) (*PaymentInstrument, error) {
	pi, err := BuildPaymentInstrument(reg, identityID, tags)
	if err != nil {
		b.rejected(PaymentInstrumentResource, nil, err)
		return nil, err
	}
	return pi, nil
}

// FeeProfile builds the fee profile, using the configured application when
// applicationID is empty.
func (b *Builder) FeeProfile(reg *registration.Registration, applicationID string, tags Tags, cfg Configuration) (*FeeProfile, error) {
	if applicationID == "" {
		applicationID = b.cfg.ApplicationID
	}
	fp, err := BuildFeeProfile(reg, applicationID, tags, cfg)
	if err != nil {
		b.rejected(FeeProfileResource, cfg, err)
		return nil, err
	}
	return fp, nil
}

func (b *Builder) rejected(resource Resource, cfg Configuration, err error) {
	kv := []interface{}{"finix", "rejected payload", "resource", resource, "reason", Reason(err)}
	if cfg != nil {
		kv = append(kv, "configuration", cfg.String())
	}
	b.logger.Log(append(kv, "errors", err.Error())...)
}

// Reason classifies a builder error for logs and metrics.
func Reason(err error) string {
	var reqErr *RequirementError
	if errors.As(err, &reqErr) {
		return "requirements"
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		if len(valErr.Errors) == 1 && valErr.Errors[0].Message == emptyInput {
			return "empty"
		}
		return "validation"
	}
	return "unknown"
}
