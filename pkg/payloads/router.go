// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package payloads

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moov-io/onboarding/pkg/finix"
	"github.com/moov-io/onboarding/pkg/model"
	"github.com/moov-io/onboarding/pkg/registration"
	"github.com/moov-io/onboarding/x/mask"
	"github.com/moov-io/onboarding/x/route"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	"github.com/gorilla/mux"
	"github.com/moov-io/ach"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	payloadsBuilt = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "finix_payloads_built",
		Help: "Counter of processor payloads built",
	}, []string{"resource"})

	payloadsRejected = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "finix_payloads_rejected",
		Help: "Counter of registrations rejected by a payload builder",
	}, []string{"resource", "reason"})
)

type Router struct {
	Logger  log.Logger
	Builder *finix.Builder

	CreateIdentity          http.HandlerFunc
	CreatePaymentInstrument http.HandlerFunc
	CreateFeeProfile        http.HandlerFunc
}

func NewRouter(logger log.Logger, builder *finix.Builder) *Router {
	return &Router{
		Logger:                  logger,
		Builder:                 builder,
		CreateIdentity:          CreateIdentity(logger, builder),
		CreatePaymentInstrument: CreatePaymentInstrument(logger, builder),
		CreateFeeProfile:        CreateFeeProfile(logger, builder),
	}
}

func (c *Router) RegisterRoutes(r *mux.Router) {
	r.Methods("POST").Path("/identities").HandlerFunc(c.CreateIdentity)
	r.Methods("POST").Path("/payment-instruments").HandlerFunc(c.CreatePaymentInstrument)
	r.Methods("POST").Path("/fee-profiles").HandlerFunc(c.CreateFeeProfile)
}

type IdentityRequest struct {
	Registration       *registration.Registration `json:"registration"`
	Configuration      string                     `json:"configuration"`
	ProcessingInfoType string                     `json:"processingInfoType"`
	Tags               finix.Tags                 `json:"tags"`
}

type PaymentInstrumentRequest struct {
	Registration *registration.Registration `json:"registration"`
	Identity     string                     `json:"identity"`
	Tags         finix.Tags                 `json:"tags"`
}

type FeeProfileRequest struct {
	Registration  *registration.Registration `json:"registration"`
	Application   string                     `json:"application"`
	Configuration string                     `json:"configuration"`
	Tags          finix.Tags                 `json:"tags"`
}

func CreateIdentity(logger log.Logger, builder *finix.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder.Written() {
			return
		}

		var req IdentityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responder.Problem(err)
			return
		}
		cfg, err := finix.ParseConfiguration(req.Configuration)
		if err != nil {
			responder.Problem(err)
			return
		}
		channel, err := finix.ParseChannel(req.ProcessingInfoType)
		if err != nil {
			responder.Problem(err)
			return
		}

		identity, err := builder.Identity(req.Registration, req.Tags, cfg, channel)
		if err != nil {
			rejected(responder, finix.IdentityResource, err)
			return
		}
		payloadsBuilt.With("resource", string(finix.IdentityResource)).Add(1)

		responder.Log(
			"payloads", "built identity",
			"configuration", cfg.String(),
			"processor", cfg.Processor(),
			"annualCardVolume", model.USD(*identity.Entity.AnnualCardVolume).String(),
			"maxTransactionAmount", model.USD(*identity.Entity.MaxTransactionAmount).String(),
		)
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(identity)
		})
	}
}

func CreatePaymentInstrument(logger log.Logger, builder *finix.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder.Written() {
			return
		}

		var req PaymentInstrumentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responder.Problem(err)
			return
		}

		pi, err := builder.PaymentInstrument(req.Registration, req.Identity, req.Tags)
		if err != nil {
			rejected(responder, finix.PaymentInstrumentResource, err)
			return
		}
		payloadsBuilt.With("resource", string(finix.PaymentInstrumentResource)).Add(1)

		// The processor verifies the account, a bad checksum is only worth a warning here.
		if err := ach.CheckRoutingNumber(*pi.BankCode); err != nil {
			responder.Log("payloads", "suspicious bank code", "bankCode", *pi.BankCode, "error", err)
		}
		responder.Log(
			"payloads", "built payment instrument",
			"identity", pi.Identity,
			"accountNumber", mask.AccountNumber(*pi.AccountNumber),
		)
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(pi)
		})
	}
}

func CreateFeeProfile(logger log.Logger, builder *finix.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder.Written() {
			return
		}

		var req FeeProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responder.Problem(err)
			return
		}
		// fee profiles can be priced without a configuration
		var cfg finix.Configuration
		if req.Configuration != "" {
			c, err := finix.ParseConfiguration(req.Configuration)
			if err != nil {
				responder.Problem(err)
				return
			}
			cfg = c
		}

		fp, err := builder.FeeProfile(req.Registration, req.Application, req.Tags, cfg)
		if err != nil {
			rejected(responder, finix.FeeProfileResource, err)
			return
		}
		payloadsBuilt.With("resource", string(finix.FeeProfileResource)).Add(1)

		responder.Log(
			"payloads", "built fee profile",
			"configuration", cfg,
			"application", fp.Application,
			"trust", fp.NetworkFees != nil,
			"fixedFee", model.USD(*fp.FixedFee).String(),
		)
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(fp)
		})
	}
}

// rejected answers with the {"errors": [...]} set of a builder error. Anything else is
// a moov {"error": "..."} problem.
func rejected(responder *route.Responder, resource finix.Resource, err error) {
	reason := finix.Reason(err)
	payloadsRejected.With("resource", string(resource), "reason", reason).Add(1)

	var body json.Marshaler
	var valErr *finix.ValidationError
	var reqErr *finix.RequirementError
	switch {
	case errors.As(err, &valErr):
		body = valErr
	case errors.As(err, &reqErr):
		body = reqErr
	default:
		responder.Problem(err)
		return
	}

	responder.Log("payloads", "rejected registration", "resource", string(resource), "reason", reason)
	responder.Respond(func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(body)
	})
}
