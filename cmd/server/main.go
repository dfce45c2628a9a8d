// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moov-io/onboarding"
	"github.com/moov-io/onboarding/pkg/config"
	configadmin "github.com/moov-io/onboarding/pkg/config/admin"
	"github.com/moov-io/onboarding/pkg/finix"
	"github.com/moov-io/onboarding/pkg/payloads"
	"github.com/moov-io/onboarding/pkg/util"
	"github.com/moov-io/onboarding/x/route"
	"github.com/moov-io/onboarding/x/trace"

	"github.com/moov-io/base/admin"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	"github.com/opentracing/opentracing-go"
)

var (
	flagConfigFile = flag.String("config", "", "Filepath for config file to load")
)

func main() {
	flag.Parse()

	cfg, err := config.FromFile(util.Or(os.Getenv("CONFIG_FILE"), *flagConfigFile))
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	cfg.Logger.Log("startup", fmt.Sprintf("Starting onboarding server version %s", onboarding.Version))

	tracer, closer, err := trace.NewTracer(cfg.Logger, cfg.Tracing)
	if err != nil {
		panic(fmt.Sprintf("failed to setup tracing: %v", err))
	}
	defer closer.Close()
	opentracing.SetGlobalTracer(tracer)

	// Listen for application termination.
	errs := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	adminServer := setupAdminServer(cfg)
	go func() {
		cfg.Logger.Log("admin", fmt.Sprintf("listening on %s", adminServer.BindAddr()))
		if err := adminServer.Listen(); err != nil {
			err = fmt.Errorf("problem starting admin http: %v", err)
			cfg.Logger.Log("admin", err)
			errs <- err
		}
	}()
	defer adminServer.Shutdown()

	// Create HTTP handler
	handler := setupRoutes(cfg.Logger, setupBuilder(cfg))

	serve := &http.Server{
		Addr:    cfg.Http.BindAddress,
		Handler: handler,
		TLSConfig: &tls.Config{
			InsecureSkipVerify:       false,
			PreferServerCipherSuites: true,
			MinVersion:               tls.VersionTLS12,
		},
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	shutdownServer := func() {
		if err := serve.Shutdown(context.TODO()); err != nil {
			cfg.Logger.Log("shutdown", err)
		}
	}
	defer shutdownServer()

	// Start main HTTP server
	go func() {
		if certFile, keyFile := os.Getenv("HTTPS_CERT_FILE"), os.Getenv("HTTPS_KEY_FILE"); certFile != "" && keyFile != "" {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for secure HTTP server", serve.Addr))
			if err := serve.ListenAndServeTLS(certFile, keyFile); err != nil {
				cfg.Logger.Log("exit", err)
			}
		} else {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for HTTP server", serve.Addr))
			if err := serve.ListenAndServe(); err != nil {
				cfg.Logger.Log("exit", err)
			}
		}
	}()

	if err := <-errs; err != nil {
		cfg.Logger.Log("exit", err)
	}
}

func setupAdminServer(cfg *config.Config) *admin.Server {
	svc := admin.NewServer(cfg.Admin.BindAddress)
	svc.AddVersionHandler(onboarding.Version) // Setup 'GET /version'
	configadmin.RegisterRoutes(svc, cfg)
	return svc
}

func setupBuilder(cfg *config.Config) *finix.Builder {
	builder := finix.NewBuilder(cfg.Logger, cfg.Finix)
	cfg.Logger.Log("finix", fmt.Sprintf("building payloads for %s", builder.BaseURL()), "application", cfg.Finix.ApplicationID)
	return builder
}

func setupRoutes(logger log.Logger, builder *finix.Builder) *mux.Router {
	handler := mux.NewRouter()
	route.PingRoute(logger, handler)
	payloads.NewRouter(logger, builder).RegisterRoutes(handler)
	return handler
}
