// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package trace

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/moov-io/onboarding/pkg/config"

	"github.com/go-kit/kit/log"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegermetrics "github.com/uber/jaeger-lib/metrics/prometheus"
)

// NewTracer sets up the global opentracing.Tracer from cfg. When tracing is disabled the
// no-op tracer is kept and the returned io.Closer does nothing.
func NewTracer(logger log.Logger, cfg config.Tracing) (opentracing.Tracer, io.Closer, error) {
	if !cfg.Enabled {
		return opentracing.GlobalTracer(), ioutil.NopCloser(nil), nil
	}
	if cfg.SampleRate >= 1.0 {
		return NewConstantTracer(logger, cfg.ServiceName)
	}
	return NewProbabilisticTracer(logger, cfg.ServiceName, cfg.SampleRate)
}

// NewConstantTracer returns an opentracer.Tracer from Jaeger that always records spans for recording.
//
// This method uses the opentracing singleton and Prometheus DefaultRegisterer singleton.
func NewConstantTracer(logger log.Logger, serviceName string) (opentracing.Tracer, io.Closer, error) {
	return setupTracer(logger, serviceName, &jaegercfg.SamplerConfig{
		Type:  jaeger.SamplerTypeConst,
		Param: 1.0,
	})
}

// NewProbabilisticTracer returns an opentracer.Tracer from Jaeger that records approximately
// the given percentage of spans for recording.
func NewProbabilisticTracer(logger log.Logger, serviceName string, rate float64) (opentracing.Tracer, io.Closer, error) {
	return setupTracer(logger, serviceName, &jaegercfg.SamplerConfig{
		Type:  jaeger.SamplerTypeProbabilistic,
		Param: rate,
	})
}

var (
	// wrappedPrometheusRegisterer is a singleton so we only register opentracing metrics once
	wrappedPrometheusRegisterer = jaegermetrics.New(jaegermetrics.WithRegisterer(prometheus.DefaultRegisterer))
)

func setupTracer(logger log.Logger, serviceName string, sampler *jaegercfg.SamplerConfig) (opentracing.Tracer, io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler:     sampler,
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans: true,
		},
	}
	tracer, closer, err := cfg.NewTracer(
		jaegercfg.Logger(&jaegerLogger{inner: log.With(logger, "package", "trace")}),
		jaegercfg.Metrics(wrappedPrometheusRegisterer),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("jaeger tracer: %v", err)
	}

	// Set the singleton opentracing.Tracer with the Jaeger tracer.
	opentracing.SetGlobalTracer(tracer)

	return tracer, closer, nil
}

var _ jaeger.Logger = (*jaegerLogger)(nil)

// adapter for jaeger.Logger
type jaegerLogger struct {
	inner log.Logger
}

func (l *jaegerLogger) Error(msg string) {
	l.inner.Log("level", "error", "msg", msg)
}

func (l *jaegerLogger) Infof(msg string, args ...interface{}) {
	l.inner.Log("level", "info", "msg", fmt.Sprintf(msg, args...))
}
