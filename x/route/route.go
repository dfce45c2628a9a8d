// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/moov-io/onboarding/x/trace"

	moovhttp "github.com/moov-io/base/http"
	"github.com/moov-io/base/idempotent"
	"github.com/moov-io/base/idempotent/lru"
	opentracing "github.com/opentracing/opentracing-go"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	IdempotentRecorder = lru.New()

	// Prometheus Metrics
	Histogram = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Name: "http_response_duration_seconds",
		Help: "Histogram representing the http response durations",
	}, []string{"route"})
)

// Responder wraps one HTTP request. It records the response duration, rejects replayed
// idempotency keys and keeps a tracing span open until the response is written.
type Responder struct {
	XRequestID string

	logger log.Logger

	request *http.Request
	span    opentracing.Span

	writer *moovhttp.ResponseWriter
	done   bool
}

func NewResponder(logger log.Logger, w http.ResponseWriter, r *http.Request) *Responder {
	resp := &Responder{
		XRequestID: moovhttp.GetRequestID(r),
		logger:     logger,
		request:    r,
	}
	resp.setSpan()
	writer, err := wrapResponseWriter(logger, w, r)
	resp.writer = writer
	if err != nil {
		// the replay has already been answered
		resp.Log("idempotency", err)
		resp.finish()
	}
	return resp
}

// Log writes kvpairs prefixed with the request ID.
func (r *Responder) Log(kvpairs ...interface{}) {
	if r == nil || r.writer == nil {
		return
	}
	var args = []interface{}{
		"requestID", r.XRequestID,
	}
	args = append(args, kvpairs...)
	r.logger.Log(args...)
}

// Written is true once a response has been sent, e.g. for a replayed idempotency key.
func (r *Responder) Written() bool {
	return r == nil || r.done
}

func (r *Responder) Respond(fn func(http.ResponseWriter)) {
	if r.Written() {
		return
	}
	r.finish()
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	fn(r.writer)
}

func (r *Responder) Problem(err error) {
	if r.Written() {
		return
	}
	r.span.SetTag("error", true)
	r.finish()
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	moovhttp.Problem(r.writer, err)
}

func (r *Responder) setSpan() {
	r.span = trace.FromRequest(routeName(r.request), r.request)
}

func (r *Responder) finish() {
	r.done = true
	if r.span != nil {
		r.span.Finish()
	}
}

func routeName(r *http.Request) string {
	return fmt.Sprintf("%s-%s", strings.ToLower(r.Method), CleanPath(r.URL.Path))
}

func wrapResponseWriter(logger log.Logger, w http.ResponseWriter, r *http.Request) (*moovhttp.ResponseWriter, error) {
	ww := moovhttp.Wrap(logger, Histogram.With("route", routeName(r)), w, r)

	if _, seen := idempotent.FromRequest(r, IdempotentRecorder); seen {
		idempotent.SeenBefore(ww)
		return ww, idempotent.ErrSeenBefore
	}

	return ww, nil
}

var baseIdRegex = regexp.MustCompile(`([a-f0-9]{40})`)

// CleanPath takes a URL path and formats it for Prometheus metrics
//
// This method replaces /'s with -'s and strips out moov/base.ID() values from URL path slugs.
func CleanPath(path string) string {
	parts := strings.Split(path, "/")
	var out []string
	for i := range parts {
		if parts[i] == "" || baseIdRegex.MatchString(parts[i]) {
			continue // assume it's a moov/base.ID() value
		}
		out = append(out, parts[i])
	}
	return strings.Join(out, "-")
}
