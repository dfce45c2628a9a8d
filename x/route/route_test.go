// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moov-io/base"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	router := mux.NewRouter()
	router.Methods("GET").Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(log.NewNopLogger(), w, r)
		require.Equal(t, "req-1", responder.XRequestID)
		responder.Log("test", "response")
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"error": null}`))
		})
		require.True(t, responder.Written())
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "req-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	w.Flush()

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestRoute__problem(t *testing.T) {
	router := mux.NewRouter()
	router.Methods("GET").Path("/bad").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(log.NewNopLogger(), w, r)
		responder.Problem(errors.New("bad error"))

		// a second response is dropped
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
		})
	})

	req := httptest.NewRequest("GET", "/bad", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	w.Flush()

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "bad error")
}

func TestRoute__Idempotency(t *testing.T) {
	router := mux.NewRouter()
	router.Methods("GET").Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(log.NewNopLogger(), w, r)
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("PONG"))
		})
	})

	key := base.ID()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("x-idempotency-key", key)

	// mark the key as seen
	if seen := IdempotentRecorder.SeenBefore(key); seen {
		t.Errorf("shouldn't have been seen before")
	}

	// make our request
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	w.Flush()

	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	require.NotContains(t, w.Body.String(), "PONG")

	// Key should be seen now
	if seen := IdempotentRecorder.SeenBefore(key); !seen {
		t.Errorf("should have seen %q", key)
	}
}

func TestResponder__nil(t *testing.T) {
	var r *Responder
	require.True(t, r.Written())
	r.Log("key", "value")
	r.Respond(func(w http.ResponseWriter) {
		t.Fatal("unexpected call")
	})
	r.Problem(errors.New("ignored"))
}

func TestRoute__CleanPath(t *testing.T) {
	if v := CleanPath("/identities"); v != "identities" {
		t.Errorf("got %q", v)
	}
	if v := CleanPath("/v1/onboarding/identities/19636f90bc95779e2488b0f7a45c4b68958a2ddd"); v != "v1-onboarding-identities" {
		t.Errorf("got %q", v)
	}
	// A value which looks like moov/base.ID, but is off by one character (last letter)
	if v := CleanPath("/v1/onboarding/identities/19636f90bc95779e2488b0f7a45c4b68958a2ddz"); v != "v1-onboarding-identities-19636f90bc95779e2488b0f7a45c4b68958a2ddz" {
		t.Errorf("got %q", v)
	}
}
