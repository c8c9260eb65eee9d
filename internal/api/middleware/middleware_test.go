package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apimw "github.com/voltroute/backend/internal/api/middleware"
)

type observation struct {
	route  string
	method string
	code   int
}

type recordingObserver struct {
	seen []observation
}

func (o *recordingObserver) ObserveRequest(route, method string, code int, _ time.Duration) {
	o.seen = append(o.seen, observation{route: route, method: method, code: code})
}

func TestCorrelationID_GeneratesAndEchoes(t *testing.T) {
	var fromCtx string
	h := apimw.CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = apimw.GetCorrelationID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	got := rec.Header().Get(apimw.CorrelationIDHeader)
	if got == "" || got != fromCtx {
		t.Fatalf("expected generated ID to be echoed and stored, header=%q ctx=%q", got, fromCtx)
	}
}

func TestCorrelationID_KeepsCallerValue(t *testing.T) {
	h := apimw.CorrelationID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(apimw.CorrelationIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(apimw.CorrelationIDHeader); got != "abc-123" {
		t.Fatalf("expected abc-123, got %q", got)
	}
}

func TestCorrelationID_ReplacesUnusableValue(t *testing.T) {
	h := apimw.CorrelationID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	for _, bad := range []string{"has space", "line\nbreak", strings.Repeat("x", 129)} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(apimw.CorrelationIDHeader, bad)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		got := rec.Header().Get(apimw.CorrelationIDHeader)
		if got == bad || got == "" {
			t.Fatalf("expected %q to be replaced, got %q", bad, got)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := chi.NewRouter()
	r.Use(apimw.CorrelationID)
	r.Use(apimw.RequestLogger(zap.New(core)))
	r.Get("/ready/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	req := httptest.NewRequest(http.MethodGet, "/ready/", nil)
	req.Header.Set(apimw.CorrelationIDHeader, "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusServiceUnavailable) {
		t.Fatalf("expected status 503, got %v", fields["status"])
	}
	if fields["correlation_id"] != "req-1" {
		t.Fatalf("expected correlation_id req-1, got %v", fields["correlation_id"])
	}
}

func TestInstrument_UsesRoutePattern(t *testing.T) {
	obs := &recordingObserver{}

	r := chi.NewRouter()
	r.Use(apimw.Instrument(obs))
	r.Get("/stations/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stations/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stations/43", nil))

	want := observation{route: "/stations/{id}", method: http.MethodGet, code: http.StatusOK}
	if len(obs.seen) != 2 || obs.seen[0] != want || obs.seen[1] != want {
		t.Fatalf("expected two observations of %+v, got %+v", want, obs.seen)
	}
}

func TestTracing_PassesThrough(t *testing.T) {
	r := chi.NewRouter()
	r.Use(apimw.Tracing)
	r.Get("/ready/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	req := httptest.NewRequest(http.MethodGet, "/ready/", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
}
