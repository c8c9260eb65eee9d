package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voltroute/backend/internal/api/handler"
	"github.com/voltroute/backend/internal/readiness"
)

func serveReady(t *testing.T, checks ...readiness.Check) (*httptest.ResponseRecorder, readiness.Report) {
	t.Helper()
	c := readiness.NewChecker(checks, time.Second, nil, readiness.Hooks{})
	rec := httptest.NewRecorder()
	handler.NewReadyHandler(c).Ready(rec, httptest.NewRequest(http.MethodGet, "/ready/", nil))

	var report readiness.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("body is not a report: %v", err)
	}
	return rec, report
}

func TestReady_AllPassing(t *testing.T) {
	rec, report := serveReady(t, readiness.NewCheck("postgres", func(context.Context) error { return nil }))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if report.Status != "ok" || len(report.Checks) != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestReady_NoChecks(t *testing.T) {
	rec, report := serveReady(t)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if report.Checks == nil {
		t.Fatal(`expected "checks" to be an empty list, not null`)
	}
}

func TestReady_Failing(t *testing.T) {
	rec, report := serveReady(t,
		readiness.NewCheck("postgres", func(context.Context) error { return errors.New("connection refused") }),
	)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	if report.Status != readiness.StatusUnavailable {
		t.Fatalf("expected status unavailable, got %q", report.Status)
	}
	if report.Checks[0].Error != "connection refused" {
		t.Fatalf("expected check error to be reported, got %+v", report.Checks[0])
	}
}
