package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appconfig "github.com/tayloredroots/salon-api/internal/config"
	"github.com/tayloredroots/salon-api/pkg/logging"
)

func TestSetupMetricsExposesSalonCounters(t *testing.T) {
	handler, m := setupMetrics()
	if handler == nil || m == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	m.ObserveBookingCreated("PENDING")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "salon_bookings_created_total") {
		t.Fatalf("expected bookings counter to be exported")
	}
}

func TestConnectPostgresPoolEmptyURLReturnsNil(t *testing.T) {
	logger := logging.New("error")
	if pool := connectPostgresPool(context.Background(), "", logger); pool != nil {
		t.Fatalf("expected nil pool for empty URL")
	}
}

func TestSetupRedisDisabled(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{}
	if client := setupRedis(cfg, logger); client != nil {
		t.Fatalf("expected nil client without REDIS_ADDR")
	}
}

func TestSetupTryOnDisabledWithoutKey(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{}
	if h := setupTryOn(context.Background(), cfg, nil, logger); h != nil {
		t.Fatalf("expected nil handler without GOOGLE_API_KEY")
	}
}

func TestSetupNotifierFallsBackToStub(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{OwnerEmail: "owner@salon.test"}
	if svc := setupNotifier(context.Background(), cfg, logger); svc == nil {
		t.Fatalf("expected notifier service with stub sender")
	}
}

func TestSalonLocationFallback(t *testing.T) {
	logger := logging.New("error")
	if loc := salonLocation("Not/AZone", logger); loc.String() != "UTC" {
		t.Fatalf("expected UTC fallback, got %s", loc)
	}
	if loc := salonLocation("America/Chicago", logger); loc.String() != "America/Chicago" {
		t.Fatalf("expected America/Chicago, got %s", loc)
	}
}

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins(" https://tayloredroots.com , https://www.tayloredroots.com ,")
	if len(got) != 2 || got[0] != "https://tayloredroots.com" {
		t.Fatalf("unexpected origins: %v", got)
	}
	if splitOrigins("  ") != nil {
		t.Fatal("blank input must yield nil")
	}
}
