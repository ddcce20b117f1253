package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appconfig "github.com/medconnect/hospital-booking/internal/config"
	"github.com/medconnect/hospital-booking/internal/video"
	"github.com/medconnect/hospital-booking/pkg/logging"
)

func TestSetupBookingMetricsExposesMetrics(t *testing.T) {
	m, handler := setupBookingMetrics()
	if handler == nil || m == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	m.ObserveSubmission("success")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "hospital_appointments_submissions_total") {
		t.Fatalf("expected submissions counter to be exported")
	}
}

func TestConnectPostgresPoolEmptyURLReturnsNil(t *testing.T) {
	logger := logging.New("error")
	if pool := connectPostgresPool(context.Background(), "", logger); pool != nil {
		t.Fatalf("expected nil pool for empty URL")
	}
}

func TestSetupEmailSenderStubFallback(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{EmailProvider: "auto"}

	sender := setupEmailSender(cfg, nil, logger)
	if sender == nil {
		t.Fatal("expected stub sender, got nil")
	}
}

func TestSetupEmailSenderSendGrid(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{
		EmailProvider:    "sendgrid",
		SendGridAPIKey:   "SG.test-key",
		EmailFromAddress: "noreply@example.rw",
	}

	sender := setupEmailSender(cfg, nil, logger)
	if sender == nil {
		t.Fatal("expected sendgrid sender")
	}
}

func TestSetupVideoProviderFallsBackToStaticLink(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{FallbackMeetLink: "https://meet.google.com/kpe-qfki-pdb"}

	provider := setupVideoProvider(cfg, logger)
	if provider == nil {
		t.Fatal("expected a provider even without API config")
	}
	link, err := provider.Provision(context.Background(), video.Request{AppointmentID: "a1"})
	if err != nil {
		t.Fatalf("static provider must not fail: %v", err)
	}
	if link != cfg.FallbackMeetLink {
		t.Fatalf("expected fallback link, got %s", link)
	}
}
