package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type recordingSender struct {
	sent []EmailMessage
	err  error
}

func (r *recordingSender) Send(ctx context.Context, msg EmailMessage) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestSendRequestReceived(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, nil)

	err := svc.SendRequestReceived(context.Background(), "jean@example.com", "Jean Bosco", "appt-123")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To != "jean@example.com" {
		t.Errorf("unexpected recipient: %s", msg.To)
	}
	if !strings.Contains(msg.Subject, "Request Received") {
		t.Errorf("unexpected subject: %s", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "appt-123") || !strings.Contains(msg.Body, "appt-123") {
		t.Error("expected appointment reference in both bodies")
	}
}

func TestSendAppointmentConfirmed(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, nil)

	when := time.Date(2024, 12, 25, 14, 30, 0, 0, time.UTC)
	err := svc.SendAppointmentConfirmed(context.Background(),
		"jean@example.com", "Jean Bosco", "Dr. Grace Uwase", when, "https://example.com/call/abc")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	msg := sender.sent[0]
	if !strings.Contains(msg.HTML, "Dr. Grace Uwase") {
		t.Error("expected doctor name in HTML body")
	}
	if !strings.Contains(msg.HTML, "https://example.com/call/abc") {
		t.Error("expected join link in HTML body")
	}
	if !strings.Contains(msg.Body, "December 25, 2024") {
		t.Errorf("expected formatted schedule in body, got %q", msg.Body)
	}
}

func TestSendAppointmentDeclined(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, nil)

	err := svc.SendAppointmentDeclined(context.Background(), "jean@example.com", "Jean Bosco", "Dr. Grace Uwase")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(sender.sent[0].Subject, "Update") {
		t.Errorf("unexpected subject: %s", sender.sent[0].Subject)
	}
}

func TestSendWrapsTransportError(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewService(sender, nil)

	err := svc.SendRequestReceived(context.Background(), "jean@example.com", "Jean", "appt-1")
	if err == nil || !strings.Contains(err.Error(), "request-received") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewServiceDefaultsToStub(t *testing.T) {
	svc := NewService(nil, nil)
	if err := svc.SendRequestReceived(context.Background(), "a@b.c", "A", "id"); err != nil {
		t.Fatalf("stub sender should not fail: %v", err)
	}
}
