package notify

import (
	"context"
	"testing"
)

func TestNewSendGridSenderNilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "test@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when API key is empty")
	}
}

func TestNewSendGridSenderDefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "test@example.com",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != "Rwanda Medical Connect" {
		t.Errorf("expected default from name, got %q", sender.fromName)
	}
}

func TestSendGridSenderSendNilClient(t *testing.T) {
	sender := &SendGridSender{}

	err := sender.Send(context.Background(), EmailMessage{
		To:      "recipient@example.com",
		Subject: "Test",
		Body:    "Test body",
	})
	if err == nil {
		t.Fatal("expected error with nil client")
	}
}

func TestNewSESSenderNilWithoutClient(t *testing.T) {
	if sender := NewSESSender(nil, SESConfig{FromEmail: "x@y.z"}, nil); sender != nil {
		t.Error("expected nil sender without SES client")
	}
}

func TestStubEmailSenderAlwaysSucceeds(t *testing.T) {
	sender := NewStubEmailSender(nil)
	if err := sender.Send(context.Background(), EmailMessage{To: "a@b.c"}); err != nil {
		t.Fatalf("stub send: %v", err)
	}
}
