package video

import (
	"context"
	"errors"
	"testing"
)

type failingProvider struct{}

func (failingProvider) Provision(ctx context.Context, req Request) (string, error) {
	return "", errors.New("provisioning down")
}

type fixedProvider struct{ url string }

func (p fixedProvider) Provision(ctx context.Context, req Request) (string, error) {
	return p.url, nil
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider("https://meet.google.com/abc-defg-hij")
	url, err := p.Provision(context.Background(), Request{AppointmentID: "a1"})
	if err != nil || url != "https://meet.google.com/abc-defg-hij" {
		t.Fatalf("got %q, %v", url, err)
	}
}

func TestFallbackProviderUsesPrimary(t *testing.T) {
	p := NewFallbackProvider(fixedProvider{url: "https://calls.example/room"}, "https://fallback.example", nil)
	url, err := p.Provision(context.Background(), Request{AppointmentID: "a1"})
	if err != nil || url != "https://calls.example/room" {
		t.Fatalf("got %q, %v", url, err)
	}
}

func TestFallbackProviderOnError(t *testing.T) {
	p := NewFallbackProvider(failingProvider{}, "https://fallback.example", nil)
	url, err := p.Provision(context.Background(), Request{AppointmentID: "a1"})
	if err != nil {
		t.Fatalf("fallback provider must never fail, got %v", err)
	}
	if url != "https://fallback.example" {
		t.Errorf("expected fallback link, got %s", url)
	}
}

func TestFallbackProviderNilPrimary(t *testing.T) {
	p := NewFallbackProvider(nil, "https://fallback.example", nil)
	url, err := p.Provision(context.Background(), Request{AppointmentID: "a1"})
	if err != nil || url != "https://fallback.example" {
		t.Fatalf("got %q, %v", url, err)
	}
}
