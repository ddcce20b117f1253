package video

import (
	"context"

	"github.com/medconnect/hospital-booking/pkg/logging"
)

// Request identifies the consultation a session is provisioned for.
type Request struct {
	AppointmentID string
	DoctorName    string
	PatientName   string
}

// Provider creates a video session for an appointment and returns the
// join URL both parties use.
type Provider interface {
	Provision(ctx context.Context, req Request) (string, error)
}

// StaticProvider always returns one configured meeting link. It is the
// fallback when no video API is configured or the API call fails.
type StaticProvider struct {
	link string
}

// NewStaticProvider creates a provider around a fixed link.
func NewStaticProvider(link string) *StaticProvider {
	return &StaticProvider{link: link}
}

// Provision returns the static link.
func (p *StaticProvider) Provision(ctx context.Context, req Request) (string, error) {
	return p.link, nil
}

// FallbackProvider tries a rich provider first and falls back to a static
// link on any error. Provision never fails: confirmation must not abort
// because video provisioning is down.
type FallbackProvider struct {
	primary  Provider
	fallback string
	logger   *logging.Logger
}

// NewFallbackProvider wraps primary (may be nil) with a static fallback link.
func NewFallbackProvider(primary Provider, fallbackLink string, logger *logging.Logger) *FallbackProvider {
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackProvider{primary: primary, fallback: fallbackLink, logger: logger}
}

// Provision returns the primary provider's join URL, or the fallback link.
func (p *FallbackProvider) Provision(ctx context.Context, req Request) (string, error) {
	if p.primary == nil {
		return p.fallback, nil
	}
	url, err := p.primary.Provision(ctx, req)
	if err != nil {
		p.logger.Warn("video provisioning failed, using fallback link",
			"error", err, "appointment_id", req.AppointmentID)
		return p.fallback, nil
	}
	return url, nil
}

var (
	_ Provider = (*StaticProvider)(nil)
	_ Provider = (*FallbackProvider)(nil)
)
