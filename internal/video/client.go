package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/medconnect/hospital-booking/pkg/logging"
)

const defaultTimeout = 20 * time.Second

// APIClient provisions calls through a hosted video-conferencing REST API.
// The doctor joins as host and the patient as guest; the call id is derived
// from the appointment so repeated confirmations reuse the same room.
type APIClient struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	publicURL  string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientConfig holds video API settings.
type ClientConfig struct {
	BaseURL   string
	APIKey    string
	APISecret string
	// PublicURL is the frontend base used to build patient-facing join
	// links when the API returns only a call id.
	PublicURL string
}

// NewAPIClient creates a video API client, or nil when unconfigured.
func NewAPIClient(cfg ClientConfig, logger *logging.Logger) *APIClient {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &APIClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		publicURL:  cfg.PublicURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

type createCallRequest struct {
	ID      string       `json:"id"`
	Type    string       `json:"type"`
	Members []callMember `json:"members"`
}

type callMember struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type createCallResponse struct {
	ID      string `json:"id"`
	JoinURL string `json:"join_url"`
}

// Provision creates (or reuses) the call for an appointment and returns
// its join URL.
func (c *APIClient) Provision(ctx context.Context, req Request) (string, error) {
	callID := fmt.Sprintf("appointment-%s", req.AppointmentID)
	payload := createCallRequest{
		ID:   callID,
		Type: "default",
		Members: []callMember{
			{UserID: "doctor-" + req.AppointmentID, Name: req.DoctorName, Role: "host"},
			{UserID: "patient-" + req.AppointmentID, Name: req.PatientName, Role: "guest"},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("video: marshal call request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/calls", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("video: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.apiSecret != "" {
		httpReq.Header.Set("X-Api-Secret", c.apiSecret)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("video: create call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("video: create call status %d: %s", resp.StatusCode, raw)
	}

	var out createCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("video: decode call response: %w", err)
	}

	joinURL := out.JoinURL
	if joinURL == "" {
		joinURL = fmt.Sprintf("%s/video-call/%s", c.publicURL, callID)
	}

	c.logger.Info("video call provisioned", "call_id", callID, "join_url", joinURL)
	return joinURL, nil
}

var _ Provider = (*APIClient)(nil)
