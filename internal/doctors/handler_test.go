package doctors

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestHandler(t *testing.T) (*Handler, *InMemoryRepository) {
	t.Helper()
	repo := NewInMemoryRepository()
	auth := NewAuthenticator(repo, "test-secret", 24*time.Hour, nil)
	return NewHandler(repo, auth, nil), repo
}

func TestListDoctorsOrderedByName(t *testing.T) {
	handler, repo := newTestHandler(t)
	repo.Add(&Doctor{Name: "Dr. Claire Mukamana", Specialty: "Pediatrics"})
	repo.Add(&Doctor{Name: "Dr. Alain Niyonzima", Specialty: "Dermatology"})

	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	w := httptest.NewRecorder()
	handler.ListDoctors(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Success bool      `json:"success"`
		Doctors []Listing `json:"doctors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || len(resp.Doctors) != 2 {
		t.Fatalf("expected 2 doctors, got %+v", resp)
	}
	if resp.Doctors[0].Name != "Dr. Alain Niyonzima" {
		t.Errorf("expected name-ordered listing, got %s first", resp.Doctors[0].Name)
	}
}

func TestLoginSuccess(t *testing.T) {
	handler, repo := newTestHandler(t)
	doc := seedDoctor(t, repo, "grace@example.com", "password123")

	body, _ := json.Marshal(loginRequest{Email: "grace@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/doctor/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool    `json:"success"`
		Doctor  Summary `json:"doctor"`
		Token   string  `json:"token"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Doctor.ID != doc.ID || resp.Token == "" {
		t.Errorf("unexpected login response: %+v", resp)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	handler, repo := newTestHandler(t)
	seedDoctor(t, repo, "grace@example.com", "password123")

	body, _ := json.Marshal(loginRequest{Email: "grace@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/doctor/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Errorf("expected error envelope, got %s", w.Body.String())
	}
}

func TestLoginMissingFields(t *testing.T) {
	handler, _ := newTestHandler(t)

	body, _ := json.Marshal(loginRequest{Email: "grace@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/doctor/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLoginInvalidJSON(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/doctor/login", strings.NewReader("{"))
	w := httptest.NewRecorder()
	handler.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
