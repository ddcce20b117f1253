package router

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/medconnect/hospital-booking/internal/appointments"
	"github.com/medconnect/hospital-booking/internal/doctors"
	"github.com/medconnect/hospital-booking/internal/patients"
	"github.com/medconnect/hospital-booking/pkg/logging"
)

const testSecret = "router-test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.NewWithWriter(io.Discard, "error")

	hash, err := doctors.HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	doctorRepo := doctors.NewInMemoryRepository()
	doctorRepo.Add(&doctors.Doctor{
		ID:           "doc-1",
		Name:         "Dr. Grace Uwase",
		Specialty:    "Cardiology",
		Email:        "grace@example.com",
		PasswordHash: hash,
	})
	auth := doctors.NewAuthenticator(doctorRepo, testSecret, 0, logger)
	doctorsHandler := doctors.NewHandler(doctorRepo, auth, logger)

	apptRepo := appointments.NewInMemoryRepository()
	apptRepo.AddDoctor(appointments.DoctorInfo{ID: "doc-1", Name: "Dr. Grace Uwase", Specialty: "Cardiology"})
	service := appointments.NewService(
		doctorRepo,
		patients.NewInMemoryRepository(),
		apptRepo,
		nil,
		nil,
		nil,
		"https://meet.google.com/kpe-qfki-pdb",
		nil,
		logger,
	)
	appointmentsHandler := appointments.NewHandler(service, logger)

	return New(&Config{
		Logger:              logger,
		DoctorsHandler:      doctorsHandler,
		AppointmentsHandler: appointmentsHandler,
		JWTSecret:           testSecret,
		CORSAllowedOrigins:  []string{"*"},
	})
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/api/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, rr.Code)
		}
		var resp map[string]any
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode health response: %v", err)
		}
		if resp["status"] != "ok" {
			t.Errorf("expected status 'ok', got %q", resp["status"])
		}
	}
}

func TestRouterPublicDoctorList(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/doctor/doc-1/appointments"},
		{http.MethodPut, "/api/appointments/a1/confirm"},
		{http.MethodDelete, "/api/appointments/a1"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, rr.Code)
		}
	}
}

func TestRouterLoginThenBrowseAppointments(t *testing.T) {
	router := newTestRouter(t)

	// Submit a request through the public endpoint.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("doctorId", "doc-1")
	_ = mw.WriteField("patientData", `{"name":"Jean Bosco","email":"jean@example.rw","phone":"+250788123456","age":34,"sex":"male"}`)
	_ = mw.WriteField("writtenDescription", "persistent fever")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	// Log in to get a token.
	login := strings.NewReader(`{"email":"grace@example.com","password":"hunter2!"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/doctor/login", login)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&loginResp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if loginResp.Token == "" {
		t.Fatal("expected a token")
	}

	// Browse the inbox with the token.
	req = httptest.NewRequest(http.MethodGet, "/api/doctor/doc-1/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var listResp struct {
		Appointments []map[string]any `json:"appointments"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Appointments) != 1 {
		t.Fatalf("expected one appointment, got %d", len(listResp.Appointments))
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	logger := logging.NewWithWriter(io.Discard, "error")
	doctorRepo := doctors.NewInMemoryRepository()
	auth := doctors.NewAuthenticator(doctorRepo, testSecret, 0, logger)
	service := appointments.NewService(
		doctorRepo,
		patients.NewInMemoryRepository(),
		appointments.NewInMemoryRepository(),
		nil, nil, nil, "", nil, logger,
	)
	router := New(&Config{
		Logger:              logger,
		DoctorsHandler:      doctors.NewHandler(doctorRepo, auth, logger),
		AppointmentsHandler: appointments.NewHandler(service, logger),
		JWTSecret:           testSecret,
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
