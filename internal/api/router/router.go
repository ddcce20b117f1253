package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medconnect/hospital-booking/internal/appointments"
	"github.com/medconnect/hospital-booking/internal/doctors"
	httpmiddleware "github.com/medconnect/hospital-booking/internal/http/middleware"
	"github.com/medconnect/hospital-booking/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	DoctorsHandler      *doctors.Handler
	AppointmentsHandler *appointments.Handler
	MetricsHandler      http.Handler
	JWTSecret           string
	CORSAllowedOrigins  []string
	RateLimitPerSecond  float64
	RateLimitBurst      int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		public.Get("/api/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		public.Get("/api/doctors", cfg.DoctorsHandler.ListDoctors)
		public.Post("/api/doctor/login", cfg.DoctorsHandler.Login)
		public.Post("/api/appointments", cfg.AppointmentsHandler.Submit)
	})

	// Doctor endpoints (protected by the login-issued JWT)
	r.Group(func(doctor chi.Router) {
		doctor.Use(httpmiddleware.DoctorJWT(cfg.JWTSecret))
		doctor.Get("/api/doctor/{doctorID}/appointments", cfg.AppointmentsHandler.ListForDoctor)
		doctor.Put("/api/appointments/{id}/confirm", cfg.AppointmentsHandler.Confirm)
		doctor.Delete("/api/appointments/{id}", cfg.AppointmentsHandler.Reject)
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"status":  "ok",
		"service": "hospital-booking-api",
	})
}
