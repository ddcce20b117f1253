package doctors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/medconnect/hospital-booking/pkg/logging"
)

// Handler exposes the doctor directory and login over HTTP.
type Handler struct {
	repo   Repository
	auth   *Authenticator
	logger *logging.Logger
}

// NewHandler creates a doctors handler.
func NewHandler(repo Repository, auth *Authenticator, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, auth: auth, logger: logger}
}

// ListDoctors handles GET /api/doctors.
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list doctors", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch doctors")
		return
	}

	listings := make([]Listing, 0, len(all))
	for _, d := range all {
		listings = append(listings, d.Listing())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"doctors": listings,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/doctor/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	doctor, token, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"doctor":  doctor.Summary(),
		"token":   token,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
