package appointments

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/medconnect/hospital-booking/internal/patients"
	"github.com/medconnect/hospital-booking/pkg/logging"
)

// maxSubmitBytes caps the multipart submission body; audio recordings from
// the browser recorder stay far below this.
const maxSubmitBytes = 25 << 20

// Handler exposes the appointment lifecycle over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates an appointments handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// patientPayload decodes the patientData form field. Age arrives as either
// a JSON number or a string depending on the submitting form.
type patientPayload struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Phone string      `json:"phone"`
	Age   json.Number `json:"age"`
	Sex   string      `json:"sex"`
}

// Submit handles POST /api/appointments. The body is multipart form data
// with doctorId, a patientData JSON field, an optional writtenDescription
// and an optional audioFile part.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBytes)
	if err := r.ParseMultipartForm(maxSubmitBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	rawPatient := r.FormValue("patientData")
	if strings.TrimSpace(rawPatient) == "" {
		writeError(w, http.StatusBadRequest, "patientData is required")
		return
	}
	var payload patientPayload
	if err := json.Unmarshal([]byte(rawPatient), &payload); err != nil {
		writeError(w, http.StatusBadRequest, "patientData must be valid JSON")
		return
	}
	age := 0
	if payload.Age != "" {
		n, err := payload.Age.Int64()
		if err != nil {
			writeError(w, http.StatusBadRequest, "age must be a number")
			return
		}
		age = int(n)
	}

	req := &SubmitRequest{
		DoctorID: r.FormValue("doctorId"),
		Patient: patients.CreatePatientRequest{
			Name:  payload.Name,
			Email: payload.Email,
			Phone: payload.Phone,
			Age:   age,
			Sex:   payload.Sex,
		},
		WrittenDescription: r.FormValue("writtenDescription"),
	}

	if file, header, err := r.FormFile("audioFile"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read audio file")
			return
		}
		req.Audio = data
		req.AudioContentType = header.Header.Get("Content-Type")
	}

	result, err := h.service.Submit(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "appointment submission failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":       true,
		"appointmentId": result.AppointmentID,
		"audioStored":   result.AudioStored,
		"emailSent":     result.EmailSent,
	})
}

// ListForDoctor handles GET /api/doctor/{doctorID}/appointments with an
// optional ?status= filter.
func (h *Handler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")
	status := Status(r.URL.Query().Get("status"))

	details, err := h.service.ListForDoctor(r.Context(), doctorID, status)
	if err != nil {
		h.writeServiceError(w, err, "failed to list appointments")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"appointments": details,
	})
}

type confirmRequest struct {
	ScheduledTime string `json:"scheduledTime"`
}

// Confirm handles PUT /api/appointments/{id}/confirm.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Confirm(r.Context(), id, req.ScheduledTime)
	if err != nil {
		h.writeServiceError(w, err, "appointment confirmation failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"appointment": result.Appointment,
		"emailSent":   result.EmailSent,
	})
}

// Reject handles DELETE /api/appointments/{id}.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Reject(r.Context(), id); err != nil {
		h.writeServiceError(w, err, "appointment rejection failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "appointment rejected",
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "appointment not found")
	default:
		h.logger.Error(logMsg, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
