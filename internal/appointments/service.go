package appointments

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/medconnect/hospital-booking/internal/doctors"
	"github.com/medconnect/hospital-booking/internal/observability/metrics"
	"github.com/medconnect/hospital-booking/internal/patients"
	"github.com/medconnect/hospital-booking/internal/video"
	"github.com/medconnect/hospital-booking/pkg/logging"
)

var bookingTracer = otel.Tracer("hospital.internal.appointments")

// emailPattern mirrors the dashboard-side check: something@something.tld,
// no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AudioUploader stores symptom recordings. *audio.Store satisfies it.
type AudioUploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// Notifier sends the patient-facing emails. *notify.Service satisfies it.
type Notifier interface {
	SendRequestReceived(ctx context.Context, to, patientName, appointmentID string) error
	SendAppointmentConfirmed(ctx context.Context, to, patientName, doctorName string, scheduledTime time.Time, joinLink string) error
	SendAppointmentDeclined(ctx context.Context, to, patientName, doctorName string) error
}

// DoctorDirectory resolves doctor ids. doctors.Repository satisfies it.
type DoctorDirectory interface {
	GetByID(ctx context.Context, id string) (*doctors.Doctor, error)
}

// Service runs the appointment lifecycle: submission, confirmation and
// rejection. Patient and appointment writes are fatal; audio upload, video
// provisioning and email delivery are soft dependencies whose failures are
// absorbed and reported through result flags.
type Service struct {
	doctors      DoctorDirectory
	patients     patients.Repository
	appointments Repository
	audio        AudioUploader
	notifier     Notifier
	video        video.Provider
	fallbackLink string
	metrics      *metrics.BookingMetrics
	logger       *logging.Logger
	now          func() time.Time
}

// NewService wires the lifecycle manager. audio, notifier, videoProvider and
// bookingMetrics may be nil; fallbackLink is used when video provisioning is
// unavailable so a confirmed appointment always carries a join link.
func NewService(
	doctorDir DoctorDirectory,
	patientRepo patients.Repository,
	appointmentRepo Repository,
	audio AudioUploader,
	notifier Notifier,
	videoProvider video.Provider,
	fallbackLink string,
	bookingMetrics *metrics.BookingMetrics,
	logger *logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		doctors:      doctorDir,
		patients:     patientRepo,
		appointments: appointmentRepo,
		audio:        audio,
		notifier:     notifier,
		video:        videoProvider,
		fallbackLink: fallbackLink,
		metrics:      bookingMetrics,
		logger:       logger,
		now:          time.Now,
	}
}

// SubmitRequest carries a patient's appointment request.
type SubmitRequest struct {
	DoctorID           string
	Patient            patients.CreatePatientRequest
	WrittenDescription string
	Audio              []byte
	AudioContentType   string
}

// SubmitResult reports the stored appointment and which soft dependencies
// degraded during submission.
type SubmitResult struct {
	AppointmentID string
	AudioStored   bool
	EmailSent     bool
}

// Submit validates the request, stores the patient and a pending
// appointment, and best-effort uploads the audio and emails the patient.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResult, error) {
	ctx, span := bookingTracer.Start(ctx, "appointments.submit")
	defer span.End()
	start := s.now()

	if err := s.validateSubmit(ctx, req); err != nil {
		s.metrics.ObserveSubmission("validation_error")
		span.RecordError(err)
		return nil, err
	}

	patient, err := s.patients.Create(ctx, &req.Patient)
	if err != nil {
		s.metrics.ObserveSubmission("error")
		span.RecordError(err)
		return nil, fmt.Errorf("appointments: create patient: %w", err)
	}
	span.SetAttributes(attribute.String("patient.id", patient.ID))

	// Audio storage is best-effort: a dead object store must not lose the
	// appointment request.
	var audioURL *string
	audioStored := false
	if len(req.Audio) > 0 && s.audio != nil {
		url, err := s.audio.Upload(ctx, req.Audio, req.AudioContentType)
		if err != nil {
			s.metrics.ObserveSoftFailure("audio_store")
			s.logger.Warn("audio upload failed, continuing without recording",
				"patient_id", patient.ID, "error", err)
		} else {
			audioURL = &url
			audioStored = true
		}
	}

	appt, err := s.appointments.Create(ctx, &CreateRequest{
		DoctorID:           req.DoctorID,
		PatientID:          patient.ID,
		WrittenDescription: strings.TrimSpace(req.WrittenDescription),
		AudioFileURL:       audioURL,
	})
	if err != nil {
		s.metrics.ObserveSubmission("error")
		span.RecordError(err)
		return nil, fmt.Errorf("appointments: create appointment: %w", err)
	}
	span.SetAttributes(attribute.String("appointment.id", appt.ID))

	emailSent := false
	if s.notifier != nil {
		if err := s.notifier.SendRequestReceived(ctx, patient.Email, patient.Name, appt.ID); err != nil {
			s.metrics.ObserveSoftFailure("email")
			s.metrics.ObserveEmail("request_received", "failed")
			s.logger.Warn("request-received email failed",
				"appointment_id", appt.ID, "error", err)
		} else {
			s.metrics.ObserveEmail("request_received", "sent")
			emailSent = true
		}
	}

	s.metrics.ObserveSubmission("success")
	s.metrics.ObserveSubmitLatency(s.now().Sub(start).Seconds())
	s.logger.Info("appointment request submitted",
		"appointment_id", appt.ID,
		"doctor_id", req.DoctorID,
		"audio_stored", audioStored,
		"email_sent", emailSent,
	)
	return &SubmitResult{
		AppointmentID: appt.ID,
		AudioStored:   audioStored,
		EmailSent:     emailSent,
	}, nil
}

func (s *Service) validateSubmit(ctx context.Context, req *SubmitRequest) error {
	if strings.TrimSpace(req.DoctorID) == "" {
		return validationErrorf("doctor selection is required")
	}
	p := &req.Patient
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Sex = strings.TrimSpace(p.Sex)
	if p.Name == "" || p.Email == "" || p.Phone == "" || p.Sex == "" {
		return validationErrorf("missing required patient information")
	}
	if !emailPattern.MatchString(p.Email) {
		return validationErrorf("invalid email format")
	}
	if p.Age < 1 || p.Age > 150 {
		return validationErrorf("age must be between 1 and 150")
	}
	if strings.TrimSpace(req.WrittenDescription) == "" && len(req.Audio) == 0 {
		return validationErrorf("please provide either a written description or audio recording of your symptoms")
	}
	if _, err := s.doctors.GetByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctors.ErrDoctorNotFound) {
			return validationErrorf("selected doctor does not exist")
		}
		return fmt.Errorf("appointments: doctor lookup: %w", err)
	}
	return nil
}

// ListForDoctor returns a doctor's appointments newest-first. status filters
// when non-empty and must be a storable status.
func (s *Service) ListForDoctor(ctx context.Context, doctorID string, status Status) ([]*Detail, error) {
	if status != "" && !status.Valid() {
		return nil, validationErrorf("status must be pending or confirmed")
	}
	return s.appointments.ListForDoctor(ctx, doctorID, status)
}

// ConfirmResult reports the confirmed appointment and whether the
// confirmation email went out.
type ConfirmResult struct {
	Appointment *Detail
	EmailSent   bool
}

// Confirm schedules a pending appointment: parses the requested time,
// provisions a video room (falling back to the static link), commits the
// confirmation and best-effort emails the patient.
func (s *Service) Confirm(ctx context.Context, id, scheduledTime string) (*ConfirmResult, error) {
	ctx, span := bookingTracer.Start(ctx, "appointments.confirm")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", id))

	when, err := ParseScheduledTime(scheduledTime)
	if err != nil {
		s.metrics.ObserveConfirmation("validation_error")
		span.RecordError(err)
		return nil, err
	}

	detail, err := s.appointments.GetDetail(ctx, id)
	if err != nil {
		s.metrics.ObserveConfirmation("not_found")
		span.RecordError(err)
		return nil, err
	}

	joinLink := s.provisionVideo(ctx, detail)

	confirmedAt := s.now().UTC()
	updated, err := s.appointments.Confirm(ctx, id, when, joinLink, confirmedAt)
	if err != nil {
		s.metrics.ObserveConfirmation("error")
		span.RecordError(err)
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("appointments: confirm: %w", err)
	}
	detail.Appointment = *updated

	emailSent := false
	if s.notifier != nil {
		if err := s.notifier.SendAppointmentConfirmed(ctx, detail.Patient.Email, detail.Patient.Name, detail.Doctor.Name, when, joinLink); err != nil {
			s.metrics.ObserveSoftFailure("email")
			s.metrics.ObserveEmail("confirmed", "failed")
			s.logger.Warn("confirmation email failed",
				"appointment_id", id, "error", err)
		} else {
			s.metrics.ObserveEmail("confirmed", "sent")
			emailSent = true
		}
	}

	s.metrics.ObserveConfirmation("success")
	s.logger.Info("appointment confirmed",
		"appointment_id", id,
		"scheduled_time", when,
		"email_sent", emailSent,
	)
	return &ConfirmResult{Appointment: detail, EmailSent: emailSent}, nil
}

// provisionVideo asks the provider for a room and never fails: any error
// degrades to the static fallback link so confirmation proceeds.
func (s *Service) provisionVideo(ctx context.Context, detail *Detail) string {
	if s.video == nil {
		return s.fallbackLink
	}
	link, err := s.video.Provision(ctx, video.Request{
		AppointmentID: detail.ID,
		DoctorName:    detail.Doctor.Name,
		PatientName:   detail.Patient.Name,
	})
	if err != nil {
		s.metrics.ObserveSoftFailure("video")
		s.logger.Warn("video provisioning failed, using fallback link",
			"appointment_id", detail.ID, "error", err)
		return s.fallbackLink
	}
	return link
}

// Reject deletes a pending request and best-effort tells the patient.
func (s *Service) Reject(ctx context.Context, id string) error {
	ctx, span := bookingTracer.Start(ctx, "appointments.reject")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", id))

	detail, err := s.appointments.GetDetail(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("appointments: reject: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendAppointmentDeclined(ctx, detail.Patient.Email, detail.Patient.Name, detail.Doctor.Name); err != nil {
			s.metrics.ObserveSoftFailure("email")
			s.metrics.ObserveEmail("declined", "failed")
			s.logger.Warn("declined email failed",
				"appointment_id", id, "error", err)
		} else {
			s.metrics.ObserveEmail("declined", "sent")
		}
	}

	s.metrics.ObserveRejection()
	s.logger.Info("appointment rejected", "appointment_id", id)
	return nil
}
