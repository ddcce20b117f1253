package appointments

import (
	"time"

	"github.com/medconnect/hospital-booking/internal/patients"
)

// Status is the lifecycle state of an appointment. Rejected requests are
// deleted outright, so only two states are ever stored.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Valid reports whether s is a storable status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Appointment links one patient to one doctor with a status lifecycle.
// ScheduledTime and VideoJoinLink are nil until confirmation and are set
// together in a single update.
type Appointment struct {
	ID                 string     `json:"id"`
	DoctorID           string     `json:"doctor_id"`
	PatientID          string     `json:"patient_id"`
	WrittenDescription string     `json:"written_description"`
	AudioFileURL       *string    `json:"audio_file_url"`
	Status             Status     `json:"status"`
	ScheduledTime      *time.Time `json:"scheduled_time"`
	VideoJoinLink      *string    `json:"video_join_link"`
	CreatedAt          time.Time  `json:"created_at"`
	ConfirmedAt        *time.Time `json:"confirmed_at"`
}

// DoctorInfo is the doctor shape embedded in appointment views.
type DoctorInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// Detail is an appointment with its patient and doctor loaded, the shape
// the doctor dashboard and the notification flow both need.
type Detail struct {
	Appointment
	Patient patients.Patient `json:"patient"`
	Doctor  DoctorInfo       `json:"doctor"`
}

// CreateRequest carries the fields for a new pending appointment row.
type CreateRequest struct {
	DoctorID           string
	PatientID          string
	WrittenDescription string
	AudioFileURL       *string
}
