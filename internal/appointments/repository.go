package appointments

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medconnect/hospital-booking/internal/patients"
)

var errStoreUnavailable = errors.New("appointments: store unavailable")

// Repository defines the interface for appointment storage. List order is
// newest-first by creation time.
type Repository interface {
	Create(ctx context.Context, req *CreateRequest) (*Appointment, error)
	GetDetail(ctx context.Context, id string) (*Detail, error)
	ListForDoctor(ctx context.Context, doctorID string, status Status) ([]*Detail, error)
	Confirm(ctx context.Context, id string, scheduledTime time.Time, joinLink string, confirmedAt time.Time) (*Appointment, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is an in-memory Repository used in tests and local runs.
// It holds copies of the patient and doctor records so GetDetail can join
// without a database.
type InMemoryRepository struct {
	mu           sync.RWMutex
	appointments map[string]*Appointment
	patientsByID map[string]patients.Patient
	doctorsByID  map[string]DoctorInfo

	// FailCreate forces Create to error, simulating a store outage.
	FailCreate bool
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		appointments: make(map[string]*Appointment),
		patientsByID: make(map[string]patients.Patient),
		doctorsByID:  make(map[string]DoctorInfo),
	}
}

// AddPatient registers a patient record for joins in GetDetail.
func (r *InMemoryRepository) AddPatient(p patients.Patient) {
	r.mu.Lock()
	r.patientsByID[p.ID] = p
	r.mu.Unlock()
}

// AddDoctor registers a doctor record for joins in GetDetail.
func (r *InMemoryRepository) AddDoctor(d DoctorInfo) {
	r.mu.Lock()
	r.doctorsByID[d.ID] = d
	r.mu.Unlock()
}

// Create stores a new pending appointment.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateRequest) (*Appointment, error) {
	if r.FailCreate {
		return nil, errStoreUnavailable
	}
	a := &Appointment{
		ID:                 uuid.New().String(),
		DoctorID:           req.DoctorID,
		PatientID:          req.PatientID,
		WrittenDescription: req.WrittenDescription,
		AudioFileURL:       req.AudioFileURL,
		Status:             StatusPending,
		CreatedAt:          time.Now().UTC(),
	}
	r.mu.Lock()
	r.appointments[a.ID] = a
	r.mu.Unlock()
	out := *a
	return &out, nil
}

// GetDetail returns one appointment with its patient and doctor attached.
func (r *InMemoryRepository) GetDetail(ctx context.Context, id string) (*Detail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.detailLocked(a), nil
}

// ListForDoctor returns the doctor's appointments newest-first, optionally
// filtered by status.
func (r *InMemoryRepository) ListForDoctor(ctx context.Context, doctorID string, status Status) ([]*Detail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Detail, 0)
	for _, a := range r.appointments {
		if a.DoctorID != doctorID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, r.detailLocked(a))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Confirm transitions an appointment to confirmed, setting the schedule
// time and video link together.
func (r *InMemoryRepository) Confirm(ctx context.Context, id string, scheduledTime time.Time, joinLink string, confirmedAt time.Time) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Status = StatusConfirmed
	a.ScheduledTime = &scheduledTime
	a.VideoJoinLink = &joinLink
	a.ConfirmedAt = &confirmedAt
	out := *a
	return &out, nil
}

// Delete removes an appointment outright.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *InMemoryRepository) detailLocked(a *Appointment) *Detail {
	cp := *a
	return &Detail{
		Appointment: cp,
		Patient:     r.patientsByID[a.PatientID],
		Doctor:      r.doctorsByID[a.DoctorID],
	}
}
