package doctors

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Repository defines the interface for doctor directory storage.
type Repository interface {
	List(ctx context.Context) ([]*Doctor, error)
	GetByID(ctx context.Context, id string) (*Doctor, error)
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
}

// InMemoryRepository is an in-memory Repository used in tests and local runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	doctors map[string]*Doctor
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{doctors: make(map[string]*Doctor)}
}

// Add inserts a doctor, assigning an id when missing.
func (r *InMemoryRepository) Add(d *Doctor) *Doctor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	r.doctors[d.ID] = d
	return d
}

// List returns all doctors ordered by name.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetByID retrieves a doctor by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	return d, nil
}

// GetByEmail retrieves a doctor by login email (case-insensitive).
func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.doctors {
		if strings.EqualFold(d.Email, email) {
			return d, nil
		}
	}
	return nil, ErrDoctorNotFound
}
