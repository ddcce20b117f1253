package patients

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrPatientNotFound is returned when a patient id does not exist.
var ErrPatientNotFound = errors.New("patient not found")

// Repository defines the interface for patient storage.
type Repository interface {
	Create(ctx context.Context, req *CreatePatientRequest) (*Patient, error)
	GetByID(ctx context.Context, id string) (*Patient, error)
}

// PgxPool is the subset of pgxpool.Pool used here, satisfied by pgxmock.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores patients in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("patients: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new patient row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreatePatientRequest) (*Patient, error) {
	id := uuid.New()
	query := `
		INSERT INTO patients (id, name, email, phone, age, sex)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Phone,
		req.Age,
		req.Sex,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("patients: insert failed: %w", err)
	}

	return &Patient{
		ID:        id.String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Age:       req.Age,
		Sex:       req.Sex,
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches a patient row.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Patient, error) {
	query := `
		SELECT id, name, email, phone, age, sex, created_at
		FROM patients
		WHERE id = $1
	`
	var p Patient
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Age,
		&p.Sex,
		&p.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("patients: select failed: %w", err)
	}
	return &p, nil
}

// InMemoryRepository is an in-memory Repository used in tests and local runs.
type InMemoryRepository struct {
	mu       sync.RWMutex
	patients map[string]*Patient

	// FailCreate forces Create to error, simulating a store outage.
	FailCreate bool
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{patients: make(map[string]*Patient)}
}

// Create stores a new patient in memory.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreatePatientRequest) (*Patient, error) {
	if r.FailCreate {
		return nil, errors.New("patients: store unavailable")
	}
	p := &Patient{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Age:       req.Age,
		Sex:       req.Sex,
		CreatedAt: time.Now().UTC(),
	}
	r.mu.Lock()
	r.patients[p.ID] = p
	r.mu.Unlock()
	return p, nil
}

// GetByID retrieves a patient by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return p, nil
}
