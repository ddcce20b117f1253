package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool used here, satisfied by pgxmock.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores appointments in Postgres.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const appointmentColumns = `a.id, a.doctor_id, a.patient_id, a.written_description, a.audio_file_url,
	a.status, a.scheduled_time, a.video_join_link, a.created_at, a.confirmed_at`

const detailColumns = appointmentColumns + `,
	p.id, p.name, p.email, p.phone, p.age, p.sex, p.created_at,
	d.id, d.name, d.specialty`

const detailJoin = `
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN doctors d ON d.id = a.doctor_id`

// Create inserts a new pending appointment row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateRequest) (*Appointment, error) {
	id := uuid.New()
	query := `
		INSERT INTO appointments (id, doctor_id, patient_id, written_description, audio_file_url, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.DoctorID,
		req.PatientID,
		req.WrittenDescription,
		req.AudioFileURL,
		StatusPending,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}

	return &Appointment{
		ID:                 id.String(),
		DoctorID:           req.DoctorID,
		PatientID:          req.PatientID,
		WrittenDescription: req.WrittenDescription,
		AudioFileURL:       req.AudioFileURL,
		Status:             StatusPending,
		CreatedAt:          createdAt,
	}, nil
}

// GetDetail fetches one appointment joined with its patient and doctor.
func (r *PostgresRepository) GetDetail(ctx context.Context, id string) (*Detail, error) {
	query := `SELECT ` + detailColumns + detailJoin + ` WHERE a.id = $1`
	d, err := scanDetail(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	return d, nil
}

// ListForDoctor returns the doctor's appointments newest-first, optionally
// filtered by status.
func (r *PostgresRepository) ListForDoctor(ctx context.Context, doctorID string, status Status) ([]*Detail, error) {
	query := `SELECT ` + detailColumns + detailJoin + ` WHERE a.doctor_id = $1`
	args := []any{doctorID}
	if status != "" {
		query += ` AND a.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY a.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: list failed: %w", err)
	}
	defer rows.Close()

	out := make([]*Detail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan failed: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: list rows: %w", err)
	}
	return out, nil
}

// Confirm sets status, schedule time, video link and confirmation time in
// one update so a reader never sees a half-confirmed row.
func (r *PostgresRepository) Confirm(ctx context.Context, id string, scheduledTime time.Time, joinLink string, confirmedAt time.Time) (*Appointment, error) {
	query := `
		UPDATE appointments
		SET status = $2, scheduled_time = $3, video_join_link = $4, confirmed_at = $5
		WHERE id = $1
		RETURNING id, doctor_id, patient_id, written_description, audio_file_url,
			status, scheduled_time, video_join_link, created_at, confirmed_at
	`
	var a Appointment
	if err := r.pool.QueryRow(ctx, query, id, StatusConfirmed, scheduledTime, joinLink, confirmedAt).Scan(
		&a.ID,
		&a.DoctorID,
		&a.PatientID,
		&a.WrittenDescription,
		&a.AudioFileURL,
		&a.Status,
		&a.ScheduledTime,
		&a.VideoJoinLink,
		&a.CreatedAt,
		&a.ConfirmedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: confirm failed: %w", err)
	}
	return &a, nil
}

// Delete removes an appointment row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("appointments: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDetail(row pgx.Row) (*Detail, error) {
	var d Detail
	if err := row.Scan(
		&d.ID,
		&d.DoctorID,
		&d.PatientID,
		&d.WrittenDescription,
		&d.AudioFileURL,
		&d.Status,
		&d.ScheduledTime,
		&d.VideoJoinLink,
		&d.CreatedAt,
		&d.ConfirmedAt,
		&d.Patient.ID,
		&d.Patient.Name,
		&d.Patient.Email,
		&d.Patient.Phone,
		&d.Patient.Age,
		&d.Patient.Sex,
		&d.Patient.CreatedAt,
		&d.Doctor.ID,
		&d.Doctor.Name,
		&d.Doctor.Specialty,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
