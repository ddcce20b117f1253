package doctors

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool used here, satisfied by pgxmock.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores the doctor directory in Postgres.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("doctors: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const doctorColumns = `id, name, specialty, availability, phone, email, password_hash, created_at`

// List returns the full directory ordered by name. No pagination: the
// patient-facing page always renders the whole set.
func (r *PostgresRepository) List(ctx context.Context) ([]*Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("doctors: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctors: list rows: %w", err)
	}
	return out, nil
}

// GetByID fetches one doctor by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`
	d, err := scanDoctor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("doctors: select by id failed: %w", err)
	}
	return d, nil
}

// GetByEmail fetches one doctor by login email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE lower(email) = lower($1)`
	d, err := scanDoctor(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("doctors: select by email failed: %w", err)
	}
	return d, nil
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Specialty,
		&d.Availability,
		&d.Phone,
		&d.Email,
		&d.PasswordHash,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
