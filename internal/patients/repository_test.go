package patients

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
)

func TestPostgresCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := &PostgresRepository{pool: mock}

	created := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO patients").
		WithArgs(pgxmock.AnyArg(), "Jean Bosco", "jean@example.com", "+250788123456", 34, "male").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	p, err := repo.Create(context.Background(), &CreatePatientRequest{
		Name:  "Jean Bosco",
		Email: "jean@example.com",
		Phone: "+250788123456",
		Age:   34,
		Sex:   "male",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || !p.CreatedAt.Equal(created) {
		t.Errorf("unexpected patient: %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()
	repo := &PostgresRepository{pool: mock}

	mock.ExpectQuery("SELECT .* FROM patients").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "phone", "age", "sex", "created_at"}))

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrPatientNotFound {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}
