package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestEnsureDefaultAdmin_Inserts(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO admins (email, hashed_password, name) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`)).
		WithArgs("admin@admin.com", sqlmock.AnyArg(), "admin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := EnsureDefaultAdmin(context.Background(), mockDB, "admin@admin.com", "admin", "admin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestEnsureDefaultAdmin_AlreadyBootstrapped(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer mockDB.Close()

	// ON CONFLICT DO NOTHING makes a duplicate a zero-row success.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO admins`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := EnsureDefaultAdmin(context.Background(), mockDB, "admin@admin.com", "admin", "admin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestEnsureDefaultAdmin_StorageFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO admins`)).
		WillReturnError(errors.New("connection reset"))

	if err := EnsureDefaultAdmin(context.Background(), mockDB, "admin@admin.com", "admin", "admin"); err == nil {
		t.Error("expected error for storage failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
