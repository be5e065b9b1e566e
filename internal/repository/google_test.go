package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/tallerify/auth-server/internal/models"
)

func setupGoogleMock(t *testing.T) (*PostgresGoogleRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresGoogleRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestGoogleFindByEmail_Found(t *testing.T) {
	repo, mock, cleanup := setupGoogleMock(t)
	defer cleanup()

	registered := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email, secret, is_blocked, registered_at, last_login, push_token`)).
		WithArgs("fed@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "secret", "is_blocked", "registered_at", "last_login", "push_token"}).
			AddRow("fed@example.com", "s3cret", false, registered, registered, "tok"))

	g, err := repo.FindByEmail(context.Background(), "fed@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Secret != "s3cret" || g.PushToken != "tok" {
		t.Errorf("unexpected account: %+v", g)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGoogleFindByEmail_NotFound(t *testing.T) {
	repo, mock, cleanup := setupGoogleMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email, secret`)).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "secret", "is_blocked", "registered_at", "last_login", "push_token"}))

	_, err := repo.FindByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGoogleInsert_Success(t *testing.T) {
	repo, mock, cleanup := setupGoogleMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO google_accounts`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	g := &models.GoogleAccount{
		Email:        "fed@example.com",
		Secret:       "s3cret",
		RegisteredAt: time.Now(),
		LastLogin:    time.Now(),
	}
	if err := repo.Insert(context.Background(), g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGoogleInsert_DuplicateKeyRollsBack(t *testing.T) {
	repo, mock, cleanup := setupGoogleMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO google_accounts`)).
		WillReturnError(&pq.Error{Code: pq.ErrorCode(pgUniqueViolation)})
	mock.ExpectRollback()

	g := &models.GoogleAccount{
		Email:        "dup@example.com",
		Secret:       "s3cret",
		RegisteredAt: time.Now(),
	}
	err := repo.Insert(context.Background(), g)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGoogleUpdateFields(t *testing.T) {
	repo, mock, cleanup := setupGoogleMock(t)
	defer cleanup()

	now := time.Now()
	token := "tok"
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE google_accounts SET last_login = $1, push_token = $2 WHERE email = $3`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.UpdateFields(context.Background(), "fed@example.com", GoogleUpdate{LastLogin: &now, PushToken: &token})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("rows affected = %d; want 1", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
