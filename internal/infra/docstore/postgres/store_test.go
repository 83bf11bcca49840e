package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"tagcrm/internal/docstore/core"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS documents")).WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := newWithDB(context.Background(), db)
	if err != nil {
		t.Fatalf("newWithDB: %v", err)
	}
	return store, mock
}

func TestPostgresStoreRead(t *testing.T) {
	store, mock := newMockStore(t)
	if store.Driver() != core.DriverPostgres {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
	mock.ExpectQuery(regexp.QuoteMeta(selectDocument)).
		WithArgs("members.json").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`[{"id": 1}]`)))
	got, err := store.Read(context.Background(), "members.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `[{"id": 1}]` {
		t.Fatalf("unexpected payload %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresStoreReadMissing(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectDocument)).
		WithArgs("contacts.json").
		WillReturnError(sql.ErrNoRows)
	if _, err := store.Read(context.Background(), "contacts.json"); !errors.Is(err, core.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestPostgresStoreReadFailure(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(selectDocument)).WithArgs("alerts.json").WillReturnError(boom)
	_, err := store.Read(context.Background(), "alerts.json")
	if !errors.Is(err, boom) || errors.Is(err, core.ErrNotExist) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
}

func TestPostgresStoreWrite(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(upsertDocument)).
		WithArgs("contacts.json", `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := store.Write(context.Background(), "contacts.json", []byte(`[]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresStoreWriteRejectsBadName(t *testing.T) {
	store, _ := newMockStore(t)
	if err := store.Write(context.Background(), "../x", nil); !errors.Is(err, core.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestNewStoreOpenError(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })
	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("no driver") }
	if _, err := NewStore(context.Background(), ""); err == nil {
		t.Fatalf("expected open error")
	}
}

func TestNewWithDBTableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE")).WillReturnError(errors.New("denied"))
	if _, err := newWithDB(context.Background(), db); err == nil {
		t.Fatalf("expected ddl error")
	}
}
