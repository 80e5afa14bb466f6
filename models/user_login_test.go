package models

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// A user row whose stored hash is empty or corrupt must never authenticate,
// whatever password is presented.
func TestLogin_CorruptStoredHashRejected(t *testing.T) {
	mock := newMockDB(t)

	row := sqlmock.NewRows([]string{"id", "username", "name", "password", "is_active", "role", "created_at", "updated_at"}).
		AddRow(4, "mgmar", "Mg Mar", "", true, "employee", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(row)

	_, err := Login(context.Background(), "mgmar", "any-password")
	if err == nil {
		t.Fatal("Login succeeded against an empty stored hash")
	}
	if got, want := err.Error(), "invalid username or password"; got != want {
		t.Fatalf("Login error = %q, want %q", got, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetAllUsers_StripsPasswords(t *testing.T) {
	mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "username", "name", "password", "is_active", "role"}).
		AddRow(1, "admin", "Admin", "$2a$10$hash-a", true, "admin").
		AddRow(2, "mgmar", "Mg Mar", "$2a$10$hash-b", true, "employee")
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(rows)

	users, err := GetAllUsers(context.Background())
	if err != nil {
		t.Fatalf("GetAllUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	for _, u := range users {
		if u.Password != "" {
			t.Errorf("user %s still exposes a password hash", u.Username)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
