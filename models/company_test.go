package models

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/claims_backend/utils"
	"github.com/DATA-DOG/go-sqlmock"
)

// A company with claims on record cannot be deleted; the reference count must
// actually be scoped to that company's id.
func TestDeleteCompany_BlockedWhileReferenced(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT count(.+) FROM `companies`").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT count(.+) FROM `expenses`").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := DeleteCompany(context.Background(), 5)
	if !errors.Is(err, utils.ErrConflict) {
		t.Fatalf("DeleteCompany = %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeleteCompany_UnknownIdNotFound(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT count(.+) FROM `companies`").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := DeleteCompany(context.Background(), 99)
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("DeleteCompany = %v, want ErrorRecordNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
