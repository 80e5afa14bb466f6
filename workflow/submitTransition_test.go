package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/claims_backend/config"
	"bitbucket.org/mmdatafocus/claims_backend/models"
	"bitbucket.org/mmdatafocus/claims_backend/utils"
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB installs a sqlmock-backed gorm handle as the global DB for the
// duration of the test. Redis stays disconnected, so SubmitTransition runs
// on the conditional write alone, which is exactly the guarantee under test.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	config.SetDB(gdb)
	t.Cleanup(func() {
		config.SetDB(nil)
		sqlDB.Close()
	})
	return mock
}

func expenseRowColumns() []string {
	return []string{"id", "description", "amount", "expense_date", "user_id", "company_id", "status", "billable", "approved_by"}
}

func approverContext(role models.UserRole) context.Context {
	ctx := utils.SetUserIdInContext(context.Background(), 9)
	return utils.SetUserRoleInContext(ctx, string(role))
}

func TestSubmitTransition_LostConditionalWriteConflicts(t *testing.T) {
	mock := newMockDB(t)

	pending := sqlmock.NewRows(expenseRowColumns()).
		AddRow(7, "taxi", "12.50", time.Now(), 2, 1, "pending", false, nil)
	moved := sqlmock.NewRows(expenseRowColumns()).
		AddRow(7, "taxi", "12.50", time.Now(), 2, 1, "approved_manager", false, 4)

	mock.ExpectQuery("SELECT (.+) FROM `expenses`").WillReturnRows(pending)
	// Another approver won the race: our status-conditioned update hits nothing.
	mock.ExpectExec("UPDATE `expenses` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM `expenses`").WillReturnRows(moved)

	_, err := SubmitTransition(approverContext(models.UserRoleManager), 7, &TransitionInput{
		Status: models.ExpenseStatusApprovedManager,
	})
	if !errors.Is(err, utils.ErrConflict) {
		t.Fatalf("SubmitTransition = %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubmitTransition_ClaimVanishedIsNotFound(t *testing.T) {
	mock := newMockDB(t)

	pending := sqlmock.NewRows(expenseRowColumns()).
		AddRow(7, "taxi", "12.50", time.Now(), 2, 1, "pending", false, nil)

	mock.ExpectQuery("SELECT (.+) FROM `expenses`").WillReturnRows(pending)
	mock.ExpectExec("UPDATE `expenses` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	// Zero rows on re-fetch: the claim is gone, not merely moved.
	mock.ExpectQuery("SELECT (.+) FROM `expenses`").WillReturnRows(sqlmock.NewRows(expenseRowColumns()))

	_, err := SubmitTransition(approverContext(models.UserRoleManager), 7, &TransitionInput{
		Status: models.ExpenseStatusApprovedManager,
	})
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("SubmitTransition = %v, want ErrorRecordNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubmitTransition_RejectionRequiresReason(t *testing.T) {
	mock := newMockDB(t)

	pending := sqlmock.NewRows(expenseRowColumns()).
		AddRow(7, "taxi", "12.50", time.Now(), 2, 1, "pending", false, nil)
	mock.ExpectQuery("SELECT (.+) FROM `expenses`").WillReturnRows(pending)
	// No UPDATE is expected: validation fails before any write.

	_, err := SubmitTransition(approverContext(models.UserRoleManager), 7, &TransitionInput{
		Status: models.ExpenseStatusRejected,
	})
	if !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("SubmitTransition = %v, want ErrValidation", err)
	}

	blank := "   "
	pendingAgain := sqlmock.NewRows(expenseRowColumns()).
		AddRow(7, "taxi", "12.50", time.Now(), 2, 1, "pending", false, nil)
	mock.ExpectQuery("SELECT (.+) FROM `expenses`").WillReturnRows(pendingAgain)

	_, err = SubmitTransition(approverContext(models.UserRoleManager), 7, &TransitionInput{
		Status:          models.ExpenseStatusRejected,
		RejectionReason: &blank,
	})
	if !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("SubmitTransition(blank reason) = %v, want ErrValidation", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSubmitTransition_WrongRoleNeverWrites(t *testing.T) {
	mock := newMockDB(t)

	pending := sqlmock.NewRows(expenseRowColumns()).
		AddRow(7, "taxi", "12.50", time.Now(), 2, 1, "pending", false, nil)
	mock.ExpectQuery("SELECT (.+) FROM `expenses`").WillReturnRows(pending)

	_, err := SubmitTransition(approverContext(models.UserRoleEmployee), 7, &TransitionInput{
		Status: models.ExpenseStatusApprovedManager,
	})
	if !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("SubmitTransition = %v, want ErrForbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
