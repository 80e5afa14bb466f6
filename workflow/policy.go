package workflow

import (
	"context"

	"bitbucket.org/mmdatafocus/claims_backend/models"
	"bitbucket.org/mmdatafocus/claims_backend/utils"
)

// The policy function itself lives in models (models.Can) so the data layer
// can consult the same decision point for ownership checks. This package
// re-exports the operation names and adds the context-reading gate the
// handlers use.
type Operation = models.Operation

const (
	OpListExpenses     = models.OpListExpenses
	OpGetExpense       = models.OpGetExpense
	OpCreateExpense    = models.OpCreateExpense
	OpEditExpense      = models.OpEditExpense
	OpTransitionStatus = models.OpTransitionStatus
	OpExportExpenses   = models.OpExportExpenses
	OpListCompanies    = models.OpListCompanies
	OpCreateCompany    = models.OpCreateCompany
	OpDeleteCompany    = models.OpDeleteCompany
	OpListUsers        = models.OpListUsers
	OpUpdateUserRole   = models.OpUpdateUserRole
)

// Authorize reads the caller's role from context and checks the operation.
func Authorize(ctx context.Context, op Operation) error {
	role, ok := utils.GetUserRoleFromContext(ctx)
	if !ok || role == "" {
		return utils.ErrUnauthenticated
	}
	if !models.Can(models.UserRole(role), op, false) {
		return utils.ForbiddenError(string(op) + " requires a privileged role")
	}
	return nil
}
