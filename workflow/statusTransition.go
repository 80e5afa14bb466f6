package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/claims_backend/config"
	"bitbucket.org/mmdatafocus/claims_backend/models"
	"bitbucket.org/mmdatafocus/claims_backend/utils"
	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
)

// TransitionInput is the approver's request: the target status plus the
// side-effect inputs the transition table consumes.
type TransitionInput struct {
	Status          models.ExpenseStatus `json:"status" binding:"required"`
	RejectionReason *string              `json:"rejection_reason"`
	Billable        *bool                `json:"billable"`
}

type transitionRule struct {
	from  models.ExpenseStatus
	to    models.ExpenseStatus
	roles []models.UserRole
}

// transitionTable is the whole approval pipeline:
// pending -> approved_manager -> approved_finance, with rejection possible at
// either gate. Owner-initiated revival of a rejected claim goes through
// models.UpdateExpense, not through here.
var transitionTable = []transitionRule{
	{models.ExpenseStatusPending, models.ExpenseStatusApprovedManager, []models.UserRole{models.UserRoleManager, models.UserRoleAdmin}},
	{models.ExpenseStatusPending, models.ExpenseStatusRejected, []models.UserRole{models.UserRoleManager, models.UserRoleAdmin}},
	{models.ExpenseStatusApprovedManager, models.ExpenseStatusApprovedFinance, []models.UserRole{models.UserRoleFinance, models.UserRoleAdmin}},
	{models.ExpenseStatusApprovedManager, models.ExpenseStatusRejected, []models.UserRole{models.UserRoleFinance, models.UserRoleAdmin}},
}

// ResolveTransition checks (from, to) against the table, then the actor role.
// An unknown edge is InvalidTransition; a known edge with the wrong role is
// Forbidden. Requests are never coerced to a reachable status.
func ResolveTransition(from, to models.ExpenseStatus, role models.UserRole) error {
	edgeExists := false
	for _, rule := range transitionTable {
		if rule.from != from || rule.to != to {
			continue
		}
		edgeExists = true
		for _, allowed := range rule.roles {
			if allowed == role {
				return nil
			}
		}
	}
	if !edgeExists {
		return utils.InvalidTransitionError(fmt.Sprintf("cannot move %s to %s", from, to))
	}
	return utils.ForbiddenError(fmt.Sprintf("role %s may not move %s to %s", role, from, to))
}

// SubmitTransition applies one approval-pipeline transition. The write is
// conditioned on the claim still holding the status the actor saw, so two
// concurrent approvers cannot both succeed; the loser gets a conflict.
// A redis lock narrows the race window but correctness never depends on it.
func SubmitTransition(ctx context.Context, id int, input *TransitionInput) (*models.Expense, error) {
	logger := config.GetLogger()

	actorId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || actorId <= 0 {
		return nil, utils.ErrUnauthenticated
	}
	roleValue, _ := utils.GetUserRoleFromContext(ctx)
	role := models.UserRole(roleValue)

	if !input.Status.IsValid() {
		return nil, utils.ValidationError("unknown target status")
	}

	// Best-effort lock; if redis is unavailable we rely on the conditional write alone.
	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, fmt.Sprintf("lock:expense:%d", id), 10*time.Second, nil)
		if err != nil && err != redislock.ErrNotObtained {
			logger.WithFields(logrus.Fields{
				"field":      "SubmitTransition",
				"expense_id": id,
			}).Warn("error obtaining redis lock; proceeding without redis lock: " + err.Error())
		}
		if lock != nil {
			defer func() {
				if releaseErr := lock.Release(ctx); releaseErr != nil {
					logger.WithFields(logrus.Fields{
						"field":      "SubmitTransition",
						"expense_id": id,
					}).Warn("failed to release redis lock: " + releaseErr.Error())
				}
			}()
		}
	}

	expense, err := utils.FetchSingleModel[models.Expense](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ResolveTransition(expense.Status, input.Status, role); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":      input.Status,
		"approved_by": actorId,
	}
	if input.Status == models.ExpenseStatusRejected {
		if input.RejectionReason == nil || strings.TrimSpace(*input.RejectionReason) == "" {
			return nil, utils.ValidationError("rejection reason is required")
		}
		updates["rejection_reason"] = strings.TrimSpace(*input.RejectionReason)
	} else {
		// Approvals carry the billable decision; default to the prior value.
		billable := expense.Billable != nil && *expense.Billable
		if input.Billable != nil {
			billable = *input.Billable
		}
		updates["billable"] = billable
		updates["rejection_reason"] = nil
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Model(&models.Expense{}).
		Where("id = ? AND status = ?", id, expense.Status).
		Updates(updates)
	if result.Error != nil {
		config.LogError(logger, "statusTransition.go", "SubmitTransition", "conditional update", id, result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Someone else moved the claim between our read and write.
		if _, err := utils.FetchSingleModel[models.Expense](ctx, id); err != nil {
			return nil, err
		}
		return nil, utils.ConflictError("expense status changed concurrently")
	}

	return models.GetExpense(ctx, id)
}
