package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/claims_backend/config"
	"bitbucket.org/mmdatafocus/claims_backend/utils"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID              int             `gorm:"primary_key" json:"id"`
	Description     string          `gorm:"type:text;not null" json:"description" binding:"required"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	ExpenseDate     time.Time       `gorm:"not null" json:"date" binding:"required"`
	UserId          int             `gorm:"index;not null" json:"user_id"`
	CompanyId       int             `gorm:"index;not null" json:"company_id" binding:"required"`
	Status          ExpenseStatus   `gorm:"type:enum('pending','approved_manager','approved_finance','rejected','processed');default:pending" json:"status"`
	Billable        *bool           `gorm:"not null;default:false" json:"billable"`
	ReceiptUrl      string          `json:"receipt_url"`
	RejectionReason *string         `gorm:"type:text" json:"rejection_reason"`
	ApprovedBy      *int            `gorm:"index" json:"approved_by"`
	User            *User           `gorm:"foreignKey:UserId;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	Company         *Company        `gorm:"foreignKey:CompanyId;constraint:OnDelete:RESTRICT" json:"company,omitempty"`
	Approver        *User           `gorm:"foreignKey:ApprovedBy;constraint:OnDelete:RESTRICT" json:"approver,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewExpense struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"date" binding:"required"`
	CompanyId   int             `json:"company_id" binding:"required"`
	Billable    *bool           `json:"billable"`
	ReceiptUrl  string          `json:"receipt_url"`
}

// ExpenseFilter narrows ListExpenses; zero values mean "no filter".
type ExpenseFilter struct {
	Status    *ExpenseStatus
	CompanyId *int
	UserId    *int
}

var minClaimAmount = decimal.NewFromFloat(0.01)

// validate input for both create & edit.
func (input *NewExpense) validate(ctx context.Context) error {
	if input.Amount.LessThan(minClaimAmount) {
		return utils.ValidationError("amount must be at least 0.01")
	}
	if input.ExpenseDate.IsZero() {
		return utils.ValidationError("date is required")
	}

	// exists company
	if err := utils.ValidateResourceId[Company](ctx, input.CompanyId); err != nil {
		return utils.ValidationError("company not found")
	}

	return nil
}

func CreateExpense(ctx context.Context, input *NewExpense) (*Expense, error) {

	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, utils.ErrUnauthenticated
	}

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	billable := false
	if input.Billable != nil && *input.Billable {
		billable = true
	}

	expense := Expense{
		Description: input.Description,
		Amount:      input.Amount,
		ExpenseDate: input.ExpenseDate,
		UserId:      userId,
		CompanyId:   input.CompanyId,
		Status:      ExpenseStatusPending,
		Billable:    &billable,
		ReceiptUrl:  input.ReceiptUrl,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, err
	}

	return &expense, nil
}

// UpdateExpense is the owner edit path. Any edit, even with identical values,
// restarts the approval pipeline: status goes back to pending and the
// rejection reason is cleared. The approver reference is retained.
func UpdateExpense(ctx context.Context, id int, input *NewExpense) (*Expense, error) {

	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, utils.ErrUnauthenticated
	}
	role, _ := utils.GetUserRoleFromContext(ctx)

	expense, err := utils.FetchSingleModel[Expense](ctx, id)
	if err != nil {
		return nil, err
	}

	if !Can(UserRole(role), OpEditExpense, expense.UserId == userId) {
		return nil, utils.ForbiddenError("only the claim owner may edit it")
	}
	if expense.Status != ExpenseStatusPending && expense.Status != ExpenseStatusRejected {
		return nil, utils.ForbiddenError("cannot edit an approved expense")
	}

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	billable := false
	if input.Billable != nil && *input.Billable {
		billable = true
	}

	db := config.GetDB()

	// Conditional write: the edit only lands if the claim is still editable.
	// A concurrent approval between fetch and update must not be clobbered.
	editable := []ExpenseStatus{ExpenseStatusPending, ExpenseStatusRejected}
	result := db.WithContext(ctx).Model(&Expense{}).
		Where("id = ? AND status IN ?", id, editable).
		Updates(map[string]interface{}{
			"description":      input.Description,
			"amount":           input.Amount,
			"expense_date":     input.ExpenseDate,
			"company_id":       input.CompanyId,
			"billable":         billable,
			"receipt_url":      input.ReceiptUrl,
			"status":           ExpenseStatusPending,
			"rejection_reason": nil,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, utils.ConflictError("expense was updated concurrently")
	}

	// The edit replaced the receipt; the abandoned object can go.
	if expense.ReceiptUrl != "" && expense.ReceiptUrl != input.ReceiptUrl {
		removeReceiptObjects(ctx, expense.ReceiptUrl)
	}

	return GetExpense(ctx, id)
}

// removeReceiptObjects best-effort deletes a replaced receipt and its
// thumbnail from storage. Failures are logged, never surfaced: the claim's
// new state is already committed.
func removeReceiptObjects(ctx context.Context, receiptUrl string) {
	key := utils.ExtractObjectKeyFromURL(receiptUrl)
	if key == "" {
		return
	}
	logger := config.GetLogger()
	for _, objectKey := range []string{key, utils.ThumbnailObjectKey(key)} {
		if err := utils.DeleteObjectFromGCS(ctx, objectKey); err != nil {
			config.LogError(logger, "expense.go", "removeReceiptObjects", "delete object", objectKey, err)
		}
	}
}

// GetExpense fetches one claim with owner/company/approver expanded.
// Employees may only fetch their own claims.
func GetExpense(ctx context.Context, id int) (*Expense, error) {

	expense, err := utils.FetchSingleModel[Expense](ctx, id, "User", "Company", "Approver")
	if err != nil {
		return nil, err
	}

	role, _ := utils.GetUserRoleFromContext(ctx)
	userId, _ := utils.GetUserIdFromContext(ctx)
	if !Can(UserRole(role), OpGetExpense, expense.UserId == userId) {
		return nil, utils.ForbiddenError("claim belongs to another user")
	}

	expense.stripOwnerSecrets()
	return expense, nil
}

// ListExpenses returns claims visible to the caller, newest date first.
// Employees see only their own claims regardless of the requested filter.
func ListExpenses(ctx context.Context, filter ExpenseFilter) ([]*Expense, error) {

	role, _ := utils.GetUserRoleFromContext(ctx)
	userId, _ := utils.GetUserIdFromContext(ctx)

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).
		Preload("User").Preload("Company").Preload("Approver").
		Order("expense_date DESC")

	if UserRole(role) == UserRoleEmployee {
		dbCtx = dbCtx.Where("user_id = ?", userId)
	} else if filter.UserId != nil && *filter.UserId > 0 {
		dbCtx = dbCtx.Where("user_id = ?", *filter.UserId)
	}

	if filter.Status != nil && *filter.Status != "" {
		dbCtx = dbCtx.Where("status = ?", *filter.Status)
	}
	if filter.CompanyId != nil && *filter.CompanyId > 0 {
		dbCtx = dbCtx.Where("company_id = ?", *filter.CompanyId)
	}

	var results []*Expense
	if err := dbCtx.Find(&results).Error; err != nil {
		return nil, err
	}

	for _, e := range results {
		e.stripOwnerSecrets()
	}
	return results, nil
}

func (e *Expense) stripOwnerSecrets() {
	if e.User != nil {
		e.User.PrepareGive()
	}
	if e.Approver != nil {
		e.Approver.PrepareGive()
	}
}
