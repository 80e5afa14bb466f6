package models

import (
	"context"
	"errors"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/claims_backend/utils"
	"github.com/shopspring/decimal"
)

// Only the DB-free validation paths are covered here; company existence and
// the conditional-write paths need MySQL.

func TestNewExpenseValidate_RejectsTinyAmounts(t *testing.T) {
	cases := []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromFloat(-5),
		decimal.NewFromFloat(0.001),
		decimal.NewFromFloat(0.009),
	}
	for _, amount := range cases {
		input := &NewExpense{
			Description: "taxi",
			Amount:      amount,
			ExpenseDate: time.Now(),
			CompanyId:   1,
		}
		err := input.validate(context.Background())
		if !errors.Is(err, utils.ErrValidation) {
			t.Errorf("validate(amount=%s) = %v, want ErrValidation", amount, err)
		}
	}
}

func TestNewExpenseValidate_RequiresDate(t *testing.T) {
	input := &NewExpense{
		Description: "taxi",
		Amount:      decimal.NewFromFloat(12.50),
		CompanyId:   1,
	}
	err := input.validate(context.Background())
	if !errors.Is(err, utils.ErrValidation) {
		t.Errorf("validate(zero date) = %v, want ErrValidation", err)
	}
}

func TestMinClaimAmountBoundary(t *testing.T) {
	if minClaimAmount.String() != "0.01" {
		t.Fatalf("minClaimAmount = %s, want 0.01", minClaimAmount)
	}
	if decimal.NewFromFloat(0.01).LessThan(minClaimAmount) {
		t.Error("0.01 should be an acceptable amount")
	}
}
