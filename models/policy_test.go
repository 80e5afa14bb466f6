package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var policyRoles = []UserRole{UserRoleEmployee, UserRoleManager, UserRoleFinance, UserRoleAdmin}

func TestCan_OwnerScopedOperations(t *testing.T) {
	// Employees may only read their own claims.
	assert.True(t, Can(UserRoleEmployee, OpGetExpense, true))
	assert.False(t, Can(UserRoleEmployee, OpGetExpense, false))
	// Privileged roles read everything.
	assert.True(t, Can(UserRoleManager, OpGetExpense, false))
	assert.True(t, Can(UserRoleFinance, OpGetExpense, false))
	assert.True(t, Can(UserRoleAdmin, OpGetExpense, false))

	// Editing is owner-only regardless of role.
	for _, role := range policyRoles {
		assert.True(t, Can(role, OpEditExpense, true), "role %s should edit own claim", role)
		assert.False(t, Can(role, OpEditExpense, false), "role %s should not edit others' claims", role)
	}
}

func TestCan_PrivilegedOperations(t *testing.T) {
	for _, op := range []Operation{OpTransitionStatus, OpExportExpenses} {
		assert.False(t, Can(UserRoleEmployee, op, false), "employee should not %s", op)
		assert.True(t, Can(UserRoleManager, op, false))
		assert.True(t, Can(UserRoleFinance, op, false))
		assert.True(t, Can(UserRoleAdmin, op, false))
	}
}

func TestCan_AdminOnlyOperations(t *testing.T) {
	for _, op := range []Operation{OpCreateCompany, OpDeleteCompany, OpListUsers, OpUpdateUserRole} {
		for _, role := range policyRoles {
			want := role == UserRoleAdmin
			assert.Equal(t, want, Can(role, op, false), "role %s op %s", role, op)
		}
	}
}

func TestCan_SharedOperations(t *testing.T) {
	for _, op := range []Operation{OpListExpenses, OpListCompanies, OpCreateExpense} {
		for _, role := range policyRoles {
			assert.True(t, Can(role, op, false), "role %s op %s", role, op)
		}
	}
	assert.False(t, Can(UserRole("intruder"), OpListExpenses, false))
}
