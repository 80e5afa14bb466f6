package models

// UserRole determines which workflow operations a caller may perform.
type UserRole string

const (
	UserRoleEmployee UserRole = "employee"
	UserRoleManager  UserRole = "manager"
	UserRoleFinance  UserRole = "finance"
	UserRoleAdmin    UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleEmployee, UserRoleManager, UserRoleFinance, UserRoleAdmin:
		return true
	}
	return false
}

// ExpenseStatus is the claim's position in the approval pipeline.
type ExpenseStatus string

const (
	ExpenseStatusPending         ExpenseStatus = "pending"
	ExpenseStatusApprovedManager ExpenseStatus = "approved_manager"
	ExpenseStatusApprovedFinance ExpenseStatus = "approved_finance"
	ExpenseStatusRejected        ExpenseStatus = "rejected"

	// ExpenseStatusProcessed is reserved in the schema for a later payout step.
	// Nothing produces it and the transition table does not accept it.
	ExpenseStatusProcessed ExpenseStatus = "processed"
)

func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusApprovedManager,
		ExpenseStatusApprovedFinance, ExpenseStatusRejected:
		return true
	}
	return false
}
