package models

// Operation names every role-gated action the API exposes.
type Operation string

const (
	OpListExpenses     Operation = "expenses.list"
	OpGetExpense       Operation = "expenses.get"
	OpCreateExpense    Operation = "expenses.create"
	OpEditExpense      Operation = "expenses.edit"
	OpTransitionStatus Operation = "expenses.transition"
	OpExportExpenses   Operation = "expenses.export"
	OpListCompanies    Operation = "companies.list"
	OpCreateCompany    Operation = "companies.create"
	OpDeleteCompany    Operation = "companies.delete"
	OpListUsers        Operation = "users.list"
	OpUpdateUserRole   Operation = "users.updateRole"
)

// Can is the single authorization decision point: (role, operation, ownership)
// in, allow/deny out. Handlers and models consult it instead of sprinkling
// role comparisons. `owns` only matters for owner-scoped operations; callers
// of the other operations pass false.
func Can(role UserRole, op Operation, owns bool) bool {
	switch op {
	case OpListExpenses, OpListCompanies, OpCreateExpense:
		return role.IsValid()
	case OpGetExpense:
		if role == UserRoleEmployee {
			return owns
		}
		return role.IsValid()
	case OpEditExpense:
		// Editing is owner-only for every role; approvers change status, not content.
		return owns
	case OpTransitionStatus, OpExportExpenses:
		return role == UserRoleManager || role == UserRoleFinance || role == UserRoleAdmin
	case OpCreateCompany, OpDeleteCompany, OpListUsers, OpUpdateUserRole:
		return role == UserRoleAdmin
	}
	return false
}
