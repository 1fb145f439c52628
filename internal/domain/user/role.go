package user

// Role is the actor role carried in access-token claims. It gates the
// approval-workflow transitions: collaborators submit their own entries,
// managers approve or reject entries on projects they lead, HR closes
// periods, finance bills closed entries.
type Role string

const (
	RoleCollaborator Role = "collaborator"
	RoleManager      Role = "manager"
	RoleHR           Role = "hr"
	RoleFinance      Role = "finance"
)

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCollaborator, RoleManager, RoleHR, RoleFinance:
		return true
	}
	return false
}

// IsManager checks if the role can approve or reject entries
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleHR
}

// CanClose checks if the role can close a period
func (r Role) CanClose() bool {
	return r == RoleHR
}

// CanBill checks if the role can bill closed entries
func (r Role) CanBill() bool {
	return r == RoleFinance
}
