package services

import "github.com/solrobto/reclamation-mytsinjo/internal/domain"

// Roles understood by the services.
const (
	RoleAgent      = "agent"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uint
	Role string
}

// IsAgent reports whether a is a front-office agent.
func (a Actor) IsAgent() bool { return a.Role == RoleAgent }

// CanAccess reports whether a may see or act on r. Agents only reach their
// own reclamations; supervisors and admins reach all.
func (a Actor) CanAccess(r *domain.Reclamation) bool {
	return !a.IsAgent() || r.UserID == a.ID
}
