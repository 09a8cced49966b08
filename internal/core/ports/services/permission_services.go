package services

import "github.com/SscSPs/ledger_recon_app/internal/core/domain"

// PermissionSvc is the role store. Roles are chosen outside the core and arrive on the
// session.
type PermissionSvc interface {
	// HasPermission reports whether the session's role grants perm.
	HasPermission(session domain.SessionContext, perm domain.Permission) bool

	// Authorize returns a forbidden error when HasPermission is false.
	Authorize(session domain.SessionContext, perm domain.Permission) error

	// PermissionsForRole lists the permissions granted to role.
	PermissionsForRole(role domain.Role) []domain.Permission
}
