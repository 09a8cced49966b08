package services

import (
	"fmt"
	"slices"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
)

var errNoPermissionService = apperrors.NewForbiddenError("permission service is not configured")

// defaultRolePermissions is the static role store.
var defaultRolePermissions = map[domain.Role][]domain.Permission{
	domain.RoleAdmin: {
		domain.PermCustomersView, domain.PermCustomersCreate, domain.PermCustomersSync,
		domain.PermCustomersMerge, domain.PermCustomersDelete, domain.PermCustomersImport,
		domain.PermLedgersView, domain.PermLedgersCreate,
		domain.PermReconciliationView, domain.PermReconciliationMatch,
		domain.PermReconciliationFinish, domain.PermReconciliationImport,
		domain.PermAuditView,
	},
	domain.RoleAccountant: {
		domain.PermCustomersView, domain.PermCustomersCreate, domain.PermCustomersSync,
		domain.PermCustomersImport,
		domain.PermLedgersView, domain.PermLedgersCreate,
		domain.PermReconciliationView, domain.PermReconciliationMatch,
		domain.PermReconciliationImport,
		domain.PermAuditView,
	},
	domain.RoleViewer: {
		domain.PermCustomersView,
		domain.PermLedgersView,
		domain.PermReconciliationView,
	},
}

type permissionService struct {
	roles map[domain.Role][]domain.Permission
}

// NewPermissionService returns the static role store. A nil map selects the default
// ADMIN/ACCOUNTANT/VIEWER grants.
func NewPermissionService(roles map[domain.Role][]domain.Permission) portssvc.PermissionSvc {
	if roles == nil {
		roles = defaultRolePermissions
	}
	return &permissionService{roles: roles}
}

var _ portssvc.PermissionSvc = (*permissionService)(nil)

func (s *permissionService) HasPermission(session domain.SessionContext, perm domain.Permission) bool {
	return slices.Contains(s.roles[session.Role], perm)
}

func (s *permissionService) Authorize(session domain.SessionContext, perm domain.Permission) error {
	if s.HasPermission(session, perm) {
		return nil
	}
	return apperrors.NewForbiddenError(fmt.Sprintf("Role %s is not allowed to %s", session.Role, perm))
}

func (s *permissionService) PermissionsForRole(role domain.Role) []domain.Permission {
	return slices.Clone(s.roles[role])
}
