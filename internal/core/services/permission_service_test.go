package services_test

import (
	"testing"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestPermissionService_DefaultRoles(t *testing.T) {
	svc := services.NewPermissionService(nil)

	tests := []struct {
		role    domain.Role
		perm    domain.Permission
		allowed bool
	}{
		{domain.RoleAdmin, domain.PermCustomersMerge, true},
		{domain.RoleAdmin, domain.PermReconciliationFinish, true},
		{domain.RoleAccountant, domain.PermCustomersSync, true},
		{domain.RoleAccountant, domain.PermCustomersMerge, false},
		{domain.RoleAccountant, domain.PermCustomersDelete, false},
		{domain.RoleAccountant, domain.PermReconciliationFinish, false},
		{domain.RoleViewer, domain.PermCustomersView, true},
		{domain.RoleViewer, domain.PermAuditView, false},
		{domain.Role("GUEST"), domain.PermCustomersView, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.perm), func(t *testing.T) {
			session := domain.SessionContext{UserID: "u", Role: tt.role}
			assert.Equal(t, tt.allowed, svc.HasPermission(session, tt.perm))
			err := svc.Authorize(session, tt.perm)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			}
		})
	}
}

func TestPermissionService_CustomRoles(t *testing.T) {
	svc := services.NewPermissionService(map[domain.Role][]domain.Permission{
		domain.RoleViewer: {domain.PermAuditView},
	})
	assert.True(t, svc.HasPermission(viewer, domain.PermAuditView))
	assert.False(t, svc.HasPermission(admin, domain.PermAuditView))

	perms := svc.PermissionsForRole(domain.RoleViewer)
	perms[0] = domain.PermCustomersMerge
	assert.Equal(t, []domain.Permission{domain.PermAuditView}, svc.PermissionsForRole(domain.RoleViewer))
}
