package services_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/core/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/SscSPs/ledger_recon_app/internal/repositories/memory"
	"github.com/SscSPs/ledger_recon_app/internal/utils/spreadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAuditLogs(t *testing.T, store *memory.Store, n int) {
	t.Helper()
	entries := make([]domain.AuditLogEntry, n)
	for i := range entries {
		status := domain.StatusSuccess
		if i%3 == 0 {
			status = domain.StatusFailed
		}
		entries[i] = domain.AuditLogEntry{
			ID:          fmt.Sprintf("log-%03d", i),
			Timestamp:   fixedNow.Add(time.Duration(i) * time.Second),
			Action:      domain.ActionSync,
			Entity:      domain.EntityCustomer,
			Status:      status,
			Description: fmt.Sprintf("entry %d", i),
			User:        "admin-1",
		}
	}
	require.NoError(t, store.SaveAuditLogs(context.Background(), entries))
}

func TestAuditLogService_ListPaginates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedAuditLogs(t, store, 5)
	svc := services.NewAuditLogService(store, services.NewPermissionService(nil))

	first, err := svc.ListAuditLogs(ctx, accountant, dto.ListAuditLogsParams{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first.Logs, 3)
	assert.Equal(t, "log-004", first.Logs[0].ID)
	require.NotNil(t, first.NextToken)

	second, err := svc.ListAuditLogs(ctx, accountant, dto.ListAuditLogsParams{Limit: 3, NextToken: first.NextToken})
	require.NoError(t, err)
	require.Len(t, second.Logs, 2)
	assert.Equal(t, "log-000", second.Logs[1].ID)
	assert.Nil(t, second.NextToken)

	failed, err := svc.ListAuditLogs(ctx, accountant, dto.ListAuditLogsParams{Limit: 10, Status: domain.StatusFailed})
	require.NoError(t, err)
	assert.Len(t, failed.Logs, 2)
}

func TestAuditLogService_ViewerForbidden(t *testing.T) {
	svc := services.NewAuditLogService(memory.NewStore(), services.NewPermissionService(nil))
	_, err := svc.ListAuditLogs(context.Background(), viewer, dto.ListAuditLogsParams{Limit: 10})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuditLogService_NoPermissionServiceDenies(t *testing.T) {
	svc := services.NewAuditLogService(memory.NewStore(), nil)
	_, err := svc.ListAuditLogs(context.Background(), admin, dto.ListAuditLogsParams{Limit: 10})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuditLogService_ExportXLSX(t *testing.T) {
	store := memory.NewStore()
	seedAuditLogs(t, store, 4)
	svc := services.NewAuditLogService(store, services.NewPermissionService(nil))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportAuditLogs(context.Background(), admin, dto.ListAuditLogsParams{}, &buf))

	table, err := spreadsheet.Read(&buf, spreadsheet.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Timestamp", "Action", "Entity", "Status", "Description", "Details", "User"}, table.Header)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, "log-003", table.Rows[0][0])
	assert.Equal(t, "2024-04-01T10:00:03Z", table.Rows[0][1])
	assert.Equal(t, "Sync", table.Rows[0][2])
}
