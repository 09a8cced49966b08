package services

import (
	"github.com/SscSPs/ledger_recon_app/internal/core/matching"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/platform/config"
	"github.com/SscSPs/ledger_recon_app/internal/platform/lock"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The locker is shared so that sync, merge and import exclude each other across the
// services (and across processes when it is redis backed).
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, locker lock.Locker) *portssvc.ServiceContainer {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}

	container := &portssvc.ServiceContainer{}

	// Permissions first since every other service checks against it
	container.Permission = NewPermissionService(nil)

	engine := matching.NewEngine(matching.WithNameSimilarityThreshold(cfg.NameSimilarityThreshold))

	container.Customer = NewCustomerService(
		repos.CustomerRepo,
		repos.LedgerRepo,
		WithCustomerEngine(engine),
		WithCustomerLocker(locker, cfg.SyncLockTTL),
		WithCustomerPermissions(container.Permission),
	)
	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		WithLedgerEngine(engine),
		WithLedgerPermissions(container.Permission),
	)
	container.Import = NewImportService(
		repos,
		WithImportEngine(engine),
		WithImportLocker(locker, cfg.SyncLockTTL),
		WithImportPermissions(container.Permission),
	)
	container.AuditLog = NewAuditLogService(repos.AuditLogRepo, container.Permission)
	container.Reconciliation = NewReconciliationService(
		repos.BankRepo,
		WithReconciliationLocker(locker),
		WithReconciliationPermissions(container.Permission),
	)

	return container
}
