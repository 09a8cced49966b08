package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo: newPgxCustomerRepository(dbPool),
		LedgerRepo:   newPgxLedgerRepository(dbPool),
		AuditLogRepo: newPgxAuditLogRepository(dbPool),
		BankRepo:     newPgxBankRepository(dbPool),
	}
}
