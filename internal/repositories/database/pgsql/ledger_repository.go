package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_recon_app/internal/models"
	"github.com/SscSPs/ledger_recon_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerColumns = `ledger_id, name, code, ledger_group, opening_balance, balance_type, gst_applicable,
	contact_email, contact_phone, contact_address, contact_gstin,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanLedger(row pgx.Row) (models.Ledger, error) {
	var m models.Ledger
	err := row.Scan(
		&m.LedgerID, &m.Name, &m.Code, &m.LedgerGroup, &m.OpeningBalance, &m.BalanceType, &m.GSTApplicable,
		&m.ContactEmail, &m.ContactPhone, &m.ContactAddress, &m.ContactGSTIN,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func collectLedgers(rows pgx.Rows) ([]domain.Ledger, error) {
	defer rows.Close()
	ledgers := []domain.Ledger{}
	for rows.Next() {
		m, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		ledgers = append(ledgers, mapping.ToDomainLedger(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return ledgers, nil
}

// insertLedger writes one ledger with db, which may be the pool or a transaction.
func insertLedger(ctx context.Context, db execer, l domain.Ledger) error {
	m := mapping.ToModelLedger(l)
	query := `
		INSERT INTO ledgers (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := db.Exec(ctx, query,
		m.LedgerID, m.Name, m.Code, m.LedgerGroup, m.OpeningBalance, m.BalanceType, m.GSTApplicable,
		m.ContactEmail, m.ContactPhone, m.ContactAddress, m.ContactGSTIN,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return classify(err, "failed to save ledger "+m.LedgerID)
	}
	return nil
}

func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	return insertLedger(ctx, r.Pool, ledger)
}

func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE ledger_id = $1;`
	m, err := scanLedger(r.Pool.QueryRow(ctx, query, ledgerID))
	if err != nil {
		return nil, classify(err, "failed to find ledger "+ledgerID)
	}
	l := mapping.ToDomainLedger(m)
	return &l, nil
}

func (r *PgxLedgerRepository) FindLedgersByIDs(ctx context.Context, ledgerIDs []string) (map[string]domain.Ledger, error) {
	out := make(map[string]domain.Ledger, len(ledgerIDs))
	if len(ledgerIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE ledger_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, ledgerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledgers by ids: %w", err)
	}
	ledgers, err := collectLedgers(rows)
	if err != nil {
		return nil, err
	}
	for _, l := range ledgers {
		out[l.LedgerID] = l
	}
	return out, nil
}

func (r *PgxLedgerRepository) ListLedgers(ctx context.Context, limit int, offset int) ([]domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers ORDER BY lower(name), ledger_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledgers: %w", err)
	}
	return collectLedgers(rows)
}

func (r *PgxLedgerRepository) ListAllLedgers(ctx context.Context) ([]domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers ORDER BY seq;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledgers: %w", err)
	}
	return collectLedgers(rows)
}
