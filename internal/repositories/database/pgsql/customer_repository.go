package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_recon_app/internal/models"
	"github.com/SscSPs/ledger_recon_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = `customer_id, name, gstin, pan, email, phone, billing_address, shipping_address,
	default_payment_terms, default_place_of_supply, ledger_id, merged_into_id, deleted_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID, &m.Name, &m.GSTIN, &m.PAN, &m.Email, &m.Phone, &m.BillingAddress, &m.ShippingAddress,
		&m.DefaultPaymentTerms, &m.DefaultPlaceOfSupply, &m.LedgerID, &m.MergedIntoID, &m.DeletedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func collectCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	defer rows.Close()
	ms := []models.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return mapping.ToDomainCustomerSlice(ms), nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 AND deleted_at IS NULL;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		return nil, classify(err, "failed to find customer "+customerID)
	}
	c := mapping.ToDomainCustomer(m)
	return &c, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE deleted_at IS NULL
		ORDER BY lower(name), customer_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	return collectCustomers(rows)
}

func (r *PgxCustomerRepository) ListAllCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE deleted_at IS NULL ORDER BY seq;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	return collectCustomers(rows)
}

// SaveCustomer inserts the ledger first so the customer's foreign key resolves.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer, ledger *domain.Ledger, entries []domain.AuditLogEntry) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if ledger != nil {
			if err := insertLedger(ctx, tx, *ledger); err != nil {
				return err
			}
		}
		m := mapping.ToModelCustomer(customer)
		query := `
			INSERT INTO customers (` + customerColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
		`
		_, err := tx.Exec(ctx, query,
			m.CustomerID, m.Name, m.GSTIN, m.PAN, m.Email, m.Phone, m.BillingAddress, m.ShippingAddress,
			m.DefaultPaymentTerms, m.DefaultPlaceOfSupply, m.LedgerID, m.MergedIntoID, m.DeletedAt,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return classify(err, "failed to save customer "+m.CustomerID)
		}
		return insertAuditLogs(ctx, tx, entries)
	})
}

func (r *PgxCustomerRepository) ApplyLedgerSync(ctx context.Context, updated []domain.Customer, newLedgers []domain.Ledger, entries []domain.AuditLogEntry) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		for _, l := range newLedgers {
			if err := insertLedger(ctx, tx, l); err != nil {
				return err
			}
		}
		query := `
			UPDATE customers
			SET ledger_id = $2, last_updated_at = $3, last_updated_by = $4
			WHERE customer_id = $1 AND deleted_at IS NULL;
		`
		for _, c := range updated {
			m := mapping.ToModelCustomer(c)
			tag, err := tx.Exec(ctx, query, m.CustomerID, m.LedgerID, m.LastUpdatedAt, m.LastUpdatedBy)
			if err != nil {
				return classify(err, "failed to link customer "+m.CustomerID)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("customer %s: %w", m.CustomerID, apperrors.ErrNotFound)
			}
		}
		return insertAuditLogs(ctx, tx, entries)
	})
}

func (r *PgxCustomerRepository) ApplyMerge(ctx context.Context, merge portsrepo.MergeChanges) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE customers
			SET deleted_at = $3, merged_into_id = $2, last_updated_at = $3, last_updated_by = $4
			WHERE customer_id = ANY($1) AND deleted_at IS NULL;
		`
		tag, err := tx.Exec(ctx, query, merge.MergedIDs, merge.PrimaryID, merge.Now, merge.UserID)
		if err != nil {
			return classify(err, "failed to merge customers")
		}
		if int(tag.RowsAffected()) != len(merge.MergedIDs) {
			return fmt.Errorf("merged customers changed concurrently: %w", apperrors.ErrNotFound)
		}

		balanceQuery := `
			UPDATE ledgers
			SET opening_balance = $2, balance_type = $3, last_updated_at = $4, last_updated_by = $5
			WHERE ledger_id = $1;
		`
		for _, b := range merge.Balances {
			tag, err := tx.Exec(ctx, balanceQuery, b.LedgerID, b.Amount, string(b.BalanceType), merge.Now, merge.UserID)
			if err != nil {
				return classify(err, "failed to update ledger balance "+b.LedgerID)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("ledger %s: %w", b.LedgerID, apperrors.ErrNotFound)
			}
		}
		return insertAuditLogs(ctx, tx, []domain.AuditLogEntry{merge.Entry})
	})
}

func (r *PgxCustomerRepository) SoftDeleteCustomer(ctx context.Context, customerID string, userID string, now time.Time, entry domain.AuditLogEntry) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE customers
			SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
			WHERE customer_id = $1 AND deleted_at IS NULL;
		`
		tag, err := tx.Exec(ctx, query, customerID, now, userID)
		if err != nil {
			return classify(err, "failed to delete customer "+customerID)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return insertAuditLogs(ctx, tx, []domain.AuditLogEntry{entry})
	})
}
