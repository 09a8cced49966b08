package pgsql

import (
	"context"
	"errors"
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

const bankAccountColumns = `bank_account_id, name, account_number, bank_name, currency,
	opening_balance, current_book_balance, last_reconciled`

const bankTransactionColumns = `transaction_id, bank_account_id, side, txn_date, description,
	debit, credit, status, matched_with`

type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank accounts and reconciliation transactions.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankReconciliationRepositoryFacade {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankReconciliationRepositoryFacade = (*PgxBankRepository)(nil)

func scanBankAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(&m.BankAccountID, &m.Name, &m.AccountNumber, &m.BankName, &m.Currency,
		&m.OpeningBalance, &m.CurrentBookBalance, &m.LastReconciled)
	return m, err
}

func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`
	m, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Bank account not found: %s", bankAccountID))
		}
		return nil, classify(err, "failed to find bank account "+bankAccountID)
	}
	a := mapping.ToDomainBankAccount(m)
	return &a, nil
}

func (r *PgxBankRepository) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts ORDER BY name, bank_account_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		m, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainBankAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxBankRepository) ListTransactions(ctx context.Context, bankAccountID string, side domain.TransactionSide) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTransactionColumns + `
		FROM reconciliation_transactions
		WHERE bank_account_id = $1 AND side = $2
		ORDER BY txn_date, seq;
	`
	rows, err := r.Pool.Query(ctx, query, bankAccountID, string(side))
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliation transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.BankTransaction{}
	for rows.Next() {
		var m models.BankTransaction
		if err := rows.Scan(&m.TransactionID, &m.BankAccountID, &m.Side, &m.TxnDate, &m.Description,
			&m.Debit, &m.Credit, &m.Status, &m.MatchedWith); err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainBankTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reconciliation transaction rows: %w", err)
	}
	return txns, nil
}

func (r *PgxBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query, m.BankAccountID, m.Name, m.AccountNumber, m.BankName, m.Currency,
		m.OpeningBalance, m.CurrentBookBalance, m.LastReconciled)
	if err != nil {
		return classify(err, "failed to save bank account "+m.BankAccountID)
	}
	return nil
}

// SaveTransactions inserts all lines in one batch inside a transaction.
func (r *PgxBankRepository) SaveTransactions(ctx context.Context, txns []domain.BankTransaction) error {
	if len(txns) == 0 {
		return nil
	}
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO reconciliation_transactions (` + bankTransactionColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		batch := &pgx.Batch{}
		for _, t := range txns {
			m := mapping.ToModelBankTransaction(t)
			batch.Queue(query, m.TransactionID, m.BankAccountID, m.Side, m.TxnDate, m.Description,
				m.Debit, m.Credit, m.Status, m.MatchedWith)
		}
		br := tx.SendBatch(ctx, batch)
		for range txns {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return classify(err, "failed to insert reconciliation transaction")
			}
		}
		return br.Close()
	})
}

func (r *PgxBankRepository) UpdateMatches(ctx context.Context, txns []domain.BankTransaction) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE reconciliation_transactions
			SET status = $2, matched_with = $3
			WHERE transaction_id = $1;
		`
		for _, t := range txns {
			m := mapping.ToModelBankTransaction(t)
			tag, err := tx.Exec(ctx, query, m.TransactionID, m.Status, m.MatchedWith)
			if err != nil {
				return classify(err, "failed to update transaction "+m.TransactionID)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("transaction %s: %w", m.TransactionID, apperrors.ErrNotFound)
			}
		}
		return nil
	})
}

func (r *PgxBankRepository) MarkReconciled(ctx context.Context, bankAccountID string, at time.Time) error {
	query := `UPDATE bank_accounts SET last_reconciled = $2 WHERE bank_account_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, bankAccountID, at)
	if err != nil {
		return classify(err, "failed to mark bank account reconciled "+bankAccountID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("Bank account not found: %s", bankAccountID))
	}
	return nil
}
