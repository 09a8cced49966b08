package matching

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SyncResult is the outcome of a ledger backfill.
type SyncResult struct {
	UpdatedCustomers []domain.Customer      `json:"updatedCustomers"`
	NewLedgers       []domain.Ledger        `json:"newLedgers"`
	Logs             []domain.AuditLogEntry `json:"logs"`
}

// RunLedgerSync links every customer without a ledger to a matching ledger from the
// supplied pool, or creates a new Sundry Debtors ledger when nothing matches.
//
// Customers that already have a ledger are never revisited and are not returned. A
// customer that cannot be processed gets a Failed audit entry and the batch continues.
// Ledgers created here are not added to the pool: calling again without feeding
// NewLedgers back in creates duplicates.
func (e *Engine) RunLedgerSync(customers []domain.Customer, ledgers []domain.Ledger, actingUser string) SyncResult {
	result := SyncResult{
		UpdatedCustomers: []domain.Customer{},
		NewLedgers:       []domain.Ledger{},
		Logs:             []domain.AuditLogEntry{},
	}
	var linked, created, failed int

	for _, c := range customers {
		if c.HasLedger() {
			continue
		}

		match := e.FindMatchingLedger(CandidateFromCustomer(c), ledgers)
		if match.MatchFound {
			updated := c
			updated.LedgerID = match.Ledger.LedgerID
			updated.Touch(actingUser, e.now())
			result.UpdatedCustomers = append(result.UpdatedCustomers, updated)
			result.Logs = append(result.Logs, e.NewAuditEntry(
				domain.ActionLink, domain.EntityCustomer, domain.StatusSuccess,
				fmt.Sprintf("Linked customer %q to existing ledger %q (%s)", c.Name, match.Ledger.Name, match.Reason),
				matchDetails(match), actingUser,
			))
			linked++
			continue
		}

		if strings.TrimSpace(c.Name) == "" {
			result.Logs = append(result.Logs, e.NewAuditEntry(
				domain.ActionAutoCreate, domain.EntityLedger, domain.StatusFailed,
				fmt.Sprintf("Could not create ledger for customer %s", c.CustomerID),
				"Customer Name is required to create a ledger", actingUser,
			))
			failed++
			continue
		}

		ledger := e.newCustomerLedger(c, "", decimal.Zero, domain.BalanceDr, actingUser)
		updated := c
		updated.LedgerID = ledger.LedgerID
		updated.Touch(actingUser, e.now())
		result.NewLedgers = append(result.NewLedgers, ledger)
		result.UpdatedCustomers = append(result.UpdatedCustomers, updated)
		result.Logs = append(result.Logs, e.NewAuditEntry(
			domain.ActionAutoCreate, domain.EntityLedger, domain.StatusSuccess,
			fmt.Sprintf("Created ledger %q (%s) for customer %q", ledger.Name, ledger.Code, c.Name),
			"No existing ledger matched by GSTIN, contact or name", actingUser,
		))
		created++
	}

	result.Logs = append(result.Logs, e.NewAuditEntry(
		domain.ActionSync, domain.EntityLedger, domain.StatusSuccess,
		fmt.Sprintf("Ledger sync processed %d customer(s): %d linked, %d created, %d failed", linked+created+failed, linked, created, failed),
		"", actingUser,
	))
	return result
}

func matchDetails(m domain.MatchResult) string {
	if m.SimilarityScore != nil {
		return fmt.Sprintf("Similarity score %.2f", *m.SimilarityScore)
	}
	return ""
}
