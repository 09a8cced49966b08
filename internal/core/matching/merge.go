package matching

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/utils"
)

// MergeCustomers folds secondaryIDs into primaryID. The consolidated balance is the
// primary's balance, plus every secondary balance when mergeBalances is set.
//
// The pool is not modified. The caller removes MergedIDs from its working set, applies
// ConsolidatedBalance to the primary and persists AuditLog. The primary id is dropped from
// secondaryIDs if present; duplicates are ignored.
func (e *Engine) MergeCustomers(primaryID string, secondaryIDs []string, pool []domain.CustomerBalance, mergeBalances bool, actingUser string) (domain.MergeResult, error) {
	byID := make(map[string]domain.CustomerBalance, len(pool))
	for _, cb := range pool {
		byID[cb.Customer.CustomerID] = cb
	}

	primary, ok := byID[primaryID]
	if !ok {
		return domain.MergeResult{}, apperrors.NewNotFoundError("Primary record not found")
	}

	seen := map[string]bool{primaryID: true}
	secondaries := make([]domain.CustomerBalance, 0, len(secondaryIDs))
	mergedIDs := make([]string, 0, len(secondaryIDs))
	for _, id := range secondaryIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		cb, ok := byID[id]
		if !ok {
			return domain.MergeResult{}, apperrors.NewNotFoundError(fmt.Sprintf("Secondary record not found: %s", id))
		}
		secondaries = append(secondaries, cb)
		mergedIDs = append(mergedIDs, id)
	}
	if len(secondaries) == 0 {
		return domain.MergeResult{}, apperrors.NewValidationError("Select at least one record to merge into the primary record")
	}

	consolidated := primary.Balance
	names := make([]string, len(secondaries))
	for i, s := range secondaries {
		names[i] = s.Customer.Name
		if mergeBalances {
			consolidated = consolidated.Add(s.Balance)
		}
	}

	balanceNote := "Balances ignored"
	if mergeBalances {
		balanceNote = "Balances consolidated"
	}
	entry := e.NewAuditEntry(
		domain.ActionMerge, domain.EntityCustomer, domain.StatusSuccess,
		fmt.Sprintf("Merged %d record(s) into %q: %s", len(secondaries), primary.Customer.Name, strings.Join(names, ", ")),
		fmt.Sprintf("%s. Resulting balance: %s", balanceNote, utils.FormatMoney(consolidated)),
		actingUser,
	)

	return domain.MergeResult{
		PrimaryID:           primaryID,
		MergedIDs:           mergedIDs,
		AuditLog:            entry,
		ConsolidatedBalance: consolidated,
	}, nil
}
