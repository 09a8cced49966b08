package matching

import (
	"strings"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
)

// FindMatchingLedger looks for an existing ledger for candidate using
// DefaultNameSimilarityThreshold. See (*Engine).FindMatchingLedger.
func FindMatchingLedger(candidate domain.MatchCandidate, ledgers []domain.Ledger) domain.MatchResult {
	return findMatchingLedger(candidate, ledgers, DefaultNameSimilarityThreshold)
}

// FindMatchingLedger evaluates three tiers in strict order and returns the first hit:
//
//  1. Exact GSTIN: a non-empty candidate GSTIN equal to the ledger's.
//  2. Exact contact: candidate email equal to the ledger's email, or candidate phone equal
//     to the ledger's phone.
//  3. Name similarity: lower-cased names scoring above the threshold.
//
// Within a tier the first ledger in the supplied order wins. A miss returns
// MatchFound=false and is not an error.
func (e *Engine) FindMatchingLedger(candidate domain.MatchCandidate, ledgers []domain.Ledger) domain.MatchResult {
	return findMatchingLedger(candidate, ledgers, e.nameThreshold)
}

func findMatchingLedger(candidate domain.MatchCandidate, ledgers []domain.Ledger, threshold float64) domain.MatchResult {
	if candidate.GSTIN != "" {
		for i := range ledgers {
			if ledgers[i].Contact().GSTIN == candidate.GSTIN {
				return hit(ledgers[i], domain.ReasonExactGSTIN, nil)
			}
		}
	}

	if candidate.Email != "" || candidate.Phone != "" {
		for i := range ledgers {
			contact := ledgers[i].Contact()
			emailHit := candidate.Email != "" && contact.Email == candidate.Email
			phoneHit := candidate.Phone != "" && contact.Phone == candidate.Phone
			if emailHit || phoneHit {
				return hit(ledgers[i], domain.ReasonExactContact, nil)
			}
		}
	}

	if candidate.Name != "" {
		name := strings.ToLower(candidate.Name)
		for i := range ledgers {
			score := Similarity(name, strings.ToLower(ledgers[i].Name))
			if score > threshold {
				return hit(ledgers[i], domain.ReasonHighNameSimilarity, &score)
			}
		}
	}

	return domain.MatchResult{MatchFound: false}
}

func hit(l domain.Ledger, reason domain.MatchReason, score *float64) domain.MatchResult {
	ledger := l
	return domain.MatchResult{
		MatchFound:      true,
		Ledger:          &ledger,
		Reason:          reason,
		SimilarityScore: score,
	}
}

// CandidateFromCustomer builds the match candidate for an existing customer.
func CandidateFromCustomer(c domain.Customer) domain.MatchCandidate {
	return domain.MatchCandidate{
		Name:  c.Name,
		GSTIN: c.GSTIN,
		Email: c.Email,
		Phone: c.Phone,
	}
}
