package domain

import "github.com/shopspring/decimal"

// MatchReason explains which tier produced a ledger match.
type MatchReason string

const (
	ReasonExactGSTIN         MatchReason = "Exact GSTIN"
	ReasonExactContact       MatchReason = "Exact Contact"
	ReasonHighNameSimilarity MatchReason = "High Name Similarity"
)

// MatchCandidate is the subset of a customer used to look for an existing ledger.
type MatchCandidate struct {
	Name  string `json:"name"`
	GSTIN string `json:"gstin"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// MatchResult is the outcome of a ledger lookup. A miss is a normal value.
type MatchResult struct {
	MatchFound      bool        `json:"matchFound"`
	Ledger          *Ledger     `json:"ledger,omitempty"`
	Reason          MatchReason `json:"reason,omitempty"`
	SimilarityScore *float64    `json:"similarityScore,omitempty"`
}

// CustomerBalance pairs a customer with its signed balance (Dr positive, Cr negative)
// for merge computations.
type CustomerBalance struct {
	Customer Customer
	Balance  decimal.Decimal
}

// MergeResult tells the caller what to apply after a merge. Secondaries listed in
// MergedIDs are to be soft-deleted.
type MergeResult struct {
	PrimaryID           string          `json:"primaryID"`
	MergedIDs           []string        `json:"mergedIDs"`
	AuditLog            AuditLogEntry   `json:"auditLog"`
	ConsolidatedBalance decimal.Decimal `json:"consolidatedBalance"`
}
