// Package matching links customers to ledgers. It finds an existing ledger for a customer
// with tiered rules, creates customers with or without a new ledger, backfills ledgers for
// unlinked customers and merges customer records.
//
// The engine is stateless: every call takes the full snapshot it needs and returns new
// records and audit entries for the caller to persist. Inputs are never mutated.
package matching

import (
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/utils"
	"github.com/SscSPs/ledger_recon_app/internal/utils/idgen"
)

// DefaultNameSimilarityThreshold is the score a name must exceed to count as a match.
const DefaultNameSimilarityThreshold = 0.90

// Engine carries the injected collaborators. The zero value is not usable; use NewEngine.
type Engine struct {
	ids           idgen.Generator
	auditIDs      idgen.Generator
	now           func() time.Time
	codeSuffix    func() int
	nameThreshold float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator sets the id source for customers and ledgers.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(e *Engine) { e.ids = gen }
}

// WithAuditIDGenerator sets the id source for audit entries.
func WithAuditIDGenerator(gen idgen.Generator) Option {
	return func(e *Engine) { e.auditIDs = gen }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCodeSuffix sets the source of the numeric ledger code suffix.
func WithCodeSuffix(suffix func() int) Option {
	return func(e *Engine) { e.codeSuffix = suffix }
}

// WithNameSimilarityThreshold overrides DefaultNameSimilarityThreshold.
func WithNameSimilarityThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold > 0 && threshold <= 1 {
			e.nameThreshold = threshold
		}
	}
}

// NewEngine creates an engine with UUID ids, ULID audit ids, the wall clock and a
// crypto-random ledger code suffix unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		ids:      idgen.UUID(),
		auditIDs: idgen.ULID(),
		now:      time.Now,
		codeSuffix: func() int {
			return utils.SecureRandomIntInRange(ledgerCodeSuffixMin, ledgerCodeSuffixMax)
		},
		nameThreshold: DefaultNameSimilarityThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NameSimilarityThreshold returns the configured threshold.
func (e *Engine) NameSimilarityThreshold() float64 {
	return e.nameThreshold
}
