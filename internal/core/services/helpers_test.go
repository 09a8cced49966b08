package services_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/core/matching"
	"github.com/SscSPs/ledger_recon_app/internal/utils/idgen"
	"github.com/shopspring/decimal"
)

var (
	fixedNow   = time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	admin      = domain.SessionContext{UserID: "admin-1", Role: domain.RoleAdmin}
	accountant = domain.SessionContext{UserID: "acct-1", Role: domain.RoleAccountant}
	viewer     = domain.SessionContext{UserID: "viewer-1", Role: domain.RoleViewer}
)

// sequence returns ids prefix-1, prefix-2, ...
func sequence(prefix string) idgen.Generator {
	var mu sync.Mutex
	n := 0
	return idgen.GeneratorFunc(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	})
}

func testEngine() *matching.Engine {
	return matching.NewEngine(
		matching.WithIDGenerator(sequence("id")),
		matching.WithAuditIDGenerator(sequence("log")),
		matching.WithClock(func() time.Time { return fixedNow }),
		matching.WithCodeSuffix(func() int { return 4821 }),
	)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func customerLedger(id, name string, balance int64, balanceType domain.BalanceType, contact domain.ContactMeta) domain.Ledger {
	return domain.Ledger{
		LedgerID:       id,
		Name:           name,
		Code:           "CODE",
		Group:          domain.GroupSundryDebtors,
		OpeningBalance: dec(balance),
		BalanceType:    balanceType,
		ContactMeta:    &contact,
		AuditFields:    domain.NewAuditFields("seed", fixedNow),
	}
}
