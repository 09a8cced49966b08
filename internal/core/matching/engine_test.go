package matching

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/utils/idgen"
)

var fixedNow = time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

// newTestEngine returns an engine with predictable ids, time and code suffix.
func newTestEngine() *Engine {
	return NewEngine(
		WithIDGenerator(sequence("id")),
		WithAuditIDGenerator(sequence("log")),
		WithClock(func() time.Time { return fixedNow }),
		WithCodeSuffix(func() int { return 4821 }),
	)
}

func sequence(prefix string) idgen.Generator {
	n := 0
	return idgen.GeneratorFunc(func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	})
}
