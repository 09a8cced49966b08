package matching

import (
	"fmt"
	"strings"
)

const (
	ledgerCodePrefixLen = 4
	ledgerCodeFallback  = "GEN"
	ledgerCodeSuffixMin = 1000
	ledgerCodeSuffixMax = 9999
)

// GenerateLedgerCode builds an advisory short code such as "ACME-4821" from the first
// four characters of name. Any character outside A-Z in that prefix replaces the whole
// prefix with "GEN". Codes are cosmetic and not guaranteed unique.
func GenerateLedgerCode(name string, suffix func() int) string {
	return fmt.Sprintf("%s-%d", ledgerCodePrefix(name), suffix())
}

// GenerateLedgerCode uses the engine's suffix source.
func (e *Engine) GenerateLedgerCode(name string) string {
	return GenerateLedgerCode(name, e.codeSuffix)
}

func ledgerCodePrefix(name string) string {
	runes := []rune(name)
	if len(runes) > ledgerCodePrefixLen {
		runes = runes[:ledgerCodePrefixLen]
	}
	prefix := strings.ToUpper(string(runes))
	if prefix == "" {
		return ledgerCodeFallback
	}
	for _, r := range prefix {
		if r < 'A' || r > 'Z' {
			return ledgerCodeFallback
		}
	}
	return prefix
}
