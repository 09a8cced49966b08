// Command recon_token mints a development JWT for the API. Sessions are chosen outside the
// service, so this is how a local user gets a token with a given role.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/platform/config"
	"github.com/SscSPs/ledger_recon_app/internal/utils"
)

func main() {
	userID := flag.String("user", "", "Required: user id placed in the token subject")
	role := flag.String("role", string(domain.RoleViewer), "Role: ADMIN, ACCOUNTANT or VIEWER")
	ttl := flag.Duration("ttl", 0, "Token lifetime (defaults to JWT_EXPIRY_DURATION)")
	flag.Parse()

	if strings.TrimSpace(*userID) == "" {
		fmt.Fprintln(os.Stderr, "--user is required")
		os.Exit(1)
	}
	r, err := parseRole(*role)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	expiry := cfg.JWTExpiryDuration
	if *ttl > 0 {
		expiry = *ttl
	}

	token, err := utils.GenerateJWT(strings.TrimSpace(*userID), r, cfg.JWTSecret, expiry, cfg.JWTIssuer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "token for %s (%s) expires %s\n", *userID, r, time.Now().Add(expiry).UTC().Format(time.RFC3339))
	fmt.Println(token)
}

func parseRole(s string) (domain.Role, error) {
	for _, r := range []domain.Role{domain.RoleAdmin, domain.RoleAccountant, domain.RoleViewer} {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}
