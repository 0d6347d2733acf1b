// Package emailverify validates email addresses at registration time.
package emailverify

import (
	"context"
	"fmt"
	"net"
	"net/mail"
	"strings"

	"github.com/plantracker/plantracker-backend/internal/domain"
)

// denied lists domains that never belong to real accounts.
var denied = map[string]struct{}{
	"example.com": {},
	"example.org": {},
	"test.com":    {},
}

// Verifier checks email address syntax and, optionally, that the domain
// can actually receive mail (MX lookup).
type Verifier struct {
	checkMX  bool
	lookupMX func(ctx context.Context, domain string) ([]*net.MX, error)
}

// New creates a Verifier. When checkMX is true, Verify also requires the
// address domain to publish MX records.
func New(checkMX bool) *Verifier {
	resolver := &net.Resolver{}
	return &Verifier{
		checkMX: checkMX,
		lookupMX: func(ctx context.Context, domain string) ([]*net.MX, error) {
			return resolver.LookupMX(ctx, domain)
		},
	}
}

// Verify validates the address and returns its normalized (lowercased) form.
// Returns a domain.ValidationError describing what is wrong.
func (v *Verifier) Verify(ctx context.Context, email string) (string, error) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.NewValidationError("email", "Invalid email address. Please provide a valid email.")
	}

	normalized := strings.ToLower(addr.Address)

	at := strings.LastIndex(normalized, "@")
	host := normalized[at+1:]

	if _, ok := denied[host]; ok {
		return "", domain.NewValidationError("email", "Invalid email address. Please provide a valid email.")
	}

	if v.checkMX {
		records, err := v.lookupMX(ctx, host)
		if err != nil || len(records) == 0 {
			return "", domain.NewValidationError("email", fmt.Sprintf("Email domain %s cannot receive mail.", host))
		}
	}

	return normalized, nil
}
