package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormTokenIssuer issues and verifies HMAC-signed, time-limited form tokens.
// A token is bound to a single action string, so a token issued for the
// booking form cannot authorize a CSV export. Tokens are stateless; the
// server keeps no per-token record.
type FormTokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewFormTokenIssuer creates an issuer with the given secret and lifetime.
// Returns nil when secret is empty so callers can disable token checks by
// leaving the secret unconfigured.
func NewFormTokenIssuer(secret string, ttl time.Duration) *FormTokenIssuer {
	if secret == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &FormTokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a token of the form "<unix>.<hmac-hex>" valid for the
// configured lifetime.
func (f *FormTokenIssuer) Issue(action string) string {
	issued := f.now().Unix()
	return fmt.Sprintf("%d.%s", issued, f.sign(action, issued))
}

// Verify reports whether token is a well-formed, unexpired token for action.
func (f *FormTokenIssuer) Verify(token, action string) bool {
	tsPart, sig, ok := strings.Cut(token, ".")
	if !ok {
		return false
	}
	issued, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil {
		return false
	}
	now := f.now()
	if issued > now.Unix() || now.Unix()-issued > int64(f.ttl.Seconds()) {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(f.sign(action, issued)))
}

func (f *FormTokenIssuer) sign(action string, issued int64) string {
	mac := hmac.New(sha256.New, f.secret)
	fmt.Fprintf(mac, "%s:%d", action, issued)
	return hex.EncodeToString(mac.Sum(nil))
}
