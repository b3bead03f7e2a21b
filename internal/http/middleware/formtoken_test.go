package middleware

import (
	"strings"
	"testing"
	"time"
)

func TestFormTokenIssueAndVerify(t *testing.T) {
	issuer := NewFormTokenIssuer("secret", time.Hour)
	if issuer == nil {
		t.Fatal("expected non-nil issuer")
	}

	token := issuer.Issue("submit_appointment")
	if !issuer.Verify(token, "submit_appointment") {
		t.Fatalf("expected token %q to verify", token)
	}
}

func TestFormTokenActionMismatch(t *testing.T) {
	issuer := NewFormTokenIssuer("secret", time.Hour)

	token := issuer.Issue("submit_appointment")
	if issuer.Verify(token, "export_csv") {
		t.Fatal("token issued for one action must not verify for another")
	}
}

func TestFormTokenExpired(t *testing.T) {
	issuer := NewFormTokenIssuer("secret", time.Hour)
	issued := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	token := issuer.Issue("submit_appointment")

	issuer.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if issuer.Verify(token, "submit_appointment") {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestFormTokenFromTheFuture(t *testing.T) {
	issuer := NewFormTokenIssuer("secret", time.Hour)
	issued := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	token := issuer.Issue("submit_appointment")

	issuer.now = func() time.Time { return issued.Add(-time.Minute) }
	if issuer.Verify(token, "submit_appointment") {
		t.Fatal("expected future-dated token to fail verification")
	}
}

func TestFormTokenTampered(t *testing.T) {
	issuer := NewFormTokenIssuer("secret", time.Hour)

	token := issuer.Issue("submit_appointment")
	tsPart, _, _ := strings.Cut(token, ".")
	forged := tsPart + "." + strings.Repeat("ab", 32)
	if issuer.Verify(forged, "submit_appointment") {
		t.Fatal("expected forged signature to fail verification")
	}
}

func TestFormTokenMalformed(t *testing.T) {
	issuer := NewFormTokenIssuer("secret", time.Hour)

	for _, token := range []string{"", "nodot", "notanumber.abcdef", "12345"} {
		if issuer.Verify(token, "submit_appointment") {
			t.Fatalf("expected malformed token %q to fail verification", token)
		}
	}
}

func TestFormTokenWrongSecret(t *testing.T) {
	a := NewFormTokenIssuer("secret-a", time.Hour)
	b := NewFormTokenIssuer("secret-b", time.Hour)

	if b.Verify(a.Issue("submit_appointment"), "submit_appointment") {
		t.Fatal("token signed with a different secret must not verify")
	}
}

func TestNewFormTokenIssuerEmptySecret(t *testing.T) {
	if NewFormTokenIssuer("", time.Hour) != nil {
		t.Fatal("expected nil issuer when secret is empty")
	}
}
