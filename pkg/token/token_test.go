package token

import (
	"strings"
	"testing"
	"time"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	raw, err := issuer.Issue("user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "user-42" {
		t.Errorf("expected subject user-42, got %s", subject)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := NewIssuer("secret-a", time.Hour).Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("secret-b", time.Hour).Verify(raw); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestVerify_Expired(t *testing.T) {
	raw, err := NewIssuer("secret", -time.Minute).Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("secret", time.Hour).Verify(raw); err == nil {
		t.Error("expired token must not verify")
	}
}

func TestVerify_Tampered(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	raw, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := issuer.Verify(tampered); err == nil {
		t.Error("tampered signature must not verify")
	}
}

func TestVerify_Garbage(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	if _, err := issuer.Verify("not-a-jwt"); err == nil {
		t.Error("garbage input must not verify")
	}
}
