package auth

import (
	"testing"
	"time"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	token, exp, err := Issue("sid-1", "cs-2024", "reminisce-gateway", "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry in the past: %v", exp)
	}

	claims, err := Parse(token, "secret", "reminisce-gateway")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SessionID != "sid-1" || claims.DepartmentSlug != "cs-2024" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, _, err := Issue("sid-1", "cs-2024", "iss", "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(token, "other-secret", "iss"); err == nil {
		t.Fatalf("expected signature failure")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, _, err := Issue("sid-1", "cs-2024", "iss-a", "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(token, "secret", "iss-b"); err == nil {
		t.Fatalf("expected issuer mismatch")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, _, err := Issue("sid-1", "cs-2024", "iss", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(token, "secret", "iss"); err == nil {
		t.Fatalf("expected expiry failure")
	}
}
