package auth

import (
	"testing"
	"time"

	"staffdir/internal/entity"
)

func TestNewManagerAndTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	user := &entity.DbUser{ID: 42, Login: "ivan_petrov", Role: entity.UserRoleAdmin}
	token, expiresAt, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry time")
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.Subject != user.Login {
		t.Fatalf("expected subject %s, got %s", user.Login, claims.Subject)
	}
	if claims.Role != user.Role {
		t.Fatalf("expected role %s, got %s", user.Role, claims.Role)
	}
}

func TestParseTokenExpired(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	// NewManager falls back to the default expiry for non-positive values,
	// so force a short-lived manager directly.
	mgr.expiry = -time.Minute

	token, _, err := mgr.GenerateToken(&entity.DbUser{ID: 1, Login: "ivan", Role: entity.UserRoleUser})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err := mgr.ParseToken(token); err == nil {
		t.Fatal("expected expired token to fail parsing")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuing, err := NewManager("secret-one", "issuer", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verifying, err := NewManager("secret-two", "issuer", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, _, err := issuing.GenerateToken(&entity.DbUser{ID: 1, Login: "ivan", Role: entity.UserRoleUser})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err := verifying.ParseToken(token); err == nil {
		t.Fatal("expected token signed with another secret to fail")
	}
}

func TestParseTokenMalformed(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := mgr.ParseToken("not.a.token"); err == nil {
		t.Fatal("expected malformed token to fail parsing")
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
