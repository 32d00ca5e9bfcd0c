package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestSessionRoundTrip(t *testing.T) {
	svc, err := NewSessionService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	sess, err := svc.Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.Validate(sess.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.SessionID != sess.ID {
		t.Fatalf("session id = %q, want %q", claims.SessionID, sess.ID)
	}
}

func TestSessionExpired(t *testing.T) {
	svc, _ := NewSessionService(testSecret, time.Minute)
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	sess, err := svc.Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	svc.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	if _, err := svc.Validate(sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionRejectsForeignTokens(t *testing.T) {
	svc, _ := NewSessionService(testSecret, time.Hour)
	other, _ := NewSessionService("ffffffffffffffffffffffffffffffff", time.Hour)
	sess, _ := other.Issue()
	if _, err := svc.Validate(sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{SessionID: "x"})
	raw, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := svc.Validate(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg none, got %v", err)
	}

	if _, err := svc.Validate(""); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestNewSessionServiceValidatesSecret(t *testing.T) {
	if _, err := NewSessionService("short", time.Hour); err == nil {
		t.Fatal("expected error for short secret")
	}
}
