package auth

import (
	"testing"
	"time"
)

func TestTokens(t *testing.T) {
	secret := []byte("test-secret")

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := GenerateToken(42, "alice", "session-1", secret, time.Hour)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		claims, err := ParseToken(token, secret)
		if err != nil {
			t.Fatalf("failed to parse token: %v", err)
		}

		if claims.UserID != 42 {
			t.Errorf("expected user ID 42, got %d", claims.UserID)
		}
		if claims.Username != "alice" {
			t.Errorf("expected username alice, got %s", claims.Username)
		}
		if claims.ID != "session-1" {
			t.Errorf("expected session ID session-1, got %s", claims.ID)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := GenerateToken(42, "alice", "session-1", secret, time.Hour)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		if _, err := ParseToken(token, []byte("other-secret")); err == nil {
			t.Error("expected parse with wrong secret to fail")
		}
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := GenerateToken(42, "alice", "session-1", secret, -time.Minute)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		if _, err := ParseToken(token, secret); err == nil {
			t.Error("expected expired token to fail validation")
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		if _, err := ParseToken("not.a.token", secret); err == nil {
			t.Error("expected garbage token to fail validation")
		}
	})
}
