package auth

import "testing"

func TestHashPassword(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		hash, err := HashPassword("pw1")
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}

		if hash == "pw1" {
			t.Fatal("hash must not equal the plaintext password")
		}

		if !CheckPasswordHash("pw1", hash) {
			t.Error("expected matching password to verify")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		hash, err := HashPassword("pw1")
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}

		if CheckPasswordHash("pw2", hash) {
			t.Error("expected non-matching password to fail verification")
		}
	})

	t.Run("GarbageHash", func(t *testing.T) {
		if CheckPasswordHash("pw1", "not-a-bcrypt-hash") {
			t.Error("expected verification against a garbage hash to fail")
		}
	})
}
