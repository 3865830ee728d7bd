// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAdminKeyRoundTrip(t *testing.T) {
	key := GenerateAdminKey("election-1", "salt")

	if key == "" {
		t.Fatal("empty admin key")
	}
	if strings.ContainsAny(key, "=+/") {
		t.Errorf("admin key %q is not URL-safe unpadded base64", key)
	}
	if err := ValidateAdminKey("election-1", key, "salt"); err != nil {
		t.Errorf("valid key rejected: %v", err)
	}
	if GenerateAdminKey("election-1", "salt") != key {
		t.Error("admin key is not deterministic")
	}
}

func TestAdminKeyRejections(t *testing.T) {
	key := GenerateAdminKey("election-1", "salt")

	tests := []struct {
		name       string
		electionID string
		adminKey   string
		salt       string
	}{
		{"wrong election", "election-2", key, "salt"},
		{"wrong salt", "election-1", key, "other-salt"},
		{"tampered key", "election-1", key[:len(key)-2] + "xx", "salt"},
		{"empty key", "election-1", "", "salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.electionID, tt.adminKey, tt.salt)
			if !errors.Is(err, ErrInvalidAdminKey) {
				t.Errorf("ValidateAdminKey() = %v, want ErrInvalidAdminKey", err)
			}
		})
	}
}

func TestVoterTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue("election-1", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.ElectionID != "election-1" || claims.Address != "alice" {
		t.Errorf("claims = %+v, want election-1/alice", claims)
	}
}

func TestVoterTokenRejections(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, err := tm.Issue("election-1", "alice")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate with wrong secret = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		tampered := token[:len(token)-4] + "AAAA"
		if _, err := tm.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate tampered = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := tm.Validate("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate garbage = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		short := NewTokenManager("test-secret", -time.Minute)
		expired, err := short.Issue("election-1", "alice")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := short.Validate(expired); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate expired = %v, want ErrInvalidToken", err)
		}
	})
}

func TestHashIP(t *testing.T) {
	h1 := HashIP("203.0.113.7", "salt")
	h2 := HashIP("203.0.113.7", "salt")
	h3 := HashIP("203.0.113.8", "salt")

	if h1 != h2 {
		t.Error("HashIP is not deterministic")
	}
	if h1 == h3 {
		t.Error("distinct IPs hashed to the same value")
	}
	if len(h1) != 16 {
		t.Errorf("hash length = %d, want 16 hex chars", len(h1))
	}
}
