package adapters

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	domainerror "github.com/credential-verifier/backend/internal/domain/error"
)

func TestSecretHasher_HashAndVerify(t *testing.T) {
	// Low cost keeps the test fast; the blob still self-describes it.
	hasher := NewSecretHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cr3t")
	if err != nil {
		t.Fatalf("failed to hash secret: %v", err)
	}

	t.Run("correct secret verifies", func(t *testing.T) {
		if err := hasher.Verify("s3cr3t", hash); err != nil {
			t.Errorf("expected match, got error: %v", err)
		}
	})

	t.Run("wrong secret returns mismatch", func(t *testing.T) {
		err := hasher.Verify("wrong", hash)
		if !errors.Is(err, domainerror.ErrSecretMismatch) {
			t.Errorf("expected ErrSecretMismatch, got %v", err)
		}
	})

	t.Run("empty secret returns mismatch", func(t *testing.T) {
		err := hasher.Verify("", hash)
		if !errors.Is(err, domainerror.ErrSecretMismatch) {
			t.Errorf("expected ErrSecretMismatch, got %v", err)
		}
	})
}

func TestSecretHasher_SaltRandomization(t *testing.T) {
	hasher := NewSecretHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("s3cr3t")
	if err != nil {
		t.Fatalf("failed to hash secret: %v", err)
	}
	second, err := hasher.Hash("s3cr3t")
	if err != nil {
		t.Fatalf("failed to hash secret: %v", err)
	}

	// The same plaintext must produce different blobs (random salt), and
	// both must verify against the original plaintext.
	if first == second {
		t.Error("expected two hashes of the same secret to differ")
	}
	if err := hasher.Verify("s3cr3t", first); err != nil {
		t.Errorf("first hash failed to verify: %v", err)
	}
	if err := hasher.Verify("s3cr3t", second); err != nil {
		t.Errorf("second hash failed to verify: %v", err)
	}
}

func TestSecretHasher_HistoricalCostFactors(t *testing.T) {
	// Blobs hashed at one cost must verify with a hasher configured at
	// another, since bcrypt blobs embed their cost parameter.
	oldHasher := NewSecretHasherWithCost(bcrypt.MinCost)
	newHasher := NewSecretHasherWithCost(bcrypt.MinCost + 1)

	hash, err := oldHasher.Hash("s3cr3t")
	if err != nil {
		t.Fatalf("failed to hash secret: %v", err)
	}
	if err := newHasher.Verify("s3cr3t", hash); err != nil {
		t.Errorf("expected hash from older cost factor to verify, got %v", err)
	}
}

func TestSecretHasher_MalformedBlob(t *testing.T) {
	hasher := NewSecretHasher()

	tests := []struct {
		name string
		blob string
	}{
		{name: "empty blob", blob: ""},
		{name: "plain text blob", blob: "not-a-bcrypt-hash"},
		{name: "truncated blob", blob: "$2a$12$tooshort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.Verify("s3cr3t", tt.blob)
			if !errors.Is(err, domainerror.ErrMalformedHash) {
				t.Errorf("expected ErrMalformedHash, got %v", err)
			}
		})
	}
}

func TestSecretHasher_CostFallback(t *testing.T) {
	hasher := NewSecretHasherWithCost(99)

	hash, err := hasher.Hash("s3cr3t")
	if err != nil {
		t.Fatalf("expected out-of-range cost to fall back to default, got %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("failed to read cost from hash: %v", err)
	}
	if cost != DefaultBcryptCost {
		t.Errorf("expected cost %d, got %d", DefaultBcryptCost, cost)
	}
}
