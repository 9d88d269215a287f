// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/credential-verifier/backend/internal/application/adapter"
	domainerror "github.com/credential-verifier/backend/internal/domain/error"
)

// DefaultBcryptCost is the cost factor used when hashing new secrets.
const DefaultBcryptCost = 12

// secretHasher implements the adapter.SecretHasher interface using bcrypt.
// bcrypt blobs embed their own salt and cost, so Verify tolerates hashes
// produced at historical cost factors, and comparison is constant-time.
type secretHasher struct {
	cost int
}

// NewSecretHasher creates a bcrypt secret hasher with the default cost.
func NewSecretHasher() adapter.SecretHasher {
	return &secretHasher{cost: DefaultBcryptCost}
}

// NewSecretHasherWithCost creates a bcrypt secret hasher with a custom cost.
// Costs outside bcrypt's supported range fall back to the default.
func NewSecretHasherWithCost(cost int) adapter.SecretHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &secretHasher{cost: cost}
}

// Hash produces a salted bcrypt blob for the plaintext secret.
func (h *secretHasher) Hash(secret string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify compares a plaintext secret with a stored bcrypt blob.
func (h *secretHasher) Verify(secret, secretHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(secret))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domainerror.ErrSecretMismatch
	}
	// Anything else means the blob itself could not be parsed.
	return fmt.Errorf("%w: %w", domainerror.ErrMalformedHash, err)
}
