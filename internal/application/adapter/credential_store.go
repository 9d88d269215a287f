// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/credential-verifier/backend/internal/domain/entity"
)

// CredentialStore defines the interface for reading stored credential records.
// Implementations guarantee at most one record per identifier; uniqueness is
// a store-level invariant, not enforced by the verifier.
type CredentialStore interface {
	// FindByIdentifier retrieves the record whose identifier equals the
	// input exactly. It returns domain ErrRecordNotFound when no record
	// exists, and any other error for infrastructural failures.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.CredentialRecord, error)
}
