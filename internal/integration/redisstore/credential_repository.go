// Package redisstore implements the credential store on Redis, keyed by
// identifier. Each record is a Redis hash holding the numeric user id and
// the stored secret hash.
package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/credential-verifier/backend/internal/application/adapter"
	"github.com/credential-verifier/backend/internal/domain/entity"
	domainerror "github.com/credential-verifier/backend/internal/domain/error"
)

const (
	// keyPrefix namespaces credential records in the keyspace.
	keyPrefix = "credential:"

	fieldID         = "id"
	fieldSecretHash = "secret_hash"

	defaultQueryTimeout = 3 * time.Second
)

// credentialRepository implements the adapter.CredentialStore interface.
type credentialRepository struct {
	client       *redis.Client
	queryTimeout time.Duration
}

// NewCredentialRepository creates a Redis-backed credential store.
func NewCredentialRepository(client *redis.Client) adapter.CredentialStore {
	return &credentialRepository{
		client:       client,
		queryTimeout: defaultQueryTimeout,
	}
}

// NewCredentialRepositoryWithTimeout creates a Redis-backed credential store
// with a custom query timeout.
func NewCredentialRepositoryWithTimeout(client *redis.Client, queryTimeout time.Duration) adapter.CredentialStore {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &credentialRepository{
		client:       client,
		queryTimeout: queryTimeout,
	}
}

// Key returns the Redis key under which a record for the identifier lives.
func Key(identifier string) string {
	return keyPrefix + identifier
}

// FindByIdentifier retrieves the credential record matching the identifier.
func (r *credentialRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.CredentialRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	fields, err := r.client.HGetAll(ctx, Key(identifier)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainerror.ErrStoreUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, domainerror.ErrRecordNotFound
	}

	id, err := strconv.ParseInt(fields[fieldID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("credential record %q has invalid id field: %w", identifier, err)
	}
	secretHash, ok := fields[fieldSecretHash]
	if !ok {
		return nil, fmt.Errorf("credential record %q is missing its secret hash field", identifier)
	}

	return &entity.CredentialRecord{
		ID:         id,
		Identifier: identifier,
		SecretHash: secretHash,
	}, nil
}
