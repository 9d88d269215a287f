// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/credential-verifier/backend/internal/application/adapter"
	"github.com/credential-verifier/backend/internal/domain/entity"
	domainerror "github.com/credential-verifier/backend/internal/domain/error"
	"github.com/credential-verifier/backend/internal/integration/persistence/model"
)

// defaultQueryTimeout bounds every store lookup so a hung connection
// surfaces as a store failure instead of blocking the caller.
const defaultQueryTimeout = 3 * time.Second

// credentialRepository implements the adapter.CredentialStore interface.
type credentialRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewCredentialRepository creates a new credential repository instance.
func NewCredentialRepository(db *gorm.DB) adapter.CredentialStore {
	return &credentialRepository{
		db:           db,
		queryTimeout: defaultQueryTimeout,
	}
}

// NewCredentialRepositoryWithTimeout creates a credential repository with a
// custom query timeout.
func NewCredentialRepositoryWithTimeout(db *gorm.DB, queryTimeout time.Duration) adapter.CredentialStore {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &credentialRepository{
		db:           db,
		queryTimeout: queryTimeout,
	}
}

// FindByIdentifier retrieves the credential record matching the identifier.
func (r *credentialRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.CredentialRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var credentialModel model.CredentialModel
	result := r.db.WithContext(ctx).Where("identifier = ?", identifier).First(&credentialModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: %w", domainerror.ErrStoreUnavailable, result.Error)
	}
	return credentialModel.ToEntity(), nil
}
