// Package verification contains the credential verification use case.
package verification

import (
	"context"
	"errors"
	"log/slog"

	"github.com/credential-verifier/backend/internal/application/adapter"
	"github.com/credential-verifier/backend/internal/domain/entity"
	domainerror "github.com/credential-verifier/backend/internal/domain/error"
)

// VerifyCredentialsInput represents the input for credential verification.
// Both fields are caller-supplied and passed through untouched: any trimming
// or normalization is the caller's responsibility.
type VerifyCredentialsInput struct {
	Identifier string
	Secret     string
}

// VerifyCredentialsUseCase checks an identity claim against a stored
// credential record. It is stateless and safe for concurrent use.
type VerifyCredentialsUseCase struct {
	store  adapter.CredentialStore
	hasher adapter.SecretHasher
}

// NewVerifyCredentialsUseCase creates a new VerifyCredentialsUseCase instance.
func NewVerifyCredentialsUseCase(
	store adapter.CredentialStore,
	hasher adapter.SecretHasher,
) *VerifyCredentialsUseCase {
	return &VerifyCredentialsUseCase{
		store:  store,
		hasher: hasher,
	}
}

// Execute performs the verification. Expected outcomes (missing record,
// mismatched secret, store failure) are variants of the result, never
// panics or error returns. Success is produced if and only if a record
// exists for the identifier and the hasher certifies a match.
func (uc *VerifyCredentialsUseCase) Execute(ctx context.Context, input VerifyCredentialsInput) entity.VerificationResult {
	record, err := uc.store.FindByIdentifier(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecordNotFound) {
			return entity.NotFound()
		}
		// Infrastructural failure: distinguishable from "not found" and
		// "bad secret" so operators can be alerted. The cause stays in
		// the result for logging, not for end users.
		return entity.StoreFailure(domainerror.NewVerifyError(
			domainerror.ErrCodeStoreError,
			"credential store failure",
			err,
		))
	}

	if err := uc.hasher.Verify(input.Secret, record.SecretHash); err != nil {
		if errors.Is(err, domainerror.ErrSecretMismatch) {
			return entity.BadSecret()
		}
		// A hash blob the hasher cannot parse is a defect in the stored
		// data, not an authentication failure.
		slog.Error("Stored hash blob rejected by hasher",
			"record_id", record.ID,
			"error", err,
		)
		return entity.StoreFailure(domainerror.NewVerifyError(
			domainerror.ErrCodeMalformedHash,
			"stored hash blob rejected by hasher",
			err,
		))
	}

	return entity.Success(record.ID)
}
