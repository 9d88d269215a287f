// Package error defines domain-specific errors for the Credential Verifier.
package error

import "errors"

// Verification domain errors.
var (
	// ErrRecordNotFound is returned when no credential record exists for an identifier.
	ErrRecordNotFound = errors.New("credential record not found")

	// ErrSecretMismatch is returned when a secret does not match the stored hash.
	ErrSecretMismatch = errors.New("secret does not match stored hash")

	// ErrMalformedHash is returned when a stored hash blob cannot be parsed
	// by the hasher. This is an infrastructure-class defect, not a normal
	// authentication failure.
	ErrMalformedHash = errors.New("stored hash blob is malformed")

	// ErrStoreUnavailable is returned when the credential store cannot be reached.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// VerifyErrorCode defines error codes for verification errors.
// Format: VRFY-XXYYYY where XX is category and YYYY is specific error.
type VerifyErrorCode string

const (
	// Request errors (01XXXX)
	ErrCodeMissingFields VerifyErrorCode = "VRFY-010001"

	// Authentication failures (02XXXX). The externally-visible code is
	// the collapsed ErrCodeInvalidCredentials; the distinct reasons live
	// on the VerificationResult and in logs.
	ErrCodeInvalidCredentials VerifyErrorCode = "VRFY-020001"

	// Infrastructure failures (03XXXX)
	ErrCodeStoreError    VerifyErrorCode = "VRFY-030001"
	ErrCodeMalformedHash VerifyErrorCode = "VRFY-030002"
)

// VerifyError represents a verification error with code and message.
type VerifyError struct {
	Code    VerifyErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *VerifyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *VerifyError) Unwrap() error {
	return e.Err
}

// NewVerifyError creates a new VerifyError with the given code and message.
func NewVerifyError(code VerifyErrorCode, message string, err error) *VerifyError {
	return &VerifyError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
