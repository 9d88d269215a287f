package entity

// FailureReason distinguishes why a verification did not succeed.
type FailureReason string

const (
	// FailureNone marks a successful verification.
	FailureNone FailureReason = ""

	// FailureNotFound means no record exists for the identifier.
	FailureNotFound FailureReason = "not_found"

	// FailureBadSecret means a record exists but the secret does not match.
	FailureBadSecret FailureReason = "bad_secret"

	// FailureStoreError means the credential store failed for an
	// infrastructural reason (unreachable, query error, timeout).
	FailureStoreError FailureReason = "store_error"
)

// VerificationResult is the tagged outcome of a verification call. It is
// always exactly one of two shapes: a success carrying the record's user ID,
// or a failure carrying a reason. Failure details (Cause) are for logs and
// operators only and must never be shown verbatim to end users.
type VerificationResult struct {
	UserID int64
	Reason FailureReason
	Cause  error
}

// Verified reports whether the result is a success.
func (r VerificationResult) Verified() bool {
	return r.Reason == FailureNone
}

// Success builds a successful result for the given user ID.
func Success(userID int64) VerificationResult {
	return VerificationResult{UserID: userID}
}

// NotFound builds a failure result for a missing record.
func NotFound() VerificationResult {
	return VerificationResult{Reason: FailureNotFound}
}

// BadSecret builds a failure result for a mismatched secret.
func BadSecret() VerificationResult {
	return VerificationResult{Reason: FailureBadSecret}
}

// StoreFailure builds a failure result for an infrastructural error,
// retaining the underlying cause for logging.
func StoreFailure(cause error) VerificationResult {
	return VerificationResult{Reason: FailureStoreError, Cause: cause}
}
