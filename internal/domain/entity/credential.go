// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// CredentialRecord represents a stored credential keyed by identifier.
// It is created at provisioning time and is read-only to the verifier.
type CredentialRecord struct {
	ID         int64
	Identifier string
	SecretHash string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
