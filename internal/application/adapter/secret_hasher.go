package adapter

// SecretHasher defines the interface for one-way secret hashing and
// constant-time verification.
type SecretHasher interface {
	// Hash produces a salted, self-describing hash blob for the plaintext
	// secret. Used at provisioning time.
	Hash(secret string) (string, error)

	// Verify compares a plaintext secret with a stored hash blob. It
	// returns nil on a match, domain ErrSecretMismatch when the secret
	// does not match, and domain ErrMalformedHash when the blob cannot
	// be parsed.
	Verify(secret, secretHash string) error
}
