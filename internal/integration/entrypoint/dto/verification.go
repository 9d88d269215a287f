// Package dto defines data transfer objects for API requests and responses.
package dto

// VerifyRequest represents the request body for credential verification.
type VerifyRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Secret     string `json:"secret" binding:"required"`
}

// VerifyResponse represents a successful verification response.
type VerifyResponse struct {
	UserID int64 `json:"user_id"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
