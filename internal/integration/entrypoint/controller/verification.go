// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/credential-verifier/backend/internal/application/usecase/verification"
	"github.com/credential-verifier/backend/internal/domain/entity"
	domainerror "github.com/credential-verifier/backend/internal/domain/error"
	"github.com/credential-verifier/backend/internal/integration/entrypoint/dto"
	"github.com/credential-verifier/backend/internal/integration/entrypoint/middleware"
)

// VerificationController handles credential verification endpoints.
type VerificationController struct {
	verifyUseCase *verification.VerifyCredentialsUseCase
}

// NewVerificationController creates a new verification controller instance.
func NewVerificationController(verifyUseCase *verification.VerifyCredentialsUseCase) *VerificationController {
	return &VerificationController{
		verifyUseCase: verifyUseCase,
	}
}

// Verify handles POST /verify requests.
//
// Input normalization is this layer's responsibility, not the core's: the
// identifier is trimmed to tolerate incidental whitespace from form input,
// while the secret is passed through byte-for-byte since trimming could
// alter an intentional-whitespace secret.
func (c *VerificationController) Verify(ctx *gin.Context) {
	var req dto.VerifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := verification.VerifyCredentialsInput{
		Identifier: strings.TrimSpace(req.Identifier),
		Secret:     req.Secret,
	}

	result := c.verifyUseCase.Execute(ctx.Request.Context(), input)

	switch result.Reason {
	case entity.FailureNone:
		ctx.JSON(http.StatusOK, dto.VerifyResponse{
			UserID: result.UserID,
		})

	case entity.FailureNotFound, entity.FailureBadSecret:
		// NotFound and BadSecret are collapsed into one message and one
		// code here to avoid identifier enumeration; the distinct reason
		// is kept in the log line for operators.
		slog.Info("Credential verification rejected",
			"reason", string(result.Reason),
			"request_id", middleware.GetRequestID(ctx),
		)
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Invalid identifier or secret",
			Code:  string(domainerror.ErrCodeInvalidCredentials),
		})

	case entity.FailureStoreError:
		// The underlying cause is logged for operators but never shown
		// to end users. The code distinguishes a failing store from a
		// stored blob the hasher rejected.
		code := domainerror.ErrCodeStoreError
		var verifyErr *domainerror.VerifyError
		if errors.As(result.Cause, &verifyErr) {
			code = verifyErr.Code
		}
		slog.Error("Credential store failure during verification",
			"error", result.Cause,
			"request_id", middleware.GetRequestID(ctx),
		)
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Verification is temporarily unavailable",
			Code:  string(code),
		})
	}
}
