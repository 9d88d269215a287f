package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/credential-verifier/backend/internal/application/usecase/verification"
	"github.com/credential-verifier/backend/internal/domain/entity"
	domainerror "github.com/credential-verifier/backend/internal/domain/error"
	"github.com/credential-verifier/backend/internal/integration/adapters"
	"github.com/credential-verifier/backend/internal/integration/entrypoint/dto"
)

type stubStore struct {
	records map[string]*entity.CredentialRecord
	err     error
}

func (s *stubStore) FindByIdentifier(_ context.Context, identifier string) (*entity.CredentialRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	record, ok := s.records[identifier]
	if !ok {
		return nil, domainerror.ErrRecordNotFound
	}
	return record, nil
}

func newTestEngine(store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	hasher := adapters.NewSecretHasherWithCost(bcrypt.MinCost)
	useCase := verification.NewVerifyCredentialsUseCase(store, hasher)
	verificationController := NewVerificationController(useCase)

	engine := gin.New()
	engine.POST("/api/v1/verify", verificationController.Verify)
	return engine
}

func seededStore(t *testing.T) *stubStore {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cr3t"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash seed secret: %v", err)
	}

	return &stubStore{
		records: map[string]*entity.CredentialRecord{
			"alice@example.com": {ID: 42, Identifier: "alice@example.com", SecretHash: string(hash)},
		},
	}
}

func postVerify(t *testing.T, engine *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestVerificationController_Verify(t *testing.T) {
	engine := newTestEngine(seededStore(t))

	t.Run("valid credentials return the user id", func(t *testing.T) {
		recorder := postVerify(t, engine, dto.VerifyRequest{
			Identifier: "alice@example.com",
			Secret:     "s3cr3t",
		})

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}

		var resp dto.VerifyResponse
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.UserID != 42 {
			t.Errorf("expected user id 42, got %d", resp.UserID)
		}
	})

	t.Run("identifier is trimmed before verification", func(t *testing.T) {
		recorder := postVerify(t, engine, dto.VerifyRequest{
			Identifier: "  alice@example.com  ",
			Secret:     "s3cr3t",
		})

		if recorder.Code != http.StatusOK {
			t.Errorf("expected padded identifier to verify, got status %d", recorder.Code)
		}
	})

	t.Run("secret is not trimmed", func(t *testing.T) {
		recorder := postVerify(t, engine, dto.VerifyRequest{
			Identifier: "alice@example.com",
			Secret:     " s3cr3t ",
		})

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("expected padded secret to be rejected, got status %d", recorder.Code)
		}
	})

	t.Run("unknown identifier and wrong secret are indistinguishable", func(t *testing.T) {
		notFound := postVerify(t, engine, dto.VerifyRequest{
			Identifier: "bob@example.com",
			Secret:     "s3cr3t",
		})
		badSecret := postVerify(t, engine, dto.VerifyRequest{
			Identifier: "alice@example.com",
			Secret:     "wrong",
		})

		if notFound.Code != http.StatusUnauthorized || badSecret.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401 for both, got %d and %d", notFound.Code, badSecret.Code)
		}

		// The response bodies must not leak whether the identifier exists.
		if notFound.Body.String() != badSecret.Body.String() {
			t.Errorf("expected identical bodies, got %q and %q",
				notFound.Body.String(), badSecret.Body.String())
		}
	})

	t.Run("missing fields return bad request", func(t *testing.T) {
		recorder := postVerify(t, engine, map[string]string{"identifier": "alice@example.com"})

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", recorder.Code)
		}
	})
}

func TestVerificationController_StoreFailure(t *testing.T) {
	engine := newTestEngine(&stubStore{err: errors.New("connection refused: 10.0.3.7:5432")})

	recorder := postVerify(t, engine, dto.VerifyRequest{
		Identifier: "alice@example.com",
		Secret:     "s3cr3t",
	})

	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", recorder.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != string(domainerror.ErrCodeStoreError) {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeStoreError, resp.Code)
	}

	// Internal topology must not leak to end users.
	if bytes.Contains(recorder.Body.Bytes(), []byte("10.0.3.7")) {
		t.Error("expected store failure details to be withheld from the response")
	}
}

func TestVerificationController_MalformedStoredHash(t *testing.T) {
	// A record whose stored blob is not bcrypt at all must surface as an
	// infrastructure failure, not as bad credentials.
	engine := newTestEngine(&stubStore{
		records: map[string]*entity.CredentialRecord{
			"alice@example.com": {ID: 42, Identifier: "alice@example.com", SecretHash: "not-a-bcrypt-hash"},
		},
	})

	recorder := postVerify(t, engine, dto.VerifyRequest{
		Identifier: "alice@example.com",
		Secret:     "s3cr3t",
	})

	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", recorder.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != string(domainerror.ErrCodeMalformedHash) {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeMalformedHash, resp.Code)
	}
}
