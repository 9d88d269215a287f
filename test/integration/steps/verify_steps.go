// Package steps defines the godog step implementations for the
// credential verification feature.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/credential-verifier/backend/internal/application/adapter"
	"github.com/credential-verifier/backend/internal/application/usecase/verification"
	"github.com/credential-verifier/backend/internal/domain/entity"
	"github.com/credential-verifier/backend/internal/infra/server/router"
	"github.com/credential-verifier/backend/internal/integration/adapters"
	"github.com/credential-verifier/backend/internal/integration/entrypoint/controller"
	"github.com/credential-verifier/backend/internal/integration/persistence"
	"github.com/credential-verifier/backend/internal/integration/persistence/model"
	"github.com/credential-verifier/backend/internal/integration/redisstore"
	"github.com/credential-verifier/backend/test/integration/mock"
)

type response struct {
	status int
	body   []byte
}

// testContext carries per-scenario state. Each scenario gets fresh stores,
// so there is no cross-scenario leakage.
type testContext struct {
	db     *mock.Db
	redis  *mock.Redis
	store  adapter.CredentialStore
	hasher adapter.SecretHasher

	engine       *gin.Engine
	lastResponse *response
	rejections   []*response
}

// InitializeScenario wires the step definitions for one scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		// MinCost keeps the suite fast; production cost comes from config.
		hasher: adapters.NewSecretHasherWithCost(bcrypt.MinCost),
	}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		db, err := mock.NewDb(&model.CredentialModel{})
		if err != nil {
			return c, err
		}
		test.db = db
		test.store = persistence.NewCredentialRepository(db.DbConn)
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, _ error) (context.Context, error) {
		if test.db != nil {
			_ = test.db.Close()
		}
		if test.redis != nil {
			test.redis.Close()
		}
		return c, nil
	})

	ctx.Step(`^a credential record with id (\d+), identifier "([^"]*)" and secret "([^"]*)"$`, test.aCredentialRecord)
	ctx.Step(`^the credential store is backed by redis$`, test.storeBackedByRedis)
	ctx.Step(`^the credential store is unreachable$`, test.storeIsUnreachable)
	ctx.Step(`^I verify identifier "([^"]*)" with secret "([^"]*)"$`, test.iVerify)
	ctx.Step(`^the verification succeeds with user id (\d+)$`, test.verificationSucceeds)
	ctx.Step(`^the verification is rejected$`, test.verificationIsRejected)
	ctx.Step(`^both rejections are identical$`, test.rejectionsAreIdentical)
	ctx.Step(`^the verification fails with a store error$`, test.verificationFailsWithStoreError)
	ctx.Step(`^I check the service health$`, test.iCheckHealth)
	ctx.Step(`^the store is reported as "([^"]*)"$`, test.storeReportedAs)
}

func (t *testContext) buildEngine() *gin.Engine {
	if t.engine != nil {
		return t.engine
	}

	healthChecker := t.db.HealthCheck
	useCase := verification.NewVerifyCredentialsUseCase(t.store, t.hasher)

	r := router.NewRouter(
		controller.NewHealthController(healthChecker),
		controller.NewVerificationController(useCase),
	)
	t.engine = r.Setup("test")
	return t.engine
}

func (t *testContext) aCredentialRecord(id int, identifier, secret string) error {
	hash, err := t.hasher.Hash(secret)
	if err != nil {
		return fmt.Errorf("failed to hash secret: %w", err)
	}

	if t.redis != nil {
		t.redis.HSet(redisstore.Key(identifier),
			"id", strconv.Itoa(id),
			"secret_hash", hash,
		)
		return nil
	}

	record := model.FromEntity(&entity.CredentialRecord{
		ID:         int64(id),
		Identifier: identifier,
		SecretHash: hash,
	})
	return t.db.DbConn.Create(record).Error
}

func (t *testContext) storeBackedByRedis() error {
	redis, err := mock.NewRedis()
	if err != nil {
		return err
	}
	t.redis = redis
	t.store = redisstore.NewCredentialRepository(redis.Client)
	t.engine = nil
	return nil
}

func (t *testContext) storeIsUnreachable() error {
	return t.db.Close()
}

func (t *testContext) iVerify(identifier, secret string) error {
	payload, err := json.Marshal(map[string]string{
		"identifier": identifier,
		"secret":     secret,
	})
	if err != nil {
		return err
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/verify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	t.buildEngine().ServeHTTP(recorder, req)

	t.lastResponse = &response{status: recorder.Code, body: recorder.Body.Bytes()}
	if recorder.Code == http.StatusUnauthorized {
		t.rejections = append(t.rejections, t.lastResponse)
	}
	return nil
}

func (t *testContext) verificationSucceeds(userID int) error {
	if t.lastResponse == nil {
		return fmt.Errorf("no verification was performed")
	}
	if t.lastResponse.status != http.StatusOK {
		return fmt.Errorf("expected status 200, got %d: %s", t.lastResponse.status, t.lastResponse.body)
	}

	var resp struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.Unmarshal(t.lastResponse.body, &resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.UserID != int64(userID) {
		return fmt.Errorf("expected user id %d, got %d", userID, resp.UserID)
	}
	return nil
}

func (t *testContext) verificationIsRejected() error {
	if t.lastResponse == nil {
		return fmt.Errorf("no verification was performed")
	}
	if t.lastResponse.status != http.StatusUnauthorized {
		return fmt.Errorf("expected status 401, got %d: %s", t.lastResponse.status, t.lastResponse.body)
	}
	return nil
}

func (t *testContext) rejectionsAreIdentical() error {
	if len(t.rejections) < 2 {
		return fmt.Errorf("expected at least two rejections, got %d", len(t.rejections))
	}
	last := t.rejections[len(t.rejections)-1]
	previous := t.rejections[len(t.rejections)-2]
	if !bytes.Equal(last.body, previous.body) {
		return fmt.Errorf("rejection bodies differ: %s vs %s", previous.body, last.body)
	}
	return nil
}

func (t *testContext) verificationFailsWithStoreError() error {
	if t.lastResponse == nil {
		return fmt.Errorf("no verification was performed")
	}
	if t.lastResponse.status != http.StatusServiceUnavailable {
		return fmt.Errorf("expected status 503, got %d: %s", t.lastResponse.status, t.lastResponse.body)
	}
	return nil
}

func (t *testContext) iCheckHealth() error {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	t.buildEngine().ServeHTTP(recorder, req)

	t.lastResponse = &response{status: recorder.Code, body: recorder.Body.Bytes()}
	return nil
}

func (t *testContext) storeReportedAs(expected string) error {
	if t.lastResponse == nil {
		return fmt.Errorf("no health check was performed")
	}

	var resp struct {
		Store string `json:"store"`
	}
	if err := json.Unmarshal(t.lastResponse.body, &resp); err != nil {
		return fmt.Errorf("failed to decode health response: %w", err)
	}
	if resp.Store != expected {
		return fmt.Errorf("expected store %q, got %q", expected, resp.Store)
	}
	return nil
}
