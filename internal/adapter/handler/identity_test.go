package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/meetmind-team/meetmind/internal/adapter/repository"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
	"github.com/meetmind-team/meetmind/internal/infrastructure/cache"
	"github.com/meetmind-team/meetmind/internal/infrastructure/http/middleware"
	"github.com/meetmind-team/meetmind/internal/usecase/identity"
	"github.com/meetmind-team/meetmind/pkg/session"
	"github.com/meetmind-team/meetmind/pkg/signature"
)

const testWebhookSecret = "whsec_test"

type IdentityHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	e       *echo.Echo
	handler *Identity
}

func (suite *IdentityHandlerTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.AutoMigrate(&entities.User{}, &entities.Meeting{}, &entities.Task{}))

	identitySvc := identity.NewService(repository.NewUserRepository(suite.db), cache.NewMemoryStore(), nil)
	suite.handler = NewIdentity(identitySvc, testWebhookSecret, nil)

	suite.e = echo.New()
}

func (suite *IdentityHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *IdentityHandlerTestSuite) postWebhook(payload []byte, sig string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/identity", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if sig != "" {
		req.Header.Set("X-Signature", sig)
	}
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)
	suite.Require().NoError(suite.handler.Webhook(c))
	return rec
}

func (suite *IdentityHandlerTestSuite) TestWebhook_RejectsBadSignature() {
	payload := []byte(`{"type":"user.created","data":{"id":"subj_a","email":"a@example.com"}}`)

	rec := suite.postWebhook(payload, "deadbeef")
	suite.Equal(http.StatusUnauthorized, rec.Code)

	rec = suite.postWebhook(payload, "")
	suite.Equal(http.StatusUnauthorized, rec.Code)

	var count int64
	suite.db.Model(&entities.User{}).Count(&count)
	suite.Zero(count)
}

func (suite *IdentityHandlerTestSuite) TestWebhook_UserLifecycle() {
	payload := []byte(`{"type":"user.created","data":{"id":"subj_a","email":"a@example.com","first_name":"Ada","last_name":"L"}}`)
	rec := suite.postWebhook(payload, signature.Sign(testWebhookSecret, payload))
	suite.Require().Equal(http.StatusOK, rec.Code)

	var user entities.User
	suite.Require().NoError(suite.db.First(&user, "subject = ?", "subj_a").Error)
	suite.Equal("a@example.com", user.Email)
	suite.Equal("Ada", user.FirstName)

	payload = []byte(`{"type":"user.updated","data":{"id":"subj_a","email":"new@example.com"}}`)
	rec = suite.postWebhook(payload, signature.Sign(testWebhookSecret, payload))
	suite.Require().Equal(http.StatusOK, rec.Code)

	suite.Require().NoError(suite.db.First(&user, "subject = ?", "subj_a").Error)
	suite.Equal("new@example.com", user.Email)

	payload = []byte(`{"type":"user.deleted","data":{"id":"subj_a"}}`)
	rec = suite.postWebhook(payload, signature.Sign(testWebhookSecret, payload))
	suite.Require().Equal(http.StatusOK, rec.Code)

	var count int64
	suite.db.Model(&entities.User{}).Where("subject = ?", "subj_a").Count(&count)
	suite.Zero(count)
}

func (suite *IdentityHandlerTestSuite) TestMe_SyncsOnFirstAccess() {
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)
	c.Set(middleware.SessionContextKey, &session.Claims{
		Email:            "fresh@example.com",
		FirstName:        "Fresh",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "subj_fresh"},
	})

	suite.Require().NoError(suite.handler.Me(c))
	suite.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Subject string `json:"subject"`
			Email   string `json:"email"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Equal("subj_fresh", body.Data.Subject)
	suite.Equal("fresh@example.com", body.Data.Email)

	// The mirror row was created
	var user entities.User
	suite.Require().NoError(suite.db.First(&user, "subject = ?", "subj_fresh").Error)
	suite.Equal("fresh@example.com", user.Email)

	// Second access reuses it
	suite.Require().NoError(suite.handler.Me(c))
	var count int64
	suite.db.Model(&entities.User{}).Count(&count)
	suite.EqualValues(1, count)
}

func TestIdentityHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityHandlerTestSuite))
}
