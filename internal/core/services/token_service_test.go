package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	portssvc "github.com/tsinsights/timesheet_insights_app/internal/core/ports/services"
	"github.com/tsinsights/timesheet_insights_app/internal/core/services"
	"github.com/tsinsights/timesheet_insights_app/internal/platform/config"
	"github.com/tsinsights/timesheet_insights_app/internal/utils"
)

type TokenServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "test-issuer",
		RefreshTokenExpiryDuration: 7 * 24 * time.Hour,
	}
	suite.service = services.NewTokenService(cfg, suite.mockRepo)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_ValidJWT() {
	user := &domain.User{UserID: "u1"}

	token, expiry, err := suite.service.GenerateAccessToken(context.Background(), user)

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.True(expiry.After(time.Now()))

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal("u1", claims.Subject)
	suite.Equal("test-issuer", claims.Issuer)
}

func (suite *TokenServiceTestSuite) TestStoreAndValidateRefreshToken() {
	ctx := context.Background()
	user := &domain.User{UserID: "u1"}

	rawToken, expiry, err := suite.service.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)
	suite.NotEmpty(rawToken)

	var storedHash string
	suite.mockRepo.On("UpdateRefreshToken", ctx, "u1", mock.AnythingOfType("string"), expiry).Run(func(args mock.Arguments) {
		storedHash = args.Get(2).(string)
	}).Return(nil).Once()
	suite.Require().NoError(suite.service.StoreRefreshToken(ctx, "u1", rawToken, expiry))
	suite.NotEqual(rawToken, storedHash)

	stored := &domain.User{UserID: "u1", RefreshTokenHash: storedHash, RefreshTokenExpiryTime: &expiry}
	suite.mockRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()

	validated, err := suite.service.ValidateRefreshToken(ctx, "u1", rawToken)
	suite.Require().NoError(err)
	suite.Equal("u1", validated.UserID)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Expired() {
	ctx := context.Background()
	expired := time.Now().Add(-time.Minute)
	stored := &domain.User{UserID: "u1", RefreshTokenHash: utils.HashRefreshToken("raw"), RefreshTokenExpiryTime: &expired}
	suite.mockRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()

	_, err := suite.service.ValidateRefreshToken(ctx, "u1", "raw")

	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Mismatch() {
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)
	stored := &domain.User{UserID: "u1", RefreshTokenHash: utils.HashRefreshToken("the real one"), RefreshTokenExpiryTime: &expiry}
	suite.mockRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()

	_, err := suite.service.ValidateRefreshToken(ctx, "u1", "an imposter")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_NoStoredToken() {
	ctx := context.Background()
	stored := &domain.User{UserID: "u1"}
	suite.mockRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()

	_, err := suite.service.ValidateRefreshToken(ctx, "u1", "raw")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
