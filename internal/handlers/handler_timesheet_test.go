package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	portssvc "github.com/tsinsights/timesheet_insights_app/internal/core/ports/services"
	"github.com/tsinsights/timesheet_insights_app/internal/dto"
	"github.com/tsinsights/timesheet_insights_app/internal/handlers"
	"github.com/tsinsights/timesheet_insights_app/internal/platform/config"
	"github.com/tsinsights/timesheet_insights_app/internal/utils"
)

const testJWTSecret = "handler-test-secret"

// --- Mock UserService ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID string, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockUserService) EnsureAdminUser(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID string, rawToken string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, rawToken, expiryTime)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, userID string, rawToken string) (*domain.User, error) {
	args := m.Called(ctx, userID, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockTokenService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock CredentialService ---

type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Connect(ctx context.Context, userID string, req dto.ZohoConnectRequest) (domain.ConnectOutcome, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(domain.ConnectOutcome), args.Error(1)
}

func (m *MockCredentialService) Disconnect(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCredentialService) Status(ctx context.Context, userID string) (domain.CredentialStatus, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.CredentialStatus), args.Error(1)
}

func (m *MockCredentialService) UsableCredential(ctx context.Context, userID string) (*domain.Credential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

var _ portssvc.CredentialSvcFacade = (*MockCredentialService)(nil)

// --- Mock TimesheetService ---

type MockTimesheetService struct {
	mock.Mock
}

func (m *MockTimesheetService) Sync(ctx context.Context, userID string, rangeToken, from, to string) (domain.SyncStats, error) {
	args := m.Called(ctx, userID, rangeToken, from, to)
	return args.Get(0).(domain.SyncStats), args.Error(1)
}

var _ portssvc.TimesheetSvcFacade = (*MockTimesheetService)(nil)

// --- Mock ReportingService ---

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetTimesheetData(ctx context.Context, userID string) (*domain.TimesheetData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimesheetData), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite Setup ---

type TimesheetHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockTimesheet  *MockTimesheetService
	mockReporting  *MockReportingService
	mockCredential *MockCredentialService
	userID         string
	authHeader     string
}

func (suite *TimesheetHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockTimesheet = new(MockTimesheetService)
	suite.mockReporting = new(MockReportingService)
	suite.mockCredential = new(MockCredentialService)

	container := &portssvc.ServiceContainer{
		User:       new(MockUserService),
		Token:      new(MockTokenService),
		Credential: suite.mockCredential,
		Timesheet:  suite.mockTimesheet,
		Reporting:  suite.mockReporting,
	}

	cfg := &config.Config{
		JWTSecret:              testJWTSecret,
		JWTExpiryDuration:      time.Hour,
		JWTIssuer:              "test",
		RefreshTokenCookieName: "rtid",
		RefreshTokenCookiePath: "/api/v1/auth",
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)

	suite.userID = "user-1"
	token, err := utils.GenerateJWT(suite.userID, testJWTSecret, time.Hour, "test")
	suite.Require().NoError(err)
	suite.authHeader = "Bearer " + token
}

func (suite *TimesheetHandlerTestSuite) doRequest(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", suite.authHeader)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TimesheetHandlerTestSuite) TestSync_Success() {
	stats := domain.SyncStats{TimeEntries: 12, ProjectHours: 3, EmployeeHours: 4}
	suite.mockTimesheet.On("Sync", mock.Anything, suite.userID, domain.RangeLast7Days, "", "").Return(stats, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/timesheet/sync?dateRange=Last+7+days")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SyncResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(stats, resp.Stats)
	suite.mockTimesheet.AssertExpectations(suite.T())
}

func (suite *TimesheetHandlerTestSuite) TestSync_ConflictWhenAlreadyRunning() {
	suite.mockTimesheet.On("Sync", mock.Anything, suite.userID, domain.RangeLast7Days, "", "").Return(domain.SyncStats{}, apperrors.ErrSyncInProgress).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/timesheet/sync?dateRange=Last+7+days")

	suite.Equal(http.StatusConflict, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Equal("sync already in progress", resp.Message)
}

func (suite *TimesheetHandlerTestSuite) TestSync_UpstreamAuthExpired() {
	suite.mockTimesheet.On("Sync", mock.Anything, suite.userID, domain.RangeThisMonth, "", "").Return(domain.SyncStats{}, apperrors.ErrUpstreamAuthExpired).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/timesheet/sync?dateRange=This+month")

	suite.Equal(http.StatusUnauthorized, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
}

func (suite *TimesheetHandlerTestSuite) TestSync_UnknownRangeRejectedAtBinding() {
	w := suite.doRequest(http.MethodPost, "/api/v1/timesheet/sync?dateRange=Yesterday")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTimesheet.AssertNotCalled(suite.T(), "Sync", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TimesheetHandlerTestSuite) TestSync_MissingDateRangeRejected() {
	w := suite.doRequest(http.MethodPost, "/api/v1/timesheet/sync")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TimesheetHandlerTestSuite) TestSync_RequiresAuthentication() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/timesheet/sync?dateRange=Last+7+days", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
}

func (suite *TimesheetHandlerTestSuite) TestData_ReturnsStoredAggregates() {
	data := &domain.TimesheetData{
		TimeEntries:  []domain.TimeEntry{{EntryID: "e1", UserID: suite.userID, ProjectName: "P"}},
		ProjectHours: []domain.HoursSummary{{UserID: suite.userID, Name: "P", TotalHours: 8}},
		Stats:        domain.DashboardStats{TotalHours: 8, ActiveProjects: 1},
	}
	suite.mockReporting.On("GetTimesheetData", mock.Anything, suite.userID).Return(data, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/timesheet/data")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TimesheetDataResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Len(resp.Data.TimeEntries, 1)
	suite.Equal(1, resp.Data.Stats.ActiveProjects)
}

func (suite *TimesheetHandlerTestSuite) TestZohoStatus_Disconnected() {
	suite.mockCredential.On("Status", mock.Anything, suite.userID).Return(domain.CredentialStatus{Connected: false}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/zoho/status")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ZohoStatusResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.False(resp.Connected)
}

func (suite *TimesheetHandlerTestSuite) TestZohoDisconnect() {
	suite.mockCredential.On("Disconnect", mock.Anything, suite.userID).Return(nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/zoho/disconnect")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockCredential.AssertExpectations(suite.T())
}

func TestTimesheetHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TimesheetHandlerTestSuite))
}
