package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/daily-verse/backend/internal/apperrors"
	"github.com/daily-verse/backend/internal/core/domain"
	portssvc "github.com/daily-verse/backend/internal/core/ports/services"
	"github.com/daily-verse/backend/internal/dto"
	"github.com/daily-verse/backend/internal/handlers"
	"github.com/daily-verse/backend/internal/platform/config"
	"github.com/daily-verse/backend/internal/platform/telegram"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testServiceToken = "service-secret"

// --- Mock ReminderService ---
type MockReminderService struct {
	mock.Mock
}

var _ portssvc.ReminderSvcFacade = (*MockReminderService)(nil)

func (m *MockReminderService) CollectDue(ctx context.Context, now time.Time) ([]domain.DueReminder, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DueReminder), args.Error(1)
}

func (m *MockReminderService) Report(ctx context.Context, reminderKey string, status domain.ReminderStatus, errorCode, errorMessage *string) error {
	args := m.Called(ctx, reminderKey, status, errorCode, errorMessage)
	return args.Error(0)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetOrCreateFromTelegram(ctx context.Context, identity domain.TelegramUser) (*domain.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, telegramID string) (*domain.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateSettings(ctx context.Context, telegramID string, req dto.UpdateSettingsRequest) (*domain.User, error) {
	args := m.Called(ctx, telegramID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) SetRemindersEnabled(ctx context.Context, telegramID string, enabled bool) error {
	args := m.Called(ctx, telegramID, enabled)
	return args.Error(0)
}

func (m *MockUserService) UseSoftSkip(ctx context.Context, telegramID string) error {
	args := m.Called(ctx, telegramID)
	return args.Error(0)
}

// --- Mock StreakService ---
type MockStreakService struct {
	mock.Mock
}

var _ portssvc.StreakSvcFacade = (*MockStreakService)(nil)

func (m *MockStreakService) Streak(ctx context.Context, telegramID string) (*domain.Streak, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Streak), args.Error(1)
}

type InternalHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	reminderSvc *MockReminderService
	userSvc     *MockUserService
	streakSvc   *MockStreakService
}

func (s *InternalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.reminderSvc = new(MockReminderService)
	s.userSvc = new(MockUserService)
	s.streakSvc = new(MockStreakService)

	cfg := &config.Config{
		BotServiceToken: testServiceToken,
		WebAppURL:       "https://journal.example",
		RateLimit:       "1000-M",
	}
	services := &portssvc.ServiceContainer{
		User:     s.userSvc,
		Streak:   s.streakSvc,
		Reminder: s.reminderSvc,
	}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, services, telegram.NewVerifier("test:token"))
}

func (s *InternalHandlerTestSuite) request(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *InternalHandlerTestSuite) TestDue_RequiresToken() {
	w := s.request(http.MethodGet, "/internal/reminders/due", "", "")
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodGet, "/internal/reminders/due", "wrong-token", "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *InternalHandlerTestSuite) TestDue_ReturnsBatch() {
	s.reminderSvc.On("CollectDue", mock.Anything, mock.Anything).Return([]domain.DueReminder{{
		TelegramID:  "42",
		Locale:      "ru",
		DeeplinkURL: "https://journal.example/?startapp=today",
		MessageText: "msg",
		ReminderKey: "key-1",
	}}, nil)

	w := s.request(http.MethodGet, "/internal/reminders/due", testServiceToken, "")

	s.Require().Equal(http.StatusOK, w.Code)
	var due []domain.DueReminder
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &due))
	s.Require().Len(due, 1)
	s.Equal("key-1", due[0].ReminderKey)
}

func (s *InternalHandlerTestSuite) TestDue_EmptyBatchIsEmptyArray() {
	s.reminderSvc.On("CollectDue", mock.Anything, mock.Anything).Return(nil, nil)

	w := s.request(http.MethodGet, "/internal/reminders/due", testServiceToken, "")

	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *InternalHandlerTestSuite) TestReport_OK() {
	s.reminderSvc.On("Report", mock.Anything, "key-1", domain.ReminderStatusOK, (*string)(nil), (*string)(nil)).Return(nil)

	w := s.request(http.MethodPost, "/internal/reminders/report", testServiceToken,
		`{"reminderKey":"key-1","status":"ok"}`)

	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"ok":true}`, w.Body.String())
}

func (s *InternalHandlerTestSuite) TestReport_AlreadyReported() {
	s.reminderSvc.On("Report", mock.Anything, "key-1", domain.ReminderStatusOK, (*string)(nil), (*string)(nil)).
		Return(apperrors.ErrConflict)

	w := s.request(http.MethodPost, "/internal/reminders/report", testServiceToken,
		`{"reminderKey":"key-1","status":"ok"}`)

	s.Require().Equal(http.StatusConflict, w.Code)
	s.JSONEq(`{"ok":false,"reason":"already_reported"}`, w.Body.String())
}

func (s *InternalHandlerTestSuite) TestReport_UnknownKey() {
	s.reminderSvc.On("Report", mock.Anything, "ghost", domain.ReminderStatusError, mock.Anything, mock.Anything).
		Return(apperrors.ErrNotFound)

	w := s.request(http.MethodPost, "/internal/reminders/report", testServiceToken,
		`{"reminderKey":"ghost","status":"error","error_code":"forbidden","error_message":"blocked"}`)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *InternalHandlerTestSuite) TestReport_RejectsBadStatus() {
	w := s.request(http.MethodPost, "/internal/reminders/report", testServiceToken,
		`{"reminderKey":"key-1","status":"sent"}`)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.reminderSvc.AssertNotCalled(s.T(), "Report", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *InternalHandlerTestSuite) TestDeeplink_Today() {
	w := s.request(http.MethodGet, "/internal/bot/deeplink?target=today", testServiceToken, "")

	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"url":"https://journal.example/?startapp=today"}`, w.Body.String())
}

func (s *InternalHandlerTestSuite) TestSetRemindersEnabled() {
	s.userSvc.On("SetRemindersEnabled", mock.Anything, "42", false).Return(nil)

	w := s.request(http.MethodPost, "/internal/users/42/reminders", testServiceToken,
		`{"remindersEnabled":false}`)

	s.Require().Equal(http.StatusOK, w.Code)
	s.userSvc.AssertExpectations(s.T())
}

func (s *InternalHandlerTestSuite) TestUserStreak() {
	s.streakSvc.On("Streak", mock.Anything, "42").Return(&domain.Streak{Current: 3, Best: 7}, nil)

	w := s.request(http.MethodGet, "/internal/users/42/streak", testServiceToken, "")

	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"current":3,"best":7}`, w.Body.String())
}

func TestInternalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InternalHandlerTestSuite))
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers.RegisterRoutes(router, &config.Config{BotServiceToken: "t", RateLimit: "1000-M"}, &portssvc.ServiceContainer{}, telegram.NewVerifier("test:token"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
