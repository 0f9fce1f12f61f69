package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/playground-auth/internal/config"
	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/service"
	"github.com/MKhiriev/playground-auth/models"
)

// ─────────────────────────────────────────────
// Service mocks. Each method field can be overridden per test case.
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerUserFn func(ctx context.Context, request models.RegisterRequest) (models.User, error)
	loginFn        func(ctx context.Context, request models.LoginRequest) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	return m.registerUserFn(ctx, request)
}

func (m *mockAuthService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	return m.loginFn(ctx, request)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockProfileService struct {
	getProfileFn     func(ctx context.Context, userID string) (models.User, error)
	getUsageFn       func(ctx context.Context, userID string) (models.Usage, error)
	changeUsernameFn func(ctx context.Context, userID, newUsername string) error
	changeEmailFn    func(ctx context.Context, userID, newEmail string) error
	changePasswordFn func(ctx context.Context, userID string, request models.ChangePasswordRequest) (models.User, error)
	verifyPasswordFn func(ctx context.Context, userID, password string) error
	deleteAccountFn  func(ctx context.Context, userID string) error
}

func (m *mockProfileService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	return m.getProfileFn(ctx, userID)
}

func (m *mockProfileService) GetUsage(ctx context.Context, userID string) (models.Usage, error) {
	return m.getUsageFn(ctx, userID)
}

func (m *mockProfileService) ChangeUsername(ctx context.Context, userID, newUsername string) error {
	return m.changeUsernameFn(ctx, userID, newUsername)
}

func (m *mockProfileService) ChangeEmail(ctx context.Context, userID, newEmail string) error {
	return m.changeEmailFn(ctx, userID, newEmail)
}

func (m *mockProfileService) ChangePassword(ctx context.Context, userID string, request models.ChangePasswordRequest) (models.User, error) {
	return m.changePasswordFn(ctx, userID, request)
}

func (m *mockProfileService) VerifyPassword(ctx context.Context, userID, password string) error {
	return m.verifyPasswordFn(ctx, userID, password)
}

func (m *mockProfileService) DeleteAccount(ctx context.Context, userID string) error {
	return m.deleteAccountFn(ctx, userID)
}

type mockUsageService struct {
	incrementFn func(ctx context.Context, kind models.CounterKind, username, languageName string) error
}

func (m *mockUsageService) Increment(ctx context.Context, kind models.CounterKind, username, languageName string) error {
	return m.incrementFn(ctx, kind, username, languageName)
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const (
	validToken = "valid-token"
	testUserID = "user-1"
)

// acceptingAuth accepts validToken for testUserID and rejects anything else.
func acceptingAuth() *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString != validToken {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{UserID: testUserID}, nil
		},
	}
}

// newTestRouter builds the full router over svcs. Missing services are
// filled with mocks whose methods must not be reached.
func newTestRouter(t *testing.T, svcs *service.Services) http.Handler {
	t.Helper()
	if svcs.AuthService == nil {
		svcs.AuthService = acceptingAuth()
	}
	if svcs.ProfileService == nil {
		svcs.ProfileService = &mockProfileService{}
	}
	if svcs.UsageService == nil {
		svcs.UsageService = &mockUsageService{}
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}

	return NewHandler(svcs, config.Server{}, logger.Nop()).Init()
}

// serve sends one request through router. A non-empty token is sent as a
// bearer credential.
func serve(router http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// msgOf decodes the {"msg": ...} body of rec.
func msgOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp.Msg
}
