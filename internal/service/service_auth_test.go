package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/playground-auth/internal/config"
	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/mock"
	"github.com/MKhiriev/playground-auth/internal/store"
	"github.com/MKhiriev/playground-auth/internal/utils"
	"github.com/MKhiriev/playground-auth/internal/validators"
	"github.com/MKhiriev/playground-auth/models"
)

const testSignKey = "test-sign-key"

var fixedNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func testClock() clock {
	return clock{now: func() time.Time { return fixedNow }, offset: 5*time.Hour + 30*time.Minute}
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:     testSignKey,
		PasswordHashCost: bcrypt.MinCost,
	}
}

func newTestAuthSvc(t *testing.T) (*authService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)

	svc := newAuthService(repo, validators.NewUserValidator(), testAppConfig(), testClock(), logger.Nop())
	return svc, repo
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{Username: "alice_01", Email: "alice@example.com", Password: "password1"}
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	svc, repo := newTestAuthSvc(t)
	ctx := context.Background()
	req := validRegisterRequest()

	gomock.InOrder(
		repo.EXPECT().FindUserByEmail(ctx, req.Email).Return(models.User{}, store.ErrUserNotFound),
		repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "alice_01", u.Username)
				assert.Equal(t, "alice@example.com", u.Email)
				assert.NotEqual(t, req.Password, u.PasswordHash)
				assert.True(t, utils.CheckPassword(u.PasswordHash, req.Password))
				assert.Nil(t, u.LastLogin)
				assert.Equal(t, fixedNow.Add(5*time.Hour+30*time.Minute), u.CreatedAt)
				assert.Len(t, u.RunCodeCount, len(models.Languages))
				u.UserID = "user-1"
				return u, nil
			},
		),
	)

	user, err := svc.RegisterUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
}

func TestAuthService_RegisterUser_DuplicateEmailWinsOverValidation(t *testing.T) {
	svc, repo := newTestAuthSvc(t)
	ctx := context.Background()

	// every other field is invalid, the duplicate is still reported first
	req := models.RegisterRequest{Username: "a!", Email: "alice@example.com", Password: "x"}
	repo.EXPECT().FindUserByEmail(ctx, req.Email).Return(models.User{UserID: "user-1"}, nil)

	_, err := svc.RegisterUser(ctx, req)
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_RegisterUser_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		wantErr error
	}{
		{"bad charset", func(r *models.RegisterRequest) { r.Username = "alice smith" }, validators.ErrInvalidUsernameFormat},
		{"too short username", func(r *models.RegisterRequest) { r.Username = "abcd" }, validators.ErrInvalidUsernameLength},
		{"bad email beats short password", func(r *models.RegisterRequest) { r.Email = "alice"; r.Password = "short" }, validators.ErrInvalidEmail},
		{"seven character password", func(r *models.RegisterRequest) { r.Password = "1234567" }, validators.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestAuthSvc(t)
			req := validRegisterRequest()
			tt.mutate(&req)

			repo.EXPECT().FindUserByEmail(gomock.Any(), req.Email).Return(models.User{}, store.ErrUserNotFound)

			_, err := svc.RegisterUser(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_RegisterUser_EightCharacterPassword(t *testing.T) {
	svc, repo := newTestAuthSvc(t)
	req := validRegisterRequest()
	req.Password = "12345678"

	repo.EXPECT().FindUserByEmail(gomock.Any(), req.Email).Return(models.User{}, store.ErrUserNotFound)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) { return u, nil },
	)

	_, err := svc.RegisterUser(context.Background(), req)
	require.NoError(t, err)
}

func TestAuthService_RegisterUser_StoreUniqueViolation(t *testing.T) {
	for _, storeErr := range []error{store.ErrUsernameTaken, store.ErrEmailTaken, store.ErrUserAlreadyExists} {
		t.Run(storeErr.Error(), func(t *testing.T) {
			svc, repo := newTestAuthSvc(t)
			req := validRegisterRequest()

			repo.EXPECT().FindUserByEmail(gomock.Any(), req.Email).Return(models.User{}, store.ErrUserNotFound)
			repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, storeErr)

			_, err := svc.RegisterUser(context.Background(), req)
			require.ErrorIs(t, err, ErrUserAlreadyExists)
		})
	}
}

func TestAuthService_RegisterUser_LookupFails(t *testing.T) {
	svc, repo := newTestAuthSvc(t)
	dbErr := errors.New("connection refused")

	repo.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, dbErr)

	_, err := svc.RegisterUser(context.Background(), validRegisterRequest())
	require.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrUserAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo := newTestAuthSvc(t)
	ctx := context.Background()

	stored := models.User{UserID: "user-1", Username: "alice_01", Email: "alice@example.com", PasswordHash: hashed(t, "password1")}
	wantLogin := fixedNow.Add(5*time.Hour + 30*time.Minute)

	gomock.InOrder(
		repo.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(stored, nil),
		repo.EXPECT().UpdateLastLogin(ctx, "user-1", wantLogin).Return(nil),
	)

	user, err := svc.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	assert.Equal(t, wantLogin, *user.LastLogin)
	assert.Equal(t, "alice_01", user.Username)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		svc, repo := newTestAuthSvc(t)
		repo.EXPECT().FindUserByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, store.ErrUserNotFound)

		_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "password1"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo := newTestAuthSvc(t)
		repo.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").
			Return(models.User{UserID: "user-1", PasswordHash: hashed(t, "password1")}, nil)

		_, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "password2"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc, _ := newTestAuthSvc(t)

		_, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Login_UpdateLastLoginFails(t *testing.T) {
	svc, repo := newTestAuthSvc(t)
	dbErr := errors.New("write failed")

	repo.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).
		Return(models.User{UserID: "user-1", PasswordHash: hashed(t, "password1")}, nil)
	repo.EXPECT().UpdateLastLogin(gomock.Any(), "user-1", gomock.Any()).Return(dbErr)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "password1"})
	require.ErrorIs(t, err, dbErr)
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_CreateAndParseToken(t *testing.T) {
	svc, _ := newTestAuthSvc(t)
	ctx := context.Background()
	user := models.User{UserID: "user-1"}

	first, err := svc.CreateToken(ctx, user)
	require.NoError(t, err)
	second, err := svc.CreateToken(ctx, user)
	require.NoError(t, err)

	for _, token := range []models.Token{first, second} {
		parsed, err := svc.ParseToken(ctx, token.SignedString)
		require.NoError(t, err)
		assert.Equal(t, "user-1", parsed.UserID)
	}
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	svc, _ := newTestAuthSvc(t)
	ctx := context.Background()

	foreign, err := utils.GenerateJWTToken("user-1", time.Now(), 0, "another-key")
	require.NoError(t, err)
	expired, err := utils.GenerateJWTToken("user-1", time.Now().Add(-2*time.Hour), time.Hour, testSignKey)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":       "not-a-jwt",
		"foreign key":   foreign.SignedString,
		"expired token": expired.SignedString,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(ctx, raw)
			require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}

func TestAuthService_CreateToken_Fails(t *testing.T) {
	svc, _ := newTestAuthSvc(t)
	svc.tokenSignKey = ""

	_, err := svc.CreateToken(context.Background(), models.User{UserID: "user-1"})
	require.ErrorIs(t, err, ErrTokenCreationFailed)
}
