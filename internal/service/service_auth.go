package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/playground-auth/internal/config"
	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/store"
	"github.com/MKhiriev/playground-auth/internal/utils"
	"github.com/MKhiriev/playground-auth/internal/validators"
	"github.com/MKhiriev/playground-auth/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// validator checks registration input before anything is written.
	validator validators.Validator

	// passwordHashCost is the bcrypt work factor of new password hashes.
	passwordHashCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenDuration controls how long a newly issued JWT remains valid.
	// Zero issues tokens without an expiry.
	tokenDuration time.Duration

	clock clock

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

func newAuthService(userRepository store.UserRepository, validator validators.Validator, cfg config.App, clk clock, logger *logger.Logger) *authService {
	return &authService{
		userRepository:   userRepository,
		validator:        validator,
		passwordHashCost: cfg.PasswordHashCost,
		tokenSignKey:     cfg.TokenSignKey,
		tokenDuration:    cfg.TokenDuration,
		clock:            clk,
		logger:           logger,
	}
}

// RegisterUser creates a new user account.
//
// An existing email is rejected before the input is validated, so a
// duplicate email always yields ErrUserAlreadyExists. The username, email
// and password are then checked in that order and the first failure is
// returned as a validators error. The stored record carries a bcrypt hash,
// a createdAt stamped by the service clock and zeroed counters.
//
// A uniqueness violation reported by the store (a taken username, or an
// email registered concurrently) is also returned as ErrUserAlreadyExists.
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	_, err := a.userRepository.FindUserByEmail(ctx, request.Email)
	switch {
	case err == nil:
		log.Debug().Str("email", request.Email).Msg("email is already registered")
		return models.User{}, ErrUserAlreadyExists
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("email", request.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = a.validator.Validate(ctx, request); err != nil {
		log.Debug().Err(err).Str("username", request.Username).Msg("invalid registration data")
		return models.User{}, err
	}

	passwordHash, err := utils.HashPassword(request.Password, a.passwordHashCost)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.NewUser(request.Username, request.Email, passwordHash, a.clock.Stamp())
	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug().Err(err).Str("username", request.Username).Msg("user already exists")
			return models.User{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("username", request.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user by email and password and records
// the login time.
//
// An unknown email, an empty credential and a wrong password all return
// ErrInvalidCredentials so callers cannot tell them apart.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Email == "" || request.Password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, request.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("email", request.Email).Msg("login with unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("email", request.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.CheckPassword(foundUser.PasswordHash, request.Password) {
		log.Debug().Str("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	lastLogin := a.clock.Stamp()
	if err = a.userRepository.UpdateLastLogin(ctx, foundUser.UserID, lastLogin); err != nil {
		log.Err(err).Str("id", foundUser.UserID).Msg("error updating last login")
		return models.User{}, fmt.Errorf("error updating last login: %w", err)
	}
	foundUser.LastLogin = &lastLogin

	return foundUser, nil
}

// CreateToken issues a signed JWT carrying the user identifier.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(user.UserID, a.clock.now(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (bad signature, wrong algorithm, expired, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, store.ErrUsernameTaken) ||
		errors.Is(err, store.ErrEmailTaken) ||
		errors.Is(err, store.ErrUserAlreadyExists)
}
