package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/playground-auth/internal/config"
	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/store"
	"github.com/MKhiriev/playground-auth/internal/utils"
	"github.com/MKhiriev/playground-auth/internal/validators"
	"github.com/MKhiriev/playground-auth/models"
)

type profileService struct {
	userRepository   store.UserRepository
	validator        validators.Validator
	passwordHashCost int
	logger           *logger.Logger
}

func newProfileService(userRepository store.UserRepository, validator validators.Validator, cfg config.App, logger *logger.Logger) *profileService {
	return &profileService{
		userRepository:   userRepository,
		validator:        validator,
		passwordHashCost: cfg.PasswordHashCost,
		logger:           logger,
	}
}

func (p *profileService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	user, err := p.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, p.lookupError(ctx, "GetProfile", userID, err)
	}

	return user, nil
}

func (p *profileService) GetUsage(ctx context.Context, userID string) (models.Usage, error) {
	user, err := p.GetProfile(ctx, userID)
	if err != nil {
		return models.Usage{}, err
	}

	return user.Usage(), nil
}

// ChangeUsername renames the account. A name held by any account, the
// caller's own included, is rejected with store.ErrUsernameTaken.
// The name itself is not revalidated.
func (p *profileService) ChangeUsername(ctx context.Context, userID, newUsername string) error {
	log := logger.FromContext(ctx)

	if newUsername == "" {
		return ErrUsernameRequired
	}

	if _, err := p.userRepository.FindUserByID(ctx, userID); err != nil {
		return p.lookupError(ctx, "ChangeUsername", userID, err)
	}

	if err := p.ensureFree(ctx, p.userRepository.FindUserByUsername, newUsername, store.ErrUsernameTaken); err != nil {
		return err
	}

	if err := p.userRepository.UpdateUsername(ctx, userID, newUsername); err != nil {
		log.Err(err).Str("id", userID).Msg("error updating username")
		return fmt.Errorf("error updating username: %w", err)
	}

	return nil
}

// ChangeEmail replaces the email of the account under the same rules as
// ChangeUsername.
func (p *profileService) ChangeEmail(ctx context.Context, userID, newEmail string) error {
	log := logger.FromContext(ctx)

	if newEmail == "" {
		return ErrEmailRequired
	}

	if _, err := p.userRepository.FindUserByID(ctx, userID); err != nil {
		return p.lookupError(ctx, "ChangeEmail", userID, err)
	}

	if err := p.ensureFree(ctx, p.userRepository.FindUserByEmail, newEmail, store.ErrEmailTaken); err != nil {
		return err
	}

	if err := p.userRepository.UpdateEmail(ctx, userID, newEmail); err != nil {
		log.Err(err).Str("id", userID).Msg("error updating email")
		return fmt.Errorf("error updating email: %w", err)
	}

	return nil
}

func (p *profileService) ChangePassword(ctx context.Context, userID string, request models.ChangePasswordRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.NewPassword == "" || request.ConfirmPassword == "" {
		return models.User{}, ErrPasswordsRequired
	}
	if request.NewPassword != request.ConfirmPassword {
		return models.User{}, ErrPasswordsMismatch
	}
	if err := p.validator.Validate(ctx, request, validators.FieldNewPassword); err != nil {
		return models.User{}, err
	}

	user, err := p.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, p.lookupError(ctx, "ChangePassword", userID, err)
	}

	passwordHash, err := utils.HashPassword(request.NewPassword, p.passwordHashCost)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	if err = p.userRepository.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
		log.Err(err).Str("id", userID).Msg("error updating password")
		return models.User{}, fmt.Errorf("error updating password: %w", err)
	}
	user.PasswordHash = passwordHash

	return user, nil
}

func (p *profileService) VerifyPassword(ctx context.Context, userID, password string) error {
	user, err := p.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return p.lookupError(ctx, "VerifyPassword", userID, err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return ErrIncorrectPassword
	}

	return nil
}

func (p *profileService) DeleteAccount(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	if _, err := p.userRepository.FindUserByID(ctx, userID); err != nil {
		return p.lookupError(ctx, "DeleteAccount", userID, err)
	}

	if err := p.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Str("id", userID).Msg("error deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}
	log.Info().Str("id", userID).Msg("account deleted")

	return nil
}

// ensureFree returns taken when find locates an account holding value.
func (p *profileService) ensureFree(ctx context.Context, find func(context.Context, string) (models.User, error), value string, taken error) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, store.ErrUserNotFound):
		return nil
	default:
		logger.FromContext(ctx).Err(err).Msg("uniqueness check failed")
		return fmt.Errorf("uniqueness check failed: %w", err)
	}
}

func (p *profileService) lookupError(ctx context.Context, funcName, userID string, err error) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return err
	}
	logger.FromContext(ctx).Err(err).Str("func", "*profileService."+funcName).Str("id", userID).Msg("user search by id failed")
	return fmt.Errorf("user search by id failed: %w", err)
}
