package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/store"
	"github.com/MKhiriev/playground-auth/models"
)

type usageService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

func NewUsageService(userRepository store.UserRepository, logger *logger.Logger) UsageService {
	return &usageService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// Increment resolves the user before the language, so an unknown user is
// reported as store.ErrUserNotFound even when the language is unsupported
// too. The counter itself is bumped by a single atomic store operation.
func (u *usageService) Increment(ctx context.Context, kind models.CounterKind, username, languageName string) error {
	log := logger.FromContext(ctx)

	if _, err := u.userRepository.FindUserByUsername(ctx, username); err != nil {
		return fmt.Errorf("counter owner lookup failed: %w", err)
	}

	language, ok := models.LanguageFromName(languageName)
	if !ok {
		log.Debug().Str("language", languageName).Msg("unsupported language")
		return ErrUnsupportedLanguage
	}

	if err := u.userRepository.IncrementCounter(ctx, username, kind, language); err != nil {
		log.Err(err).
			Str("username", username).
			Str("kind", string(kind)).
			Str("language", string(language)).
			Msg("error incrementing counter")
		return fmt.Errorf("error incrementing counter: %w", err)
	}

	return nil
}
