package service

import (
	"fmt"

	"github.com/MKhiriev/playground-auth/internal/config"
	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/store"
	"github.com/MKhiriev/playground-auth/internal/validators"
)

type Services struct {
	AuthService    AuthService
	ProfileService ProfileService
	UsageService   UsageService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	offset, err := cfg.App.Offset()
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp offset: %w", err)
	}
	clk := newClock(offset)
	validator := validators.NewUserValidator()

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    newAuthService(storages.UserRepository, validator, cfg.App, clk, logger),
		ProfileService: newProfileService(storages.UserRepository, validator, cfg.App, logger),
		UsageService:   NewUsageService(storages.UserRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
