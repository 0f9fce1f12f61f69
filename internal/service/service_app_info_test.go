package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/playground-auth/internal/config"
	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/store"
)

func TestNewAppInfoService(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.4.0"}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", svc.GetAppVersion(context.Background()))

	_, err = NewAppInfoService(config.App{}, logger.Nop())
	require.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestNewServices(t *testing.T) {
	cfg := config.StructuredConfig{App: config.App{
		TokenSignKey:     testSignKey,
		PasswordHashCost: 4,
		TimestampOffset:  "0s",
		Version:          "dev",
	}}

	services, err := NewServices(&store.Storages{}, cfg, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.ProfileService)
	assert.NotNil(t, services.UsageService)
	assert.Equal(t, "dev", services.AppInfoService.GetAppVersion(context.Background()))

	cfg.App.TimestampOffset = "half past five"
	_, err = NewServices(&store.Storages{}, cfg, logger.Nop())
	require.Error(t, err)
}
