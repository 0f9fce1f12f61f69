package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/playground-auth/internal/config"
	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/utils"
	"github.com/MKhiriev/playground-auth/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// It normalises the base URL from cfg.HTTPAddress ("localhost:5001" becomes
// "http://localhost:5001") and bounds every request by cfg.RequestTimeout.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.token = strings.TrimSpace(token)
	h.client.SetAuthToken(h.token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs to /api/register.
func (h *httpServerAdapter) Register(ctx context.Context, request models.RegisterRequest) error {
	resp, err := h.request(ctx).
		SetBody(request).
		Post("/api/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	return mapHTTPError(resp)
}

// Login implements [ServerAdapter]. It POSTs to /api/login and keeps the
// returned token.
func (h *httpServerAdapter) Login(ctx context.Context, request models.LoginRequest) (models.LoginResponse, error) {
	var loginResponse models.LoginResponse

	resp, err := h.request(ctx).
		SetBody(request).
		SetResult(&loginResponse).
		Post("/api/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	h.SetToken(loginResponse.Token)
	return loginResponse, nil
}

// Profile implements [ServerAdapter]. It GETs /api/protected.
func (h *httpServerAdapter) Profile(ctx context.Context, withEmail bool) (models.ProfileResponse, error) {
	var profile models.ProfileResponse

	req := h.request(ctx).SetResult(&profile)
	if withEmail {
		req.SetQueryParam("email", "true")
	}

	resp, err := req.Get("/api/protected")
	if err != nil {
		return models.ProfileResponse{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProfileResponse{}, err
	}

	return profile, nil
}

// Usage implements [ServerAdapter]. It GETs /api/usage.
func (h *httpServerAdapter) Usage(ctx context.Context) (models.Usage, error) {
	var usage models.Usage

	resp, err := h.request(ctx).
		SetResult(&usage).
		Get("/api/usage")
	if err != nil {
		return models.Usage{}, fmt.Errorf("usage request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Usage{}, err
	}

	return usage, nil
}

// ChangeUsername implements [ServerAdapter]. It PUTs /api/change-username.
func (h *httpServerAdapter) ChangeUsername(ctx context.Context, newUsername string) error {
	resp, err := h.request(ctx).
		SetBody(models.ChangeUsernameRequest{NewUsername: newUsername}).
		Put("/api/change-username")
	if err != nil {
		return fmt.Errorf("change username request: %w", err)
	}
	return mapHTTPError(resp)
}

// ChangeEmail implements [ServerAdapter]. It PUTs /api/change-email.
func (h *httpServerAdapter) ChangeEmail(ctx context.Context, newEmail string) error {
	resp, err := h.request(ctx).
		SetBody(models.ChangeEmailRequest{NewEmail: newEmail}).
		Put("/api/change-email")
	if err != nil {
		return fmt.Errorf("change email request: %w", err)
	}
	return mapHTTPError(resp)
}

// ChangePassword implements [ServerAdapter]. It PUTs /api/change-password
// and keeps the fresh token.
func (h *httpServerAdapter) ChangePassword(ctx context.Context, request models.ChangePasswordRequest) (models.LoginResponse, error) {
	var changed models.LoginResponse

	resp, err := h.request(ctx).
		SetBody(request).
		SetResult(&changed).
		Put("/api/change-password")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("change password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	h.SetToken(changed.Token)
	return changed, nil
}

// VerifyPassword implements [ServerAdapter]. It POSTs /api/verify-password.
func (h *httpServerAdapter) VerifyPassword(ctx context.Context, password string) error {
	resp, err := h.request(ctx).
		SetBody(models.VerifyPasswordRequest{Password: password}).
		Post("/api/verify-password")
	if err != nil {
		return fmt.Errorf("verify password request: %w", err)
	}
	return mapHTTPError(resp)
}

// DeleteAccount implements [ServerAdapter]. It sends DELETE /api/account.
func (h *httpServerAdapter) DeleteAccount(ctx context.Context) error {
	resp, err := h.request(ctx).Delete("/api/account")
	if err != nil {
		return fmt.Errorf("delete account request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

// Count implements [ServerAdapter]. It POSTs /api/<kind>Code/count.
func (h *httpServerAdapter) Count(ctx context.Context, kind models.CounterKind, request models.CountRequest) error {
	path, err := countPath(kind)
	if err != nil {
		return err
	}

	resp, err := h.request(ctx).
		SetBody(request).
		Post(path)
	if err != nil {
		return fmt.Errorf("count request: %w", err)
	}
	return mapHTTPError(resp)
}

// Version implements [ServerAdapter]. It GETs /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.request(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return resp.String(), nil
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

func countPath(kind models.CounterKind) (string, error) {
	switch kind {
	case models.RunCode:
		return "/api/runCode/count", nil
	case models.GenerateCode:
		return "/api/generateCode/count", nil
	case models.RefactorCode:
		return "/api/refactorCode/count", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCounterKind, kind)
	}
}
