package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"trpg_json/internal/config"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// File names inside the per-user config directory.
const (
	CredentialsFileName = "credentials.json"
	OAuthConfigFileName = "oauth_config.json"
)

var (
	// ErrMissingCredentials means no credentials file exists yet.
	ErrMissingCredentials = errors.New("missing required OAuth credentials")

	// ErrTokenRefreshFailed means the stored token has expired.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrAuthenticationFailed covers every failure of the authorization flow.
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// Manager owns the OAuth credential lifecycle for the Sheets API.
type Manager struct {
	credentialsPath string
	configPath      string

	endpoint    oauth2.Endpoint
	openBrowser func(url string) error
	now         func() time.Time
	timeouts    config.TimeoutConfig
}

// Option customizes a Manager.
type Option func(*Manager)

// WithEndpoint replaces Google's authorization and token endpoints.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(m *Manager) { m.endpoint = endpoint }
}

// WithBrowser replaces the function used to open the authorization URL.
func WithBrowser(open func(url string) error) Option {
	return func(m *Manager) { m.openBrowser = open }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager whose files live in configDir.
func NewManager(configDir string, opts ...Option) *Manager {
	m := &Manager{
		credentialsPath: filepath.Join(configDir, CredentialsFileName),
		configPath:      filepath.Join(configDir, OAuthConfigFileName),
		endpoint:        google.Endpoint,
		openBrowser:     browser.OpenURL,
		now:             time.Now,
		timeouts:        config.DefaultTimeoutConfig,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CredentialsPath returns the path of the credentials file.
func (m *Manager) CredentialsPath() string {
	return m.credentialsPath
}

// LoadCredentials reads stored credentials. It fails with
// ErrMissingCredentials when none are stored and with ErrTokenRefreshFailed
// when the stored token has expired.
func (m *Manager) LoadCredentials() (*Credentials, error) {
	data, err := os.ReadFile(m.credentialsPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrMissingCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	if creds.IsExpired(m.now()) {
		return nil, fmt.Errorf("%w: Token has expired. Please re-authenticate.", ErrTokenRefreshFailed)
	}

	log.Debug().Str("path", m.credentialsPath).Msg("Loaded OAuth credentials")
	return &creds, nil
}

// SaveCredentials writes creds, creating the config directory if needed.
func (m *Manager) SaveCredentials(creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(m.credentialsPath), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := os.WriteFile(m.credentialsPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// ClearCredentials deletes the credentials file. A missing file is not an
// error.
func (m *Manager) ClearCredentials() error {
	err := os.Remove(m.credentialsPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}

// LoadOAuthConfig prefers environment variables and falls back to
// oauth_config.json.
func (m *Manager) LoadOAuthConfig() (*OAuthConfig, error) {
	if cfg, err := OAuthConfigFromEnv(); err == nil {
		return cfg, nil
	}

	cfg, err := OAuthConfigFromFile(m.configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: Failed to load OAuth config. Please set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment variables, or create %s: %v",
			ErrAuthenticationFailed, m.configPath, err)
	}
	return cfg, nil
}

// Authenticate runs the authorization-code flow: it binds the loopback
// listener, opens the browser, waits for the single callback, exchanges the
// code and persists the resulting credentials.
//
// The wait is bounded only by ctx.
func (m *Manager) Authenticate(ctx context.Context) (*Credentials, error) {
	cfg, err := m.LoadOAuthConfig()
	if err != nil {
		return nil, err
	}

	listener, err := listenCallback(cfg.RedirectURI)
	if err != nil {
		return nil, err
	}

	endpoint := m.endpoint
	if endpoint.AuthStyle == oauth2.AuthStyleAutoDetect {
		endpoint.AuthStyle = oauth2.AuthStyleInParams
	}

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  listener.redirectURI,
		Scopes:       cfg.Scopes,
	}

	state := uuid.NewString()
	authURL := oc.AuthCodeURL(state, oauth2.AccessTypeOffline)

	log.Info().Str("url", authURL).Msg("Opening browser for authentication. If it doesn't open automatically, visit the URL")

	if err := m.openBrowser(authURL); err != nil {
		listener.close()
		return nil, fmt.Errorf("%w: Failed to open browser: %v. Please visit: %s", ErrAuthenticationFailed, err, authURL)
	}

	code, err := listener.wait(ctx, state)
	if err != nil {
		return nil, err
	}

	creds, err := m.exchange(ctx, oc, code)
	if err != nil {
		return nil, err
	}

	if err := m.SaveCredentials(creds); err != nil {
		return nil, err
	}

	log.Info().Str("path", m.credentialsPath).Msg("Saved OAuth credentials")
	return creds, nil
}

// exchange trades the authorization code for tokens with one POST to the
// token endpoint.
func (m *Manager) exchange(ctx context.Context, oc *oauth2.Config, code string) (*Credentials, error) {
	ctx, cancel := config.WithTimeout(ctx, m.timeouts.TokenExchange)
	defer cancel()

	tok, err := oc.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: Token exchange failed: %v", ErrAuthenticationFailed, err)
	}

	expiresAt := tok.Expiry.Unix()
	if lifetime, ok := expiresIn(tok); ok {
		expiresAt = m.now().Add(lifetime).Unix()
	}

	tokenType := tok.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &Credentials{
		AccessToken:  tok.AccessToken,
		TokenType:    tokenType,
		ExpiresAt:    expiresAt,
		RefreshToken: tok.RefreshToken,
	}, nil
}

// expiresIn reads the raw expires_in lifetime from a token response.
func expiresIn(tok *oauth2.Token) (time.Duration, bool) {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return time.Duration(v) * time.Second, true
	case int64:
		return time.Duration(v) * time.Second, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return time.Duration(n) * time.Second, true
	}
	return 0, false
}
