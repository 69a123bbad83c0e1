package auth

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

const (
	// DefaultRedirectURI is where the loopback listener waits for the callback.
	DefaultRedirectURI = "http://localhost:8080/callback"

	// SpreadsheetsScope grants read/write access to the user's spreadsheets.
	SpreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"
)

// OAuthConfig identifies the OAuth client.
type OAuthConfig struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	RedirectURI  string   `json:"redirect_uri"`
	Scopes       []string `json:"scopes,omitempty"`
}

// OAuthConfigFromEnv reads GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and
// GOOGLE_REDIRECT_URI. The first two are required.
func OAuthConfigFromEnv() (*OAuthConfig, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	redirectURI := os.Getenv("GOOGLE_REDIRECT_URI")
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}

	return &OAuthConfig{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		Scopes:       []string{SpreadsheetsScope},
	}, nil
}

// OAuthConfigFromFile reads an oauth_config.json document.
func OAuthConfigFromFile(path string) (*OAuthConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read OAuth config: %w", err)
	}

	var cfg OAuthConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse OAuth config: %w", err)
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("OAuth config %s is missing client_id or client_secret", path)
	}
	if cfg.RedirectURI == "" {
		cfg.RedirectURI = DefaultRedirectURI
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{SpreadsheetsScope}
	}

	return &cfg, nil
}
