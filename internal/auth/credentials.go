package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// expirySkew treats a token as expired this long before its real expiry.
const expirySkew = 60 * time.Second

// Credentials are the persisted result of the authorization flow.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// IsExpired reports whether the token expires within 60 seconds of now.
func (c *Credentials) IsExpired(now time.Time) bool {
	return c.ExpiresAt <= now.Add(expirySkew).Unix()
}

// Token converts the credentials for use with an oauth2 token source.
func (c *Credentials) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		TokenType:    c.TokenType,
		RefreshToken: c.RefreshToken,
		Expiry:       time.Unix(c.ExpiresAt, 0),
	}
}
