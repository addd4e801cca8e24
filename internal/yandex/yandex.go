// Package yandex implements the OAuth code exchange against the Yandex
// identity provider. The provider's access token is transient and never
// persisted: only the resolved profile (email, login) matters.
package yandex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/audiovault/audiovault/internal/config"
	"golang.org/x/oauth2"
)

// ErrProvider is returned when the provider rejects the code exchange or
// the profile payload lacks required fields.
var ErrProvider = errors.New("provider error")

// Profile is the identity resolved from the provider.
type Profile struct {
	// Email is the user's default email address.
	Email string
	// Login is the user's provider-side username. May be empty.
	Login string
}

// Client performs the two-hop OAuth exchange. It has no local state;
// every call is a fresh network round trip.
type Client struct {
	oauth   *oauth2.Config
	infoURL string
	http    *http.Client
}

// New creates a Yandex OAuth client from the given configuration.
func New(cfg *config.YandexConfig) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		infoURL: cfg.InfoURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// AuthURL returns the provider authorization URL for the given state.
func (c *Client) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeCode converts an authorization code into a verified profile.
// It posts the code to the token endpoint, then fetches the profile
// endpoint with the resulting access token. No retries: a single
// provider-side failure surfaces as ErrProvider.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Profile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get access token: %v", ErrProvider, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token received", ErrProvider)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.infoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+tok.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user info: %v", ErrProvider, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: user info request returned status %d", ErrProvider, resp.StatusCode)
	}

	var info struct {
		DefaultEmail string `json:"default_email"`
		Login        string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: failed to decode user info: %v", ErrProvider, err)
	}
	if info.DefaultEmail == "" {
		return nil, fmt.Errorf("%w: user info is missing default_email", ErrProvider)
	}

	return &Profile{
		Email: info.DefaultEmail,
		Login: info.Login,
	}, nil
}
