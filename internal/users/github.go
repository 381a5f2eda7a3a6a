package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAuthorizeEndpoint = "https://github.com/login/oauth/authorize"
	defaultTokenEndpoint     = "https://github.com/login/oauth/access_token"
	defaultUserEndpoint      = "https://api.github.com/user"
)

// GithubConfig carries the OAuth application credentials. Endpoint overrides
// exist for tests pointing at a local server.
type GithubConfig struct {
	ClientID          string
	ClientSecret      string
	RedirectURL       string
	AuthorizeEndpoint string
	TokenEndpoint     string
	UserEndpoint      string
}

// OAuthClient is the provider-facing half of the login flow.
type OAuthClient interface {
	AuthorizeURL(state string) string
	Exchange(ctx context.Context, code string) (GithubProfile, error)
}

// GithubClient implements OAuthClient against the GitHub OAuth endpoints.
type GithubClient struct {
	cfg  GithubConfig
	http *http.Client
}

// NewGithubClient builds a client; a nil httpClient falls back to a client
// with a 10s timeout.
func NewGithubClient(cfg GithubConfig, httpClient *http.Client) *GithubClient {
	if cfg.AuthorizeEndpoint == "" {
		cfg.AuthorizeEndpoint = defaultAuthorizeEndpoint
	}
	if cfg.TokenEndpoint == "" {
		cfg.TokenEndpoint = defaultTokenEndpoint
	}
	if cfg.UserEndpoint == "" {
		cfg.UserEndpoint = defaultUserEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &GithubClient{cfg: cfg, http: httpClient}
}

func (c *GithubClient) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.cfg.ClientID)
	params.Set("redirect_uri", c.cfg.RedirectURL)
	params.Set("scope", "read:user")
	if state != "" {
		params.Set("state", state)
	}
	return c.cfg.AuthorizeEndpoint + "?" + params.Encode()
}

func (c *GithubClient) Exchange(ctx context.Context, code string) (GithubProfile, error) {
	token, err := c.exchangeCode(ctx, code)
	if err != nil {
		return GithubProfile{}, err
	}
	return c.fetchProfile(ctx, token)
}

func (c *GithubClient) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("oauth token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrExchangeFailed, res.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode token response: %v", ErrExchangeFailed, err)
	}
	if payload.Error != "" || payload.AccessToken == "" {
		return "", fmt.Errorf("%w: %s", ErrExchangeFailed, payload.Error)
	}
	return payload.AccessToken, nil
}

func (c *GithubClient) fetchProfile(ctx context.Context, token string) (GithubProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.UserEndpoint, nil)
	if err != nil {
		return GithubProfile{}, fmt.Errorf("oauth profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.http.Do(req)
	if err != nil {
		return GithubProfile{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return GithubProfile{}, fmt.Errorf("%w: user endpoint returned %d", ErrExchangeFailed, res.StatusCode)
	}

	var profile GithubProfile
	if err := json.NewDecoder(res.Body).Decode(&profile); err != nil {
		return GithubProfile{}, fmt.Errorf("%w: decode profile: %v", ErrExchangeFailed, err)
	}
	if profile.ID == 0 {
		return GithubProfile{}, fmt.Errorf("%w: profile missing id", ErrExchangeFailed)
	}
	return profile, nil
}
