package users_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/internal/users"
)

func TestGithubClient_AuthorizeURL(t *testing.T) {
	client := users.NewGithubClient(users.GithubConfig{
		ClientID:    "client-1",
		RedirectURL: "https://blog.example.com/user/github/callback",
	}, nil)

	raw := client.AuthorizeURL("state-token")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse authorize url: %v", err)
	}
	if !strings.HasPrefix(raw, "https://github.com/login/oauth/authorize?") {
		t.Fatalf("unexpected endpoint %q", raw)
	}
	query := parsed.Query()
	if query.Get("client_id") != "client-1" {
		t.Fatalf("missing client_id: %q", raw)
	}
	if query.Get("state") != "state-token" {
		t.Fatalf("missing state: %q", raw)
	}
	if query.Get("redirect_uri") != "https://blog.example.com/user/github/callback" {
		t.Fatalf("missing redirect_uri: %q", raw)
	}
}

func TestGithubClient_Exchange(t *testing.T) {
	var tokenForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			if err := r.ParseForm(); err != nil {
				t.Fatalf("parse form: %v", err)
			}
			tokenForm = r.PostForm
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"gh-token"}`))
		case "/user":
			if r.Header.Get("Authorization") != "Bearer gh-token" {
				t.Fatalf("missing bearer token, got %q", r.Header.Get("Authorization"))
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":42,"login":"octocat","avatar_url":"https://a/42.png"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := users.NewGithubClient(users.GithubConfig{
		ClientID:      "client-1",
		ClientSecret:  "secret",
		TokenEndpoint: server.URL + "/token",
		UserEndpoint:  server.URL + "/user",
	}, server.Client())

	profile, err := client.Exchange(context.Background(), "authcode")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if profile.ID != 42 || profile.Login != "octocat" {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if tokenForm.Get("code") != "authcode" || tokenForm.Get("client_secret") != "secret" {
		t.Fatalf("token request missing fields: %v", tokenForm)
	}
}

func TestGithubClient_ExchangeRejectsErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"bad_verification_code"}`))
	}))
	defer server.Close()

	client := users.NewGithubClient(users.GithubConfig{
		TokenEndpoint: server.URL,
		UserEndpoint:  server.URL,
	}, server.Client())

	_, err := client.Exchange(context.Background(), "expired")
	if !errors.Is(err, users.ErrExchangeFailed) {
		t.Fatalf("expected ErrExchangeFailed, got %v", err)
	}
}
