package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/users"
)

type loginResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

func (api *API) registerUserRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "user")
	mux.HandleFunc("GET "+root+"/github", api.handleGithubLogin)
	mux.HandleFunc("GET "+root+"/github/callback", api.handleGithubCallback)
	mux.HandleFunc("GET "+root+"/profile", api.handleProfile)
}

// handleGithubLogin redirects the visitor to the OAuth provider with a
// one-shot state parameter pinned in a cookie.
func (api *API) handleGithubLogin(w http.ResponseWriter, r *http.Request) {
	if api.users == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   api.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, api.users.AuthorizeURL(state), http.StatusFound)
}

func (api *API) handleGithubCallback(w http.ResponseWriter, r *http.Request) {
	if api.users == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(stateCookieName)
	if err != nil || state == "" || cookie.Value != state {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "oauth state mismatch"})
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "authorization code required"})
		return
	}

	user, token, err := api.users.LoginWithCode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}

	// Expire the state cookie and install the session.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   api.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   api.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

func (api *API) handleProfile(w http.ResponseWriter, r *http.Request) {
	if api.users == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	user, err := api.currentUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
