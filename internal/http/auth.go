package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-blog/users"
)

// sessionToken extracts the session token, preferring the Authorization
// header over the session cookie.
func sessionToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// currentUser resolves the account behind the request's session, if any.
func (api *API) currentUser(r *http.Request) (*users.User, error) {
	if api.users == nil {
		return nil, users.ErrPermissionDenied
	}
	token := sessionToken(r)
	if token == "" {
		return nil, users.ErrInvalidToken
	}
	return api.users.Profile(r.Context(), token)
}

// requireAdmin guards mutating endpoints. It writes the error response and
// returns nil when the request is not an authenticated admin.
func (api *API) requireAdmin(w http.ResponseWriter, r *http.Request) *users.User {
	user, err := api.currentUser(r)
	if err != nil {
		writeError(w, err)
		return nil
	}
	if !user.IsAdmin() {
		writeError(w, users.ErrPermissionDenied)
		return nil
	}
	return user
}

// isAdmin reports whether the request carries a valid admin session without
// writing a response.
func (api *API) isAdmin(r *http.Request) bool {
	user, err := api.currentUser(r)
	return err == nil && user.IsAdmin()
}
