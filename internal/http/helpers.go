package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/comments"
	"github.com/goliatone/go-blog/feeds"
	"github.com/goliatone/go-blog/objects"
	"github.com/goliatone/go-blog/users"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" || trimmedBase == "/" {
		if trimmedSuffix == "" {
			return ""
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var feedNotFound *feeds.NotFoundError
	var commentNotFound *comments.NotFoundError
	var userNotFound *users.NotFoundError
	var objectNotFound *objects.NotFoundError
	if errors.As(err, &feedNotFound) ||
		errors.As(err, &commentNotFound) ||
		errors.As(err, &userNotFound) ||
		errors.As(err, &objectNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, feeds.ErrAliasExists) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, users.ErrPermissionDenied) ||
		errors.Is(err, users.ErrInvalidToken) ||
		errors.Is(err, users.ErrTokenExpired) {
		return http.StatusForbidden, errorResponse{
			Error:   "forbidden",
			Message: "Permission denied",
		}
	}

	if errors.Is(err, users.ErrRegistrationClosed) ||
		errors.Is(err, objects.ErrSignatureInvalid) ||
		errors.Is(err, objects.ErrURLExpired) {
		return http.StatusForbidden, errorResponse{
			Error:   "forbidden",
			Message: err.Error(),
		}
	}

	if errors.Is(err, feeds.ErrFeedNotVisible) ||
		errors.Is(err, comments.ErrFeedNotVisible) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, feeds.ErrTitleRequired) ||
		errors.Is(err, feeds.ErrContentRequired) ||
		errors.Is(err, feeds.ErrAliasInvalid) ||
		errors.Is(err, feeds.ErrFeedIDRequired) ||
		errors.Is(err, feeds.ErrAuthorRequired) ||
		errors.Is(err, comments.ErrAuthorRequired) ||
		errors.Is(err, comments.ErrContentRequired) ||
		errors.Is(err, comments.ErrFeedRequired) ||
		errors.Is(err, comments.ErrParentMismatch) ||
		errors.Is(err, comments.ErrNestedReply) ||
		errors.Is(err, comments.ErrCommentIDMissing) ||
		errors.Is(err, objects.ErrEmptyObject) ||
		errors.Is(err, objects.ErrKeyRequired) ||
		errors.Is(err, users.ErrExchangeFailed) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	return uuid.Parse(trimmed)
}

func parseBoolQuery(value string, defaultValue bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseIntQuery(value string, defaultValue int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil || parsed < 0 {
		return defaultValue
	}
	return parsed
}
