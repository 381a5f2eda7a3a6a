package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/comments"
)

type commentCreatePayload struct {
	FeedID   uuid.UUID  `json:"feed_id"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
	Author   string     `json:"author"`
	Email    string     `json:"email,omitempty"`
	SiteURL  string     `json:"site_url,omitempty"`
	Content  string     `json:"content"`
}

func (api *API) registerCommentRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "comment")
	mux.HandleFunc("GET "+root, api.handleCommentList)
	mux.HandleFunc("POST "+root, api.handleCommentCreate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleCommentDelete)
}

func (api *API) handleCommentList(w http.ResponseWriter, r *http.Request) {
	if api.comments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	feedID, err := parseUUID(r.URL.Query().Get("feed"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "feed query parameter required"})
		return
	}
	thread, err := api.comments.ListByFeed(r.Context(), feedID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}

// handleCommentCreate accepts anonymous visitors; the comment service
// enforces feed visibility and threading depth.
func (api *API) handleCommentCreate(w http.ResponseWriter, r *http.Request) {
	if api.comments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload commentCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}

	record, err := api.comments.Create(r.Context(), comments.CreateCommentRequest{
		FeedID:   payload.FeedID,
		ParentID: payload.ParentID,
		Author:   payload.Author,
		Email:    payload.Email,
		SiteURL:  payload.SiteURL,
		Content:  payload.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleCommentDelete(w http.ResponseWriter, r *http.Request) {
	if api.comments == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if api.requireAdmin(w, r) == nil {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.comments.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
