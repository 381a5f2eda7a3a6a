package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/feeds"
)

type feedCreatePayload struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Summary   string     `json:"summary,omitempty"`
	Alias     string     `json:"alias,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Draft     bool       `json:"draft,omitempty"`
	Listed    *bool      `json:"listed,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type feedUpdatePayload struct {
	Title     *string    `json:"title,omitempty"`
	Content   *string    `json:"content,omitempty"`
	Summary   *string    `json:"summary,omitempty"`
	Alias     *string    `json:"alias,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Draft     *bool      `json:"draft,omitempty"`
	Listed    *bool      `json:"listed,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (api *API) registerFeedRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "feed")
	mux.HandleFunc("GET "+root, api.handleFeedList)
	mux.HandleFunc("POST "+root, api.handleFeedCreate)
	mux.HandleFunc("GET "+root+"/{ref}", api.handleFeedGet)
	mux.HandleFunc("POST "+root+"/{ref}", api.handleFeedUpdate)
	mux.HandleFunc("DELETE "+root+"/{ref}", api.handleFeedDelete)
	mux.HandleFunc("GET "+joinPath(base, "tag"), api.handleTagList)
}

func (api *API) handleFeedList(w http.ResponseWriter, r *http.Request) {
	if api.feeds == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	req := feeds.ListFeedsRequest{
		Tag:    r.URL.Query().Get("tag"),
		Limit:  parseIntQuery(r.URL.Query().Get("limit"), 0),
		Offset: parseIntQuery(r.URL.Query().Get("offset"), 0),
	}

	// Hidden entries only appear for authenticated admins.
	if api.isAdmin(r) {
		req.IncludeDrafts = parseBoolQuery(r.URL.Query().Get("drafts"), false)
		req.IncludeUnlisted = parseBoolQuery(r.URL.Query().Get("unlisted"), false)
	}

	list, err := api.feeds.List(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *API) handleFeedGet(w http.ResponseWriter, r *http.Request) {
	if api.feeds == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	record, err := api.feeds.Resolve(r.Context(), r.PathValue("ref"))
	if err != nil {
		writeError(w, err)
		return
	}
	// Drafts stay invisible to anonymous readers. Unlisted feeds remain
	// reachable by direct link.
	if record.Draft && !api.isAdmin(r) {
		writeError(w, &feeds.NotFoundError{Resource: "feed", Key: r.PathValue("ref")})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleFeedCreate(w http.ResponseWriter, r *http.Request) {
	if api.feeds == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	user := api.requireAdmin(w, r)
	if user == nil {
		return
	}

	var payload feedCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}

	listed := true
	if payload.Listed != nil {
		listed = *payload.Listed
	}

	record, err := api.feeds.Create(r.Context(), feeds.CreateFeedRequest{
		Title:     payload.Title,
		Content:   payload.Content,
		Summary:   payload.Summary,
		Alias:     payload.Alias,
		Tags:      payload.Tags,
		Draft:     payload.Draft,
		Listed:    listed,
		AuthorID:  user.ID,
		CreatedAt: payload.CreatedAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleFeedUpdate(w http.ResponseWriter, r *http.Request) {
	if api.feeds == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if api.requireAdmin(w, r) == nil {
		return
	}

	record, err := api.feeds.Resolve(r.Context(), r.PathValue("ref"))
	if err != nil {
		writeError(w, err)
		return
	}

	var payload feedUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid json payload"})
		return
	}

	updated, err := api.feeds.Update(r.Context(), feeds.UpdateFeedRequest{
		ID:        record.ID,
		Title:     payload.Title,
		Content:   payload.Content,
		Summary:   payload.Summary,
		Alias:     payload.Alias,
		Tags:      payload.Tags,
		Draft:     payload.Draft,
		Listed:    payload.Listed,
		CreatedAt: payload.CreatedAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *API) handleFeedDelete(w http.ResponseWriter, r *http.Request) {
	if api.feeds == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if api.requireAdmin(w, r) == nil {
		return
	}

	ref := r.PathValue("ref")
	var id uuid.UUID
	if parsed, err := parseUUID(ref); err == nil {
		id = parsed
	} else {
		record, err := api.feeds.Resolve(r.Context(), ref)
		if err != nil {
			writeError(w, err)
			return
		}
		id = record.ID
	}

	err := api.feeds.Delete(r.Context(), feeds.DeleteFeedRequest{
		ID:         id,
		HardDelete: parseBoolQuery(r.URL.Query().Get("hard"), false),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *API) handleTagList(w http.ResponseWriter, r *http.Request) {
	if api.feeds == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	tags, err := api.feeds.Tags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}
