package http

import (
	"net/http"
	"time"

	"github.com/goliatone/go-blog/objects"
)

// maxUploadBytes caps multipart uploads at 32 MiB.
const maxUploadBytes = 32 << 20

const defaultSignedURLTTL = 15 * time.Minute

func (api *API) registerStorageRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "storage")
	mux.HandleFunc("POST "+root, api.handleStorageUpload)
	mux.HandleFunc("GET "+root+"/generate-presigned-url", api.handleStoragePresign)
	mux.HandleFunc("GET "+root, api.handleStorageList)
}

func (api *API) handleStorageUpload(w http.ResponseWriter, r *http.Request) {
	if api.objects == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if api.requireAdmin(w, r) == nil {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "multipart form required"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "file field required"})
		return
	}
	defer file.Close()

	record, err := api.objects.Upload(r.Context(), objects.UploadRequest{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleStoragePresign(w http.ResponseWriter, r *http.Request) {
	if api.objects == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if api.requireAdmin(w, r) == nil {
		return
	}

	key := r.URL.Query().Get("objectKey")
	url, err := api.objects.SignedURL(r.Context(), key, defaultSignedURLTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (api *API) handleStorageList(w http.ResponseWriter, r *http.Request) {
	if api.objects == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if api.requireAdmin(w, r) == nil {
		return
	}

	list, err := api.objects.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
