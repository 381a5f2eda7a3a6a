package http

import "net/http"

func (api *API) registerSEORoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+joinPath(base, "rss"), api.handleRSS)
	mux.HandleFunc("GET "+joinPath(base, "sitemap.xml"), api.handleSitemap)
	mux.HandleFunc("GET "+joinPath(base, "robots.txt"), api.handleRobots)
}

func (api *API) handleRSS(w http.ResponseWriter, r *http.Request) {
	if api.seo == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	doc, err := api.seo.Channel(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (api *API) handleSitemap(w http.ResponseWriter, r *http.Request) {
	if api.seo == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	doc, err := api.seo.Sitemap(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (api *API) handleRobots(w http.ResponseWriter, r *http.Request) {
	if api.seo == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	doc, err := api.seo.Robots()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
