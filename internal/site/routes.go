// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/pdiddy/folio/internal/httputil"
	"github.com/pdiddy/folio/pkg/types"
)

// Handler returns the site's router with logging, panic recovery, and
// no-cache headers applied to every route.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(httputil.Recover(s.log), httputil.LogRequests(s.log), httputil.NoCache)

	r.HandleFunc("/", s.home).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/about", s.about).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/partials/sidebar-blogs", s.sidebarBlogs).Methods(http.MethodGet)

	for _, kind := range types.Kinds {
		base := "/" + string(kind)
		r.HandleFunc(base, s.listing(kind)).Methods(http.MethodGet, http.MethodHead)
		r.HandleFunc(base+"/{slug}", s.detail(kind)).Methods(http.MethodGet, http.MethodHead)
	}

	if s.cfg.StaticDir != "" {
		if info, err := os.Stat(s.cfg.StaticDir); err == nil && info.IsDir() {
			r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
		} else {
			s.log.Warn("static directory unavailable, /static/ disabled", "dir", s.cfg.StaticDir)
		}
	}

	r.NotFoundHandler = httputil.LogRequests(s.log)(http.HandlerFunc(s.notFound))
	return r
}
