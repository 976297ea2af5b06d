// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package site serves the public website. Every request reads the
// published content through a content.Loader; nothing is cached between
// requests apart from the parsed templates.
package site

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/pdiddy/folio/internal/content"
	"github.com/pdiddy/folio/internal/logging"
	"github.com/pdiddy/folio/pkg/types"
)

const (
	defaultSiteTitle    = "folio"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	shutdownGrace       = 5 * time.Second
)

// Server renders pages from a Loader.
type Server struct {
	loader   *content.Loader
	cfg      types.ServerConfig
	log      logging.Logger
	pages    templateCache
	partials *template.Template
}

// New parses the embedded templates and returns a Server. Zero config
// values take their defaults.
func New(loader *content.Loader, cfg types.ServerConfig, log logging.Logger) (*Server, error) {
	if log == nil {
		log = logging.NoOp()
	}
	if cfg.SiteTitle == "" {
		cfg.SiteTitle = defaultSiteTitle
	}
	if cfg.RelatedLimit <= 0 {
		cfg.RelatedLimit = content.DefaultRelatedLimit
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	pages, partials, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Server{loader: loader, cfg: cfg, log: log, pages: pages, partials: partials}, nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
