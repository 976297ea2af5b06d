// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pdiddy/folio/internal/content"
	"github.com/pdiddy/folio/internal/store"
	"github.com/pdiddy/folio/pkg/types"
)

// homeRecentPosts is how many posts the home page shows.
const homeRecentPosts = 3

// pageData is the value every page template executes against.
type pageData struct {
	SiteTitle string
	Title     string
	Active    string
	Year      int

	// Base is the index path of the kind being shown, for tag links.
	Base      string
	Items     []types.Item
	Projects  []types.Item
	Item      *types.Item
	Related   []types.Item
	Tags      []string
	ActiveTag string

	// Sidebar lists every post for the sidebar partial.
	Sidebar []types.Item
}

func (s *Server) page(title, active string) pageData {
	return pageData{
		SiteTitle: s.cfg.SiteTitle,
		Title:     title,
		Active:    active,
		Year:      time.Now().Year(),
	}
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	posts, err := s.loader.LoadAll(r.Context(), types.KindBlog)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	projects, err := s.loader.LoadAll(r.Context(), types.KindProject)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := s.page("", "home")
	data.Items = content.Recent(posts, homeRecentPosts)
	data.Projects = projects
	data.Sidebar = posts
	s.render(w, r, http.StatusOK, "index", data)
}

func (s *Server) about(w http.ResponseWriter, r *http.Request) {
	data := s.page("About", "about")
	data.Sidebar = s.sidebar(r)
	s.render(w, r, http.StatusOK, "about", data)
}

func (s *Server) listing(kind types.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.loader.LoadAll(r.Context(), kind)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		tag := r.URL.Query().Get("tag")
		data := s.page(kind.Label(), string(kind))
		data.Base = "/" + string(kind)
		data.Tags = content.AllTags(items)
		data.ActiveTag = tag
		data.Items = content.FilterByTag(items, tag)
		if kind == types.KindBlog {
			data.Sidebar = items
		} else {
			data.Sidebar = s.sidebar(r)
		}
		s.render(w, r, http.StatusOK, "list", data)
	}
}

func (s *Server) detail(kind types.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := mux.Vars(r)["slug"]
		item, err := s.loader.Load(r.Context(), kind, slug)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		all, err := s.loader.LoadAll(r.Context(), kind)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		data := s.page(item.Title, string(kind))
		data.Base = "/" + string(kind)
		data.Item = &item
		data.Related = content.Related(item, all, s.cfg.RelatedLimit)
		if kind == types.KindBlog {
			data.Sidebar = all
		} else {
			data.Sidebar = s.sidebar(r)
		}
		s.render(w, r, http.StatusOK, "detail", data)
	}
}

func (s *Server) sidebarBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := s.loader.LoadAll(r.Context(), types.KindBlog)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.execute(w, r, http.StatusOK, s.partials, "sidebar_blogs", pageData{Sidebar: posts})
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	data := s.page("Not found", "")
	s.render(w, r, http.StatusNotFound, "not_found", data)
}

// sidebar loads every post for pages that do not already have them. A
// failure only costs the sidebar its entries.
func (s *Server) sidebar(r *http.Request) []types.Item {
	posts, err := s.loader.LoadAll(r.Context(), types.KindBlog)
	if err != nil {
		s.log.Warn("loading sidebar posts", "error", err)
		return nil
	}
	return posts
}

// fail answers 404 for missing content and 500 for everything else.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.log.Debug("content not found", "path", r.URL.Path, "error", err)
		s.notFound(w, r)
		return
	}
	s.log.Error("loading content", "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	t, ok := s.pages[page]
	if !ok {
		s.log.Error("unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.execute(w, r, status, t, "layout", data)
}

// execute renders into a buffer first so a template error never leaves a
// half-written page behind.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, status int, t *template.Template, name string, data pageData) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("rendering template", "path", r.URL.Path, "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
