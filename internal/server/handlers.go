package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tannerbroberts/abouttime/pkg/errors"
	"github.com/tannerbroberts/abouttime/pkg/observability"
	"github.com/tannerbroberts/abouttime/pkg/selection"
	"github.com/tannerbroberts/abouttime/pkg/template"
	"github.com/tannerbroberts/abouttime/pkg/timeline"
)

type healthResponse struct {
	Status    string `json:"status"`
	Templates int    `json:"templates"`
	Hash      string `json:"libraryHash"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Templates: s.currentStore().Len(),
		Hash:      shortHash(s.currentHash()),
	})
}

type templatesResponse struct {
	Templates []template.Template `json:"templates"`
	Count     int                 `json:"count"`
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	all := s.currentStore().All()
	s.writeJSON(w, http.StatusOK, templatesResponse{Templates: all, Count: len(all)})
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, ok := s.currentStore().Lookup(id)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeTemplateNotFound, "template %q not found", id))
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	store := s.currentStore()

	key := s.keyer.LayoutKey(s.currentHash(), id)
	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		observability.Cache().OnCacheHit(r.Context(), "layout")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	observability.Cache().OnCacheMiss(r.Context(), "layout")

	t, ok := store.Lookup(id)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeTemplateNotFound, "template %q not found", id))
		return
	}

	observability.Engine().OnLayoutStart(r.Context(), id)
	start := time.Now()
	layout, ok := timeline.Layout(id, store)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput,
			"template %q is %s, timelines exist only for lanes", id, t.Type))
		return
	}
	observability.Engine().OnLayoutComplete(r.Context(), id, len(layout.Segments), time.Since(start))

	data, err := json.Marshal(layout)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode timeline"))
		return
	}
	if err := s.cache.Set(r.Context(), key, data, s.cfg.CacheTTL); err != nil {
		s.logger.Debug("timeline cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(r.Context(), "layout", len(data))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type suggestResponse struct {
	Query   string              `json:"query"`
	Matches []template.Template `json:"matches"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	store := s.currentStore()

	key := s.keyer.SuggestKey(s.currentHash(), query)
	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		observability.Cache().OnCacheHit(r.Context(), "suggest")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	observability.Cache().OnCacheMiss(r.Context(), "suggest")

	matches := selection.Suggest(query, store.Lanes())
	resp := suggestResponse{Query: query, Matches: matches}
	data, err := json.Marshal(resp)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode suggestions"))
		return
	}
	if err := s.cache.Set(r.Context(), key, data, s.cfg.CacheTTL); err != nil {
		s.logger.Debug("suggest cache write failed", "key", key, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
