package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/umputun/postdigest/pkg/domain"
)

const rssDigestLimit = 30

// indexHandler redirects to the latest digest page
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	digests, _, err := s.db.ListDigests(r.Context(), 1, 0)
	if err != nil {
		log.Printf("[ERROR] failed to get latest digest: %v", err)
		http.Error(w, "Failed to load digests", http.StatusInternalServerError)
		return
	}
	if len(digests) == 0 {
		http.Error(w, "No digests yet", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/digest/"+digests[0].Slug, http.StatusFound)
}

// digestPageHandler serves the html page of a digest
func (s *Server) digestPageHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.db.GetDigestViewBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Digest not found", http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to load digest page %s: %v", r.PathValue("slug"), err)
		http.Error(w, "Failed to load digest", http.StatusInternalServerError)
		return
	}

	page, err := s.renderer.Page(*view)
	if err != nil {
		log.Printf("[ERROR] failed to render digest page: %v", err)
		http.Error(w, "Failed to render digest", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(page); err != nil {
		log.Printf("[ERROR] failed to write digest page: %v", err)
	}
}

// rssHandler serves the RSS feed of recent digests
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	digests, _, err := s.db.ListDigests(r.Context(), rssDigestLimit, 0)
	if err != nil {
		log.Printf("[ERROR] failed to get digests for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := s.feed.GenerateRSS(digests)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler exports active sources as OPML
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := s.db.GetSources(r.Context(), true)
	if err != nil {
		log.Printf("[ERROR] failed to get sources for OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	opml, err := s.feed.GenerateOPML(sources)
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sources.opml\"")
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
