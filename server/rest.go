package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/postdigest/pkg/digest"
	"github.com/umputun/postdigest/pkg/domain"
	"github.com/umputun/postdigest/pkg/repository"
)

const maxPageSize = 100

// digestJSON is the API shape of a digest
type digestJSON struct {
	ID             int64      `json:"id"`
	Date           string     `json:"date"`
	Slug           string     `json:"slug"`
	URL            string     `json:"url,omitempty"`
	TotalCount     int        `json:"total_count"`
	HighlightCount int        `json:"highlight_count"`
	CompactCount   int        `json:"compact_count"`
	Topics         []string   `json:"topics"`
	Narrative      string     `json:"narrative"`
	Description    string     `json:"description"`
	CreatedAt      time.Time  `json:"created_at"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
}

// postJSON is the API shape of an analyzed post
type postJSON struct {
	AnalysisID      int64      `json:"analysis_id"`
	ItemID          int64      `json:"item_id"`
	ExternalID      string     `json:"external_id"`
	Handle          string     `json:"handle"`
	DisplayName     string     `json:"display_name,omitempty"`
	Text            string     `json:"text"`
	URL             string     `json:"url"`
	Likes           int        `json:"likes"`
	Reshares        int        `json:"reshares"`
	Replies         int        `json:"replies"`
	Bookmarks       int        `json:"bookmarks"`
	EngagementScore float64    `json:"engagement_score"`
	Relevant        bool       `json:"is_relevant"`
	RelevanceScore  float64    `json:"relevance_score"`
	ImportanceScore float64    `json:"importance_score"`
	Summary         string     `json:"summary,omitempty"`
	Translation     string     `json:"translation,omitempty"`
	Topics          []string   `json:"topics,omitempty"`
	ScreenshotURL   string     `json:"screenshot_url,omitempty"`
	ScreenshotAt    *time.Time `json:"screenshot_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// digestViewJSON is a digest with its ordered tiers
type digestViewJSON struct {
	Digest     digestJSON `json:"digest"`
	Highlights []postJSON `json:"highlights"`
	Compact    []postJSON `json:"compact"`
}

// sourceJSON is the API shape of a source
type sourceJSON struct {
	ID          int64     `json:"id"`
	ExternalID  string    `json:"external_id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name,omitempty"`
	FeedURL     string    `json:"feed_url,omitempty"`
	Active      bool      `json:"active"`
	Cursor      string    `json:"cursor,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// statusHandler returns server status with scheduled jobs
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"jobs":    s.scheduler.Jobs(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// statsHandler returns stored data counters
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetStats(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get stats: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{
		"digests":            stats.Digests,
		"items":              stats.Items,
		"analyses":           stats.Analyses,
		"relevant_analyses":  stats.RelevantAnalyses,
		"pending_items":      stats.PendingItems,
		"latest_digest_date": stats.LatestDigestDate,
	})
}

// listDigestsHandler returns a page of digests, newest first
func (s *Server) listDigestsHandler(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := queryInt(r, "page_size", s.config.GetFullConfig().Server.PageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		renderError(w, r, fmt.Errorf("page_size must be between 1 and %d", maxPageSize), http.StatusBadRequest)
		return
	}

	digests, total, err := s.db.ListDigests(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		log.Printf("[ERROR] failed to list digests: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	res := make([]digestJSON, 0, len(digests))
	for _, d := range digests {
		res = append(res, s.toDigestJSON(d))
	}
	renderJSON(w, r, http.StatusOK, map[string]any{
		"digests":     res,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// getDigestHandler returns a digest with its posts by id
func (s *Server) getDigestHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid digest ID"), http.StatusBadRequest)
		return
	}
	view, err := s.db.GetDigestView(r.Context(), id)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, s.toDigestViewJSON(*view))
}

// getDigestBySlugHandler returns a digest with its posts by slug
func (s *Server) getDigestBySlugHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.db.GetDigestViewBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, s.toDigestViewJSON(*view))
}

// buildDigestHandler builds the digest of ?date=YYYY-MM-DD, yesterday by default
func (s *Server) buildDigestHandler(w http.ResponseWriter, r *http.Request) {
	date := s.scheduler.Yesterday()
	if v := r.URL.Query().Get("date"); v != "" {
		d, err := time.Parse(domain.DateLayout, v)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v), http.StatusBadRequest)
			return
		}
		date = d
	}

	res, err := s.scheduler.BuildDigestNow(r.Context(), date)
	if err != nil {
		log.Printf("[ERROR] failed to build digest for %s: %v", date.Format(domain.DateLayout), err)
		renderError(w, r, err, errorCode(err))
		return
	}

	resp := map[string]any{"status": res.Status, "date": date.Format(domain.DateLayout)}
	if res.Digest != nil {
		resp["digest"] = s.toDigestJSON(*res.Digest)
	}
	if res.Enrichment != nil {
		resp["enrichment"] = enrichJSON(*res.Enrichment)
	}

	code := http.StatusOK
	if res.Status == digest.BuildCreated {
		code = http.StatusCreated
	}
	renderJSON(w, r, code, resp)
}

// enrichDigestHandler re-runs enrichment of a digest
func (s *Server) enrichDigestHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid digest ID"), http.StatusBadRequest)
		return
	}
	res, err := s.scheduler.EnrichDigestNow(r.Context(), id)
	if err != nil {
		log.Printf("[ERROR] failed to enrich digest %d: %v", id, err)
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, enrichJSON(res))
}

// collectHandler runs collection and analysis now
func (s *Server) collectHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.scheduler.CollectNow(r.Context())
	if err != nil {
		log.Printf("[ERROR] manual collect failed: %v", err)
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{
		"sources":          res.Collected.Sources,
		"failed_sources":   res.Collected.Failed,
		"fetched":          res.Collected.Fetched,
		"stored":           res.Collected.Stored,
		"analyzed":         res.Analyzed.Analyzed,
		"relevant":         res.Analyzed.Relevant,
		"skipped_chunks":   res.Analyzed.Skipped(),
		"committed_chunks": len(res.Analyzed.Chunks) - res.Analyzed.Skipped(),
	})
}

// postsHandler returns analyzed posts by importance
func (s *Server) postsHandler(w http.ResponseWriter, r *http.Request) {
	filter := repository.PostFilter{
		RelevantOnly: r.URL.Query().Get("relevant") != "false",
		Limit:        queryInt(r, "limit", 50),
		Offset:       queryInt(r, "offset", 0),
	}
	if filter.Limit < 1 || filter.Limit > maxPageSize || filter.Offset < 0 {
		renderError(w, r, fmt.Errorf("limit must be between 1 and %d, offset non-negative", maxPageSize), http.StatusBadRequest)
		return
	}

	posts, err := s.db.GetPosts(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to get posts: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"posts": toPostsJSON(posts), "limit": filter.Limit, "offset": filter.Offset})
}

// listSourcesHandler returns sources, ?active=true limits to active ones
func (s *Server) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := s.db.GetSources(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		log.Printf("[ERROR] failed to get sources: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	res := make([]sourceJSON, 0, len(sources))
	for _, src := range sources {
		res = append(res, toSourceJSON(src))
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"sources": res})
}

// addSourceHandler registers an account handle or a feed url
func (s *Server) addSourceHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Handle  string `json:"handle"`
		FeedURL string `json:"feed_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	req.Handle = strings.TrimPrefix(strings.TrimSpace(req.Handle), "@")
	req.FeedURL = strings.TrimSpace(req.FeedURL)
	if req.Handle == "" && req.FeedURL == "" {
		renderError(w, r, fmt.Errorf("handle or feed_url is required"), http.StatusBadRequest)
		return
	}
	if req.FeedURL != "" && !strings.HasPrefix(req.FeedURL, "http://") && !strings.HasPrefix(req.FeedURL, "https://") {
		renderError(w, r, fmt.Errorf("feed_url must be an http(s) url"), http.StatusBadRequest)
		return
	}

	src, err := s.sources.AddSource(r.Context(), req.Handle, req.FeedURL)
	if err != nil {
		log.Printf("[WARN] failed to add source %q %q: %v", req.Handle, req.FeedURL, err)
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusCreated, toSourceJSON(*src))
}

// setSourceActiveHandler enables or disables a source
func (s *Server) setSourceActiveHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid source ID"), http.StatusBadRequest)
		return
	}
	var req struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		renderError(w, r, fmt.Errorf("body must be {\"active\": true|false}"), http.StatusBadRequest)
		return
	}
	if err := s.db.SetSourceActive(r.Context(), id, *req.Active); err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"id": id, "active": *req.Active})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func enrichJSON(res digest.EnrichResult) map[string]any {
	return map[string]any{
		"translated":           res.Translated,
		"translations_kept":    res.TranslationsKept,
		"translations_failed":  res.TranslationsFailed,
		"screenshots":          res.Screenshots,
		"screenshots_kept":     res.ScreenshotsKept,
		"screenshots_failed":   res.ScreenshotsFailed,
		"translation_disabled": res.TranslationDisabled,
		"screenshot_disabled":  res.ScreenshotDisabled,
	}
}

func (s *Server) toDigestJSON(d domain.Digest) digestJSON {
	topics := d.Topics
	if topics == nil {
		topics = []string{}
	}
	return digestJSON{
		ID:             d.ID,
		Date:           d.DateString(),
		Slug:           d.Slug,
		URL:            s.renderer.PageURL(d),
		TotalCount:     d.TotalCount,
		HighlightCount: d.HighlightCount,
		CompactCount:   d.CompactCount,
		Topics:         topics,
		Narrative:      d.Narrative,
		Description:    d.Description,
		CreatedAt:      d.CreatedAt,
		SentAt:         d.SentAt,
	}
}

func (s *Server) toDigestViewJSON(v domain.DigestView) digestViewJSON {
	return digestViewJSON{Digest: s.toDigestJSON(v.Digest), Highlights: toPostsJSON(v.Highlights), Compact: toPostsJSON(v.Compact)}
}

func toPostsJSON(posts []domain.Post) []postJSON {
	res := make([]postJSON, 0, len(posts))
	for _, p := range posts {
		res = append(res, postJSON{
			AnalysisID:      p.Analysis.ID,
			ItemID:          p.Item.ID,
			ExternalID:      p.Item.ExternalID,
			Handle:          p.Source.Handle,
			DisplayName:     p.Source.DisplayName,
			Text:            p.Item.Text,
			URL:             p.Item.URL,
			Likes:           p.Item.Counts.Likes,
			Reshares:        p.Item.Counts.Reshares,
			Replies:         p.Item.Counts.Replies,
			Bookmarks:       p.Item.Counts.Bookmarks,
			EngagementScore: p.Item.EngagementScore,
			Relevant:        p.Analysis.Relevant,
			RelevanceScore:  p.Analysis.RelevanceScore,
			ImportanceScore: p.Analysis.ImportanceScore,
			Summary:         p.Analysis.Summary,
			Translation:     p.Analysis.Translation,
			Topics:          p.Analysis.Topics,
			ScreenshotURL:   p.Analysis.ScreenshotURL,
			ScreenshotAt:    p.Analysis.ScreenshotAt,
			CreatedAt:       p.Item.CreatedAt,
		})
	}
	return res
}

func toSourceJSON(src domain.Source) sourceJSON {
	return sourceJSON{
		ID:          src.ID,
		ExternalID:  src.ExternalID,
		Handle:      src.Handle,
		DisplayName: src.DisplayName,
		FeedURL:     src.FeedURL,
		Active:      src.Active,
		Cursor:      src.Cursor,
		CreatedAt:   src.CreatedAt,
	}
}
