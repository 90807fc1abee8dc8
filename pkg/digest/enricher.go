package digest

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/postdigest/pkg/domain"
	"github.com/umputun/postdigest/pkg/metrics"
)

// EnricherParams for enricher creation
type EnricherParams struct {
	Digests      DigestStore
	Posts        PostStore
	Translator   Translator // translation is off if nil
	Renderer     Renderer   // screenshots are off if renderer or uploader is nil
	Uploader     Uploader
	Translate    bool
	CompactCount int // compact posts translated after the highlights, by rank
	Screenshots  bool
}

// Enricher adds translations and screenshots to a digest's posts. Highlights get both,
// the first CompactCount compact posts get a translation only.
type Enricher struct {
	digests      DigestStore
	posts        PostStore
	translator   Translator
	renderer     Renderer
	uploader     Uploader
	translate    bool
	compactCount int
	screenshots  bool
	now          func() time.Time
}

// EnrichResult counts enrichment outcomes. Kept means a value was already stored and left as is.
type EnrichResult struct {
	Translated          int
	TranslationsKept    int
	TranslationsFailed  int
	Screenshots         int
	ScreenshotsKept     int
	ScreenshotsFailed   int
	TranslationDisabled bool
	ScreenshotDisabled  bool
}

// NewEnricher makes an enricher
func NewEnricher(p EnricherParams) *Enricher {
	return &Enricher{
		digests:      p.Digests,
		posts:        p.Posts,
		translator:   p.Translator,
		renderer:     p.Renderer,
		uploader:     p.Uploader,
		translate:    p.Translate,
		compactCount: max(p.CompactCount, 0),
		screenshots:  p.Screenshots,
		now:          time.Now,
	}
}

// Enrich runs translation and screenshot passes over the digest. Values already stored are never
// replaced, so repeated runs are safe. Per-post failures are counted and logged, only a failure to
// load the digest is returned.
func (e *Enricher) Enrich(ctx context.Context, digestID int64) (EnrichResult, error) {
	view, err := e.digests.GetDigestView(ctx, digestID)
	if err != nil {
		return EnrichResult{}, fmt.Errorf("load digest %d: %w", digestID, err)
	}

	res := EnrichResult{}
	if e.translate && e.translator != nil {
		targets := make([]domain.Post, 0, len(view.Highlights)+e.compactCount)
		targets = append(targets, view.Highlights...)
		targets = append(targets, view.Compact[:min(e.compactCount, len(view.Compact))]...)
		e.translatePosts(ctx, targets, &res)
	} else {
		res.TranslationDisabled = true
		log.Printf("[DEBUG] translation disabled, digest %d", digestID)
	}

	if e.screenshots && e.renderer != nil && e.uploader != nil {
		e.screenshotPosts(ctx, view.Highlights, &res)
	} else {
		res.ScreenshotDisabled = true
		log.Printf("[DEBUG] screenshots unavailable, digest %d", digestID)
	}

	log.Printf("[INFO] enriched digest %d: %d translated (%d failed), %d screenshots (%d failed)",
		digestID, res.Translated, res.TranslationsFailed, res.Screenshots, res.ScreenshotsFailed)
	return res, nil
}

func (e *Enricher) translatePosts(ctx context.Context, posts []domain.Post, res *EnrichResult) {
	for _, p := range posts {
		if ctx.Err() != nil {
			return
		}
		if p.Analysis.HasTranslation() {
			res.TranslationsKept++
			metrics.IncEnrichment("translation", "kept")
			continue
		}
		text, err := e.translator.Translate(ctx, p.Item.Text)
		if err == nil && text == "" {
			err = errors.New("empty translation")
		}
		if err != nil {
			log.Printf("[WARN] failed to translate post %s: %v", p.Item.ExternalID, err)
			res.TranslationsFailed++
			metrics.IncEnrichment("translation", "failed")
			continue
		}
		updated, err := e.posts.UpdateTranslation(ctx, p.Analysis.ID, text)
		if err != nil {
			log.Printf("[WARN] failed to store translation of post %s: %v", p.Item.ExternalID, err)
			res.TranslationsFailed++
			metrics.IncEnrichment("translation", "failed")
			continue
		}
		if !updated {
			res.TranslationsKept++
			metrics.IncEnrichment("translation", "kept")
			continue
		}
		res.Translated++
		metrics.IncEnrichment("translation", "done")
	}
}

func (e *Enricher) screenshotPosts(ctx context.Context, posts []domain.Post, res *EnrichResult) {
	for _, p := range posts {
		if ctx.Err() != nil {
			return
		}
		if p.Analysis.HasScreenshot() {
			res.ScreenshotsKept++
			metrics.IncEnrichment("screenshot", "kept")
			continue
		}
		url, err := e.screenshot(ctx, p)
		if err != nil {
			log.Printf("[WARN] failed to screenshot post %s: %v", p.Item.ExternalID, err)
			res.ScreenshotsFailed++
			metrics.IncEnrichment("screenshot", "failed")
			continue
		}
		updated, err := e.posts.UpdateScreenshot(ctx, p.Analysis.ID, url, e.now())
		if err != nil {
			log.Printf("[WARN] failed to store screenshot of post %s: %v", p.Item.ExternalID, err)
			res.ScreenshotsFailed++
			metrics.IncEnrichment("screenshot", "failed")
			continue
		}
		if !updated {
			res.ScreenshotsKept++
			metrics.IncEnrichment("screenshot", "kept")
			continue
		}
		res.Screenshots++
		metrics.IncEnrichment("screenshot", "done")
	}
}

// screenshot renders the post and uploads the image under screenshots/YYYYMMDD/<external id>.png
func (e *Enricher) screenshot(ctx context.Context, p domain.Post) (string, error) {
	if p.Item.URL == "" {
		return "", errors.New("post has no url")
	}
	img, err := e.renderer.Capture(ctx, p.Item.URL)
	if err != nil {
		return "", fmt.Errorf("capture %s: %w", p.Item.URL, err)
	}
	key := fmt.Sprintf("screenshots/%s/%s.png", e.now().UTC().Format("20060102"), p.Item.ExternalID)
	url, err := e.uploader.Upload(ctx, key, img)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return url, nil
}
