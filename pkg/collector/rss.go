package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/postdigest/pkg/domain"
)

// RSS collects posts of sources published as RSS or Atom feeds. Feeds carry no engagement counters.
type RSS struct {
	client    *http.Client
	userAgent string
}

// NewRSS makes a feed client
func NewRSS(timeout time.Duration, userAgent string) *RSS {
	return &RSS{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Resolve reads the feed and returns its profile, keyed by the feed url
func (r *RSS) Resolve(ctx context.Context, feedURL string) (domain.SourceProfile, error) {
	feed, err := r.parse(ctx, feedURL)
	if err != nil {
		return domain.SourceProfile{}, err
	}
	title := strings.TrimSpace(feed.Title)
	if title == "" {
		title = feedURL
	}
	return domain.SourceProfile{ExternalID: feedURL, Handle: title, DisplayName: title}, nil
}

// Fetch returns all entries of the feed, oldest first. Entries without a guid are keyed by link.
func (r *RSS) Fetch(ctx context.Context, src domain.Source) ([]domain.RawItem, error) {
	feed, err := r.parse(ctx, src.FeedURL)
	if err != nil {
		return nil, err
	}

	res := make([]domain.RawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		id := item.GUID
		if id == "" {
			id = item.Link
		}
		if id == "" {
			continue
		}
		raw := domain.RawItem{ExternalID: id, URL: item.Link, Text: itemText(item)}
		switch {
		case item.PublishedParsed != nil:
			raw.CreatedAt = item.PublishedParsed.UTC()
		case item.UpdatedParsed != nil:
			raw.CreatedAt = item.UpdatedParsed.UTC()
		default:
			raw.CreatedAt = time.Now().UTC()
		}
		res = append(res, raw)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func itemText(item *gofeed.Item) string {
	parts := []string{}
	for _, s := range []string{item.Title, item.Description} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *RSS) parse(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	body, err := r.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

func (r *RSS) fetch(ctx context.Context, feedURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
