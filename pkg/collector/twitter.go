package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/postdigest/pkg/domain"
)

// TwitterAPI is a client of an X API v2 compatible endpoint
type TwitterAPI struct {
	client    *http.Client
	endpoint  string
	token     string
	userAgent string
	pageSize  int
	maxPages  int
	postURL   string // base of post permalinks
	retryWait time.Duration
}

// TwitterParams for api client creation
type TwitterParams struct {
	Endpoint    string
	BearerToken string
	UserAgent   string
	PageSize    int
	MaxPages    int
	Timeout     time.Duration
}

// NewTwitterAPI makes an api client
func NewTwitterAPI(p TwitterParams) *TwitterAPI {
	if p.PageSize <= 0 || p.PageSize > 100 {
		p.PageSize = 100
	}
	if p.MaxPages <= 0 {
		p.MaxPages = 5
	}
	if p.Timeout <= 0 {
		p.Timeout = 30 * time.Second
	}
	return &TwitterAPI{
		client:    &http.Client{Timeout: p.Timeout},
		endpoint:  strings.TrimSuffix(p.Endpoint, "/"),
		token:     p.BearerToken,
		userAgent: p.UserAgent,
		pageSize:  p.PageSize,
		maxPages:  p.MaxPages,
		postURL:   "https://x.com/i/status/",
		retryWait: 500 * time.Millisecond,
	}
}

type apiUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type apiPost struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
	PublicMetrics struct {
		LikeCount     int `json:"like_count"`
		RetweetCount  int `json:"retweet_count"`
		ReplyCount    int `json:"reply_count"`
		BookmarkCount int `json:"bookmark_count"`
	} `json:"public_metrics"`
}

type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type userResponse struct {
	Data   *apiUser   `json:"data"`
	Errors []apiError `json:"errors"`
}

type postsResponse struct {
	Data []apiPost `json:"data"`
	Meta struct {
		ResultCount int    `json:"result_count"`
		NewestID    string `json:"newest_id"`
		NextToken   string `json:"next_token"`
	} `json:"meta"`
}

// Resolve looks up a user by handle
func (t *TwitterAPI) Resolve(ctx context.Context, handle string) (domain.SourceProfile, error) {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return domain.SourceProfile{}, fmt.Errorf("empty handle: %w", ErrSourceNotFound)
	}

	var resp userResponse
	if err := t.get(ctx, "/users/by/username/"+url.PathEscape(handle), url.Values{"user.fields": {"name"}}, &resp); err != nil {
		return domain.SourceProfile{}, err
	}
	if resp.Data == nil || resp.Data.ID == "" {
		detail := "no data"
		if len(resp.Errors) > 0 {
			detail = resp.Errors[0].Detail
		}
		return domain.SourceProfile{}, fmt.Errorf("user %s, %s: %w", handle, detail, ErrSourceNotFound)
	}
	return domain.SourceProfile{ExternalID: resp.Data.ID, Handle: resp.Data.Username, DisplayName: resp.Data.Name}, nil
}

// Fetch returns original posts of the source newer than its cursor, oldest first.
// Pagination stops after the configured number of pages, posts between the cursor
// and the last fetched page are not collected then.
func (t *TwitterAPI) Fetch(ctx context.Context, src domain.Source) ([]domain.RawItem, error) {
	params := url.Values{
		"max_results":  {strconv.Itoa(t.pageSize)},
		"tweet.fields": {"created_at,public_metrics"},
		"exclude":      {"retweets,replies"},
	}
	if src.Cursor != "" {
		params.Set("since_id", src.Cursor)
	}

	var res []domain.RawItem
	truncated := false
	for page := 0; ; page++ {
		var resp postsResponse
		if err := t.get(ctx, "/users/"+url.PathEscape(src.ExternalID)+"/tweets", params, &resp); err != nil {
			return nil, err
		}
		for _, p := range resp.Data {
			res = append(res, domain.RawItem{
				ExternalID: p.ID,
				Text:       p.Text,
				URL:        t.postURL + p.ID,
				CreatedAt:  p.CreatedAt.UTC(),
				Counts: domain.Counts{
					Likes:     p.PublicMetrics.LikeCount,
					Reshares:  p.PublicMetrics.RetweetCount,
					Replies:   p.PublicMetrics.ReplyCount,
					Bookmarks: p.PublicMetrics.BookmarkCount,
				},
			})
		}
		if resp.Meta.NextToken == "" {
			break
		}
		if page+1 >= t.maxPages {
			truncated = true
			break
		}
		params.Set("pagination_token", resp.Meta.NextToken)
	}
	if truncated && src.Cursor != "" {
		log.Printf("[WARN] @%s: page limit %d reached before cursor %s, posts older than %d fetched ones are skipped",
			src.Handle, t.maxPages, src.Cursor, len(res))
	}

	// api returns newest first
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res, nil
}

// get performs a GET request and decodes the json response. Rate limits and server errors
// are retried with backoff, other failures stop at once.
func (t *TwitterAPI) get(ctx context.Context, path string, params url.Values, result any) error {
	u := t.endpoint + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var fatal error
	retrier := repeater.NewBackoff(3, t.retryWait, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
		if err != nil {
			fatal = fmt.Errorf("create request: %w", err)
			return nil
		}
		req.Header.Set("Authorization", "Bearer "+t.token)
		if t.userAgent != "" {
			req.Header.Set("User-Agent", t.userAgent)
		}

		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("request %s: %w", path, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			log.Printf("[DEBUG] %s returned %d, retrying", path, resp.StatusCode)
			return fmt.Errorf("request %s: status %d", path, resp.StatusCode)
		case resp.StatusCode == http.StatusNotFound:
			fatal = fmt.Errorf("request %s: %w", path, ErrSourceNotFound)
			return nil
		case resp.StatusCode != http.StatusOK:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			fatal = fmt.Errorf("request %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
			return nil
		}

		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			fatal = fmt.Errorf("decode %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return fatal
}
