package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateDigest is returned when a digest for the date or slug already exists at insert time
var ErrDuplicateDigest = errors.New("duplicate digest")

// Tier is the display treatment of a digest entry
type Tier string

// digest tiers
const (
	TierHighlight Tier = "highlight"
	TierCompact   Tier = "compact"
)

// DateLayout is the calendar date format used for digest dates and slugs
const DateLayout = "2006-01-02"

// Digest is the daily aggregation of relevant posts, one per calendar date
type Digest struct {
	ID             int64
	Date           time.Time // calendar date, midnight UTC
	Slug           string
	TotalCount     int
	HighlightCount int
	CompactCount   int
	Topics         []string
	Narrative      string
	Description    string
	CreatedAt      time.Time
	SentAt         *time.Time
	Recipient      string
}

// DateString returns the digest calendar date as YYYY-MM-DD
func (d Digest) DateString() string { return d.Date.Format(DateLayout) }

// DigestEntry places one analysis in a digest tier at a 0-based rank
type DigestEntry struct {
	ID         int64
	DigestID   int64
	AnalysisID int64
	Tier       Tier
	Rank       int
}

// DigestView is a digest with its ordered highlight and compact posts
type DigestView struct {
	Digest     Digest
	Highlights []Post
	Compact    []Post
}

// Stats summarizes stored data
type Stats struct {
	Digests          int64
	Items            int64
	Analyses         int64
	RelevantAnalyses int64
	PendingItems     int64
	LatestDigestDate string
}
