package domain

import "time"

// Counts holds raw interaction counters of a post
type Counts struct {
	Likes     int
	Reshares  int
	Replies   int
	Bookmarks int
}

// Item represents a collected post. The engagement score is stamped once at
// ingestion and never recomputed.
type Item struct {
	ID              int64
	ExternalID      string
	SourceID        int64
	Text            string
	URL             string
	Counts          Counts
	EngagementScore float64
	Enriched        bool // relevance analysis has run
	CreatedAt       time.Time
	CollectedAt     time.Time
}

// RawItem is a post as reported by the ingestion client, before scoring
type RawItem struct {
	ExternalID string
	Text       string
	URL        string
	Counts     Counts
	CreatedAt  time.Time
}
