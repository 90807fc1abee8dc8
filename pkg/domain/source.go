package domain

import "time"

// Source represents a monitored social-media account
type Source struct {
	ID          int64
	ExternalID  string
	Handle      string
	DisplayName string
	FeedURL     string // set for sources collected from an RSS/Atom feed
	Active      bool
	Cursor      string // external id of the last collected item
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SourceProfile is what the ingestion client reports for a handle
type SourceProfile struct {
	ExternalID  string
	Handle      string
	DisplayName string
}
