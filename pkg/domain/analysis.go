package domain

import "time"

// Analysis is the relevance, summary and enrichment record derived from one item
type Analysis struct {
	ID              int64
	ItemID          int64
	Relevant        bool
	RelevanceScore  float64
	Summary         string
	Translation     string
	Topics          []string
	ImportanceScore float64
	ScreenshotURL   string
	ScreenshotAt    *time.Time
	AnalyzedAt      time.Time
}

// HasTranslation reports whether the translation was already stored
func (a Analysis) HasTranslation() bool { return a.Translation != "" }

// HasScreenshot reports whether the screenshot was already stored
func (a Analysis) HasScreenshot() bool { return a.ScreenshotURL != "" }

// AnalysisInput is one post sent to the relevance oracle
type AnalysisInput struct {
	ExternalID string
	Text       string
	Context    string // optional text of a linked page
}

// Judgment is the oracle verdict for one post
type Judgment struct {
	ExternalID     string   `json:"id"`
	Relevant       bool     `json:"is_relevant"`
	RelevanceScore float64  `json:"relevance_score"`
	Summary        string   `json:"summary"`
	Topics         []string `json:"topics"`
	Position       int      `json:"-"` // index in the oracle response, matches a judgment without id to the post at the same index
}

// ResultKind tags the outcome of a batch analysis call
type ResultKind int

// batch analysis outcomes
const (
	ResultOK ResultKind = iota
	ResultParseError
	ResultTransportError
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultParseError:
		return "parse-error"
	case ResultTransportError:
		return "transport-error"
	default:
		return "unknown"
	}
}

// AnalysisResult is the tagged outcome of one oracle batch call.
// Judgments are valid only when Kind is ResultOK.
type AnalysisResult struct {
	Kind      ResultKind
	Judgments []Judgment
	Err       error
}

// Post joins an analysis with its item and source
type Post struct {
	Analysis Analysis
	Item     Item
	Source   Source
}
