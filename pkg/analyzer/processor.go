// Package analyzer runs relevance analysis over pending items and stamps each with an importance score
package analyzer

import (
	"context"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/postdigest/pkg/domain"
	"github.com/umputun/postdigest/pkg/metrics"
	"github.com/umputun/postdigest/pkg/scoring"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/oracle.go -pkg mocks -skip-ensure -fmt goimports . Oracle
//go:generate moq -out mocks/link_extractor.go -pkg mocks -skip-ensure -fmt goimports . LinkExtractor

// Store provides access to pending items and persists analyses
type Store interface {
	GetPendingItems(ctx context.Context, limit int) ([]domain.Item, error)
	SaveAnalyses(ctx context.Context, analyses []domain.Analysis) error
}

// Oracle judges relevance of a batch of posts
type Oracle interface {
	Analyze(ctx context.Context, inputs []domain.AnalysisInput) domain.AnalysisResult
}

// LinkExtractor returns text of the page linked from a post
type LinkExtractor interface {
	LinkContext(ctx context.Context, text string) (string, error)
}

// Params for processor creation
type Params struct {
	Store         Store
	Oracle        Oracle
	LinkExtractor LinkExtractor // optional
	Combiner      scoring.Combiner
	ChunkSize     int
	MaxChunks     int
}

// Processor drives chunked relevance analysis
type Processor struct {
	store     Store
	oracle    Oracle
	links     LinkExtractor
	combiner  scoring.Combiner
	chunkSize int
	maxChunks int
	now       func() time.Time
}

// ChunkStatus is the outcome of one chunk
type ChunkStatus string

// chunk outcomes
const (
	ChunkCommitted ChunkStatus = "committed"
	ChunkSkipped   ChunkStatus = "skipped"
)

// ChunkResult describes what happened to one chunk
type ChunkResult struct {
	Index    int
	Size     int
	Status   ChunkStatus
	Analyzed int   // analyses stored
	Relevant int   // relevant among stored
	Pending  int   // items left unenriched, missing from the oracle response or skipped
	Err      error // oracle failure for skipped chunks
}

// Report summarizes one run
type Report struct {
	Fetched  int
	Chunks   []ChunkResult
	Analyzed int
	Relevant int
}

// Skipped returns the number of skipped chunks
func (r Report) Skipped() int {
	res := 0
	for _, c := range r.Chunks {
		if c.Status == ChunkSkipped {
			res++
		}
	}
	return res
}

// NewProcessor makes a processor, zero chunk settings fall back to 10
func NewProcessor(p Params) *Processor {
	if p.ChunkSize <= 0 {
		p.ChunkSize = 10
	}
	if p.MaxChunks <= 0 {
		p.MaxChunks = 10
	}
	return &Processor{
		store:     p.Store,
		oracle:    p.Oracle,
		links:     p.LinkExtractor,
		combiner:  p.Combiner,
		chunkSize: p.ChunkSize,
		maxChunks: p.MaxChunks,
		now:       time.Now,
	}
}

// Run analyzes the oldest pending items chunk by chunk. A chunk the oracle fails on is skipped and
// its items stay pending. Store errors abort the run, chunks committed before that stay committed.
func (p *Processor) Run(ctx context.Context) (Report, error) {
	report := Report{}
	items, err := p.store.GetPendingItems(ctx, p.chunkSize*p.maxChunks)
	if err != nil {
		return report, fmt.Errorf("get pending items: %w", err)
	}
	report.Fetched = len(items)
	if len(items) == 0 {
		log.Printf("[DEBUG] no pending items to analyze")
		return report, nil
	}

	for idx, start := 0, 0; start < len(items); idx, start = idx+1, start+p.chunkSize {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		end := min(start+p.chunkSize, len(items))
		res, err := p.processChunk(ctx, idx, items[start:end])
		report.Chunks = append(report.Chunks, res)
		if err != nil {
			return report, err
		}
		report.Analyzed += res.Analyzed
		report.Relevant += res.Relevant
	}

	log.Printf("[INFO] analyzed %d of %d pending items, %d relevant, %d chunks skipped",
		report.Analyzed, report.Fetched, report.Relevant, report.Skipped())
	return report, nil
}

func (p *Processor) processChunk(ctx context.Context, idx int, chunk []domain.Item) (ChunkResult, error) {
	res := ChunkResult{Index: idx, Size: len(chunk)}

	inputs := make([]domain.AnalysisInput, len(chunk))
	for i, item := range chunk {
		inputs[i] = domain.AnalysisInput{ExternalID: item.ExternalID, Text: item.Text}
		if p.links == nil {
			continue
		}
		linked, err := p.links.LinkContext(ctx, item.Text)
		if err != nil {
			log.Printf("[DEBUG] no link context for item %s: %v", item.ExternalID, err)
			continue
		}
		inputs[i].Context = linked
	}

	result := p.oracle.Analyze(ctx, inputs)
	metrics.IncOracleChunk(result.Kind.String())
	if result.Kind != domain.ResultOK {
		log.Printf("[WARN] chunk %d (%d items) skipped, %s: %v", idx, len(chunk), result.Kind, result.Err)
		res.Status, res.Err, res.Pending = ChunkSkipped, result.Err, len(chunk)
		return res, nil
	}

	analyses := p.combine(chunk, result.Judgments)
	if len(analyses) > 0 {
		if err := p.store.SaveAnalyses(ctx, analyses); err != nil {
			return res, fmt.Errorf("save analyses of chunk %d: %w", idx, err)
		}
	}

	res.Status = ChunkCommitted
	res.Analyzed = len(analyses)
	res.Pending = len(chunk) - len(analyses)
	for _, a := range analyses {
		if a.Relevant {
			res.Relevant++
		}
	}
	metrics.IncAnalyzed(true, res.Relevant)
	metrics.IncAnalyzed(false, res.Analyzed-res.Relevant)
	if res.Pending > 0 {
		log.Printf("[WARN] chunk %d: %d items missing in oracle response, left pending", idx, res.Pending)
	}
	log.Printf("[DEBUG] chunk %d: %d analyzed, %d relevant", idx, res.Analyzed, res.Relevant)
	return res, nil
}

// combine matches judgments to chunk items and computes importance against the chunk's max engagement.
// Judgments are matched by external id, a judgment without id takes the item at its position in the response.
func (p *Processor) combine(chunk []domain.Item, judgments []domain.Judgment) []domain.Analysis {
	byID := make(map[string]domain.Judgment, len(judgments))
	positional := make(map[int]domain.Judgment)
	for _, j := range judgments {
		if j.ExternalID == "" {
			if _, seen := positional[j.Position]; !seen {
				positional[j.Position] = j
			}
			continue
		}
		if _, seen := byID[j.ExternalID]; !seen {
			byID[j.ExternalID] = j
		}
	}

	maxEngagement := scoring.MaxEngagement(chunk)
	now := p.now()
	res := make([]domain.Analysis, 0, len(chunk))
	for i, item := range chunk {
		j, ok := byID[item.ExternalID]
		if !ok {
			if j, ok = positional[i]; !ok {
				continue
			}
		}
		a := domain.Analysis{
			ItemID:          item.ID,
			Relevant:        j.Relevant,
			RelevanceScore:  j.RelevanceScore,
			ImportanceScore: p.combiner.Importance(item.EngagementScore, maxEngagement, j.RelevanceScore),
			AnalyzedAt:      now,
		}
		if j.Relevant {
			a.Summary = j.Summary
			a.Topics = j.Topics
		}
		res = append(res, a)
	}
	return res
}
