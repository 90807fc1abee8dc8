// Package scheduler runs the periodic collect/analyze job and the daily digest job,
// and exposes the same jobs as manual triggers.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/umputun/postdigest/pkg/analyzer"
	"github.com/umputun/postdigest/pkg/collector"
	"github.com/umputun/postdigest/pkg/digest"
	"github.com/umputun/postdigest/pkg/notify"
)

//go:generate moq -out mocks/collector.go -pkg mocks -skip-ensure -fmt goimports . Collector
//go:generate moq -out mocks/analyzer.go -pkg mocks -skip-ensure -fmt goimports . Analyzer
//go:generate moq -out mocks/builder.go -pkg mocks -skip-ensure -fmt goimports . Builder
//go:generate moq -out mocks/enricher.go -pkg mocks -skip-ensure -fmt goimports . Enricher
//go:generate moq -out mocks/deliverer.go -pkg mocks -skip-ensure -fmt goimports . Deliverer

// Collector pulls new items from all active sources
type Collector interface {
	CollectAll(ctx context.Context) (collector.Stats, error)
}

// Analyzer runs relevance analysis over pending items
type Analyzer interface {
	Run(ctx context.Context) (analyzer.Report, error)
}

// Builder builds the digest of a calendar date
type Builder interface {
	Build(ctx context.Context, date time.Time) (digest.BuildResult, error)
}

// Enricher re-runs enrichment of a stored digest
type Enricher interface {
	Enrich(ctx context.Context, digestID int64) (digest.EnrichResult, error)
}

// Deliverer sends a stored digest
type Deliverer interface {
	Deliver(ctx context.Context, digestID int64) (notify.Outcome, error)
}

// Params for the scheduler. Deliverer is optional.
type Params struct {
	Collector   Collector
	Analyzer    Analyzer
	Builder     Builder
	Enricher    Enricher
	Deliverer   Deliverer
	CollectCron string
	DigestCron  string
	Location    *time.Location
	JobTimeout  time.Duration
}

// CollectResult combines collection stats and the analysis report of one collect job
type CollectResult struct {
	Collected collector.Stats
	Analyzed  analyzer.Report
}

// JobInfo describes a scheduled job
type JobInfo struct {
	Name    string    `json:"name"`
	Spec    string    `json:"spec"`
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run"`
}

// Scheduler manages the cron jobs. Each job kind runs at most once at a time,
// whether started by cron or by a manual trigger.
type Scheduler struct {
	Params
	cron      *cron.Cron
	jobs      map[string]cron.EntryID
	specs     map[string]string
	collectMu sync.Mutex
	digestMu  sync.Mutex
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

type cronLogger struct{}

func (cronLogger) Printf(format string, args ...any) { lgr.Printf("[WARN] cron: "+format, args...) }

// New creates the scheduler and registers collect and digest jobs
func New(p Params) (*Scheduler, error) {
	if p.Location == nil {
		p.Location = time.UTC
	}
	if p.JobTimeout == 0 {
		p.JobTimeout = 30 * time.Minute
	}

	logger := cron.PrintfLogger(cronLogger{})
	s := &Scheduler{
		Params: p,
		cron:   cron.New(cron.WithLocation(p.Location), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		jobs:   map[string]cron.EntryID{},
		specs:  map[string]string{},
		now:    time.Now,
		ctx:    context.Background(),
	}

	if err := s.addJob("collect", p.CollectCron, func(ctx context.Context) error {
		_, err := s.CollectNow(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	if err := s.addJob("digest", p.DigestCron, s.runDaily); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) addJob(name, spec string, job func(ctx context.Context) error) error {
	id, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(s.ctx, s.JobTimeout)
		defer cancel()

		lgr.Printf("[INFO] starting job %s", name)
		start := time.Now()
		if err := job(ctx); err != nil {
			lgr.Printf("[ERROR] job %s failed: %v", name, err)
			return
		}
		lgr.Printf("[INFO] job %s completed in %v", name, time.Since(start).Round(time.Millisecond))
	})
	if err != nil {
		return fmt.Errorf("schedule job %s (%q): %w", name, spec, err)
	}
	s.jobs[name] = id
	s.specs[name] = spec
	lgr.Printf("[DEBUG] added job %s, schedule %q", name, spec)
	return nil
}

// Start runs the cron loop until Stop is called or ctx is canceled
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
	lgr.Printf("[INFO] scheduler started, collect %q, digest %q, timezone %s",
		s.CollectCron, s.DigestCron, s.Location)
}

// Stop cancels running jobs and waits for them to return
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	lgr.Printf("[INFO] scheduler stopped")
}

// Jobs lists the scheduled jobs with their next and previous run times
func (s *Scheduler) Jobs() []JobInfo {
	res := make([]JobInfo, 0, len(s.jobs))
	for _, name := range []string{"collect", "digest"} {
		id, ok := s.jobs[name]
		if !ok {
			continue
		}
		e := s.cron.Entry(id)
		res = append(res, JobInfo{Name: name, Spec: s.specs[name], NextRun: e.Next, LastRun: e.Prev})
	}
	return res
}

// CollectNow collects new items and analyzes pending ones. Analysis runs even
// if collection failed, items from earlier runs may still be pending.
func (s *Scheduler) CollectNow(ctx context.Context) (CollectResult, error) {
	s.collectMu.Lock()
	defer s.collectMu.Unlock()

	var res CollectResult
	stats, collectErr := s.Collector.CollectAll(ctx)
	if collectErr != nil {
		lgr.Printf("[ERROR] collect failed: %v", collectErr)
	}
	res.Collected = stats

	report, err := s.Analyzer.Run(ctx)
	res.Analyzed = report
	if err != nil {
		return res, fmt.Errorf("analyze: %w", err)
	}
	lgr.Printf("[INFO] collected %d new items from %d sources, analyzed %d (%d relevant), skipped chunks %d",
		stats.Stored, stats.Sources, report.Analyzed, report.Relevant, report.Skipped())
	if collectErr != nil {
		return res, fmt.Errorf("collect: %w", collectErr)
	}
	return res, nil
}

// BuildDigestNow builds the digest of the given calendar date
func (s *Scheduler) BuildDigestNow(ctx context.Context, date time.Time) (digest.BuildResult, error) {
	s.digestMu.Lock()
	defer s.digestMu.Unlock()
	return s.Builder.Build(ctx, date)
}

// EnrichDigestNow re-runs enrichment of a stored digest, already enriched posts are kept
func (s *Scheduler) EnrichDigestNow(ctx context.Context, digestID int64) (digest.EnrichResult, error) {
	s.digestMu.Lock()
	defer s.digestMu.Unlock()
	return s.Enricher.Enrich(ctx, digestID)
}

// Yesterday returns the previous calendar date in the scheduler timezone
func (s *Scheduler) Yesterday() time.Time {
	y, m, d := s.now().In(s.Location).Date()
	return time.Date(y, m, d-1, 0, 0, 0, 0, s.Location)
}

// runDaily builds yesterday's digest and delivers it
func (s *Scheduler) runDaily(ctx context.Context) error {
	date := s.Yesterday()
	res, err := s.BuildDigestNow(ctx, date)
	if err != nil {
		return fmt.Errorf("build digest for %s: %w", date.Format("2006-01-02"), err)
	}
	if res.Digest == nil {
		lgr.Printf("[INFO] nothing to deliver for %s, status %s", date.Format("2006-01-02"), res.Status)
		return nil
	}
	if s.Deliverer == nil {
		return nil
	}
	if _, err := s.Deliverer.Deliver(ctx, res.Digest.ID); err != nil {
		return fmt.Errorf("deliver digest %d: %w", res.Digest.ID, err)
	}
	return nil
}
