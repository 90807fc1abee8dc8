package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/umputun/postdigest/pkg/analyzer"
	"github.com/umputun/postdigest/pkg/collector"
	"github.com/umputun/postdigest/pkg/config"
	"github.com/umputun/postdigest/pkg/content"
	"github.com/umputun/postdigest/pkg/digest"
	"github.com/umputun/postdigest/pkg/domain"
	"github.com/umputun/postdigest/pkg/llm"
	"github.com/umputun/postdigest/pkg/metrics"
	"github.com/umputun/postdigest/pkg/notify"
	"github.com/umputun/postdigest/pkg/render"
	"github.com/umputun/postdigest/pkg/repository"
	"github.com/umputun/postdigest/pkg/scheduler"
	"github.com/umputun/postdigest/pkg/scoring"
	"github.com/umputun/postdigest/pkg/screenshot"
	"github.com/umputun/postdigest/server"
)

// Opts with all CLI options
type Opts struct {
	Config    string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen    string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.listen"`
	Collect   bool   `long:"collect" description:"collect and analyze once, then exit"`
	BuildDate string `long:"build-date" description:"build and deliver the digest of a date (YYYY-MM-DD), then exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = opts.NoColor
	SetupLog(opts.Debug)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	lgr.Printf("[INFO] starting postdigest version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	lgr.Print("[INFO] shutdown complete")
}

// run wires all services from the config and either runs a one-shot command or the server
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	SetupLog(opts.Debug, secrets(cfg)...)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to init database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	svc, err := newServices(ctx, cfg, repos)
	if err != nil {
		return err
	}

	switch {
	case opts.Collect:
		return collectOnce(ctx, svc.scheduler)
	case opts.BuildDate != "":
		return buildOnce(ctx, svc, opts.BuildDate, cfg.Location())
	}

	registerSources(ctx, svc.collector, repos.Source, cfg.Collector.Sources)

	if cfg.Schedule.Enabled {
		svc.scheduler.Start(ctx)
		defer svc.scheduler.Stop()
	}

	srv, err := server.New(cfg, server.NewRepositoryAdapter(repos), svc.scheduler, svc.collector, revision, opts.Debug)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// services holds the wired pipeline
type services struct {
	collector *collector.Collector
	scheduler *scheduler.Scheduler
	notifier  *notify.Service
}

func newServices(ctx context.Context, cfg *config.Config, repos *repository.Repositories) (*services, error) {
	oracle := llm.NewOracle(cfg.LLM, cfg.Enrichment.Translation.Language)

	procParams := analyzer.Params{
		Store:     analysisStore{ItemRepository: repos.Item, AnalysisRepository: repos.Analysis},
		Oracle:    oracle,
		Combiner:  scoring.NewCombiner(cfg.Ranking.RelevanceWeight),
		ChunkSize: cfg.Analysis.ChunkSize,
		MaxChunks: cfg.Analysis.MaxChunks,
	}
	if lc := cfg.Analysis.LinkContext; lc.Enabled {
		procParams.LinkExtractor = content.NewLinkExtractor(lc.Timeout, lc.UserAgent, lc.MaxChars)
	}

	collParams := collector.Params{
		Sources:    repos.Source,
		Items:      repos.Item,
		RSS:        collector.NewRSS(cfg.Collector.Timeout, cfg.Collector.UserAgent),
		Weights:    scoring.Weights(cfg.Ranking.Weights),
		MaxWorkers: cfg.Collector.MaxWorkers,
	}
	if cfg.Collector.BearerToken != "" {
		collParams.API = collector.NewTwitterAPI(collector.TwitterParams{
			Endpoint:    cfg.Collector.Endpoint,
			BearerToken: cfg.Collector.BearerToken,
			UserAgent:   cfg.Collector.UserAgent,
			PageSize:    cfg.Collector.PageSize,
			MaxPages:    cfg.Collector.MaxPages,
			Timeout:     cfg.Collector.Timeout,
		})
	} else {
		lgr.Print("[WARN] collector.bearer_token is not set, only feed sources will be collected")
	}
	coll := collector.NewCollector(collParams)

	enrParams := digest.EnricherParams{
		Digests:      repos.Digest,
		Posts:        repos.Analysis,
		Translator:   oracle,
		Translate:    cfg.Enrichment.Translation.Enabled,
		CompactCount: cfg.Enrichment.Translation.CompactCount,
		Screenshots:  cfg.Enrichment.Screenshot.Enabled,
	}
	if sc := cfg.Enrichment.Screenshot; sc.Enabled && cfg.Storage.Bucket != "" {
		uploader, err := screenshot.NewUploader(ctx, screenshot.UploaderParams{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init screenshot storage: %w", err)
		}
		enrParams.Uploader = uploader
		enrParams.Renderer = screenshot.NewRenderer(screenshot.RendererParams{
			Width:      sc.Width,
			Height:     sc.Height,
			Timeout:    sc.Timeout,
			Selector:   sc.Selector,
			ChromePath: sc.ChromePath,
		})
	} else if sc.Enabled {
		lgr.Print("[WARN] storage.bucket is not set, screenshots are disabled")
	}
	enricher := digest.NewEnricher(enrParams)

	builder := digest.NewBuilder(digest.BuilderParams{
		Digests:        repos.Digest,
		Posts:          repos.Analysis,
		Narrator:       digest.NewNarrator(oracle, ""),
		Enricher:       enricher,
		HighlightCount: cfg.Ranking.HighlightCount,
		SlugSuffix:     cfg.Ranking.SlugSuffix,
		Location:       cfg.Location(),
	})

	renderer, err := render.New(cfg.Server.Title, cfg.Server.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init renderer: %w", err)
	}
	notifyParams := notify.Params{
		Store:     repos.Digest,
		Renderer:  renderer,
		Recipient: cfg.Email.To,
		Enabled:   cfg.Email.Enabled,
	}
	if cfg.Email.Enabled {
		notifyParams.Sender = notify.NewSMTPSender(cfg.Email.Host, cfg.Email.Port, cfg.Email.Username,
			cfg.Email.Password, cfg.Email.From)
	}
	notifier := notify.New(notifyParams)

	sched, err := scheduler.New(scheduler.Params{
		Collector:   coll,
		Analyzer:    analyzer.NewProcessor(procParams),
		Builder:     builder,
		Enricher:    enricher,
		Deliverer:   notifier,
		CollectCron: cfg.Schedule.CollectCron,
		DigestCron:  cfg.Schedule.DigestCron,
		Location:    cfg.Location(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init scheduler: %w", err)
	}

	return &services{collector: coll, scheduler: sched, notifier: notifier}, nil
}

func collectOnce(ctx context.Context, sched *scheduler.Scheduler) error {
	res, err := sched.CollectNow(ctx)
	lgr.Printf("[INFO] collected %d new posts from %d sources, analyzed %d, relevant %d, skipped chunks %d",
		res.Collected.Stored, res.Collected.Sources, res.Analyzed.Analyzed, res.Analyzed.Relevant, res.Analyzed.Skipped())
	if err != nil {
		return fmt.Errorf("collect failed: %w", err)
	}
	return nil
}

func buildOnce(ctx context.Context, svc *services, date string, loc *time.Location) error {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return fmt.Errorf("invalid build date %q: %w", date, err)
	}
	res, err := svc.scheduler.BuildDigestNow(ctx, day)
	if err != nil {
		return fmt.Errorf("build digest for %s: %w", date, err)
	}
	if res.Digest == nil {
		lgr.Printf("[INFO] no qualifying posts for %s, nothing to build", date)
		return nil
	}
	lgr.Printf("[INFO] digest %s is %s", res.Digest.Slug, res.Status)

	outcome, err := svc.notifier.Deliver(ctx, res.Digest.ID)
	if err != nil {
		return fmt.Errorf("deliver digest %s: %w", res.Digest.Slug, err)
	}
	lgr.Printf("[INFO] digest %s delivery: %s", res.Digest.Slug, outcome)
	return nil
}

// sourceLister reads registered sources
type sourceLister interface {
	GetSources(ctx context.Context, activeOnly bool) ([]domain.Source, error)
}

// registerSources adds configured handles and feed urls missing from the database.
// Failures are logged, the service starts with whatever could be registered.
func registerSources(ctx context.Context, coll *collector.Collector, store sourceLister, refs []string) {
	if len(refs) == 0 {
		return
	}
	existing, err := store.GetSources(ctx, false)
	if err != nil {
		lgr.Printf("[WARN] failed to load sources: %v", err)
		return
	}
	known := make(map[string]bool, len(existing)*2)
	for _, src := range existing {
		known[strings.ToLower(src.Handle)] = true
		if src.FeedURL != "" {
			known[src.FeedURL] = true
		}
	}

	for _, ref := range refs {
		handle, feedURL := sourceRef(ref)
		key := feedURL
		if key == "" {
			key = strings.ToLower(handle)
		}
		if key == "" || known[key] {
			continue
		}
		if _, err := coll.AddSource(ctx, handle, feedURL); err != nil {
			if errors.Is(err, collector.ErrSourceNotFound) {
				lgr.Printf("[WARN] configured source %q not found", ref)
				continue
			}
			lgr.Printf("[WARN] failed to register source %q: %v", ref, err)
			continue
		}
		known[key] = true
	}
}

// sourceRef splits a configured source into a handle or a feed url
func sourceRef(ref string) (handle, feedURL string) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return "", ref
	}
	return strings.TrimPrefix(ref, "@"), ""
}

// secrets returns non-empty credentials to mask in logs
func secrets(cfg *config.Config) []string {
	var res []string
	for _, s := range []string{cfg.LLM.APIKey, cfg.Collector.BearerToken, cfg.Email.Password, cfg.Storage.SecretKey} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

// SetupLog configures lgr and redirects the std logger to it
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
