package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
	Collector  CollectorConfig  `yaml:"collector" json:"collector" jsonschema:"description=Post collection configuration"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for analysis and narrative"`
	Ranking    RankingConfig    `yaml:"ranking" json:"ranking" jsonschema:"description=Engagement and importance ranking"`
	Analysis   AnalysisConfig   `yaml:"analysis" json:"analysis" jsonschema:"description=Relevance analysis run settings"`
	Enrichment EnrichmentConfig `yaml:"enrichment" json:"enrichment" jsonschema:"description=Digest enrichment settings"`
	Storage    StorageConfig    `yaml:"storage" json:"storage" jsonschema:"description=Object storage for screenshots"`
	Email      EmailConfig      `yaml:"email" json:"email" jsonschema:"description=Digest email delivery"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen   string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	PageSize int           `yaml:"page_size" json:"page_size" jsonschema:"default=20,minimum=1,description=Default page size for list endpoints"`
	BaseURL  string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feed and digest links"`
	Title    string        `yaml:"title" json:"title" jsonschema:"default=Daily Digest,description=Site title used in pages and emails"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:postdigest.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=1,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=1,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds cron schedules for collection and daily digest
type ScheduleConfig struct {
	Enabled     bool   `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Run scheduled jobs"`
	CollectCron string `yaml:"collect_cron" json:"collect_cron" jsonschema:"default=0 */2 * * *,description=Cron spec for collect and analyze job"`
	DigestCron  string `yaml:"digest_cron" json:"digest_cron" jsonschema:"default=0 8 * * *,description=Cron spec for the daily digest job (builds yesterday)"`
	Timezone    string `yaml:"timezone" json:"timezone" jsonschema:"default=UTC,description=Timezone for cron specs and calendar days"`
}

// CollectorConfig holds social API and feed collection settings
type CollectorConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.twitter.com/2,description=Social API base URL"`
	BearerToken string        `yaml:"bearer_token" json:"bearer_token" jsonschema:"description=Social API bearer token (can use environment variable)"`
	PageSize    int           `yaml:"page_size" json:"page_size" jsonschema:"default=100,minimum=5,maximum=100,description=Posts per API page"`
	MaxPages    int           `yaml:"max_pages" json:"max_pages" jsonschema:"default=5,minimum=1,description=Maximum pages fetched per source per run"`
	MaxWorkers  int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=4,minimum=1,description=Sources collected concurrently"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP timeout for collection requests"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Postdigest/1.0,description=User agent for HTTP requests"`
	Sources     []string      `yaml:"sources" json:"sources" jsonschema:"description=Account handles registered at startup"`
}

// LLMConfig holds OpenAI-compatible oracle settings
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	Topic        string        `yaml:"topic" json:"topic" jsonschema:"default=AI and machine learning,description=Subject used to judge relevance"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt override for relevance analysis (optional)"`
}

// Weights are per-interaction engagement multipliers
type Weights struct {
	Like     float64 `yaml:"like" json:"like" jsonschema:"default=1.0,minimum=0,description=Weight of a like"`
	Reshare  float64 `yaml:"reshare" json:"reshare" jsonschema:"default=2.0,minimum=0,description=Weight of a reshare"`
	Reply    float64 `yaml:"reply" json:"reply" jsonschema:"default=1.5,minimum=0,description=Weight of a reply"`
	Bookmark float64 `yaml:"bookmark" json:"bookmark" jsonschema:"default=2.5,minimum=0,description=Weight of a bookmark"`
}

// RankingConfig holds engagement weights and digest tiering
type RankingConfig struct {
	Weights         Weights `yaml:"weights" json:"weights" jsonschema:"description=Engagement weights"`
	RelevanceWeight float64 `yaml:"relevance_weight" json:"relevance_weight" jsonschema:"default=3.0,minimum=0,maximum=10,description=Relevance share of importance divided by 10"`
	HighlightCount  int     `yaml:"highlight_count" json:"highlight_count" jsonschema:"default=10,minimum=1,description=Size of the highlight tier"`
	SlugSuffix      string  `yaml:"slug_suffix" json:"slug_suffix" jsonschema:"default=ai-news,description=Suffix appended to digest slugs"`
}

// LinkContextConfig controls article extraction for linked pages
type LinkContextConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Extract linked article text into the analysis prompt"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Extraction timeout per link"`
	MaxChars  int           `yaml:"max_chars" json:"max_chars" jsonschema:"default=1500,description=Maximum characters of extracted text"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Postdigest/1.0,description=User agent for link fetches"`
}

// AnalysisConfig holds relevance analysis run settings
type AnalysisConfig struct {
	ChunkSize   int               `yaml:"chunk_size" json:"chunk_size" jsonschema:"default=10,minimum=1,description=Items per oracle batch"`
	MaxChunks   int               `yaml:"max_chunks" json:"max_chunks" jsonschema:"default=10,minimum=1,description=Maximum batches per run"`
	LinkContext LinkContextConfig `yaml:"link_context" json:"link_context" jsonschema:"description=Linked article context"`
}

// TranslationConfig holds translation enrichment settings
type TranslationConfig struct {
	Enabled      bool   `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Translate digest posts"`
	Language     string `yaml:"language" json:"language" jsonschema:"default=Chinese,description=Target language"`
	CompactCount int    `yaml:"compact_count" json:"compact_count" jsonschema:"default=10,minimum=0,description=Compact tier posts translated by rank"`
}

// ScreenshotConfig holds screenshot enrichment settings
type ScreenshotConfig struct {
	Enabled    bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Screenshot highlight posts"`
	Width      int           `yaml:"width" json:"width" jsonschema:"default=1200,description=Viewport width"`
	Height     int           `yaml:"height" json:"height" jsonschema:"default=800,description=Viewport height"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Render timeout per post"`
	Selector   string        `yaml:"selector" json:"selector" jsonschema:"default=article[data-testid=\"tweet\"],description=CSS selector of the post element"`
	ChromePath string        `yaml:"chrome_path" json:"chrome_path" jsonschema:"description=Chrome executable path (optional)"`
}

// EnrichmentConfig holds tiered enrichment settings
type EnrichmentConfig struct {
	Translation TranslationConfig `yaml:"translation" json:"translation" jsonschema:"description=Translation settings"`
	Screenshot  ScreenshotConfig  `yaml:"screenshot" json:"screenshot" jsonschema:"description=Screenshot settings"`
}

// StorageConfig holds S3-compatible object storage settings
type StorageConfig struct {
	Bucket    string `yaml:"bucket" json:"bucket" jsonschema:"description=Bucket name (empty disables uploads)"`
	Region    string `yaml:"region" json:"region" jsonschema:"default=us-east-1,description=Bucket region"`
	Endpoint  string `yaml:"endpoint" json:"endpoint" jsonschema:"description=Custom S3 endpoint (minio or r2)"`
	AccessKey string `yaml:"access_key" json:"access_key" jsonschema:"description=Access key (can use environment variable)"`
	SecretKey string `yaml:"secret_key" json:"secret_key" jsonschema:"description=Secret key (can use environment variable)"`
	PublicURL string `yaml:"public_url" json:"public_url" jsonschema:"description=Public base URL of uploaded objects"`
}

// EmailConfig holds SMTP delivery settings
type EmailConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Send digest emails"`
	Host     string `yaml:"host" json:"host" jsonschema:"description=SMTP host"`
	Port     int    `yaml:"port" json:"port" jsonschema:"default=587,description=SMTP port"`
	Username string `yaml:"username" json:"username" jsonschema:"description=SMTP username"`
	Password string `yaml:"password" json:"password" jsonschema:"description=SMTP password (can use environment variable)"`
	From     string `yaml:"from" json:"from" jsonschema:"description=Sender address"`
	To       string `yaml:"to" json:"to" jsonschema:"description=Recipient address"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	// weights and flags are prefilled, so explicit zero and false survive decoding
	cfg := Config{}
	cfg.Ranking.Weights = Weights{Like: 1.0, Reshare: 2.0, Reply: 1.5, Bookmark: 2.5}
	cfg.Ranking.RelevanceWeight = 3.0
	cfg.Enrichment.Translation.Enabled = true
	cfg.Enrichment.Translation.CompactCount = 10
	cfg.Enrichment.Screenshot.Enabled = true
	cfg.Schedule.Enabled = true

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.PageSize == 0 {
		cfg.Server.PageSize = 20
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}
	cfg.Server.BaseURL = strings.TrimSuffix(cfg.Server.BaseURL, "/")
	if cfg.Server.Title == "" {
		cfg.Server.Title = "Daily Digest"
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:postdigest.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 1
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 1
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if cfg.Schedule.CollectCron == "" {
		cfg.Schedule.CollectCron = "0 */2 * * *"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 8 * * *"
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "UTC"
	}

	// collector
	if cfg.Collector.Endpoint == "" {
		cfg.Collector.Endpoint = "https://api.twitter.com/2"
	}
	cfg.Collector.Endpoint = strings.TrimSuffix(cfg.Collector.Endpoint, "/")
	if cfg.Collector.PageSize == 0 {
		cfg.Collector.PageSize = 100
	}
	if cfg.Collector.MaxPages == 0 {
		cfg.Collector.MaxPages = 5
	}
	if cfg.Collector.MaxWorkers == 0 {
		cfg.Collector.MaxWorkers = 4
	}
	if cfg.Collector.Timeout == 0 {
		cfg.Collector.Timeout = 30 * time.Second
	}
	if cfg.Collector.UserAgent == "" {
		cfg.Collector.UserAgent = "Postdigest/1.0"
	}

	// llm
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 2000
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}
	if cfg.LLM.Topic == "" {
		cfg.LLM.Topic = "AI and machine learning"
	}

	// ranking
	if cfg.Ranking.HighlightCount == 0 {
		cfg.Ranking.HighlightCount = 10
	}
	if cfg.Ranking.SlugSuffix == "" {
		cfg.Ranking.SlugSuffix = "ai-news"
	}

	// analysis
	if cfg.Analysis.ChunkSize == 0 {
		cfg.Analysis.ChunkSize = 10
	}
	if cfg.Analysis.MaxChunks == 0 {
		cfg.Analysis.MaxChunks = 10
	}
	if cfg.Analysis.LinkContext.Timeout == 0 {
		cfg.Analysis.LinkContext.Timeout = 15 * time.Second
	}
	if cfg.Analysis.LinkContext.MaxChars == 0 {
		cfg.Analysis.LinkContext.MaxChars = 1500
	}
	if cfg.Analysis.LinkContext.UserAgent == "" {
		cfg.Analysis.LinkContext.UserAgent = "Postdigest/1.0"
	}

	// enrichment
	if cfg.Enrichment.Translation.Language == "" {
		cfg.Enrichment.Translation.Language = "Chinese"
	}
	if cfg.Enrichment.Screenshot.Width == 0 {
		cfg.Enrichment.Screenshot.Width = 1200
	}
	if cfg.Enrichment.Screenshot.Height == 0 {
		cfg.Enrichment.Screenshot.Height = 800
	}
	if cfg.Enrichment.Screenshot.Timeout == 0 {
		cfg.Enrichment.Screenshot.Timeout = 30 * time.Second
	}
	if cfg.Enrichment.Screenshot.Selector == "" {
		cfg.Enrichment.Screenshot.Selector = `article[data-testid="tweet"]`
	}

	// storage and email
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Email.Port == 0 {
		cfg.Email.Port = 587
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate LLM config
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	// validate ranking config
	w := cfg.Ranking.Weights
	if w.Like < 0 || w.Reshare < 0 || w.Reply < 0 || w.Bookmark < 0 {
		return fmt.Errorf("ranking.weights must be non-negative")
	}
	if cfg.Ranking.RelevanceWeight < 0 || cfg.Ranking.RelevanceWeight > 10 {
		return fmt.Errorf("ranking.relevance_weight must be between 0 and 10")
	}
	if cfg.Ranking.HighlightCount < 1 {
		return fmt.Errorf("ranking.highlight_count must be at least 1")
	}
	if strings.ContainsAny(cfg.Ranking.SlugSuffix, " /?#") {
		return fmt.Errorf("ranking.slug_suffix must be url-safe")
	}

	// validate analysis and enrichment
	if cfg.Analysis.ChunkSize < 1 {
		return fmt.Errorf("analysis.chunk_size must be at least 1")
	}
	if cfg.Analysis.MaxChunks < 1 {
		return fmt.Errorf("analysis.max_chunks must be at least 1")
	}
	if cfg.Enrichment.Translation.CompactCount < 0 {
		return fmt.Errorf("enrichment.translation.compact_count must be non-negative")
	}

	// validate schedule
	if _, err := time.LoadLocation(cfg.Schedule.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone %q: %w", cfg.Schedule.Timezone, err)
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(cfg.Schedule.CollectCron); err != nil {
		return fmt.Errorf("schedule.collect_cron: %w", err)
	}
	if _, err := parser.Parse(cfg.Schedule.DigestCron); err != nil {
		return fmt.Errorf("schedule.digest_cron: %w", err)
	}

	// validate email config
	if cfg.Email.Enabled && (cfg.Email.Host == "" || cfg.Email.From == "" || cfg.Email.To == "") {
		return fmt.Errorf("email.host, email.from and email.to are required when email is enabled")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// Location returns the configured schedule timezone, UTC if it can't be loaded
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
