package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string

	// Payment provider. The webhook channel is shared infrastructure, so
	// incoming events are filtered by BrandTag in metadata.
	PaymentAPIKey  string
	PaymentBaseURL string
	PaymentTimeout time.Duration
	WebhookSecret  string
	BrandTag       string

	// Human-readable order numbering: prefix + (offset + counter).
	OrderNumberPrefix string
	OrderNumberOffset int64

	// AI collaborator.
	AIAPIKey  string
	AIBaseURL string
	AIModel   string
	AITimeout time.Duration

	// Extraction collaborator; empty means local size-estimate fallback only.
	ExtractionAddress string
	ExtractionTimeout time.Duration

	// Mailer collaborator.
	MailerAPIKey  string
	MailerBaseURL string
	SenderEmail   string
	OperatorEmail string
	MailTimeout   time.Duration

	// Base URL embedded in client review links.
	ReviewBaseURL string

	// Operator auth.
	OperatorPassword string
	AuthSecret       string
	AuthTokenTTL     time.Duration

	// Background workers.
	PipelinePollInterval time.Duration
	PipelineWorkers      int
	PipelineBatch        int
	NotifyWorkers        int
	NotifyQueueSize      int

	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
}

const (
	defaultRunAddress        = ":8080"
	defaultBrandTag          = "tradux"
	defaultOrderNumberPrefix = "TDX"
	defaultOrderNumberOffset = 1000
	defaultAIBaseURL         = "https://api.anthropic.com"
	defaultAIModel           = "claude-sonnet-4-20250514"
	defaultAITimeout         = 2 * time.Minute
	defaultPaymentBaseURL    = "https://api.stripe.com"
	defaultPaymentTimeout    = 30 * time.Second
	defaultExtractionTimeout = 30 * time.Second
	defaultMailerBaseURL     = "https://api.resend.com"
	defaultSenderEmail       = "TRADUX <onboarding@resend.dev>"
	defaultOperatorEmail     = "contact@tradux.online"
	defaultMailTimeout       = 15 * time.Second
	defaultReviewBaseURL     = "https://tradux.online"
	defaultAuthSecret        = "change-me-in-production"
	defaultAuthTokenTTL      = 12 * time.Hour
	defaultPollInterval      = 2 * time.Second
	defaultPipelineWorkers   = 4
	defaultPipelineBatch     = 8
	defaultNotifyWorkers     = 2
	defaultNotifyQueueSize   = 256
	defaultShutdownTimeout   = 10 * time.Second
	defaultMaxUploadBytes    = 20 << 20
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		PaymentAPIKey:        getString(lookup, "PAYMENT_API_KEY", ""),
		PaymentBaseURL:       getString(lookup, "PAYMENT_BASE_URL", defaultPaymentBaseURL),
		PaymentTimeout:       getDuration(lookup, "PAYMENT_TIMEOUT", defaultPaymentTimeout),
		WebhookSecret:        getString(lookup, "PAYMENT_WEBHOOK_SECRET", ""),
		BrandTag:             getString(lookup, "BRAND_TAG", defaultBrandTag),
		OrderNumberPrefix:    getString(lookup, "ORDER_NUMBER_PREFIX", defaultOrderNumberPrefix),
		OrderNumberOffset:    getInt64(lookup, "ORDER_NUMBER_OFFSET", defaultOrderNumberOffset),
		AIAPIKey:             getString(lookup, "AI_API_KEY", ""),
		AIBaseURL:            getString(lookup, "AI_BASE_URL", defaultAIBaseURL),
		AIModel:              getString(lookup, "AI_MODEL", defaultAIModel),
		AITimeout:            getDuration(lookup, "AI_TIMEOUT", defaultAITimeout),
		ExtractionAddress:    getString(lookup, "EXTRACTION_ADDRESS", ""),
		ExtractionTimeout:    getDuration(lookup, "EXTRACTION_TIMEOUT", defaultExtractionTimeout),
		MailerAPIKey:         getString(lookup, "MAILER_API_KEY", ""),
		MailerBaseURL:        getString(lookup, "MAILER_BASE_URL", defaultMailerBaseURL),
		SenderEmail:          getString(lookup, "SENDER_EMAIL", defaultSenderEmail),
		OperatorEmail:        getString(lookup, "OPERATOR_EMAIL", defaultOperatorEmail),
		MailTimeout:          getDuration(lookup, "MAIL_TIMEOUT", defaultMailTimeout),
		ReviewBaseURL:        getString(lookup, "REVIEW_BASE_URL", defaultReviewBaseURL),
		OperatorPassword:     getString(lookup, "OPERATOR_PASSWORD", ""),
		AuthSecret:           getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		AuthTokenTTL:         getDuration(lookup, "AUTH_TOKEN_TTL", defaultAuthTokenTTL),
		PipelinePollInterval: getDuration(lookup, "PIPELINE_POLL_INTERVAL", defaultPollInterval),
		PipelineWorkers:      getInt(lookup, "PIPELINE_WORKERS", defaultPipelineWorkers),
		PipelineBatch:        getInt(lookup, "PIPELINE_BATCH", defaultPipelineBatch),
		NotifyWorkers:        getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueueSize:      getInt(lookup, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxUploadBytes:       getInt64(lookup, "MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
	}

	fs := flag.NewFlagSet("traduxd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.PipelinePollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.BrandTag, "brand", cfg.BrandTag, "Brand tag expected in payment event metadata")
	fs.StringVar(&cfg.ExtractionAddress, "extraction", cfg.ExtractionAddress, "Extraction service base URL")
	fs.StringVar(&cfg.ReviewBaseURL, "review-base", cfg.ReviewBaseURL, "Base URL for client review links")
	fs.IntVar(&cfg.PipelineWorkers, "pipeline-workers", cfg.PipelineWorkers, "Number of concurrent pipeline workers")
	fs.IntVar(&cfg.PipelineBatch, "pipeline-batch", cfg.PipelineBatch, "Maximum orders per pipeline polling batch")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between pipeline polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PipelinePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.PipelineWorkers <= 0 {
		cfg.PipelineWorkers = defaultPipelineWorkers
	}
	if cfg.PipelineBatch <= 0 {
		cfg.PipelineBatch = defaultPipelineBatch
	}
	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}
	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}
	if cfg.PipelinePollInterval <= 0 {
		cfg.PipelinePollInterval = defaultPollInterval
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.OrderNumberOffset < 0 {
		cfg.OrderNumberOffset = defaultOrderNumberOffset
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
