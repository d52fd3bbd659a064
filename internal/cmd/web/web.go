// Package web parses web service flags and launches the job board.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/louisbranch/talenthub/internal/cmd/stores"
	entrypoint "github.com/louisbranch/talenthub/internal/platform/cmd"
	"github.com/louisbranch/talenthub/internal/platform/i18n/catalog"
	"github.com/louisbranch/talenthub/internal/platform/ratelimit"
	"github.com/louisbranch/talenthub/internal/platform/storage/redisconn"
	authapp "github.com/louisbranch/talenthub/internal/services/auth/app"
	"github.com/louisbranch/talenthub/internal/services/auth/events"
	"github.com/louisbranch/talenthub/internal/services/auth/sweeper"
	"github.com/louisbranch/talenthub/internal/services/web"
	"github.com/louisbranch/talenthub/internal/services/web/modules"
	"github.com/louisbranch/talenthub/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/talenthub/internal/services/web/platform/sessioncookie"
)

// Config holds web command configuration.
type Config struct {
	HTTPAddr            string        `env:"TALENTHUB_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	DatabaseURL         string        `env:"TALENTHUB_DATABASE_URL"`
	AuthDBPath          string        `env:"TALENTHUB_AUTH_DB_PATH" envDefault:"data/auth.db"`
	ListingDBPath       string        `env:"TALENTHUB_LISTING_DB_PATH" envDefault:"data/listing.db"`
	RedisURL            string        `env:"TALENTHUB_REDIS_URL"`
	SessionSecret       string        `env:"TALENTHUB_SESSION_SECRET"`
	SessionTTL          time.Duration `env:"TALENTHUB_SESSION_TTL" envDefault:"720h"`
	SweepSchedule       string        `env:"TALENTHUB_SESSION_SWEEP_SCHEDULE" envDefault:"@every 1h"`
	AdminEmails         []string      `env:"TALENTHUB_ADMIN_EMAILS" envSeparator:","`
	RequireConfirmation bool          `env:"TALENTHUB_REQUIRE_EMAIL_CONFIRMATION"`
	TrustForwardedProto bool          `env:"TALENTHUB_TRUST_FORWARDED_PROTO"`
	TrustForwardedFor   bool          `env:"TALENTHUB_TRUST_FORWARDED_FOR"`
	LoginAttemptLimit   int           `env:"TALENTHUB_LOGIN_ATTEMPT_LIMIT" envDefault:"10"`
	LoginAttemptWindow  time.Duration `env:"TALENTHUB_LOGIN_ATTEMPT_WINDOW" envDefault:"15m"`
	AuthEventsChannel   string        `env:"TALENTHUB_AUTH_EVENTS_CHANNEL" envDefault:"talenthub:auth-events"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres URL; SQLite files are used when empty")
	fs.StringVar(&cfg.AuthDBPath, "auth-db-path", cfg.AuthDBPath, "Auth SQLite database path")
	fs.StringVar(&cfg.ListingDBPath, "listing-db-path", cfg.ListingDBPath, "Listing SQLite database path")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for auth events and login throttling")
	fs.StringVar(&cfg.SweepSchedule, "sweep-schedule", cfg.SweepSchedule, "Cron schedule for inactive session cleanup")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if len(cfg.SessionSecret) < sessioncookie.MinSecretLength {
		return Config{}, fmt.Errorf("TALENTHUB_SESSION_SECRET must be at least %d bytes", sessioncookie.MinSecretLength)
	}
	return cfg, nil
}

// Run starts the web service and its background jobs.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	opened, err := stores.Open(ctx, stores.Config{
		DatabaseURL:   cfg.DatabaseURL,
		AuthDBPath:    cfg.AuthDBPath,
		ListingDBPath: cfg.ListingDBPath,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := opened.Close(); err != nil {
			log.Printf("close stores: %v", err)
		}
	}()
	listingStore := opened.Listing

	var (
		broker  events.Broker = events.NewMemoryBroker()
		limiter ratelimit.Limiter
	)
	if strings.TrimSpace(cfg.RedisURL) != "" {
		client, err := redisconn.Open(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer closeRedis(client)
		redisBroker := events.NewRedisBroker(client, cfg.AuthEventsChannel)
		go func() {
			if err := redisBroker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("auth events subscriber stopped: %v", err)
			}
		}()
		broker = redisBroker
		limiter = ratelimit.NewRedisLimiter(client, cfg.LoginAttemptLimit, cfg.LoginAttemptWindow, "talenthub:login")
	}

	auth := authapp.NewService(opened.Auth, broker, authapp.Config{
		SessionTTL:          cfg.SessionTTL,
		AdminEmails:         cfg.AdminEmails,
		RequireConfirmation: cfg.RequireConfirmation,
	})

	sessionSweeper := sweeper.New(auth, cfg.SweepSchedule)
	if err := sessionSweeper.Start(ctx); err != nil {
		return err
	}
	defer sessionSweeper.Stop()

	policy := requestmeta.Policy{
		TrustForwardedProto: cfg.TrustForwardedProto,
		TrustForwardedFor:   cfg.TrustForwardedFor,
	}
	cookies, err := sessioncookie.NewCodec(cfg.SessionSecret, policy)
	if err != nil {
		return err
	}

	table, err := catalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr:      cfg.HTTPAddr,
		Catalog:       table,
		RequestPolicy: policy,
		Sessions:      auth,
		Cookies:       cookies,
		Modules: modules.Dependencies{
			SessionChecker:  auth,
			JobLister:       listingStore,
			JobCounter:      listingStore,
			ContactLoader:   listingStore,
			Broker:          broker,
			JobReader:       listingStore,
			SessionResolver: auth,
			ResumeWriter:    listingStore,
			Authenticator:   auth,
			Cookies:         cookies,
			Limiter:         limiter,
			ListingStore:    listingStore,
		},
		TracerProvider: otel.GetTracerProvider(),
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		log.Printf("close redis: %v", err)
	}
}
