// Package seed fills a development database with demo postings, contact
// links and an optional admin account.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/louisbranch/talenthub/internal/cmd/stores"
	entrypoint "github.com/louisbranch/talenthub/internal/platform/cmd"
	"github.com/louisbranch/talenthub/internal/platform/id"
	authapp "github.com/louisbranch/talenthub/internal/services/auth/app"
	listingstorage "github.com/louisbranch/talenthub/internal/services/listing/storage"
)

// Config holds seed command configuration.
type Config struct {
	DatabaseURL   string `env:"TALENTHUB_DATABASE_URL"`
	AuthDBPath    string `env:"TALENTHUB_AUTH_DB_PATH" envDefault:"data/auth.db"`
	ListingDBPath string `env:"TALENTHUB_LISTING_DB_PATH" envDefault:"data/listing.db"`
	AdminEmail    string `env:"TALENTHUB_SEED_ADMIN_EMAIL"`
	AdminPassword string `env:"TALENTHUB_SEED_ADMIN_PASSWORD"`
	WhatsAppLink  string `env:"TALENTHUB_SEED_WHATSAPP_LINK" envDefault:"https://wa.me/971500000000"`
	TelegramLink  string `env:"TALENTHUB_SEED_TELEGRAM_LINK" envDefault:"https://t.me/talenthub_support"`
	SkipJobs      bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres URL; SQLite files are used when empty")
	fs.StringVar(&cfg.AuthDBPath, "auth-db-path", cfg.AuthDBPath, "Auth SQLite database path")
	fs.StringVar(&cfg.ListingDBPath, "listing-db-path", cfg.ListingDBPath, "Listing SQLite database path")
	fs.StringVar(&cfg.AdminEmail, "admin-email", cfg.AdminEmail, "create an admin account with this email; list it in TALENTHUB_ADMIN_EMAILS too or sign-in demotes it")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "password for -admin-email")
	fs.BoolVar(&cfg.SkipJobs, "skip-jobs", false, "do not insert demo postings")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.AdminEmail) != "" && cfg.AdminPassword == "" {
		return Config{}, errors.New("-admin-password is required with -admin-email")
	}
	return cfg, nil
}

// demoJobs mention each landing page location so the per-location counts
// are non-zero after seeding.
var demoJobs = []listingstorage.JobPosting{
	{Title: "Construction Supervisor", Salary: "GHS 9,000 / month", WorkingHours: "8h, 6 days", Description: "Lead a road project team in Accra, Ghana. Accommodation provided."},
	{Title: "Hotel Receptionist", Salary: "USD 800 / month", WorkingHours: "8h shifts", Description: "Front desk role at a resort in Siem Reap, Cambodia. English required."},
	{Title: "Electronics Assembler", Salary: "MYR 2,400 / month", WorkingHours: "9h, overtime paid", Description: "Factory line work in Penang, Malaysia. Training included."},
	{Title: "Plantation Technician", Salary: "IDR 7,500,000 / month", WorkingHours: "8h", Description: "Maintain irrigation equipment on estates in Sumatra, Indonesia."},
	{Title: "Garment Quality Inspector", Salary: "USD 450 / month", WorkingHours: "8h, 6 days", Description: "Inspect export orders at a factory in Yangon, Myanmar."},
	{Title: "Delivery Driver", Salary: "AED 3,500 / month", WorkingHours: "10h", Description: "Deliver across Dubai with a company vehicle. UAE licence preferred."},
	{Title: "Restaurant Cook", Salary: "AED 2,800 / month", WorkingHours: "9h", Description: "Hot kitchen line cook for a busy mall restaurant in Dubai."},
	{Title: "Hospital Nurse", Salary: "OMR 650 / month", WorkingHours: "12h shifts", Description: "Registered nurse for a private hospital in Muscat, Oman."},
	{Title: "Call Center Agent", Salary: "PHP 28,000 / month", WorkingHours: "8h night shift", Description: "English voice support for a telecom account in Manila, Philippines."},
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	opened, err := stores.Open(ctx, stores.Config{
		DatabaseURL:   cfg.DatabaseURL,
		AuthDBPath:    cfg.AuthDBPath,
		ListingDBPath: cfg.ListingDBPath,
	})
	if err != nil {
		return err
	}
	defer opened.Close()

	if !cfg.SkipJobs {
		inserted, err := seedJobs(ctx, opened.Listing, time.Now)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "postings: %d inserted\n", inserted)
	}
	if err := seedContact(ctx, opened.Listing, cfg); err != nil {
		return err
	}
	fmt.Fprintln(out, "contact settings: ok")

	email := strings.TrimSpace(cfg.AdminEmail)
	if email == "" {
		return nil
	}
	auth := authapp.NewService(opened.Auth, nil, authapp.Config{AdminEmails: []string{email}})
	switch _, err := auth.SignUp(ctx, email, cfg.AdminPassword); {
	case err == nil:
		fmt.Fprintf(out, "admin %s: created\n", email)
	case errors.Is(err, authapp.ErrEmailTaken):
		fmt.Fprintf(out, "admin %s: already registered\n", email)
	default:
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// seedJobs inserts the demo postings into an empty store, newest last.
func seedJobs(ctx context.Context, store listingstorage.JobStore, now func() time.Time) (int, error) {
	existing, err := store.ListJobs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list jobs: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	base := now().UTC().Add(-time.Duration(len(demoJobs)) * time.Hour)
	for i, job := range demoJobs {
		jobID, err := id.NewID()
		if err != nil {
			return i, fmt.Errorf("generate job id: %w", err)
		}
		job.ID = jobID
		job.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := store.CreateJob(ctx, job); err != nil {
			return i, fmt.Errorf("create job %q: %w", job.Title, err)
		}
	}
	return len(demoJobs), nil
}

func seedContact(ctx context.Context, store listingstorage.ContactSettingsStore, cfg Config) error {
	if _, err := store.GetContactSettings(ctx); err == nil {
		return nil
	} else if !errors.Is(err, listingstorage.ErrNotFound) {
		return fmt.Errorf("get contact settings: %w", err)
	}
	settings := listingstorage.NormalizeContactSettings(listingstorage.ContactSettings{
		WhatsAppLink: cfg.WhatsAppLink,
		TelegramLink: cfg.TelegramLink,
		UpdatedAt:    time.Now(),
	})
	if err := store.PutContactSettings(ctx, settings); err != nil {
		return fmt.Errorf("put contact settings: %w", err)
	}
	return nil
}
