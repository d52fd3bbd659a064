// Package postgres provides the Postgres-backed listing store.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	pgplatform "github.com/louisbranch/talenthub/internal/platform/storage/postgres"
	"github.com/louisbranch/talenthub/internal/services/listing/storage"
	"github.com/louisbranch/talenthub/internal/services/listing/storage/postgres/migrations"
)

// MigrationTable records applied listing migrations.
const MigrationTable = "listing_schema_migrations"

// matchClause matches whole words through the full-text index and falls back
// to a case-insensitive substring so scripts without word breaks still count.
const matchClause = `(to_tsvector('simple', description) @@ plainto_tsquery('simple', $1)
       OR strpos(lower(description), lower($1)) > 0)`

const jobColumns = `id, title, salary, working_hours, description, created_at`

// Store persists listing data in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres and applies listing migrations.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgplatform.Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pgplatform.ApplyMigrations(ctx, pool, migrations.FS, "", MigrationTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.pool == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateJob inserts one posting.
func (s *Store) CreateJob(ctx context.Context, job storage.JobPosting) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	job, err := storage.NormalizeJob(job)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO job_postings (`+jobColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		job.ID, job.Title, job.Salary, job.WorkingHours, job.Description, job.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create job posting: %w", err)
	}
	return nil
}

// GetJob returns one posting by id.
func (s *Store) GetJob(ctx context.Context, jobID string) (storage.JobPosting, error) {
	if err := s.ready(ctx); err != nil {
		return storage.JobPosting{}, err
	}
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return storage.JobPosting{}, fmt.Errorf("job id is required")
	}
	row := s.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, jobID)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.JobPosting{}, storage.ErrNotFound
		}
		return storage.JobPosting{}, fmt.Errorf("get job posting: %w", err)
	}
	return job, nil
}

// ListJobs returns every posting, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]storage.JobPosting, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `SELECT `+jobColumns+` FROM job_postings ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list job postings: %w", err)
	}
	return collectJobs(rows)
}

// ListJobsMatching returns postings whose description matches text.
func (s *Store) ListJobsMatching(ctx context.Context, text string) ([]storage.JobPosting, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM job_postings WHERE `+matchClause+` ORDER BY created_at DESC, id ASC`,
		strings.TrimSpace(text),
	)
	if err != nil {
		return nil, fmt.Errorf("list matching job postings: %w", err)
	}
	return collectJobs(rows)
}

// CountJobsMatching counts postings whose description matches text.
func (s *Store) CountJobsMatching(ctx context.Context, text string) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_postings WHERE `+matchClause,
		strings.TrimSpace(text),
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count matching job postings: %w", err)
	}
	return count, nil
}

// DeleteJob removes one posting.
func (s *Store) DeleteJob(ctx context.Context, jobID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, strings.TrimSpace(jobID))
	if err != nil {
		return fmt.Errorf("delete job posting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetContactSettings returns the single settings row.
func (s *Store) GetContactSettings(ctx context.Context) (storage.ContactSettings, error) {
	if err := s.ready(ctx); err != nil {
		return storage.ContactSettings{}, err
	}
	var settings storage.ContactSettings
	err := s.pool.QueryRow(ctx,
		`SELECT whatsapp_link, telegram_link, updated_at FROM contact_settings WHERE id = 1`,
	).Scan(&settings.WhatsAppLink, &settings.TelegramLink, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.ContactSettings{}, storage.ErrNotFound
		}
		return storage.ContactSettings{}, fmt.Errorf("get contact settings: %w", err)
	}
	settings.UpdatedAt = settings.UpdatedAt.UTC()
	return settings, nil
}

// PutContactSettings creates or replaces the settings row.
func (s *Store) PutContactSettings(ctx context.Context, settings storage.ContactSettings) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	settings = storage.NormalizeContactSettings(settings)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contact_settings (id, whatsapp_link, telegram_link, updated_at)
		 VALUES (1, $1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET
		   whatsapp_link = EXCLUDED.whatsapp_link,
		   telegram_link = EXCLUDED.telegram_link,
		   updated_at = EXCLUDED.updated_at`,
		settings.WhatsAppLink, settings.TelegramLink, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put contact settings: %w", err)
	}
	return nil
}

// InsertResume stores one submission.
func (s *Store) InsertResume(ctx context.Context, resume storage.Resume) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	resume, err := storage.NormalizeResume(resume)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO resumes (
		   id, user_id, full_name, email, phone, education, experience,
		   skills, cover_letter, status, submitted_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		resume.ID, resume.UserID, resume.FullName, resume.Email, resume.Phone,
		resume.Education, resume.Experience, resume.Skills, resume.CoverLetter,
		string(resume.Status), resume.SubmittedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

// ListResumes returns every submission, newest first.
func (s *Store) ListResumes(ctx context.Context) ([]storage.Resume, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, full_name, email, phone, education, experience,
		        skills, cover_letter, status, submitted_at
		   FROM resumes
		  ORDER BY submitted_at DESC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	resumes := make([]storage.Resume, 0)
	for rows.Next() {
		var resume storage.Resume
		var status string
		var submittedAt time.Time
		if err := rows.Scan(
			&resume.ID, &resume.UserID, &resume.FullName, &resume.Email, &resume.Phone,
			&resume.Education, &resume.Experience, &resume.Skills, &resume.CoverLetter,
			&status, &submittedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		resume.Status = storage.ResumeStatus(status)
		resume.SubmittedAt = submittedAt.UTC()
		resumes = append(resumes, resume)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resumes: %w", err)
	}
	return resumes, nil
}

// UpdateResumeStatus moves a submission to status.
func (s *Store) UpdateResumeStatus(ctx context.Context, resumeID string, status storage.ResumeStatus) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	status, err := storage.ParseResumeStatus(string(status))
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE resumes SET status = $1 WHERE id = $2`, string(status), strings.TrimSpace(resumeID))
	if err != nil {
		return fmt.Errorf("update resume status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (storage.JobPosting, error) {
	var job storage.JobPosting
	if err := row.Scan(&job.ID, &job.Title, &job.Salary, &job.WorkingHours, &job.Description, &job.CreatedAt); err != nil {
		return storage.JobPosting{}, err
	}
	job.CreatedAt = job.CreatedAt.UTC()
	return job, nil
}

func collectJobs(rows pgx.Rows) ([]storage.JobPosting, error) {
	defer rows.Close()
	jobs := make([]storage.JobPosting, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job posting: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job postings: %w", err)
	}
	return jobs, nil
}

var _ storage.Store = (*Store)(nil)
