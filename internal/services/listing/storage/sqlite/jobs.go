package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/talenthub/internal/services/listing/storage"
)

const jobColumns = `id, title, salary, working_hours, description, created_at`

// CreateJob inserts one posting.
func (s *Store) CreateJob(ctx context.Context, job storage.JobPosting) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	job, err := storage.NormalizeJob(job)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO job_postings (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		job.ID,
		job.Title,
		job.Salary,
		job.WorkingHours,
		job.Description,
		toMillis(job.CreatedAt),
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
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = ?`, jobID)
	job, err := scanJob(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+jobColumns+` FROM job_postings ORDER BY created_at DESC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list job postings: %w", err)
	}
	return collectJobs(rows)
}

// ListJobsMatching returns postings whose description contains text,
// ignoring ASCII case, newest first.
func (s *Store) ListJobsMatching(ctx context.Context, text string) ([]storage.JobPosting, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+jobColumns+` FROM job_postings
		  WHERE instr(lower(description), lower(?)) > 0
		  ORDER BY created_at DESC, id ASC`,
		strings.TrimSpace(text),
	)
	if err != nil {
		return nil, fmt.Errorf("list matching job postings: %w", err)
	}
	return collectJobs(rows)
}

// CountJobsMatching counts postings whose description contains text.
func (s *Store) CountJobsMatching(ctx context.Context, text string) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var count int
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM job_postings WHERE instr(lower(description), lower(?)) > 0`,
		strings.TrimSpace(text),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count matching job postings: %w", err)
	}
	return count, nil
}

// DeleteJob removes one posting.
func (s *Store) DeleteJob(ctx context.Context, jobID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM job_postings WHERE id = ?`, strings.TrimSpace(jobID))
	if err != nil {
		return fmt.Errorf("delete job posting: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete job posting: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanJob(scan func(dest ...any) error) (storage.JobPosting, error) {
	var job storage.JobPosting
	var createdAt int64
	if err := scan(&job.ID, &job.Title, &job.Salary, &job.WorkingHours, &job.Description, &createdAt); err != nil {
		return storage.JobPosting{}, err
	}
	job.CreatedAt = fromMillis(createdAt)
	return job, nil
}

func collectJobs(rows *sql.Rows) ([]storage.JobPosting, error) {
	defer rows.Close()
	jobs := make([]storage.JobPosting, 0)
	for rows.Next() {
		job, err := scanJob(rows.Scan)
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
