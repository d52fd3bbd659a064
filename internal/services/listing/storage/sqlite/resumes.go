package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/talenthub/internal/services/listing/storage"
)

// InsertResume stores one submission.
func (s *Store) InsertResume(ctx context.Context, resume storage.Resume) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	resume, err := storage.NormalizeResume(resume)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO resumes (
		   id, user_id, full_name, email, phone, education, experience,
		   skills, cover_letter, status, submitted_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		resume.ID,
		resume.UserID,
		resume.FullName,
		resume.Email,
		resume.Phone,
		resume.Education,
		resume.Experience,
		resume.Skills,
		resume.CoverLetter,
		string(resume.Status),
		toMillis(resume.SubmittedAt),
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
	rows, err := s.sqlDB.QueryContext(
		ctx,
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
		var submittedAt int64
		if err := rows.Scan(
			&resume.ID,
			&resume.UserID,
			&resume.FullName,
			&resume.Email,
			&resume.Phone,
			&resume.Education,
			&resume.Experience,
			&resume.Skills,
			&resume.CoverLetter,
			&status,
			&submittedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		resume.Status = storage.ResumeStatus(status)
		resume.SubmittedAt = fromMillis(submittedAt)
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
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE resumes SET status = ? WHERE id = ?`,
		string(status),
		strings.TrimSpace(resumeID),
	)
	if err != nil {
		return fmt.Errorf("update resume status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update resume status: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
