// Package storage defines persistence contracts for job postings, contact
// links and resume submissions.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// JobPosting is one published opening.
type JobPosting struct {
	ID           string
	Title        string
	Salary       string
	WorkingHours string
	Description  string
	CreatedAt    time.Time
}

// ContactSettings holds the customer-service links shown on the site. Empty
// links are hidden.
type ContactSettings struct {
	WhatsAppLink string
	TelegramLink string
	UpdatedAt    time.Time
}

// Empty reports whether no link is configured.
func (c ContactSettings) Empty() bool {
	return strings.TrimSpace(c.WhatsAppLink) == "" && strings.TrimSpace(c.TelegramLink) == ""
}

// ResumeStatus tracks the review state of a submission.
type ResumeStatus string

const (
	ResumeStatusPending  ResumeStatus = "pending"
	ResumeStatusReviewed ResumeStatus = "reviewed"
	ResumeStatusAccepted ResumeStatus = "accepted"
	ResumeStatusRejected ResumeStatus = "rejected"
)

// ResumeStatuses lists the statuses in workflow order.
func ResumeStatuses() []ResumeStatus {
	return []ResumeStatus{ResumeStatusPending, ResumeStatusReviewed, ResumeStatusAccepted, ResumeStatusRejected}
}

// ParseResumeStatus validates a status value.
func ParseResumeStatus(value string) (ResumeStatus, error) {
	status := ResumeStatus(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range ResumeStatuses() {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown resume status %q", value)
}

// Resume is one submission tagged with the submitting account.
type Resume struct {
	ID          string
	UserID      string
	FullName    string
	Email       string
	Phone       string
	Education   string
	Experience  string
	Skills      string
	CoverLetter string
	Status      ResumeStatus
	SubmittedAt time.Time
}

// JobStore persists job postings.
type JobStore interface {
	CreateJob(ctx context.Context, job JobPosting) error
	GetJob(ctx context.Context, jobID string) (JobPosting, error)
	// ListJobs returns every posting, newest first.
	ListJobs(ctx context.Context) ([]JobPosting, error)
	// ListJobsMatching returns postings whose description contains text,
	// newest first.
	ListJobsMatching(ctx context.Context, text string) ([]JobPosting, error)
	// CountJobsMatching counts postings whose description contains text.
	CountJobsMatching(ctx context.Context, text string) (int, error)
	DeleteJob(ctx context.Context, jobID string) error
}

// ContactSettingsStore persists the single contact settings record.
type ContactSettingsStore interface {
	// GetContactSettings returns ErrNotFound until settings are saved.
	GetContactSettings(ctx context.Context) (ContactSettings, error)
	PutContactSettings(ctx context.Context, settings ContactSettings) error
}

// ResumeStore persists resume submissions.
type ResumeStore interface {
	InsertResume(ctx context.Context, resume Resume) error
	// ListResumes returns every submission, newest first.
	ListResumes(ctx context.Context) ([]Resume, error)
	UpdateResumeStatus(ctx context.Context, resumeID string, status ResumeStatus) error
}

// Store is the full listing persistence surface.
type Store interface {
	JobStore
	ContactSettingsStore
	ResumeStore
	Close() error
}

// NormalizeJob trims fields and checks required values.
func NormalizeJob(job JobPosting) (JobPosting, error) {
	job.ID = strings.TrimSpace(job.ID)
	job.Title = strings.TrimSpace(job.Title)
	job.Salary = strings.TrimSpace(job.Salary)
	job.WorkingHours = strings.TrimSpace(job.WorkingHours)
	job.Description = strings.TrimSpace(job.Description)
	if job.ID == "" {
		return JobPosting{}, fmt.Errorf("job id is required")
	}
	if job.Title == "" {
		return JobPosting{}, fmt.Errorf("job title is required")
	}
	if job.Description == "" {
		return JobPosting{}, fmt.Errorf("job description is required")
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	job.CreatedAt = job.CreatedAt.UTC()
	return job, nil
}

// NormalizeResume trims fields and checks required values.
func NormalizeResume(resume Resume) (Resume, error) {
	fields := []*string{
		&resume.ID, &resume.UserID, &resume.FullName, &resume.Email, &resume.Phone,
		&resume.Education, &resume.Experience, &resume.Skills, &resume.CoverLetter,
	}
	for _, field := range fields {
		*field = strings.TrimSpace(*field)
	}
	switch {
	case resume.ID == "":
		return Resume{}, fmt.Errorf("resume id is required")
	case resume.UserID == "":
		return Resume{}, fmt.Errorf("resume user id is required")
	}
	if resume.Status == "" {
		resume.Status = ResumeStatusPending
	}
	if _, err := ParseResumeStatus(string(resume.Status)); err != nil {
		return Resume{}, err
	}
	if resume.SubmittedAt.IsZero() {
		resume.SubmittedAt = time.Now()
	}
	resume.SubmittedAt = resume.SubmittedAt.UTC()
	return resume, nil
}

// NormalizeContactSettings trims links and stamps the update time.
func NormalizeContactSettings(settings ContactSettings) ContactSettings {
	settings.WhatsAppLink = strings.TrimSpace(settings.WhatsAppLink)
	settings.TelegramLink = strings.TrimSpace(settings.TelegramLink)
	if settings.UpdatedAt.IsZero() {
		settings.UpdatedAt = time.Now()
	}
	settings.UpdatedAt = settings.UpdatedAt.UTC()
	return settings
}
