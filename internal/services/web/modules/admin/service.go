package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/talenthub/internal/platform/errors"
	"github.com/louisbranch/talenthub/internal/platform/id"
	"github.com/louisbranch/talenthub/internal/services/listing/storage"
)

// ListingStore is the listing persistence the dashboard manages.
type ListingStore interface {
	storage.JobStore
	storage.ContactSettingsStore
	storage.ResumeStore
}

var errInvalidJob = apperrors.EK(apperrors.KindInvalidInput, "admin.jobs.invalid", "title and description are required")

// dashboard is everything the dashboard page shows.
type dashboard struct {
	Jobs    []storage.JobPosting
	Resumes []storage.Resume
	Contact storage.ContactSettings
}

type service struct {
	store       ListingStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

func newService(store ListingStore) service {
	return service{store: store, clock: time.Now, idGenerator: id.NewID}
}

func (s service) ready() error {
	if s.store == nil {
		return apperrors.E(apperrors.KindUnavailable, "listing store is not configured")
	}
	return nil
}

func (s service) load(ctx context.Context) (dashboard, error) {
	if err := s.ready(); err != nil {
		return dashboard{}, err
	}
	jobs, err := s.store.ListJobs(ctx)
	if err != nil {
		return dashboard{}, fmt.Errorf("list jobs: %w", err)
	}
	resumes, err := s.store.ListResumes(ctx)
	if err != nil {
		return dashboard{}, fmt.Errorf("list resumes: %w", err)
	}
	contact, err := s.store.GetContactSettings(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return dashboard{}, fmt.Errorf("get contact settings: %w", err)
	}
	return dashboard{Jobs: jobs, Resumes: resumes, Contact: contact}, nil
}

func (s service) createJob(ctx context.Context, job storage.JobPosting) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(job.Title) == "" || strings.TrimSpace(job.Description) == "" {
		return errInvalidJob
	}
	jobID, err := s.idGenerator()
	if err != nil {
		return fmt.Errorf("generate job id: %w", err)
	}
	job.ID = jobID
	job.CreatedAt = s.clock().UTC()
	if err := s.store.CreateJob(ctx, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (s service) deleteJob(ctx context.Context, jobID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.DeleteJob(ctx, strings.TrimSpace(jobID)); err != nil {
		return notFoundOr(err, "delete job")
	}
	return nil
}

func (s service) setResumeStatus(ctx context.Context, resumeID string, value string) error {
	if err := s.ready(); err != nil {
		return err
	}
	status, err := storage.ParseResumeStatus(value)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, "", "invalid resume status", err)
	}
	if err := s.store.UpdateResumeStatus(ctx, strings.TrimSpace(resumeID), status); err != nil {
		return notFoundOr(err, "update resume status")
	}
	return nil
}

func (s service) saveContact(ctx context.Context, whatsApp string, telegram string) error {
	if err := s.ready(); err != nil {
		return err
	}
	settings := storage.NormalizeContactSettings(storage.ContactSettings{
		WhatsAppLink: whatsApp,
		TelegramLink: telegram,
		UpdatedAt:    s.clock(),
	})
	if err := s.store.PutContactSettings(ctx, settings); err != nil {
		return fmt.Errorf("put contact settings: %w", err)
	}
	return nil
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.Wrap(apperrors.KindNotFound, "", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
