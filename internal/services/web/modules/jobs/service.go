package jobs

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/louisbranch/talenthub/internal/platform/errors"
	"github.com/louisbranch/talenthub/internal/services/listing/storage"
)

// JobReader reads published postings.
type JobReader interface {
	GetJob(ctx context.Context, jobID string) (storage.JobPosting, error)
	// ListJobsMatching uses the same matcher as the landing page counts.
	ListJobsMatching(ctx context.Context, text string) ([]storage.JobPosting, error)
}

type service struct {
	reader JobReader
}

func newService(reader JobReader) service {
	return service{reader: reader}
}

func (s service) job(ctx context.Context, jobID string) (storage.JobPosting, error) {
	if s.reader == nil {
		return storage.JobPosting{}, apperrors.E(apperrors.KindUnavailable, "job reader is not configured")
	}
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return storage.JobPosting{}, apperrors.EK(apperrors.KindNotFound, "jobs.notFound", "job id is required")
	}
	job, err := s.reader.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.JobPosting{}, apperrors.Wrap(apperrors.KindNotFound, "jobs.notFound", "job not found", err)
		}
		return storage.JobPosting{}, apperrors.Wrap(apperrors.KindUnknown, "", "get job", err)
	}
	return job, nil
}

func (s service) jobsAt(ctx context.Context, location string) ([]storage.JobPosting, error) {
	if s.reader == nil {
		return nil, apperrors.E(apperrors.KindUnavailable, "job reader is not configured")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, nil
	}
	jobs, err := s.reader.ListJobsMatching(ctx, location)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnknown, "", "list jobs matching location", err)
	}
	return jobs, nil
}
