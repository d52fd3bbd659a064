package resume

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/talenthub/internal/platform/errors"
	"github.com/louisbranch/talenthub/internal/platform/id"
	authapp "github.com/louisbranch/talenthub/internal/services/auth/app"
	"github.com/louisbranch/talenthub/internal/services/listing/storage"
	webtemplates "github.com/louisbranch/talenthub/internal/services/web/templates"
)

// SessionResolver resolves an active session from the store.
type SessionResolver interface {
	Session(ctx context.Context, sessionID string) (authapp.Identity, error)
}

// ResumeWriter persists submissions.
type ResumeWriter interface {
	InsertResume(ctx context.Context, resume storage.Resume) error
}

var errSignInRequired = apperrors.E(apperrors.KindUnauthorized, "sign in required")

// missingFieldsError lists required inputs that were left blank.
type missingFieldsError struct {
	fields []string
}

func (e *missingFieldsError) Error() string {
	return "missing resume fields: " + strings.Join(e.fields, ", ")
}

type service struct {
	sessions    SessionResolver
	writer      ResumeWriter
	clock       func() time.Time
	idGenerator func() (string, error)
}

func newService(sessions SessionResolver, writer ResumeWriter) service {
	return service{sessions: sessions, writer: writer, clock: time.Now, idGenerator: id.NewID}
}

// gate resolves the submitting account. Unknown, expired and revoked
// sessions all require signing in again.
func (s service) gate(ctx context.Context, sessionID string) (authapp.Identity, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || s.sessions == nil {
		return authapp.Identity{}, errSignInRequired
	}
	identity, err := s.sessions.Session(ctx, sessionID)
	if err != nil {
		if errors.Is(err, authapp.ErrSessionNotFound) {
			return authapp.Identity{}, errSignInRequired
		}
		return authapp.Identity{}, fmt.Errorf("resolve session: %w", err)
	}
	return identity, nil
}

// submit re-checks the session, validates presence of every field and
// stores a pending submission tagged with the account id.
func (s service) submit(ctx context.Context, sessionID string, values map[string]string) error {
	identity, err := s.gate(ctx, sessionID)
	if err != nil {
		return err
	}
	if missing := missingFields(values); len(missing) > 0 {
		return &missingFieldsError{fields: missing}
	}
	if s.writer == nil {
		return apperrors.E(apperrors.KindUnavailable, "resume writer is not configured")
	}
	resumeID, err := s.idGenerator()
	if err != nil {
		return fmt.Errorf("generate resume id: %w", err)
	}
	record := storage.Resume{
		ID:          resumeID,
		UserID:      identity.User.ID,
		FullName:    values["full_name"],
		Email:       values["email"],
		Phone:       values["phone"],
		Education:   values["education"],
		Experience:  values["experience"],
		Skills:      values["skills"],
		CoverLetter: values["cover_letter"],
		Status:      storage.ResumeStatusPending,
		SubmittedAt: s.clock().UTC(),
	}
	if err := s.writer.InsertResume(ctx, record); err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

func missingFields(values map[string]string) []string {
	var missing []string
	for _, field := range webtemplates.ResumeFields {
		if strings.TrimSpace(values[field.Name]) == "" {
			missing = append(missing, field.Name)
		}
	}
	return missing
}
