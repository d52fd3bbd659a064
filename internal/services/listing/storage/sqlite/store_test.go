package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/talenthub/internal/services/listing/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "listing.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "listing.db")
	for i := 0; i < 2; i++ {
		store, err := Open(context.Background(), path)
		if err != nil {
			t.Fatalf("open store #%d: %v", i+1, err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("close store #%d: %v", i+1, err)
		}
	}
}

func TestJobsRoundTripNewestFirst(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	jobs := []storage.JobPosting{
		{ID: "job-1", Title: "Welder", Salary: "$900", WorkingHours: "8h", Description: "Workshop in Dubai", CreatedAt: base},
		{ID: "job-2", Title: "Nurse", Description: "Hospital in Oman", CreatedAt: base.Add(time.Hour)},
		{ID: "job-3", Title: "Driver", Description: "Delivery routes across dubai", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, job := range jobs {
		if err := store.CreateJob(ctx, job); err != nil {
			t.Fatalf("create %s: %v", job.ID, err)
		}
	}

	listed, err := store.ListJobs(ctx)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("len(jobs) = %d, want 3", len(listed))
	}
	if listed[0].ID != "job-3" || listed[2].ID != "job-1" {
		t.Fatalf("order = %s,%s,%s", listed[0].ID, listed[1].ID, listed[2].ID)
	}

	got, err := store.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.Salary != "$900" || got.WorkingHours != "8h" || !got.CreatedAt.Equal(base) {
		t.Fatalf("job = %+v", got)
	}

	if err := store.CreateJob(ctx, jobs[0]); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate create err = %v, want ErrAlreadyExists", err)
	}
}

func TestCountJobsMatchingIgnoresCase(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	for i, description := range []string{"Workshop in Dubai", "Delivery across DUBAI", "Hospital in Oman"} {
		job := storage.JobPosting{
			ID:          string(rune('a' + i)),
			Title:       "Role",
			Description: description,
		}
		if err := store.CreateJob(ctx, job); err != nil {
			t.Fatalf("create job: %v", err)
		}
	}

	tests := []struct {
		text string
		want int
	}{
		{text: "Dubai", want: 2},
		{text: "oman", want: 1},
		{text: "Ghana", want: 0},
	}
	for _, tc := range tests {
		count, err := store.CountJobsMatching(ctx, tc.text)
		if err != nil {
			t.Fatalf("count %q: %v", tc.text, err)
		}
		if count != tc.want {
			t.Fatalf("count %q = %d, want %d", tc.text, count, tc.want)
		}
	}

	matching, err := store.ListJobsMatching(ctx, "dubai")
	if err != nil {
		t.Fatalf("list matching: %v", err)
	}
	if len(matching) != 2 {
		t.Fatalf("len(matching) = %d, want 2", len(matching))
	}
}

func TestDeleteJob(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	if err := store.CreateJob(ctx, storage.JobPosting{ID: "job-1", Title: "Cook", Description: "Kitchen"}); err != nil {
		t.Fatalf("create job: %v", err)
	}
	if err := store.DeleteJob(ctx, "job-1"); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	if _, err := store.GetJob(ctx, "job-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted err = %v, want ErrNotFound", err)
	}
	if err := store.DeleteJob(ctx, "job-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("delete missing err = %v, want ErrNotFound", err)
	}
}

func TestCreateJobValidates(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	if err := store.CreateJob(context.Background(), storage.JobPosting{ID: "job-1", Description: "x"}); err == nil {
		t.Fatal("expected missing title error")
	}
}

func TestContactSettingsUpsert(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.GetContactSettings(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get before save err = %v, want ErrNotFound", err)
	}
	if err := store.PutContactSettings(ctx, storage.ContactSettings{WhatsAppLink: " https://wa.me/1 "}); err != nil {
		t.Fatalf("put settings: %v", err)
	}
	if err := store.PutContactSettings(ctx, storage.ContactSettings{WhatsAppLink: "https://wa.me/2", TelegramLink: "https://t.me/x"}); err != nil {
		t.Fatalf("replace settings: %v", err)
	}
	got, err := store.GetContactSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if got.WhatsAppLink != "https://wa.me/2" || got.TelegramLink != "https://t.me/x" {
		t.Fatalf("settings = %+v", got)
	}
}

func TestResumesLifecycle(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	resume := storage.Resume{
		ID:          "resume-1",
		UserID:      "user-1",
		FullName:    "Ama Mensah",
		Email:       "ama@example.com",
		Phone:       "+233",
		Education:   "BSc",
		Experience:  "5 years",
		Skills:      "Welding",
		CoverLetter: "Hello",
		SubmittedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.InsertResume(ctx, resume); err != nil {
		t.Fatalf("insert resume: %v", err)
	}

	resumes, err := store.ListResumes(ctx)
	if err != nil {
		t.Fatalf("list resumes: %v", err)
	}
	if len(resumes) != 1 || resumes[0].Status != storage.ResumeStatusPending {
		t.Fatalf("resumes = %+v", resumes)
	}

	if err := store.UpdateResumeStatus(ctx, "resume-1", storage.ResumeStatusAccepted); err != nil {
		t.Fatalf("update status: %v", err)
	}
	resumes, err = store.ListResumes(ctx)
	if err != nil {
		t.Fatalf("list resumes: %v", err)
	}
	if resumes[0].Status != storage.ResumeStatusAccepted {
		t.Fatalf("status = %q, want accepted", resumes[0].Status)
	}

	if err := store.UpdateResumeStatus(ctx, "missing", storage.ResumeStatusReviewed); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update missing err = %v, want ErrNotFound", err)
	}
	if err := store.UpdateResumeStatus(ctx, "resume-1", "archived"); err == nil {
		t.Fatal("expected unknown status error")
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	t.Parallel()

	var store *Store
	if _, err := store.ListJobs(context.Background()); err == nil {
		t.Fatal("expected not configured error")
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
}
