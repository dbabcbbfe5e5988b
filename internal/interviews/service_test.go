package interviews

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func seedInterviews(t *testing.T) (*InMemoryRepository, []Interview) {
	t.Helper()
	now := time.Now().UTC()

	list := []Interview{
		{ID: uuid.New(), UserID: "alice", Role: "Frontend Developer", Finalized: true, CreatedAt: now.Add(-4 * time.Minute)},
		{ID: uuid.New(), UserID: "alice", Role: "Backend Developer", Finalized: false, CreatedAt: now.Add(-3 * time.Minute)},
		{ID: uuid.New(), UserID: "bob", Role: "Data Engineer", Finalized: true, CreatedAt: now.Add(-2 * time.Minute)},
		{ID: uuid.New(), UserID: "carol", Role: "SRE", Finalized: true, CreatedAt: now.Add(-1 * time.Minute)},
		{ID: uuid.New(), UserID: "carol", Role: "Platform Engineer", Finalized: false, CreatedAt: now},
	}
	return NewInMemoryRepository(list), list
}

func TestGetAbsentSemantics(t *testing.T) {
	repo, list := seedInterviews(t)
	svc := NewService(repo)

	for name, id := range map[string]string{
		"empty id":     "",
		"not a uuid":   "not-a-uuid",
		"unknown uuid": uuid.NewString(),
	} {
		interview, err := svc.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if interview != nil {
			t.Fatalf("%s: expected absent interview", name)
		}
	}

	interview, err := svc.Get(context.Background(), list[0].ID.String())
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if interview == nil || interview.Role != "Frontend Developer" {
		t.Fatalf("unexpected interview %+v", interview)
	}
}

func TestListByUserSortsNewestFirst(t *testing.T) {
	repo, _ := seedInterviews(t)
	svc := NewService(repo)

	list, err := svc.ListByUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 interviews, got %d", len(list))
	}
	if list[0].Role != "Backend Developer" || list[1].Role != "Frontend Developer" {
		t.Fatalf("expected newest first, got %q then %q", list[0].Role, list[1].Role)
	}
}

func TestListByUserEmptyUserSkipsQuery(t *testing.T) {
	svc := NewService(failingRepo{t: t})

	list, err := svc.ListByUser(context.Background(), "")
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(list))
	}
}

func TestListLatestExcludesCallerAndUnfinalized(t *testing.T) {
	repo, _ := seedInterviews(t)
	svc := NewService(repo)

	list, err := svc.ListLatest(context.Background(), "carol", 0)
	if err != nil {
		t.Fatalf("ListLatest returned error: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("expected 2 interviews, got %d", len(list))
	}
	for _, interview := range list {
		if interview.UserID == "carol" {
			t.Fatalf("feed must not contain the excluded user, got %+v", interview)
		}
		if !interview.Finalized {
			t.Fatalf("feed must only contain finalized interviews, got %+v", interview)
		}
	}
	for i := 1; i < len(list); i++ {
		if !list[i].CreatedAt.Before(list[i-1].CreatedAt) {
			t.Fatalf("expected strictly descending createdAt at index %d", i)
		}
	}
}

func TestListLatestHonorsLimit(t *testing.T) {
	repo, _ := seedInterviews(t)
	svc := NewService(repo)

	list, err := svc.ListLatest(context.Background(), "nobody", 1)
	if err != nil {
		t.Fatalf("ListLatest returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 interview, got %d", len(list))
	}
	// Newest finalized interview overall belongs to carol.
	if list[0].UserID != "carol" {
		t.Fatalf("unexpected head of feed %+v", list[0])
	}
}

// failingRepo fails the test if any repository method is reached.
type failingRepo struct {
	t *testing.T
}

func (r failingRepo) Get(context.Context, uuid.UUID) (*Interview, error) {
	r.t.Fatal("unexpected repository call")
	return nil, nil
}

func (r failingRepo) ListByUser(context.Context, string) ([]Interview, error) {
	r.t.Fatal("unexpected repository call")
	return nil, nil
}

func (r failingRepo) ListLatest(context.Context, string, int) ([]Interview, error) {
	r.t.Fatal("unexpected repository call")
	return nil, nil
}
