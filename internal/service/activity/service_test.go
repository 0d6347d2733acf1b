package activity

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/domain"
	"github.com/plantracker/plantracker-backend/pkg/ctxutil"
)

func newTestService(
	activities *activityRepoMock,
	tags *tagResolverMock,
	users *userRepoMock,
	n *notifierMock,
	tx *txManagerMock,
) *Service {
	return NewService(slog.Default(), activities, tags, users, n, tx)
}

// resolverFromNames returns a tagResolverMock mapping each unique name to a
// fresh tag, preserving order.
func resolverFromNames() *tagResolverMock {
	return &tagResolverMock{
		ResolveFunc: func(_ context.Context, names []string) ([]domain.Tag, error) {
			seen := map[string]struct{}{}
			var tags []domain.Tag
			for _, n := range names {
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				tags = append(tags, domain.Tag{ID: uuid.New(), Name: n})
			}
			return tags, nil
		},
	}
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreate_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	activities := &activityRepoMock{
		CreateFunc: func(_ context.Context, _ *domain.Activity) error { return nil },
	}
	svc := newTestService(activities, resolverFromNames(), &userRepoMock{}, newNotifierMock(), defaultTxMock())

	created, err := svc.Create(authedCtx(userID), CreateInput{
		Title: "Write report",
		Tags:  []string{"work", "urgent", "work"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.UserID != userID {
		t.Errorf("user id: got %v, want %v", created.UserID, userID)
	}
	if created.Timer.Status != domain.TimerStopped || created.Timer.RecordedSeconds != 0 {
		t.Errorf("fresh activity must have a zeroed stopped timer, got %+v", created.Timer)
	}
	if len(created.Tags) != 2 {
		t.Fatalf("tags: got %d, want 2 (duplicates collapse)", len(created.Tags))
	}
	if created.Tags[0].Name != "work" || created.Tags[1].Name != "urgent" {
		t.Errorf("tag order not preserved: %+v", created.Tags)
	}
	if len(activities.CreateCalls()) != 1 {
		t.Errorf("Create calls: got %d, want 1", len(activities.CreateCalls()))
	}
}

func TestCreate_EmptyTitle(t *testing.T) {
	t.Parallel()

	svc := newTestService(&activityRepoMock{}, resolverFromNames(), &userRepoMock{}, newNotifierMock(), defaultTxMock())

	_, err := svc.Create(authedCtx(uuid.New()), CreateInput{Title: ""})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error: got %v, want ErrValidation", err)
	}
}

func TestCreate_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := newTestService(&activityRepoMock{}, resolverFromNames(), &userRepoMock{}, newNotifierMock(), defaultTxMock())

	_, err := svc.Create(context.Background(), CreateInput{Title: "x"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("error: got %v, want ErrUnauthorized", err)
	}
}

// ---------------------------------------------------------------------------
// Get / List reconciliation
// ---------------------------------------------------------------------------

func TestGet_PersistsRunningAccrual(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	activityID := uuid.New()
	start := time.Now().Add(-42 * time.Second)

	activities := &activityRepoMock{
		GetOwnedFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.Activity, error) {
			return &domain.Activity{
				ID: activityID, UserID: userID, Title: "Run",
				Timer: domain.TimerState{
					Status: domain.TimerRunning, RecordedSeconds: 10, LastStart: &start,
				},
			}, nil
		},
		UpdateTimerFunc: func(_ context.Context, _, _ uuid.UUID, _ domain.TimerState) error {
			return nil
		},
	}
	svc := newTestService(activities, resolverFromNames(), &userRepoMock{}, newNotifierMock(), defaultTxMock())

	got, err := svc.Get(authedCtx(userID), activityID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Timer.RecordedSeconds < 52 {
		t.Errorf("recorded: got %d, want >= 52 (10 + ~42 elapsed)", got.Timer.RecordedSeconds)
	}
	persisted := activities.UpdateTimerCalls()
	if len(persisted) != 1 {
		t.Fatalf("UpdateTimer calls: got %d, want 1", len(persisted))
	}
	if persisted[0].RecordedSeconds != got.Timer.RecordedSeconds {
		t.Errorf("persisted state differs from returned state")
	}
}

func TestGet_StoppedTimerNoWrite(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	activities := &activityRepoMock{
		GetOwnedFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.Activity, error) {
			return &domain.Activity{
				ID: uuid.New(), UserID: userID, Title: "Idle",
				Timer: domain.TimerState{Status: domain.TimerStopped, RecordedSeconds: 30},
			}, nil
		},
	}
	svc := newTestService(activities, resolverFromNames(), &userRepoMock{}, newNotifierMock(), defaultTxMock())

	got, err := svc.Get(authedCtx(userID), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Timer.RecordedSeconds != 30 {
		t.Errorf("recorded: got %d, want 30", got.Timer.RecordedSeconds)
	}
	if len(activities.UpdateTimerCalls()) != 0 {
		t.Error("stopped timer must not trigger a persist")
	}
}

func TestGet_NotOwned(t *testing.T) {
	t.Parallel()

	activities := &activityRepoMock{
		GetOwnedFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.Activity, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(activities, resolverFromNames(), &userRepoMock{}, newNotifierMock(), defaultTxMock())

	_, err := svc.Get(authedCtx(uuid.New()), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error: got %v, want ErrNotFound", err)
	}
}

func TestList_ReconcilesDisplayOnly(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	start := time.Now().Add(-30 * time.Second)

	activities := &activityRepoMock{
		ListOwnedFunc: func(_ context.Context, _ uuid.UUID, filter domain.ActivityFilter) ([]domain.Activity, error) {
			if filter.Limit != defaultListLimit {
				t.Errorf("limit: got %d, want default %d", filter.Limit, defaultListLimit)
			}
			return []domain.Activity{
				{Title: "running", Timer: domain.TimerState{
					Status: domain.TimerRunning, RecordedSeconds: 5, LastStart: &start,
				}},
				{Title: "paused", Timer: domain.TimerState{
					Status: domain.TimerPaused, RecordedSeconds: 7,
				}},
			}, nil
		},
	}
	svc := newTestService(activities, resolverFromNames(), &userRepoMock{}, newNotifierMock(), defaultTxMock())

	got, err := svc.List(authedCtx(userID), ListInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[0].Timer.RecordedSeconds < 35 {
		t.Errorf("running row: got %d, want >= 35", got[0].Timer.RecordedSeconds)
	}
	if got[1].Timer.RecordedSeconds != 7 {
		t.Errorf("paused row: got %d, want 7 untouched", got[1].Timer.RecordedSeconds)
	}
	if len(activities.UpdateTimerCalls()) != 0 {
		t.Error("list reconciliation must not write back")
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestUpdate_PartialFieldsAndTagReplacement(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	activityID := uuid.New()
	desc := "old description"

	activities := &activityRepoMock{
		GetOwnedFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.Activity, error) {
			return &domain.Activity{
				ID: activityID, UserID: userID, Title: "Old title", Description: &desc,
				Tags: []domain.Tag{{ID: uuid.New(), Name: "old"}},
			}, nil
		},
		UpdateFunc:      func(_ context.Context, _ *domain.Activity) error { return nil },
		ReplaceTagsFunc: func(_ context.Context, _ uuid.UUID, _ []uuid.UUID) error { return nil },
	}
	svc := newTestService(activities, resolverFromNames(), &userRepoMock{}, newNotifierMock(), defaultTxMock())

	newTitle := "New title"
	updated, err := svc.Update(authedCtx(userID), activityID, UpdateInput{
		Title: &newTitle,
		Tags:  []string{"fresh"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Title != "New title" {
		t.Errorf("title: got %q", updated.Title)
	}
	if updated.Description == nil || *updated.Description != "old description" {
		t.Error("untouched field must survive a partial update")
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "fresh" {
		t.Errorf("tags: got %+v, want replaced set", updated.Tags)
	}
	if len(activities.ReplaceTagsCalls()) != 1 {
		t.Errorf("ReplaceTags calls: got %d, want 1", len(activities.ReplaceTagsCalls()))
	}
}

func TestUpdate_NilTagsLeaveSetAlone(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	activities := &activityRepoMock{
		GetOwnedFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.Activity, error) {
			return &domain.Activity{
				ID: uuid.New(), UserID: userID, Title: "Keep",
				Tags: []domain.Tag{{ID: uuid.New(), Name: "keep"}},
			}, nil
		},
		UpdateFunc: func(_ context.Context, _ *domain.Activity) error { return nil },
	}
	svc := newTestService(activities, resolverFromNames(), &userRepoMock{}, newNotifierMock(), defaultTxMock())

	dur := int64(3600)
	updated, err := svc.Update(authedCtx(userID), uuid.New(), UpdateInput{Duration: &dur})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(updated.Tags) != 1 || updated.Tags[0].Name != "keep" {
		t.Errorf("tags must be untouched when Tags is nil: %+v", updated.Tags)
	}
	if len(activities.ReplaceTagsCalls()) != 0 {
		t.Error("ReplaceTags must not be called when Tags is nil")
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestDelete_NotOwned(t *testing.T) {
	t.Parallel()

	activities := &activityRepoMock{
		DeleteFunc: func(_ context.Context, _, _ uuid.UUID) error {
			return domain.ErrNotFound
		},
	}
	svc := newTestService(activities, resolverFromNames(), &userRepoMock{}, newNotifierMock(), defaultTxMock())

	err := svc.Delete(authedCtx(uuid.New()), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error: got %v, want ErrNotFound", err)
	}
}
