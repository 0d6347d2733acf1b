package activity

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/domain"
)

var _ activityRepo = &activityRepoMock{}

type activityRepoMock struct {
	CreateFunc      func(ctx context.Context, a *domain.Activity) error
	GetOwnedFunc    func(ctx context.Context, userID, activityID uuid.UUID) (*domain.Activity, error)
	ListOwnedFunc   func(ctx context.Context, userID uuid.UUID, filter domain.ActivityFilter) ([]domain.Activity, error)
	UpdateFunc      func(ctx context.Context, a *domain.Activity) error
	UpdateTimerFunc func(ctx context.Context, userID, activityID uuid.UUID, state domain.TimerState) error
	ReplaceTagsFunc func(ctx context.Context, activityID uuid.UUID, tagIDs []uuid.UUID) error
	DeleteFunc      func(ctx context.Context, userID, activityID uuid.UUID) error

	calls struct {
		Create      []*domain.Activity
		UpdateTimer []domain.TimerState
		ReplaceTags [][]uuid.UUID
	}
	lock sync.RWMutex
}

func (m *activityRepoMock) Create(ctx context.Context, a *domain.Activity) error {
	if m.CreateFunc == nil {
		panic("activityRepoMock.CreateFunc: method is nil but activityRepo.Create was just called")
	}
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, a)
	m.lock.Unlock()
	return m.CreateFunc(ctx, a)
}

func (m *activityRepoMock) GetOwned(ctx context.Context, userID, activityID uuid.UUID) (*domain.Activity, error) {
	if m.GetOwnedFunc == nil {
		panic("activityRepoMock.GetOwnedFunc: method is nil but activityRepo.GetOwned was just called")
	}
	return m.GetOwnedFunc(ctx, userID, activityID)
}

func (m *activityRepoMock) ListOwned(ctx context.Context, userID uuid.UUID, filter domain.ActivityFilter) ([]domain.Activity, error) {
	if m.ListOwnedFunc == nil {
		panic("activityRepoMock.ListOwnedFunc: method is nil but activityRepo.ListOwned was just called")
	}
	return m.ListOwnedFunc(ctx, userID, filter)
}

func (m *activityRepoMock) Update(ctx context.Context, a *domain.Activity) error {
	if m.UpdateFunc == nil {
		panic("activityRepoMock.UpdateFunc: method is nil but activityRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, a)
}

func (m *activityRepoMock) UpdateTimer(ctx context.Context, userID, activityID uuid.UUID, state domain.TimerState) error {
	if m.UpdateTimerFunc == nil {
		panic("activityRepoMock.UpdateTimerFunc: method is nil but activityRepo.UpdateTimer was just called")
	}
	m.lock.Lock()
	m.calls.UpdateTimer = append(m.calls.UpdateTimer, state)
	m.lock.Unlock()
	return m.UpdateTimerFunc(ctx, userID, activityID, state)
}

func (m *activityRepoMock) ReplaceTags(ctx context.Context, activityID uuid.UUID, tagIDs []uuid.UUID) error {
	if m.ReplaceTagsFunc == nil {
		panic("activityRepoMock.ReplaceTagsFunc: method is nil but activityRepo.ReplaceTags was just called")
	}
	m.lock.Lock()
	m.calls.ReplaceTags = append(m.calls.ReplaceTags, tagIDs)
	m.lock.Unlock()
	return m.ReplaceTagsFunc(ctx, activityID, tagIDs)
}

func (m *activityRepoMock) Delete(ctx context.Context, userID, activityID uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("activityRepoMock.DeleteFunc: method is nil but activityRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, userID, activityID)
}

func (m *activityRepoMock) CreateCalls() []*domain.Activity {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

func (m *activityRepoMock) UpdateTimerCalls() []domain.TimerState {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.UpdateTimer
}

func (m *activityRepoMock) ReplaceTagsCalls() [][]uuid.UUID {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.ReplaceTags
}

var _ tagResolver = &tagResolverMock{}

type tagResolverMock struct {
	ResolveFunc func(ctx context.Context, names []string) ([]domain.Tag, error)
}

func (m *tagResolverMock) Resolve(ctx context.Context, names []string) ([]domain.Tag, error) {
	if m.ResolveFunc == nil {
		panic("tagResolverMock.ResolveFunc: method is nil but tagResolver.Resolve was just called")
	}
	return m.ResolveFunc(ctx, names)
}

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

var _ notifier = &notifierMock{}

// notifierMock records sent messages and signals on a channel so tests can
// wait for the detached notification goroutine.
type notifierMock struct {
	SendMessageFunc func(ctx context.Context, chatID, text string) error
	sent            chan struct {
		ChatID string
		Text   string
	}
}

func newNotifierMock() *notifierMock {
	return &notifierMock{
		SendMessageFunc: func(context.Context, string, string) error { return nil },
		sent: make(chan struct {
			ChatID string
			Text   string
		}, 8),
	}
}

func (m *notifierMock) SendMessage(ctx context.Context, chatID, text string) error {
	err := m.SendMessageFunc(ctx, chatID, text)
	m.sent <- struct {
		ChatID string
		Text   string
	}{chatID, text}
	return err
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return m.RunInTxFunc(ctx, fn)
}

// defaultTxMock returns a txManagerMock that simply calls the function with
// the same context.
func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}
