package user

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/plantracker/plantracker-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc        func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc            func(ctx context.Context, user *domain.User) (*domain.User, error)
	SetTelegramChatIDFunc func(ctx context.Context, userID uuid.UUID, chatID *string) error

	calls struct {
		GetByID           []uuid.UUID
		GetByEmail        []string
		Create            []*domain.User
		SetTelegramChatID []struct {
			UserID uuid.UUID
			ChatID *string
		}
	}
	lock sync.RWMutex
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	m.lock.Lock()
	m.calls.GetByID = append(m.calls.GetByID, id)
	m.lock.Unlock()
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	m.lock.Lock()
	m.calls.GetByEmail = append(m.calls.GetByEmail, email)
	m.lock.Unlock()
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, user)
	m.lock.Unlock()
	return m.CreateFunc(ctx, user)
}

func (m *userRepoMock) SetTelegramChatID(ctx context.Context, userID uuid.UUID, chatID *string) error {
	if m.SetTelegramChatIDFunc == nil {
		panic("userRepoMock.SetTelegramChatIDFunc: method is nil but userRepo.SetTelegramChatID was just called")
	}
	m.lock.Lock()
	m.calls.SetTelegramChatID = append(m.calls.SetTelegramChatID, struct {
		UserID uuid.UUID
		ChatID *string
	}{userID, chatID})
	m.lock.Unlock()
	return m.SetTelegramChatIDFunc(ctx, userID, chatID)
}

func (m *userRepoMock) CreateCalls() []*domain.User {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

func (m *userRepoMock) SetTelegramChatIDCalls() []struct {
	UserID uuid.UUID
	ChatID *string
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.SetTelegramChatID
}

var _ jwtManager = &jwtManagerMock{}

type jwtManagerMock struct {
	GenerateAccessTokenFunc func(userID uuid.UUID) (string, error)
	ValidateAccessTokenFunc func(token string) (uuid.UUID, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID) (string, error) {
	if m.GenerateAccessTokenFunc == nil {
		panic("jwtManagerMock.GenerateAccessTokenFunc: method is nil but jwtManager.GenerateAccessToken was just called")
	}
	return m.GenerateAccessTokenFunc(userID)
}

func (m *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, error) {
	if m.ValidateAccessTokenFunc == nil {
		panic("jwtManagerMock.ValidateAccessTokenFunc: method is nil but jwtManager.ValidateAccessToken was just called")
	}
	return m.ValidateAccessTokenFunc(token)
}

var _ emailVerifier = &emailVerifierMock{}

type emailVerifierMock struct {
	VerifyFunc func(ctx context.Context, email string) (string, error)
}

func (m *emailVerifierMock) Verify(ctx context.Context, email string) (string, error) {
	if m.VerifyFunc == nil {
		panic("emailVerifierMock.VerifyFunc: method is nil but emailVerifier.Verify was just called")
	}
	return m.VerifyFunc(ctx, email)
}
