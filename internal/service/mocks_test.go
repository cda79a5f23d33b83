package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"campus-backend/internal/domain"
)

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if acct, ok := args.Get(0).(*domain.Account); ok {
		return acct, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if acct, ok := args.Get(0).(*domain.Account); ok {
		return acct, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.ApprovalStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockAccountRepo) UpdateCredential(ctx context.Context, id int32, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockAccountRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	args := m.Called(ctx, role)
	if accounts, ok := args.Get(0).([]domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepo) ListPending(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if accounts, ok := args.Get(0).([]domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepo) ListApproved(ctx context.Context, afterID, limit int32) ([]domain.Account, error) {
	args := m.Called(ctx, afterID, limit)
	if accounts, ok := args.Get(0).([]domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if notes, ok := args.Get(0).([]domain.Notification); ok {
		return notes, args.Get(1).(int32), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, accountID int32) error {
	args := m.Called(ctx, id, accountID)
	return args.Error(0)
}

// fakeResetTokenRepo is a stateful in-memory ResetTokenRepository. The upsert
// and consume-once semantics are what the reset tests exercise, so a real map
// beats call expectations here.
type fakeResetTokenRepo struct {
	tokens map[string]*domain.ResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{tokens: make(map[string]*domain.ResetToken)}
}

func (f *fakeResetTokenRepo) Upsert(ctx context.Context, t *domain.ResetToken) error {
	if t.CreatedOn.IsZero() {
		t.CreatedOn = time.Now().UTC()
	}
	cp := *t
	f.tokens[t.Email] = &cp
	return nil
}

func (f *fakeResetTokenRepo) GetByEmail(ctx context.Context, email string) (*domain.ResetToken, error) {
	t, ok := f.tokens[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeResetTokenRepo) Consume(ctx context.Context, email, tokenHash string) error {
	t, ok := f.tokens[email]
	if !ok || t.TokenHash != tokenHash {
		return domain.ErrInvalidToken
	}
	delete(f.tokens, email)
	return nil
}
