package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"campus-backend/internal/config"
	"campus-backend/internal/domain"
	"campus-backend/internal/mailer"
	"campus-backend/internal/notify"
)

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if acct, ok := args.Get(0).(*domain.Account); ok {
		return acct, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if acct, ok := args.Get(0).(*domain.Account); ok {
		return acct, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.ApprovalStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *mockAccountRepo) UpdateCredential(ctx context.Context, id int32, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockAccountRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	args := m.Called(ctx, role)
	if accounts, ok := args.Get(0).([]domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) ListPending(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if accounts, ok := args.Get(0).([]domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) ListApproved(ctx context.Context, afterID, limit int32) ([]domain.Account, error) {
	args := m.Called(ctx, afterID, limit)
	if accounts, ok := args.Get(0).([]domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx, date)
	if events, ok := args.Get(0).([]domain.CalendarEvent); ok {
		return events, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNotificationRepo) List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if notes, ok := args.Get(0).([]domain.Notification); ok {
		return notes, args.Get(1).(int32), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, id, accountID int32) error {
	args := m.Called(ctx, id, accountID)
	return args.Error(0)
}

type reminderFixture struct {
	accountRepo *mockAccountRepo
	eventRepo   *mockEventRepo
	noteRepo    *mockNotificationRepo
	runner      *JobRunner
	tomorrow    time.Time
}

func newReminderFixture(batchSize int32) *reminderFixture {
	accountRepo := new(mockAccountRepo)
	eventRepo := new(mockEventRepo)
	noteRepo := new(mockNotificationRepo)

	cfg := &config.Config{}
	cfg.Scheduler.ReminderBatchSize = batchSize

	runner := NewJobRunner(accountRepo, eventRepo, notify.NewDispatcher(noteRepo, mailer.NewConsoleMailer()), cfg)
	frozen := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	runner.now = func() time.Time { return frozen }

	return &reminderFixture{
		accountRepo: accountRepo,
		eventRepo:   eventRepo,
		noteRepo:    noteRepo,
		runner:      runner,
		tomorrow:    time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func approvedAccounts(ids ...int32) []domain.Account {
	accounts := make([]domain.Account, 0, len(ids))
	for _, id := range ids {
		accounts = append(accounts, domain.Account{
			ID:     id,
			Name:   "Account",
			Email:  "account@campus.local",
			Role:   domain.RoleStudent,
			Status: domain.ApprovalStatusApproved,
		})
	}
	return accounts
}

func TestSendUpcomingEventReminders(t *testing.T) {
	events := []domain.CalendarEvent{
		{ID: 1, Title: "Midterm exam", Description: "Room B12.", Date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Science fair", Description: "Main hall.", Date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	t.Run("FanOut", func(t *testing.T) {
		f := newReminderFixture(500)

		f.eventRepo.On("ListByDate", mock.Anything, f.tomorrow).Return(events, nil)
		f.accountRepo.On("ListApproved", mock.Anything, int32(0), int32(500)).Return(approvedAccounts(1, 2, 3), nil)
		f.noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

		f.runner.SendUpcomingEventReminders()

		// 2 events for 3 accounts is exactly 6 stored notifications.
		f.noteRepo.AssertNumberOfCalls(t, "Create", 6)
		for _, call := range f.noteRepo.Calls {
			n := call.Arguments.Get(1).(*domain.Notification)
			assert.Equal(t, string(notify.EventUpcomingEvent), n.Type)
			assert.Equal(t, "2026-03-15", n.Attributes["date"])
		}
	})

	t.Run("NoEventsTomorrow", func(t *testing.T) {
		f := newReminderFixture(500)

		f.eventRepo.On("ListByDate", mock.Anything, f.tomorrow).Return([]domain.CalendarEvent{}, nil)

		f.runner.SendUpcomingEventReminders()

		f.accountRepo.AssertNotCalled(t, "ListApproved", mock.Anything, mock.Anything, mock.Anything)
		f.noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("PagesThroughAccounts", func(t *testing.T) {
		f := newReminderFixture(2)

		f.eventRepo.On("ListByDate", mock.Anything, f.tomorrow).Return(events[:1], nil)
		f.accountRepo.On("ListApproved", mock.Anything, int32(0), int32(2)).Return(approvedAccounts(1, 2), nil)
		f.accountRepo.On("ListApproved", mock.Anything, int32(2), int32(2)).Return(approvedAccounts(3), nil)
		f.noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

		f.runner.SendUpcomingEventReminders()

		f.accountRepo.AssertNumberOfCalls(t, "ListApproved", 2)
		f.noteRepo.AssertNumberOfCalls(t, "Create", 3)
	})

	t.Run("AccountQueryFailureStopsJob", func(t *testing.T) {
		f := newReminderFixture(500)

		f.eventRepo.On("ListByDate", mock.Anything, f.tomorrow).Return(events, nil)
		f.accountRepo.On("ListApproved", mock.Anything, int32(0), int32(500)).Return(nil, assert.AnError)

		f.runner.SendUpcomingEventReminders()

		f.noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("StorageFailureSkipsOneDelivery", func(t *testing.T) {
		f := newReminderFixture(500)

		f.eventRepo.On("ListByDate", mock.Anything, f.tomorrow).Return(events[:1], nil)
		f.accountRepo.On("ListApproved", mock.Anything, int32(0), int32(500)).Return(approvedAccounts(1, 2), nil)
		f.noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(assert.AnError).Once()
		f.noteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

		f.runner.SendUpcomingEventReminders()

		// The failed write is logged and the job moves on to the next account.
		f.noteRepo.AssertNumberOfCalls(t, "Create", 2)
	})
}
