package repository

import (
	"context"
	"time"

	"campus-backend/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int32) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// UpdateStatus moves an account from one approval status to another in a
	// single conditional statement. It returns domain.ErrInvalidState when the
	// account exists but is not in the expected status, and domain.ErrNotFound
	// when it does not exist.
	UpdateStatus(ctx context.Context, id int32, from, to domain.ApprovalStatus) error
	UpdateCredential(ctx context.Context, id int32, passwordHash string) error
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
	ListPending(ctx context.Context) ([]domain.Account, error)
	// ListApproved returns up to limit approved accounts with ID > afterID,
	// ordered by ID. Callers page through the full set without ever holding
	// it in memory at once.
	ListApproved(ctx context.Context, afterID, limit int32) ([]domain.Account, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, accountID int32) error
}

type ResetTokenRepository interface {
	// Upsert stores the token hash for the email, replacing any prior token
	// in the same statement. At most one live token per email.
	Upsert(ctx context.Context, token *domain.ResetToken) error
	GetByEmail(ctx context.Context, email string) (*domain.ResetToken, error)
	// Consume deletes the token only if both email and hash match, returning
	// domain.ErrInvalidToken otherwise. This is what makes a consumed token
	// unusable on replay.
	Consume(ctx context.Context, email, tokenHash string) error
}

type EventRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]domain.CalendarEvent, error)
}
