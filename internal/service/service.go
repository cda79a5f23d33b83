package service

import (
	"context"

	"campus-backend/internal/domain"
)

// NewAccount carries the fields needed to register an account.
type NewAccount struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type AuthService interface {
	// Register creates a PENDING account and notifies admins of the new
	// registration request. At most one account per email.
	Register(ctx context.Context, na NewAccount) (*domain.Account, error)
	// Login returns access and refresh tokens. Unknown email and wrong
	// password are indistinguishable; unapproved accounts cannot log in.
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type ApprovalService interface {
	// Approve transitions a PENDING account to APPROVED. Exactly one
	// terminal transition per account: repeat calls fail with
	// domain.ErrInvalidState. The status commit happens before any
	// notification dispatch, and dispatch failures never fail the approval.
	Approve(ctx context.Context, accountID int32) (*domain.Account, error)
	// Reject transitions a PENDING account to REJECTED, same guarantees.
	Reject(ctx context.Context, accountID int32) error
	ListPending(ctx context.Context) ([]domain.Account, error)
}

type PasswordResetService interface {
	// RequestReset issues a fresh token for the email (replacing any prior
	// live token) and mails it. domain.ErrNotFound when no account matches;
	// the transport layer masks that to avoid leaking account existence.
	RequestReset(ctx context.Context, email string) error
	// VerifyToken reports whether token is the most recently issued,
	// unconsumed, unexpired token for the email. No mutation.
	VerifyToken(ctx context.Context, email, token string) bool
	// CompleteReset consumes the token and sets the new credential. Replays
	// and mismatches fail with domain.ErrInvalidToken.
	CompleteReset(ctx context.Context, email, token, newPassword string) error
}

type NotificationService interface {
	List(ctx context.Context, accountID, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, accountID, notificationID int32) error
}
