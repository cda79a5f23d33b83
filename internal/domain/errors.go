package domain

import "errors"

var (
	// ErrNotFound is returned when no matching account, notification or
	// reset token exists.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidState is returned on an illegal status transition, e.g.
	// approving an account that is no longer pending.
	ErrInvalidState = errors.New("invalid state transition")

	// ErrInvalidToken covers mismatched, expired and already-consumed reset
	// tokens. Callers must not distinguish the cases to the outside.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrEmailTaken is returned when registering with an email that already
	// has an account, pending or otherwise.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrNotApproved is returned on login while the account has not been
	// approved by an admin.
	ErrNotApproved = errors.New("account has not been approved")

	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDelivery wraps mail transport failures. Delivery errors are logged
	// by the dispatcher and never fail the triggering workflow.
	ErrDelivery = errors.New("mail delivery failed")
)
