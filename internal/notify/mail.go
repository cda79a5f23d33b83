package notify

import (
	"context"
	"fmt"

	"campus-backend/internal/domain"
	"campus-backend/internal/mailer"
)

// mailChannel is the only mail-producing path in the codebase. It makes
// exactly one Mailer.Send call per (event, recipient); transport failures are
// wrapped as ErrDelivery so the dispatcher treats them as non-fatal.
type mailChannel struct {
	mailer mailer.Mailer
}

func (c *mailChannel) Send(ctx context.Context, event Event, rcpt Recipient) error {
	msg := mailer.Message{
		To:        rcpt.Email,
		ToName:    rcpt.Name,
		Subject:   event.Title,
		PlainText: event.Message,
	}
	if err := c.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	return nil
}
