package notify

import (
	"context"

	"campus-backend/internal/domain"
	"campus-backend/internal/repository"
)

// databaseChannel writes one notification row per recipient. A storage
// failure here is a hard error for the dispatch call.
type databaseChannel struct {
	repo repository.NotificationRepository
}

func (c *databaseChannel) Send(ctx context.Context, event Event, rcpt Recipient) error {
	note := &domain.Notification{
		AccountID:  rcpt.AccountID,
		Type:       string(event.Type),
		Title:      event.Title,
		Message:    event.Message,
		Attributes: event.Attributes,
	}
	return c.repo.Create(ctx, note)
}
