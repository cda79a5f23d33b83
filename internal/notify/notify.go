// Package notify fans one logical event out to its delivery channels. The
// routing is a static table keyed by event type; each channel is a small
// handler with a single Send method.
package notify

import (
	"context"
	"errors"
	"fmt"

	"campus-backend/internal/domain"
	"campus-backend/internal/logger"
	"campus-backend/internal/mailer"
	"campus-backend/internal/repository"
)

type EventType string

const (
	EventRegistrationReceived EventType = "registration_received"
	EventAccountApproved      EventType = "account_approved"
	EventAccountRejected      EventType = "account_rejected"
	EventUpcomingEvent        EventType = "upcoming_event"
	EventPasswordReset        EventType = "password_reset"
)

const (
	channelDatabase = "database"
	channelMail     = "mail"
)

// routes maps each event type to its ordered channel set. Mail for approvals
// is a separate transactional send owned by the caller of record; here only
// password resets go out by mail.
var routes = map[EventType][]string{
	EventRegistrationReceived: {channelDatabase},
	EventAccountApproved:      {channelDatabase},
	EventAccountRejected:      {channelDatabase},
	EventUpcomingEvent:        {channelDatabase},
	EventPasswordReset:        {channelMail},
}

// Event is one logical notification to deliver.
type Event struct {
	Type       EventType
	Title      string
	Message    string
	Attributes map[string]string
}

// Recipient identifies who receives the event on each channel.
type Recipient struct {
	AccountID int32
	Name      string
	Email     string
}

// Channel delivers one event to one recipient.
type Channel interface {
	Send(ctx context.Context, event Event, rcpt Recipient) error
}

// Dispatcher routes events to channels. Database-channel failures are storage
// failures and propagate to the caller; mail-channel failures are logged and
// swallowed (delivery is at-most-once, retries belong to the transport).
type Dispatcher struct {
	channels map[string]Channel
}

func NewDispatcher(noteRepo repository.NotificationRepository, m mailer.Mailer) *Dispatcher {
	return &Dispatcher{
		channels: map[string]Channel{
			channelDatabase: &databaseChannel{repo: noteRepo},
			channelMail:     &mailChannel{mailer: m},
		},
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, event Event, recipients ...Recipient) error {
	names, ok := routes[event.Type]
	if !ok {
		return fmt.Errorf("no channels routed for event type %q", event.Type)
	}

	for _, rcpt := range recipients {
		for _, name := range names {
			ch := d.channels[name]
			if err := ch.Send(ctx, event, rcpt); err != nil {
				if errors.Is(err, domain.ErrDelivery) {
					logger.Error("Notification delivery failed",
						"event", event.Type, "channel", name, "recipient", rcpt.Email, "error", err)
					continue
				}
				return fmt.Errorf("dispatching %s via %s: %w", event.Type, name, err)
			}
		}
	}
	return nil
}
