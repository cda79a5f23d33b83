package mailer

import (
	"context"
	"sync"

	"campus-backend/internal/logger"
)

// ConsoleMailer logs messages instead of delivering them and records what was
// sent. Used in development and by tests asserting on send counts.
type ConsoleMailer struct {
	mu   sync.Mutex
	sent []Message
}

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

func (c *ConsoleMailer) Send(ctx context.Context, msg Message) error {
	c.mu.Lock()
	c.sent = append(c.sent, msg)
	c.mu.Unlock()
	logger.Info("Email (console)", "to", msg.To, "subject", msg.Subject, "body", msg.PlainText)
	return nil
}

// Sent returns a copy of all messages sent so far.
func (c *ConsoleMailer) Sent() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.sent))
	copy(out, c.sent)
	return out
}
