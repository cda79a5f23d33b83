// Package mailer is the single entry point for outgoing mail. Every code path
// that produces email routes through one Mailer.Send call per logical message;
// nothing else in the codebase talks to the transport.
package mailer

import "context"

// Message is one outgoing email.
type Message struct {
	To       string
	ToName   string
	Subject  string
	PlainText string
	HTML     string
}

// Mailer delivers a message via an external transport. One synchronous send
// attempt per call; retry policy belongs to the transport, not to callers.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
