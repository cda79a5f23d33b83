package domain

import "time"

// CalendarEvent is a date-stamped academic event (exam, holiday, deadline).
// Events are owned by the scheduling collaborator; this backend only reads
// them, keyed by date with no time-of-day component.
type CalendarEvent struct {
	ID          int32     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}
