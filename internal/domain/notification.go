package domain

import "time"

// Notification is one delivered database-channel record. Rows are append-only;
// the only mutation after creation is the read flag, toggled by the recipient.
type Notification struct {
	ID         int32             `json:"id"`
	AccountID  int32             `json:"account_id"`
	Type       string            `json:"type"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  time.Time         `json:"created_on"`
}
