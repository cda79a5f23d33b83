package domain

import "time"

// ResetToken is the stored half of a password reset token: the SHA-256 hex
// digest of the value mailed to the user, keyed by email. At most one live
// token exists per email; issuing a new one replaces the old row.
type ResetToken struct {
	Email     string    `json:"email"`
	TokenHash string    `json:"-"`
	CreatedOn time.Time `json:"created_on"`
}
