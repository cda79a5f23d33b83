package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// ValidRole reports whether r is one of the known account roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// Account is a registered user of the platform. An account starts out PENDING
// and is moved to APPROVED or REJECTED exactly once by an admin. Accounts are
// never hard-deleted; only the status changes.
type Account struct {
	ID           int32          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         Role           `json:"role"`
	Status       ApprovalStatus `json:"status"`
	PasswordHash string         `json:"-"`
	CreatedOn    time.Time      `json:"created_on"`
	UpdatedOn    time.Time      `json:"updated_on"`
}

func (a *Account) IsApproved() bool {
	return a.Status == ApprovalStatusApproved
}

func (a *Account) IsPending() bool {
	return a.Status == ApprovalStatusPending
}
