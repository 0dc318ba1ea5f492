package model

import "github.com/orgwatch/dirsync/pkg/domain/types"

// User represents a directory user account stored in the database.
//
// A user with IsActive = false is soft-deleted: logically removed but
// retained in storage. Soft-deleted users are inert to synchronization —
// no sync call may mutate them, regardless of what the directory reports.
type User struct {
	ID             types.UserID
	ExternalID     string // identifier in the external directory service
	FirstName      string
	LastName       string
	PrincipalName  string // primary key for addressing (e.g. "a.lovelace@example.com")
	Phone          string
	AlternateEmail string
	JobTitle       string

	IsActive bool
	Audit    Audit
}

// HasID reports whether a local identifier has been assigned
func (u *User) HasID() bool {
	return u.ID != ""
}

// AssignNewID assigns a fresh local identifier
func (u *User) AssignNewID() {
	u.ID = types.NewUserID()
}

// AuditMeta returns the mutable audit metadata of the user
func (u *User) AuditMeta() *Audit {
	return &u.Audit
}
