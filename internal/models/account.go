package models

import "time"

// Account is the identity a session is bound to.
//
// One account exists per username that ever logged in successfully. It is
// created on the first successful login and is matched to a Person by
// username on every request; renaming or deleting a Person leaves the account
// in place.
type Account struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Username    string     `gorm:"uniqueIndex;size:55;not null" json:"username"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Session is a server-side login session.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	AccountID uint      `gorm:"index;not null" json:"account_id"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
}

// Expired reports whether the session is no longer valid at t.
func (s Session) Expired(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}
