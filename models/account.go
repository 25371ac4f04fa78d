package models

import "time"

// Account is the root of the deletion graph. PasswordHash is nil for
// accounts created through an external identity provider (Google
// Sign-In); those accounts verify with the name method instead.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountSettings holds the per-account preferences row. At most one
// exists per account.
type AccountSettings struct {
	AccountID          int64  `json:"account_id"`
	Theme              string `json:"theme"`
	EmailNotifications bool   `json:"email_notifications"`
}
