package models

import "time"

// User represents a registered account in the system. Email is the sole
// login identifier; there is no separate username.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	IsActive     bool      `json:"isActive"`
	IsStaff      bool      `json:"isStaff"`
	IsSuperuser  bool      `json:"isSuperuser"`
	CreatedAt    time.Time `json:"createdAt"`
}
