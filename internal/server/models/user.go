// Package models defines the server-side row structs shared by repositories
// and services.
package models

import "time"

// User is a registered identity. Immutable after creation; there is no
// profile-edit flow.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
