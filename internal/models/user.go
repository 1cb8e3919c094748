package models

import "time"

// User mirrors the users table.
type User struct {
	UserID       string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	AuditFields
	DeletedAt *time.Time
}
