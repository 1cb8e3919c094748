package domain

import "time"

// UserRole determines which parts of the ledger a user may operate on.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleClient     UserRole = "CLIENT"
)

// User represents an application user.
type User struct {
	UserID       string     `json:"userID"` // Primary Key (UUID)
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // bcrypt hash, never serialized
	Role         UserRole   `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
