package model

import "time"

// Role grants access to operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered quiz player together with the coin wallet.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	Wallet       int64
	ReferredBy   *int64
	CreatedAt    time.Time
}

// Identity is the verified claim extracted from an access token.
type Identity struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether identity may perform administrative operations.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanAccess reports whether identity may read data owned by userID.
func (i Identity) CanAccess(userID int64) bool {
	return i.IsAdmin() || i.UserID == userID
}
