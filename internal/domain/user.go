package domain

import "time"

// User represents a registered forum member.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserUpdate carries the optional fields of a profile update. Nil means unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
}
