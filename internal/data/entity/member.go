package entity

import (
	"time"
)

type MemberRole string

const (
	RolePatron MemberRole = "patron"
	RoleAdmin  MemberRole = "admin"
)

// Member is an account keyed by its human-readable member ID. The email is
// derived from the member ID at registration and never used as a lookup key.
type Member struct {
	MemberID     string     `db:"member_id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	Role         MemberRole `db:"role"`
	CreatedAt    time.Time  `db:"created_at"`
}
