package models

import "time"

// UserRole is the platform-wide privilege level, separate from the domain role.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// EduRole is the domain role within the gradebook.
type EduRole string

const (
	EduRoleTeacher EduRole = "teacher"
	EduRoleAdmin   EduRole = "admin"
)

// AccountStatus tracks the account approval lifecycle. Accounts that are not
// approved never obtain a session.
type AccountStatus string

const (
	AccountPending  AccountStatus = "pending"
	AccountApproved AccountStatus = "approved"
	AccountRejected AccountStatus = "rejected"
)

// User represents an application user stored in the users table.
// PasswordHash is nil for externally-authenticated accounts.
type User struct {
	ID            string        `db:"id" json:"id"`
	OpenID        string        `db:"open_id" json:"open_id"`
	Name          string        `db:"name" json:"name"`
	Email         *string       `db:"email" json:"email,omitempty"`
	PasswordHash  *string       `db:"password_hash" json:"-"`
	Role          UserRole      `db:"role" json:"role"`
	EduRole       EduRole       `db:"edu_role" json:"edu_role"`
	AccountStatus AccountStatus `db:"account_status" json:"account_status"`
	LastSignedIn  *time.Time    `db:"last_signed_in" json:"last_signed_in,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}
