package models

import "time"

// Student belongs to exactly one class. StudentCode is the human-readable
// identifier derived from the class section and enrollment order, distinct
// from the row id. ShareToken, when set, grants unauthenticated read-only
// access to this student's summary.
type Student struct {
	ID          string    `db:"id" json:"id"`
	ClassID     string    `db:"class_id" json:"class_id"`
	StudentCode string    `db:"student_code" json:"student_code"`
	Name        string    `db:"name" json:"name"`
	Email       *string   `db:"email" json:"email,omitempty"`
	ShareToken  *string   `db:"share_token" json:"share_token,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
