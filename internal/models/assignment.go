package models

import "time"

// DefaultAssignmentPoints is the point value assigned when none is given.
const DefaultAssignmentPoints = 10

// Assignment is a homework item within a class, grouped by week.
type Assignment struct {
	ID         string     `db:"id" json:"id"`
	ClassID    string     `db:"class_id" json:"class_id"`
	Name       string     `db:"name" json:"name"`
	WeekLabel  string     `db:"week_label" json:"week_label"`
	WeekNumber int        `db:"week_number" json:"week_number"`
	DueDate    *time.Time `db:"due_date" json:"due_date,omitempty"`
	Points     float64    `db:"points" json:"points"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// SubmissionStatus is the homework submission state for one student and
// assignment. The absence of a submission row is equivalent to StatusPending.
type SubmissionStatus string

const (
	StatusSubmitted SubmissionStatus = "submitted"
	StatusLate      SubmissionStatus = "late"
	StatusMissing   SubmissionStatus = "missing"
	StatusPending   SubmissionStatus = "pending"
)

// ValidSubmissionStatus reports whether s is one of the known states.
func ValidSubmissionStatus(s SubmissionStatus) bool {
	switch s {
	case StatusSubmitted, StatusLate, StatusMissing, StatusPending:
		return true
	}
	return false
}

// Submission records one student's status for one assignment. At most one
// row exists per (student, assignment) pair; writes are upserts.
type Submission struct {
	ID           string           `db:"id" json:"id"`
	StudentID    string           `db:"student_id" json:"student_id"`
	AssignmentID string           `db:"assignment_id" json:"assignment_id"`
	Status       SubmissionStatus `db:"status" json:"status"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}
