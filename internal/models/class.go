package models

import "time"

// MaxClassesPerTeacher caps how many classes a non-admin teacher may own.
// Enforced at creation only.
const MaxClassesPerTeacher = 3

// DefaultAlertThreshold is the percentage floor below which a student's term
// average marks them at risk.
const DefaultAlertThreshold = 60

// Class represents a class section owned by exactly one teacher.
type Class struct {
	ID             string    `db:"id" json:"id"`
	TeacherID      string    `db:"teacher_id" json:"teacher_id"`
	SubjectName    string    `db:"subject_name" json:"subject_name"`
	GradeLevel     string    `db:"grade_level" json:"grade_level"`
	Section        string    `db:"section" json:"section"`
	AcademicYear   string    `db:"academic_year" json:"academic_year"`
	Term           string    `db:"term" json:"term"`
	AlertThreshold int       `db:"alert_threshold" json:"alert_threshold"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherNote is the single free-text note kept per class.
type TeacherNote struct {
	ID        string    `db:"id" json:"id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	Notes     string    `db:"notes" json:"notes"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
