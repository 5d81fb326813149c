package models

import "time"

// AssessmentType categorises a graded event.
type AssessmentType string

const (
	TypeQuiz     AssessmentType = "quiz"
	TypeExam     AssessmentType = "exam"
	TypeProject  AssessmentType = "project"
	TypeActivity AssessmentType = "activity"
	TypeOther    AssessmentType = "other"
)

// ValidAssessmentType reports whether t is one of the known types.
func ValidAssessmentType(t AssessmentType) bool {
	switch t {
	case TypeQuiz, TypeExam, TypeProject, TypeActivity, TypeOther:
		return true
	}
	return false
}

// DefaultMaxScore applies when an assessment is created without one.
const DefaultMaxScore = 100

// Assessment is a graded event within a class. The three file fields are
// either all present or all absent.
type Assessment struct {
	ID          string         `db:"id" json:"id"`
	ClassID     string         `db:"class_id" json:"class_id"`
	Name        string         `db:"name" json:"name"`
	Type        AssessmentType `db:"type" json:"type"`
	DateTaken   *time.Time     `db:"date_taken" json:"date_taken,omitempty"`
	MaxScore    float64        `db:"max_score" json:"max_score"`
	Description *string        `db:"description" json:"description,omitempty"`
	FilePath    *string        `db:"file_path" json:"file_path,omitempty"`
	FileURL     *string        `db:"file_url" json:"file_url,omitempty"`
	FileName    *string        `db:"file_name" json:"file_name,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// Grade joins a student to an assessment. A nil Score means "ungraded",
// which is distinct from a score of zero.
type Grade struct {
	ID           string    `db:"id" json:"id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	AssessmentID string    `db:"assessment_id" json:"assessment_id"`
	Score        *float64  `db:"score" json:"score"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
