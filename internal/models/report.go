package models

import "time"

// GradeSummaryItem is one scored assessment row in a student projection.
type GradeSummaryItem struct {
	AssessmentID   string         `json:"assessment_id"`
	AssessmentName string         `json:"assessment_name"`
	Type           AssessmentType `json:"type"`
	DateTaken      *time.Time     `json:"date_taken,omitempty"`
	Score          *float64       `json:"score"`
	MaxScore       float64        `json:"max_score"`
	Percentage     *int           `json:"percentage"`
}

// HomeworkSummaryItem is one assignment row in a student projection.
type HomeworkSummaryItem struct {
	AssignmentID   string           `json:"assignment_id"`
	AssignmentName string           `json:"assignment_name"`
	WeekLabel      string           `json:"week_label"`
	DueDate        *time.Time       `json:"due_date,omitempty"`
	Status         SubmissionStatus `json:"status"`
}

// HomeworkTotals aggregates submission standing across a roster entry.
type HomeworkTotals struct {
	Submitted      int     `json:"submitted"`
	Late           int     `json:"late"`
	Missing        int     `json:"missing"`
	Pending        int     `json:"pending"`
	Total          int     `json:"total"`
	SubmissionRate float64 `json:"submission_rate"`
}

// ParentViewProjection is the read-only snapshot served to a share link.
type ParentViewProjection struct {
	StudentName    string                `json:"student_name"`
	StudentCode    string                `json:"student_code"`
	ClassName      string                `json:"class_name"`
	GradeLevel     string                `json:"grade_level"`
	Section        string                `json:"section"`
	AcademicYear   string                `json:"academic_year"`
	Term           string                `json:"term"`
	TermAverage    *int                  `json:"term_average"`
	Grades         []GradeSummaryItem    `json:"grades"`
	Homework       []HomeworkSummaryItem `json:"homework"`
	HomeworkTotals HomeworkTotals        `json:"homework_totals"`
	GeneratedAt    time.Time             `json:"generated_at"`
}

// StudentReport is the per-student teacher report, optionally narrated.
type StudentReport struct {
	StudentID      string                `json:"student_id"`
	StudentName    string                `json:"student_name"`
	StudentCode    string                `json:"student_code"`
	ClassName      string                `json:"class_name"`
	Term           string                `json:"term"`
	TermAverage    *int                  `json:"term_average"`
	Bucket         string                `json:"bucket"`
	Grades         []GradeSummaryItem    `json:"grades"`
	HomeworkTotals HomeworkTotals        `json:"homework_totals"`
	Homework       []HomeworkSummaryItem `json:"homework"`
	Narrative      string                `json:"narrative,omitempty"`
	GeneratedAt    time.Time             `json:"generated_at"`
}

// ClassStanding is one roster row inside a class report.
type ClassStanding struct {
	StudentID      string  `json:"student_id"`
	StudentName    string  `json:"student_name"`
	StudentCode    string  `json:"student_code"`
	TermAverage    *int    `json:"term_average"`
	Bucket         string  `json:"bucket"`
	SubmissionRate float64 `json:"submission_rate"`
	MissingCount   int     `json:"missing_count"`
}

// ClassReport is the whole-class overview, optionally narrated.
type ClassReport struct {
	ClassID        string          `json:"class_id"`
	ClassName      string          `json:"class_name"`
	Term           string          `json:"term"`
	AcademicYear   string          `json:"academic_year"`
	ClassAverage   *int            `json:"class_average"`
	Distribution   map[string]int  `json:"distribution"`
	AtRiskCount    int             `json:"at_risk_count"`
	Standings      []ClassStanding `json:"standings"`
	Narrative      string          `json:"narrative,omitempty"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
