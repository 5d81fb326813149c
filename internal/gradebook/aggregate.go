// Package gradebook holds the pure numeric core: percentage math, term and
// class averages, grade buckets, and submission rates. Functions here take
// in-memory collections and never touch the store, so every call site shares
// the same rounding and null-handling rules.
package gradebook

import (
	"math"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

// Grade buckets. A nil percentage maps to BucketNoData, never to zero.
const (
	BucketExcellent = "excellent"
	BucketPassing   = "passing"
	BucketAtRisk    = "atRisk"
	BucketNoData    = "noData"
)

// Percentage converts a raw score into a rounded integer percentage.
// Returns nil when the score is absent or maxScore is not positive;
// ties round half away from zero.
func Percentage(score *float64, maxScore float64) *int {
	if score == nil || maxScore <= 0 {
		return nil
	}
	pct := int(math.Round(*score / maxScore * 100))
	return &pct
}

// TermAverage averages a student's percentages across all assessments that
// carry a grade for them. Ungraded assessments are excluded, not counted as
// zero. Returns nil when no assessment qualifies.
func TermAverage(studentID string, assessments []models.Assessment, grades []models.Grade) *int {
	maxByAssessment := make(map[string]float64, len(assessments))
	for _, a := range assessments {
		maxByAssessment[a.ID] = a.MaxScore
	}

	sum, n := 0, 0
	for _, g := range grades {
		if g.StudentID != studentID {
			continue
		}
		maxScore, ok := maxByAssessment[g.AssessmentID]
		if !ok {
			continue
		}
		pct := Percentage(g.Score, maxScore)
		if pct == nil {
			continue
		}
		sum += *pct
		n++
	}
	if n == 0 {
		return nil
	}
	avg := int(math.Round(float64(sum) / float64(n)))
	return &avg
}

// ClassAverage averages one assessment's percentages across the roster.
// Students without a grade row are excluded. Returns nil when nobody is
// graded yet.
func ClassAverage(assessmentID string, maxScore float64, students []models.Student, grades []models.Grade) *int {
	roster := make(map[string]struct{}, len(students))
	for _, s := range students {
		roster[s.ID] = struct{}{}
	}

	sum, n := 0, 0
	for _, g := range grades {
		if g.AssessmentID != assessmentID {
			continue
		}
		if _, ok := roster[g.StudentID]; !ok {
			continue
		}
		pct := Percentage(g.Score, maxScore)
		if pct == nil {
			continue
		}
		sum += *pct
		n++
	}
	if n == 0 {
		return nil
	}
	avg := int(math.Round(float64(sum) / float64(n)))
	return &avg
}

// GradeBucket classifies a percentage against the class alert threshold.
// The four buckets partition every input: nil is noData, >=90 is excellent,
// below the threshold is atRisk, everything between is passing.
func GradeBucket(pct *int, threshold int) string {
	switch {
	case pct == nil:
		return BucketNoData
	case *pct >= 90:
		return BucketExcellent
	case *pct < threshold:
		return BucketAtRisk
	default:
		return BucketPassing
	}
}

// Distribution counts roster term averages into the four buckets.
func Distribution(students []models.Student, assessments []models.Assessment, grades []models.Grade, threshold int) map[string]int {
	dist := map[string]int{
		BucketExcellent: 0,
		BucketPassing:   0,
		BucketAtRisk:    0,
		BucketNoData:    0,
	}
	for _, s := range students {
		avg := TermAverage(s.ID, assessments, grades)
		dist[GradeBucket(avg, threshold)]++
	}
	return dist
}

// SubmissionRate is the share of submitted+late over total, as a rounded
// percentage. Unlike grade percentages the empty denominator yields 0, not
// nil: a student with no homework assigned is fully caught up, not unknown.
func SubmissionRate(submittedOrLate, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(submittedOrLate) / float64(total) * 100)
}

// StudentHomeworkTotals tallies one student's submission standing across all
// class assignments. Assignments with no submission row count as pending.
func StudentHomeworkTotals(studentID string, assignments []models.Assignment, submissions []models.Submission) models.HomeworkTotals {
	statusByAssignment := make(map[string]models.SubmissionStatus, len(submissions))
	for _, sub := range submissions {
		if sub.StudentID == studentID {
			statusByAssignment[sub.AssignmentID] = sub.Status
		}
	}

	var t models.HomeworkTotals
	t.Total = len(assignments)
	for _, a := range assignments {
		switch statusByAssignment[a.ID] {
		case models.StatusSubmitted:
			t.Submitted++
		case models.StatusLate:
			t.Late++
		case models.StatusMissing:
			t.Missing++
		default:
			t.Pending++
		}
	}
	t.SubmissionRate = SubmissionRate(t.Submitted+t.Late, t.Total)
	return t
}

// AssignmentSubmissionRate is the roster-wide rate for one assignment.
func AssignmentSubmissionRate(assignmentID string, students []models.Student, submissions []models.Submission) float64 {
	roster := make(map[string]struct{}, len(students))
	for _, s := range students {
		roster[s.ID] = struct{}{}
	}

	n := 0
	for _, sub := range submissions {
		if sub.AssignmentID != assignmentID {
			continue
		}
		if _, ok := roster[sub.StudentID]; !ok {
			continue
		}
		if sub.Status == models.StatusSubmitted || sub.Status == models.StatusLate {
			n++
		}
	}
	return SubmissionRate(n, len(students))
}
