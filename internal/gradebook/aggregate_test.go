package gradebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

func scoreOf(v float64) *float64 { return &v }

func TestPercentage(t *testing.T) {
	assert.Nil(t, Percentage(nil, 100))
	assert.Nil(t, Percentage(scoreOf(5), 0))
	assert.Nil(t, Percentage(scoreOf(5), -10))

	pct := Percentage(scoreOf(55), 100)
	require.NotNil(t, pct)
	assert.Equal(t, 55, *pct)

	pct = Percentage(scoreOf(10), 10)
	require.NotNil(t, pct)
	assert.Equal(t, 100, *pct)

	pct = Percentage(scoreOf(0), 10)
	require.NotNil(t, pct)
	assert.Equal(t, 0, *pct)

	pct = Percentage(scoreOf(8.5), 10)
	require.NotNil(t, pct)
	assert.Equal(t, 85, *pct)

	pct = Percentage(scoreOf(7.05), 10)
	require.NotNil(t, pct)
	assert.Equal(t, 71, *pct)
}

func TestTermAverage(t *testing.T) {
	assessments := []models.Assessment{
		{ID: "a1", MaxScore: 100},
		{ID: "a2", MaxScore: 50},
		{ID: "a3", MaxScore: 0}, // invalid, must be excluded
	}
	grades := []models.Grade{
		{StudentID: "s1", AssessmentID: "a1", Score: scoreOf(80)},
		{StudentID: "s1", AssessmentID: "a2", Score: scoreOf(45)},
		{StudentID: "s1", AssessmentID: "a3", Score: scoreOf(10)},
		{StudentID: "s2", AssessmentID: "a1", Score: scoreOf(100)},
		{StudentID: "s3", AssessmentID: "a1", Score: nil}, // ungraded row
	}

	avg := TermAverage("s1", assessments, grades)
	require.NotNil(t, avg)
	assert.Equal(t, 85, *avg) // (80 + 90) / 2

	avg = TermAverage("s2", assessments, grades)
	require.NotNil(t, avg)
	assert.Equal(t, 100, *avg)

	assert.Nil(t, TermAverage("s3", assessments, grades), "null score rows do not count")
	assert.Nil(t, TermAverage("s4", assessments, grades), "no rows at all returns nil, never zero")
}

func TestClassAverage(t *testing.T) {
	students := []models.Student{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}}
	grades := []models.Grade{
		{StudentID: "s1", AssessmentID: "a1", Score: scoreOf(90)},
		{StudentID: "s2", AssessmentID: "a1", Score: scoreOf(70)},
		{StudentID: "ghost", AssessmentID: "a1", Score: scoreOf(0)}, // not on roster
	}

	avg := ClassAverage("a1", 100, students, grades)
	require.NotNil(t, avg)
	assert.Equal(t, 80, *avg)

	assert.Nil(t, ClassAverage("a2", 100, students, grades))
	assert.Nil(t, ClassAverage("a1", 100, nil, grades))
}

func TestGradeBucketPartitions(t *testing.T) {
	assert.Equal(t, BucketNoData, GradeBucket(nil, 60))

	for threshold := 0; threshold <= 100; threshold += 10 {
		for pct := 0; pct <= 100; pct++ {
			p := pct
			got := GradeBucket(&p, threshold)
			switch {
			case pct >= 90:
				assert.Equal(t, BucketExcellent, got)
			case pct < threshold:
				assert.Equal(t, BucketAtRisk, got)
			default:
				assert.Equal(t, BucketPassing, got)
			}
		}
	}
}

func TestGradeBucketScenario(t *testing.T) {
	// threshold 60, score 55/100
	pct := Percentage(scoreOf(55), 100)
	require.NotNil(t, pct)
	assert.Equal(t, 55, *pct)
	assert.Equal(t, BucketAtRisk, GradeBucket(pct, 60))
}

func TestSubmissionRate(t *testing.T) {
	assert.Equal(t, float64(0), SubmissionRate(0, 0), "empty denominator is 0, not nil")
	assert.Equal(t, float64(0), SubmissionRate(5, 0))
	assert.Equal(t, float64(100), SubmissionRate(4, 4))
	assert.Equal(t, float64(67), SubmissionRate(2, 3))
	assert.Equal(t, float64(50), SubmissionRate(1, 2))
}

func TestStudentHomeworkTotals(t *testing.T) {
	assignments := []models.Assignment{{ID: "h1"}, {ID: "h2"}, {ID: "h3"}, {ID: "h4"}}
	submissions := []models.Submission{
		{StudentID: "s1", AssignmentID: "h1", Status: models.StatusSubmitted},
		{StudentID: "s1", AssignmentID: "h2", Status: models.StatusLate},
		{StudentID: "s1", AssignmentID: "h3", Status: models.StatusMissing},
		{StudentID: "s2", AssignmentID: "h1", Status: models.StatusSubmitted},
	}

	totals := StudentHomeworkTotals("s1", assignments, submissions)
	assert.Equal(t, 1, totals.Submitted)
	assert.Equal(t, 1, totals.Late)
	assert.Equal(t, 1, totals.Missing)
	assert.Equal(t, 1, totals.Pending, "no submission row counts as pending")
	assert.Equal(t, 4, totals.Total)
	assert.Equal(t, float64(50), totals.SubmissionRate)

	totals = StudentHomeworkTotals("s3", nil, submissions)
	assert.Equal(t, 0, totals.Total)
	assert.Equal(t, float64(0), totals.SubmissionRate)
}

func TestAssignmentSubmissionRate(t *testing.T) {
	students := []models.Student{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}}
	submissions := []models.Submission{
		{StudentID: "s1", AssignmentID: "h1", Status: models.StatusSubmitted},
		{StudentID: "s2", AssignmentID: "h1", Status: models.StatusMissing},
		{StudentID: "ghost", AssignmentID: "h1", Status: models.StatusSubmitted},
	}

	assert.Equal(t, float64(33), AssignmentSubmissionRate("h1", students, submissions))
	assert.Equal(t, float64(0), AssignmentSubmissionRate("h1", nil, submissions))
}

func TestDistribution(t *testing.T) {
	students := []models.Student{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}, {ID: "s4"}}
	assessments := []models.Assessment{{ID: "a1", MaxScore: 100}}
	grades := []models.Grade{
		{StudentID: "s1", AssessmentID: "a1", Score: scoreOf(95)},
		{StudentID: "s2", AssessmentID: "a1", Score: scoreOf(75)},
		{StudentID: "s3", AssessmentID: "a1", Score: scoreOf(40)},
	}

	dist := Distribution(students, assessments, grades, 60)
	assert.Equal(t, 1, dist[BucketExcellent])
	assert.Equal(t, 1, dist[BucketPassing])
	assert.Equal(t, 1, dist[BucketAtRisk])
	assert.Equal(t, 1, dist[BucketNoData])

	total := 0
	for _, n := range dist {
		total += n
	}
	assert.Equal(t, len(students), total)
}
