package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoaringMaas/edutrack-lms/internal/gradebook"
	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type mockGradeRepo struct {
	stored map[string]models.Grade
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{stored: map[string]models.Grade{}}
}

func gradeKey(studentID, assessmentID string) string {
	return studentID + "|" + assessmentID
}

func (m *mockGradeRepo) ListByClass(ctx context.Context, classID string) ([]models.Grade, error) {
	var result []models.Grade
	for _, grade := range m.stored {
		result = append(result, grade)
	}
	return result, nil
}

func (m *mockGradeRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error) {
	var result []models.Grade
	for _, grade := range m.stored {
		if grade.StudentID == studentID {
			result = append(result, grade)
		}
	}
	return result, nil
}

func (m *mockGradeRepo) Upsert(ctx context.Context, grade *models.Grade) error {
	m.stored[gradeKey(grade.StudentID, grade.AssessmentID)] = *grade
	return nil
}

func (m *mockGradeRepo) BulkUpsert(ctx context.Context, grades []models.Grade) error {
	for i := range grades {
		_ = m.Upsert(ctx, &grades[i])
	}
	return nil
}

type mockRosterLister struct {
	students []models.Student
}

func (m *mockRosterLister) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	return m.students, nil
}

type mockAssessmentLister struct {
	assessments []models.Assessment
}

func (m *mockAssessmentLister) ListByClass(ctx context.Context, classID string) ([]models.Assessment, error) {
	return m.assessments, nil
}

func newTestGradeService(repo *mockGradeRepo) *GradeService {
	roster := []models.Student{
		{ID: "s1", ClassID: "c1", Name: "alice smith", StudentCode: "STE0001"},
		{ID: "s2", ClassID: "c1", Name: "Bob Jones", StudentCode: "STE0002"},
	}
	guard := NewAccessGuard(
		&mockClassGetter{classes: map[string]*models.Class{
			"c1": {ID: "c1", TeacherID: "t1", AlertThreshold: 60},
		}},
		&mockStudentGetter{students: map[string]*models.Student{
			"s1": {ID: "s1", ClassID: "c1", Name: "alice smith", StudentCode: "STE0001"},
			"s2": {ID: "s2", ClassID: "c1", Name: "Bob Jones", StudentCode: "STE0002"},
		}},
		&mockAssignmentGetter{},
		&mockAssessmentGetter{assessments: map[string]*models.Assessment{
			"a1": {ID: "a1", ClassID: "c1", Name: "Quiz 1", MaxScore: 100},
		}},
	)
	return NewGradeService(repo, &mockRosterLister{students: roster},
		&mockAssessmentLister{assessments: []models.Assessment{{ID: "a1", ClassID: "c1", Name: "Quiz 1", MaxScore: 100}}},
		guard, nil, nil)
}

func TestGradeUpsertBounds(t *testing.T) {
	repo := newMockGradeRepo()
	svc := newTestGradeService(repo)
	actor := teacherClaims("t1")

	high := 101.0
	_, err := svc.Upsert(context.Background(), actor, UpsertGradeRequest{StudentID: "s1", AssessmentID: "a1", Score: &high})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	low := -1.0
	_, err = svc.Upsert(context.Background(), actor, UpsertGradeRequest{StudentID: "s1", AssessmentID: "a1", Score: &low})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	ok := 100.0
	grade, err := svc.Upsert(context.Background(), actor, UpsertGradeRequest{StudentID: "s1", AssessmentID: "a1", Score: &ok})
	require.NoError(t, err)
	require.NotNil(t, grade.Score)
	assert.Equal(t, 100.0, *grade.Score)
}

func TestGradeUpsertNilScoreClearsGrade(t *testing.T) {
	repo := newMockGradeRepo()
	svc := newTestGradeService(repo)
	actor := teacherClaims("t1")

	score := 80.0
	_, err := svc.Upsert(context.Background(), actor, UpsertGradeRequest{StudentID: "s1", AssessmentID: "a1", Score: &score})
	require.NoError(t, err)

	_, err = svc.Upsert(context.Background(), actor, UpsertGradeRequest{StudentID: "s1", AssessmentID: "a1", Score: nil})
	require.NoError(t, err)
	assert.Nil(t, repo.stored[gradeKey("s1", "a1")].Score)
}

func TestImportScoresDisposition(t *testing.T) {
	repo := newMockGradeRepo()
	svc := newTestGradeService(repo)
	actor := teacherClaims("t1")

	rows := []gradebook.ScoreRow{
		{Identifier: "Alice Smith", ScoreRaw: "85"}, // case-mismatched name, imports
		{Identifier: "ste0002", ScoreRaw: ""},       // blank, skipped
		{Identifier: "Nobody", ScoreRaw: "50"},      // unknown, unmatched
		{Identifier: "Bob Jones", ScoreRaw: "999"},  // out of range, unmatched
	}
	result, err := svc.ImportScores(context.Background(), actor, ImportScoresRequest{AssessmentID: "a1", Rows: rows})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, []string{"ste0002"}, result.Skipped)
	assert.Contains(t, result.Unmatched, "Nobody")
	assert.Contains(t, result.Unmatched, "Bob Jones")
	assert.Equal(t, len(rows), result.Imported+len(result.Skipped)+len(result.Unmatched))

	// only the matched row was persisted
	require.Len(t, repo.stored, 1)
	stored := repo.stored[gradeKey("s1", "a1")]
	require.NotNil(t, stored.Score)
	assert.Equal(t, 85.0, *stored.Score)
}

func TestImportScoresSkippedRowLeavesPriorGrade(t *testing.T) {
	repo := newMockGradeRepo()
	svc := newTestGradeService(repo)
	actor := teacherClaims("t1")

	prior := 70.0
	_, err := svc.Upsert(context.Background(), actor, UpsertGradeRequest{StudentID: "s1", AssessmentID: "a1", Score: &prior})
	require.NoError(t, err)

	result, err := svc.ImportScores(context.Background(), actor, ImportScoresRequest{
		AssessmentID: "a1",
		Rows:         []gradebook.ScoreRow{{Identifier: "Alice Smith", ScoreRaw: ""}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)

	stored := repo.stored[gradeKey("s1", "a1")]
	require.NotNil(t, stored.Score)
	assert.Equal(t, 70.0, *stored.Score)
}

func TestImportScoresIdempotent(t *testing.T) {
	repo := newMockGradeRepo()
	svc := newTestGradeService(repo)
	actor := teacherClaims("t1")

	rows := []gradebook.ScoreRow{
		{Identifier: "Alice Smith", ScoreRaw: "85"},
		{Identifier: "Bob Jones", ScoreRaw: "90"},
	}
	for i := 0; i < 2; i++ {
		result, err := svc.ImportScores(context.Background(), actor, ImportScoresRequest{AssessmentID: "a1", Rows: rows})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
	}

	require.Len(t, repo.stored, 2)
	assert.Equal(t, 85.0, *repo.stored[gradeKey("s1", "a1")].Score)
	assert.Equal(t, 90.0, *repo.stored[gradeKey("s2", "a1")].Score)
}

func TestImportScoresCSVAutoDetectsColumns(t *testing.T) {
	repo := newMockGradeRepo()
	svc := newTestGradeService(repo)
	actor := teacherClaims("t1")

	file := []byte("Student Name,Quiz Score\nAlice Smith,85\nNobody,50\n")
	result, err := svc.ImportScoresCSV(context.Background(), actor, "a1", file)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, []string{"Nobody"}, result.Unmatched)
}

func TestExportCSVIncludesTermAverage(t *testing.T) {
	repo := newMockGradeRepo()
	svc := newTestGradeService(repo)
	actor := teacherClaims("t1")

	score := 85.0
	_, err := svc.Upsert(context.Background(), actor, UpsertGradeRequest{StudentID: "s1", AssessmentID: "a1", Score: &score})
	require.NoError(t, err)

	data, filename, err := svc.ExportCSV(context.Background(), actor, "c1")
	require.NoError(t, err)
	assert.Contains(t, filename, ".csv")

	content := string(data)
	assert.Contains(t, content, "alice smith")
	assert.Contains(t, content, "85%")
	assert.Contains(t, content, "STE0002") // ungraded student still listed
}
