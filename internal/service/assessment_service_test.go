package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type assessmentStoreMock struct {
	assessments map[string]*models.Assessment
	seq         int
}

func newAssessmentStoreMock() *assessmentStoreMock {
	return &assessmentStoreMock{assessments: map[string]*models.Assessment{}}
}

func (m *assessmentStoreMock) ListByClass(_ context.Context, classID string) ([]models.Assessment, error) {
	var out []models.Assessment
	for _, a := range m.assessments {
		if a.ClassID == classID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *assessmentStoreMock) GetByID(_ context.Context, id string) (*models.Assessment, error) {
	if a, ok := m.assessments[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *assessmentStoreMock) Create(_ context.Context, assessment *models.Assessment) error {
	m.seq++
	assessment.ID = fmt.Sprintf("asm-%d", m.seq)
	copied := *assessment
	m.assessments[assessment.ID] = &copied
	return nil
}

func (m *assessmentStoreMock) Update(_ context.Context, assessment *models.Assessment) error {
	if _, ok := m.assessments[assessment.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *assessment
	m.assessments[assessment.ID] = &copied
	return nil
}

func (m *assessmentStoreMock) SetFile(_ context.Context, id, filePath, fileURL, fileName string) error {
	a, ok := m.assessments[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.FilePath, a.FileURL, a.FileName = &filePath, &fileURL, &fileName
	return nil
}

func (m *assessmentStoreMock) ClearFile(_ context.Context, id string) error {
	a, ok := m.assessments[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.FilePath, a.FileURL, a.FileName = nil, nil, nil
	return nil
}

func (m *assessmentStoreMock) Delete(_ context.Context, id string) error {
	delete(m.assessments, id)
	return nil
}

func TestAssessmentCreateDefaultsMaxScore(t *testing.T) {
	repo := newAssessmentStoreMock()
	svc := NewAssessmentService(repo, nil, UploadLimits{}, testGuard(), nil, nil)

	created, err := svc.Create(context.Background(), teacherClaims("t1"), "c1", CreateAssessmentRequest{
		Name: "Quarter Exam",
		Type: models.TypeExam,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TypeExam, created.Type)
	assert.Equal(t, float64(models.DefaultMaxScore), created.MaxScore)
}

func TestAssessmentCreateRejectsUnknownType(t *testing.T) {
	repo := newAssessmentStoreMock()
	svc := NewAssessmentService(repo, nil, UploadLimits{}, testGuard(), nil, nil)

	_, err := svc.Create(context.Background(), teacherClaims("t1"), "c1", CreateAssessmentRequest{
		Name: "Pop Quiz",
		Type: models.AssessmentType("oral"),
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, repo.assessments)
}

func TestAssessmentUpdateRejectsUnknownType(t *testing.T) {
	repo := newAssessmentStoreMock()
	repo.assessments["a9"] = &models.Assessment{ID: "a9", ClassID: "c1", Name: "Quiz 9", Type: models.TypeQuiz, MaxScore: 100}
	guard := NewAccessGuard(
		&mockClassGetter{classes: map[string]*models.Class{
			"c1": {ID: "c1", TeacherID: "t1", AlertThreshold: 60},
		}},
		&mockStudentGetter{},
		&mockAssignmentGetter{},
		repo,
	)
	svc := NewAssessmentService(repo, nil, UploadLimits{}, guard, nil, nil)

	bad := models.AssessmentType("oral")
	_, err := svc.Update(context.Background(), teacherClaims("t1"), "a9", UpdateAssessmentRequest{Type: &bad})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, models.TypeQuiz, repo.assessments["a9"].Type)
}
