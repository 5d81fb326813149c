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

type mockClassRepo struct {
	classes map[string]*models.Class
	nextID  int
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: map[string]*models.Class{}}
}

func (m *mockClassRepo) ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error) {
	var result []models.Class
	for _, class := range m.classes {
		if class.TeacherID == teacherID {
			result = append(result, *class)
		}
	}
	return result, nil
}

func (m *mockClassRepo) ListAll(ctx context.Context) ([]models.Class, error) {
	var result []models.Class
	for _, class := range m.classes {
		result = append(result, *class)
	}
	return result, nil
}

func (m *mockClassRepo) GetByID(ctx context.Context, id string) (*models.Class, error) {
	if class, ok := m.classes[id]; ok {
		copied := *class
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockClassRepo) CountByTeacher(ctx context.Context, teacherID string) (int, error) {
	count := 0
	for _, class := range m.classes {
		if class.TeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

func (m *mockClassRepo) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		m.nextID++
		class.ID = fmt.Sprintf("c%d", m.nextID)
	}
	copied := *class
	m.classes[class.ID] = &copied
	return nil
}

func (m *mockClassRepo) Update(ctx context.Context, class *models.Class) error {
	copied := *class
	m.classes[class.ID] = &copied
	return nil
}

func (m *mockClassRepo) Delete(ctx context.Context, id string) error {
	delete(m.classes, id)
	return nil
}

func newTestClassService(repo *mockClassRepo) *ClassService {
	guard := NewAccessGuard(repo, &mockStudentGetter{}, &mockAssignmentGetter{}, &mockAssessmentGetter{})
	return NewClassService(repo, guard, nil, nil)
}

func validClassRequest() CreateClassRequest {
	return CreateClassRequest{
		SubjectName:  "Mathematics",
		GradeLevel:   "Grade 10",
		Section:      "STEM A",
		AcademicYear: "2025-2026",
		Term:         "1st Term",
	}
}

func TestClassCreateDefaultsThreshold(t *testing.T) {
	repo := newMockClassRepo()
	svc := newTestClassService(repo)

	class, err := svc.Create(context.Background(), teacherClaims("t1"), validClassRequest())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAlertThreshold, class.AlertThreshold)
	assert.Equal(t, "t1", class.TeacherID)
}

func TestClassCreateCapAtThree(t *testing.T) {
	repo := newMockClassRepo()
	svc := newTestClassService(repo)
	actor := teacherClaims("t1")

	for i := 0; i < models.MaxClassesPerTeacher; i++ {
		_, err := svc.Create(context.Background(), actor, validClassRequest())
		require.NoError(t, err)
	}

	_, err := svc.Create(context.Background(), actor, validClassRequest())
	assert.True(t, appErrors.Is(err, appErrors.ErrCapacity))
}

func TestClassCreateAdminExemptFromCap(t *testing.T) {
	repo := newMockClassRepo()
	svc := newTestClassService(repo)
	admin := &models.JWTClaims{UserID: "adm", Role: models.RoleAdmin, EduRole: models.EduRoleTeacher}

	for i := 0; i < models.MaxClassesPerTeacher+2; i++ {
		_, err := svc.Create(context.Background(), admin, validClassRequest())
		require.NoError(t, err)
	}
}

func TestClassUpdateForbiddenForStranger(t *testing.T) {
	repo := newMockClassRepo()
	svc := newTestClassService(repo)

	class, err := svc.Create(context.Background(), teacherClaims("t1"), validClassRequest())
	require.NoError(t, err)

	name := "Hijacked"
	_, err = svc.Update(context.Background(), teacherClaims("t2"), class.ID, UpdateClassRequest{SubjectName: &name})
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestClassDelete(t *testing.T) {
	repo := newMockClassRepo()
	svc := newTestClassService(repo)
	actor := teacherClaims("t1")

	class, err := svc.Create(context.Background(), actor, validClassRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), actor, class.ID))

	_, err = svc.Get(context.Background(), actor, class.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
