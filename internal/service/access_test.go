package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type mockClassGetter struct {
	classes map[string]*models.Class
}

func (m *mockClassGetter) GetByID(ctx context.Context, id string) (*models.Class, error) {
	if class, ok := m.classes[id]; ok {
		copied := *class
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

type mockStudentGetter struct {
	students map[string]*models.Student
}

func (m *mockStudentGetter) GetByID(ctx context.Context, id string) (*models.Student, error) {
	if student, ok := m.students[id]; ok {
		copied := *student
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

type mockAssignmentGetter struct {
	assignments map[string]*models.Assignment
}

func (m *mockAssignmentGetter) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	if assignment, ok := m.assignments[id]; ok {
		copied := *assignment
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

type mockAssessmentGetter struct {
	assessments map[string]*models.Assessment
}

func (m *mockAssessmentGetter) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	if assessment, ok := m.assessments[id]; ok {
		copied := *assessment
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func testGuard() *AccessGuard {
	return NewAccessGuard(
		&mockClassGetter{classes: map[string]*models.Class{
			"c1": {ID: "c1", TeacherID: "t1", SubjectName: "Mathematics", AlertThreshold: 60},
		}},
		&mockStudentGetter{students: map[string]*models.Student{
			"s1": {ID: "s1", ClassID: "c1", Name: "Alice Smith", StudentCode: "STE0001"},
		}},
		&mockAssignmentGetter{assignments: map[string]*models.Assignment{
			"h1": {ID: "h1", ClassID: "c1", Name: "Week 1 Homework"},
		}},
		&mockAssessmentGetter{assessments: map[string]*models.Assessment{
			"a1": {ID: "a1", ClassID: "c1", Name: "Quiz 1", MaxScore: 100},
		}},
	)
}

func teacherClaims(id string) *models.JWTClaims {
	return &models.JWTClaims{UserID: id, Role: models.RoleUser, EduRole: models.EduRoleTeacher}
}

func TestAccessGuardOwnerAllowed(t *testing.T) {
	guard := testGuard()
	class, err := guard.Class(context.Background(), teacherClaims("t1"), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", class.ID)
}

func TestAccessGuardStrangerForbidden(t *testing.T) {
	guard := testGuard()
	actor := teacherClaims("t2")

	_, err := guard.Class(context.Background(), actor, "c1")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, _, err = guard.Student(context.Background(), actor, "s1")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, _, err = guard.Assignment(context.Background(), actor, "h1")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, _, err = guard.Assessment(context.Background(), actor, "a1")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestAccessGuardAdminAlwaysAllowed(t *testing.T) {
	guard := testGuard()

	// either admin flag is sufficient
	byEduRole := &models.JWTClaims{UserID: "x", Role: models.RoleUser, EduRole: models.EduRoleAdmin}
	_, err := guard.Class(context.Background(), byEduRole, "c1")
	assert.NoError(t, err)

	byRole := &models.JWTClaims{UserID: "x", Role: models.RoleAdmin, EduRole: models.EduRoleTeacher}
	_, err = guard.Class(context.Background(), byRole, "c1")
	assert.NoError(t, err)
}

func TestAccessGuardMissingEntityIsNotFound(t *testing.T) {
	guard := testGuard()
	actor := teacherClaims("t2")

	// NotFound wins over Forbidden so existence cannot be probed
	_, err := guard.Class(context.Background(), actor, "missing")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, _, err = guard.Student(context.Background(), actor, "missing")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
