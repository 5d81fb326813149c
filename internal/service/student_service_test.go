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

type rosterStoreMock struct {
	students map[string]*models.Student
	seq      int
}

func newRosterStoreMock() *rosterStoreMock {
	return &rosterStoreMock{students: map[string]*models.Student{}}
}

func (m *rosterStoreMock) ListByClass(_ context.Context, classID string) ([]models.Student, error) {
	var out []models.Student
	for _, s := range m.students {
		if s.ClassID == classID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *rosterStoreMock) CountByClass(_ context.Context, classID string) (int, error) {
	n := 0
	for _, s := range m.students {
		if s.ClassID == classID {
			n++
		}
	}
	return n, nil
}

func (m *rosterStoreMock) GetByID(_ context.Context, id string) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *rosterStoreMock) CodeExists(_ context.Context, classID, code string) (bool, error) {
	for _, s := range m.students {
		if s.ClassID == classID && s.StudentCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *rosterStoreMock) Create(_ context.Context, student *models.Student) error {
	m.seq++
	student.ID = fmt.Sprintf("stu-%d", m.seq)
	copied := *student
	m.students[student.ID] = &copied
	return nil
}

func (m *rosterStoreMock) BulkCreate(_ context.Context, students []models.Student) error {
	for i := range students {
		m.seq++
		students[i].ID = fmt.Sprintf("stu-%d", m.seq)
		copied := students[i]
		m.students[copied.ID] = &copied
	}
	return nil
}

func (m *rosterStoreMock) Update(_ context.Context, student *models.Student) error {
	if _, ok := m.students[student.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *student
	m.students[student.ID] = &copied
	return nil
}

func (m *rosterStoreMock) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

func TestStudentCreateTrimsName(t *testing.T) {
	repo := newRosterStoreMock()
	svc := NewStudentService(repo, testGuard(), nil, nil)

	student, err := svc.Create(context.Background(), teacherClaims("t1"), "c1", CreateStudentRequest{Name: "  Dana Cruz  "})
	require.NoError(t, err)
	assert.Equal(t, "Dana Cruz", student.Name)
	assert.NotEmpty(t, student.StudentCode)
}

func TestStudentCreateRejectsBlankName(t *testing.T) {
	repo := newRosterStoreMock()
	svc := NewStudentService(repo, testGuard(), nil, nil)

	_, err := svc.Create(context.Background(), teacherClaims("t1"), "c1", CreateStudentRequest{Name: "   "})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, repo.students)
}

func TestStudentUpdateRejectsBlankName(t *testing.T) {
	repo := newRosterStoreMock()
	repo.students["s9"] = &models.Student{ID: "s9", ClassID: "c1", Name: "Dana Cruz", StudentCode: "STE0009"}
	guard := NewAccessGuard(
		&mockClassGetter{classes: map[string]*models.Class{
			"c1": {ID: "c1", TeacherID: "t1", AlertThreshold: 60},
		}},
		repo,
		&mockAssignmentGetter{},
		&mockAssessmentGetter{},
	)
	svc := NewStudentService(repo, guard, nil, nil)

	blank := " \t "
	_, err := svc.Update(context.Background(), teacherClaims("t1"), "s9", UpdateStudentRequest{Name: &blank})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, "Dana Cruz", repo.students["s9"].Name)
}

func TestStudentBulkImportSkipsBlankRows(t *testing.T) {
	repo := newRosterStoreMock()
	svc := NewStudentService(repo, testGuard(), nil, nil)

	result, err := svc.BulkImport(context.Background(), teacherClaims("t1"), "c1", []BulkImportRow{
		{Name: "Alice Smith"},
		{Name: "   "},
		{Name: "Bob Jones"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Codes, 2)
}
