package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

func TestGradeRepositoryListByClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	score := 85.0
	rows := sqlmock.NewRows([]string{"id", "student_id", "assessment_id", "score", "created_at", "updated_at"}).
		AddRow("g1", "s1", "a1", score, time.Now(), time.Now()).
		AddRow("g2", "s2", "a1", nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT g.id, g.student_id, g.assessment_id, g.score").
		WithArgs("c1").
		WillReturnRows(rows)

	grades, err := repo.ListByClass(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, grades, 2)
	require.NotNil(t, grades[0].Score)
	assert.Equal(t, 85.0, *grades[0].Score)
	assert.Nil(t, grades[1].Score, "ungraded rows keep a null score")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO grades")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	score := 42.5
	grade := &models.Grade{StudentID: "s1", AssessmentID: "a1", Score: &score}
	require.NoError(t, repo.Upsert(context.Background(), grade))
	assert.NotEmpty(t, grade.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryBulkUpsertStopsAtFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO grades")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO grades")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(assert.AnError)

	a, b := 80.0, 90.0
	err := repo.BulkUpsert(context.Background(), []models.Grade{
		{StudentID: "s1", AssessmentID: "a1", Score: &a},
		{StudentID: "s2", AssessmentID: "a1", Score: &b},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
