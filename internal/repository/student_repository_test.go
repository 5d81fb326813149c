package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestStudentRepositoryListByClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "class_id", "student_code", "name", "email", "share_token", "created_at", "updated_at"}).
		AddRow("s1", "c1", "STE0001", "Alice Smith", nil, nil, time.Now(), time.Now()).
		AddRow("s2", "c1", "STE0002", "Bob Jones", nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, class_id, student_code, name, email, share_token, created_at, updated_at FROM students WHERE class_id = $1 ORDER BY student_code")).
		WithArgs("c1").
		WillReturnRows(rows)

	students, err := repo.ListByClass(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.Equal(t, "STE0001", students[0].StudentCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{ClassID: "c1", StudentCode: "STE0003", Name: "Cara Lee"}
	err := repo.Create(context.Background(), student)
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryGetByShareToken(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	token := "abc123"
	rows := sqlmock.NewRows([]string{"id", "class_id", "student_code", "name", "email", "share_token", "created_at", "updated_at"}).
		AddRow("s1", "c1", "STE0001", "Alice Smith", nil, token, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, class_id, student_code, name, email, share_token, created_at, updated_at FROM students WHERE share_token = $1")).
		WithArgs(token).
		WillReturnRows(rows)

	student, err := repo.GetByShareToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "s1", student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryGetByShareTokenMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, class_id, student_code, name, email, share_token, created_at, updated_at FROM students WHERE share_token = $1")).
		WithArgs("revoked").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByShareToken(context.Background(), "revoked")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentRepositoryBulkCreateRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.BulkCreate(context.Background(), []models.Student{
		{ClassID: "c1", StudentCode: "STE0001", Name: "Alice Smith"},
		{ClassID: "c1", StudentCode: "STE0002", Name: "Bob Jones"},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeleteCascades(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM grades WHERE student_id = $1")).
		WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM submissions WHERE student_id = $1")).
		WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositorySetShareToken(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET share_token = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(nil, sqlmock.AnyArg(), "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetShareToken(context.Background(), "s1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
