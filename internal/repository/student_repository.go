package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

// StudentRepository handles roster persistence.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, class_id, student_code, name, email, share_token, created_at, updated_at`

// ListByClass returns the class roster ordered by student code.
func (r *StudentRepository) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	var students []models.Student
	query := fmt.Sprintf(`SELECT %s FROM students WHERE class_id = $1 ORDER BY student_code`, studentColumns)
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// CountByClass returns the current roster size.
func (r *StudentRepository) CountByClass(ctx context.Context, classID string) (int, error) {
	var count int
	const query = `SELECT COUNT(*) FROM students WHERE class_id = $1`
	if err := r.db.GetContext(ctx, &count, query, classID); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// GetByID fetches one student.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByShareToken resolves a parent share token to its student.
func (r *StudentRepository) GetByShareToken(ctx context.Context, token string) (*models.Student, error) {
	var student models.Student
	query := fmt.Sprintf(`SELECT %s FROM students WHERE share_token = $1`, studentColumns)
	if err := r.db.GetContext(ctx, &student, query, token); err != nil {
		return nil, err
	}
	return &student, nil
}

// CodeExists reports whether a code is already taken within a class.
func (r *StudentRepository) CodeExists(ctx context.Context, classID, code string) (bool, error) {
	var count int
	const query = `SELECT COUNT(*) FROM students WHERE class_id = $1 AND student_code = $2`
	if err := r.db.GetContext(ctx, &count, query, classID, code); err != nil {
		return false, fmt.Errorf("check student code: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, class_id, student_code, name, email, share_token, created_at, updated_at)
        VALUES (:id, :class_id, :student_code, :name, :email, :share_token, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// BulkCreate inserts a batch of students in one transaction. Roster imports
// either land whole or not at all.
func (r *StudentRepository) BulkCreate(ctx context.Context, students []models.Student) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const query = `INSERT INTO students (id, class_id, student_code, name, email, share_token, created_at, updated_at)
        VALUES (:id, :class_id, :student_code, :name, :email, :share_token, :created_at, :updated_at)`
	for i := range students {
		if students[i].ID == "" {
			students[i].ID = uuid.NewString()
		}
		now := time.Now().UTC()
		students[i].CreatedAt = now
		students[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, students[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("bulk create students: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student import: %w", err)
	}
	return nil
}

// Update rewrites the mutable student fields, student code included.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET student_code = :student_code, name = :name, email = :email, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// SetShareToken stores or clears the parent share token.
func (r *StudentRepository) SetShareToken(ctx context.Context, id string, token *string) error {
	const query = `UPDATE students SET share_token = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, token, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("set share token: %w", err)
	}
	return nil
}

// Delete removes a student along with their grades and submissions.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	cascade := []string{
		`DELETE FROM grades WHERE student_id = $1`,
		`DELETE FROM submissions WHERE student_id = $1`,
		`DELETE FROM students WHERE id = $1`,
	}
	for _, query := range cascade {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("delete student: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student delete: %w", err)
	}
	return nil
}
