package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

// ClassRepository handles class persistence.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository creates a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

const classColumns = `id, teacher_id, subject_name, grade_level, section, academic_year, term, alert_threshold, created_at, updated_at`

// ListByTeacher returns the classes owned by one teacher.
func (r *ClassRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error) {
	var classes []models.Class
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE teacher_id = $1 ORDER BY created_at DESC`, classColumns)
	if err := r.db.SelectContext(ctx, &classes, query, teacherID); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ListAll returns every class; admin-only callers.
func (r *ClassRepository) ListAll(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	query := fmt.Sprintf(`SELECT %s FROM classes ORDER BY created_at DESC`, classColumns)
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list all classes: %w", err)
	}
	return classes, nil
}

// GetByID fetches one class.
func (r *ClassRepository) GetByID(ctx context.Context, id string) (*models.Class, error) {
	var class models.Class
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE id = $1`, classColumns)
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// CountByTeacher returns how many classes a teacher owns.
func (r *ClassRepository) CountByTeacher(ctx context.Context, teacherID string) (int, error) {
	var count int
	const query = `SELECT COUNT(*) FROM classes WHERE teacher_id = $1`
	if err := r.db.GetContext(ctx, &count, query, teacherID); err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return count, nil
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now
	const query = `INSERT INTO classes (id, teacher_id, subject_name, grade_level, section, academic_year, term, alert_threshold, created_at, updated_at)
        VALUES (:id, :teacher_id, :subject_name, :grade_level, :section, :academic_year, :term, :alert_threshold, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update rewrites the mutable class fields.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	class.UpdatedAt = time.Now().UTC()
	const query = `UPDATE classes SET subject_name = :subject_name, grade_level = :grade_level, section = :section,
        academic_year = :academic_year, term = :term, alert_threshold = :alert_threshold, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	return nil
}

// Delete removes a class and everything hanging off it in one transaction:
// grades and submissions first, then assessments, assignments, students,
// the teacher note, and finally the class row itself.
func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	cascade := []string{
		`DELETE FROM grades WHERE assessment_id IN (SELECT id FROM assessments WHERE class_id = $1)`,
		`DELETE FROM submissions WHERE assignment_id IN (SELECT id FROM assignments WHERE class_id = $1)`,
		`DELETE FROM assessments WHERE class_id = $1`,
		`DELETE FROM assignments WHERE class_id = $1`,
		`DELETE FROM students WHERE class_id = $1`,
		`DELETE FROM teacher_notes WHERE class_id = $1`,
		`DELETE FROM classes WHERE id = $1`,
	}
	for _, query := range cascade {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("delete class: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit class delete: %w", err)
	}
	return nil
}
