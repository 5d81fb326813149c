package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

// GradeRepository handles grade persistence.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// ListByClass returns every grade row for a class's assessments.
func (r *GradeRepository) ListByClass(ctx context.Context, classID string) ([]models.Grade, error) {
	var grades []models.Grade
	const query = `SELECT g.id, g.student_id, g.assessment_id, g.score, g.created_at, g.updated_at
        FROM grades g
        JOIN assessments a ON a.id = g.assessment_id
        WHERE a.class_id = $1`
	if err := r.db.SelectContext(ctx, &grades, query, classID); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// ListByStudent returns one student's grade rows.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error) {
	var grades []models.Grade
	const query = `SELECT id, student_id, assessment_id, score, created_at, updated_at
        FROM grades WHERE student_id = $1`
	if err := r.db.SelectContext(ctx, &grades, query, studentID); err != nil {
		return nil, fmt.Errorf("list student grades: %w", err)
	}
	return grades, nil
}

const gradeUpsertQuery = `INSERT INTO grades (id, student_id, assessment_id, score, created_at, updated_at)
        VALUES (:id, :student_id, :assessment_id, :score, :created_at, :updated_at)
        ON CONFLICT (student_id, assessment_id)
        DO UPDATE SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at`

// Upsert inserts or replaces one (student, assessment) grade. Last write wins.
func (r *GradeRepository) Upsert(ctx context.Context, grade *models.Grade) error {
	if grade.ID == "" {
		grade.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if grade.CreatedAt.IsZero() {
		grade.CreatedAt = now
	}
	grade.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, gradeUpsertQuery, grade); err != nil {
		return fmt.Errorf("upsert grade: %w", err)
	}
	return nil
}

// BulkUpsert writes a batch of grades row by row. Bulk imports are not
// atomic: a failure partway leaves the earlier rows written, and the caller
// reports per-row disposition instead of rolling back.
func (r *GradeRepository) BulkUpsert(ctx context.Context, grades []models.Grade) error {
	for i := range grades {
		if err := r.Upsert(ctx, &grades[i]); err != nil {
			return fmt.Errorf("bulk upsert grade %d: %w", i, err)
		}
	}
	return nil
}
