package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

// SubmissionRepository handles homework submission persistence.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates a new submission repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// ListByClass returns every submission row for a class's assignments.
func (r *SubmissionRepository) ListByClass(ctx context.Context, classID string) ([]models.Submission, error) {
	var submissions []models.Submission
	const query = `SELECT s.id, s.student_id, s.assignment_id, s.status, s.created_at, s.updated_at
        FROM submissions s
        JOIN assignments a ON a.id = s.assignment_id
        WHERE a.class_id = $1`
	if err := r.db.SelectContext(ctx, &submissions, query, classID); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

// ListByStudent returns one student's submission rows.
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Submission, error) {
	var submissions []models.Submission
	const query = `SELECT id, student_id, assignment_id, status, created_at, updated_at
        FROM submissions WHERE student_id = $1`
	if err := r.db.SelectContext(ctx, &submissions, query, studentID); err != nil {
		return nil, fmt.Errorf("list student submissions: %w", err)
	}
	return submissions, nil
}

// Upsert inserts or replaces the status of one (student, assignment) pair.
// Re-applying the same status is a no-op in effect; last write wins.
func (r *SubmissionRepository) Upsert(ctx context.Context, submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = now
	}
	submission.UpdatedAt = now
	const query = `INSERT INTO submissions (id, student_id, assignment_id, status, created_at, updated_at)
        VALUES (:id, :student_id, :assignment_id, :status, :created_at, :updated_at)
        ON CONFLICT (student_id, assignment_id)
        DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, submission); err != nil {
		return fmt.Errorf("upsert submission: %w", err)
	}
	return nil
}
