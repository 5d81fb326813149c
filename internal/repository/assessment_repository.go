package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

// AssessmentRepository handles assessment persistence.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates a new assessment repository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

const assessmentColumns = `id, class_id, name, type, date_taken, max_score, description, file_path, file_url, file_name, created_at, updated_at`

// ListByClass returns a class's assessments, most recent first.
func (r *AssessmentRepository) ListByClass(ctx context.Context, classID string) ([]models.Assessment, error) {
	var assessments []models.Assessment
	query := fmt.Sprintf(`SELECT %s FROM assessments WHERE class_id = $1 ORDER BY date_taken DESC NULLS LAST, created_at DESC`, assessmentColumns)
	if err := r.db.SelectContext(ctx, &assessments, query, classID); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}

// GetByID fetches one assessment.
func (r *AssessmentRepository) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	var assessment models.Assessment
	query := fmt.Sprintf(`SELECT %s FROM assessments WHERE id = $1`, assessmentColumns)
	if err := r.db.GetContext(ctx, &assessment, query, id); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Create inserts a new assessment.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now
	const query = `INSERT INTO assessments (id, class_id, name, type, date_taken, max_score, description, file_path, file_url, file_name, created_at, updated_at)
        VALUES (:id, :class_id, :name, :type, :date_taken, :max_score, :description, :file_path, :file_url, :file_name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assessment); err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

// Update rewrites the mutable assessment fields; file columns are managed
// separately through SetFile and ClearFile.
func (r *AssessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	assessment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE assessments SET name = :name, type = :type, date_taken = :date_taken,
        max_score = :max_score, description = :description, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, assessment); err != nil {
		return fmt.Errorf("update assessment: %w", err)
	}
	return nil
}

// SetFile records an uploaded test-paper file on the assessment.
func (r *AssessmentRepository) SetFile(ctx context.Context, id, filePath, fileURL, fileName string) error {
	const query = `UPDATE assessments SET file_path = $1, file_url = $2, file_name = $3, updated_at = $4 WHERE id = $5`
	if _, err := r.db.ExecContext(ctx, query, filePath, fileURL, fileName, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("set assessment file: %w", err)
	}
	return nil
}

// ClearFile detaches the test-paper file from the assessment.
func (r *AssessmentRepository) ClearFile(ctx context.Context, id string) error {
	const query = `UPDATE assessments SET file_path = NULL, file_url = NULL, file_name = NULL, updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("clear assessment file: %w", err)
	}
	return nil
}

// Delete removes an assessment and its grades.
func (r *AssessmentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	cascade := []string{
		`DELETE FROM grades WHERE assessment_id = $1`,
		`DELETE FROM assessments WHERE id = $1`,
	}
	for _, query := range cascade {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("delete assessment: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assessment delete: %w", err)
	}
	return nil
}
