package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

// NoteRepository handles the per-class teacher note.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// GetByClass fetches the note for a class, if any.
func (r *NoteRepository) GetByClass(ctx context.Context, classID string) (*models.TeacherNote, error) {
	var note models.TeacherNote
	const query = `SELECT id, class_id, notes, updated_at FROM teacher_notes WHERE class_id = $1`
	if err := r.db.GetContext(ctx, &note, query, classID); err != nil {
		return nil, err
	}
	return &note, nil
}

// Upsert writes the note, keeping at most one row per class.
func (r *NoteRepository) Upsert(ctx context.Context, note *models.TeacherNote) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	note.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO teacher_notes (id, class_id, notes, updated_at)
        VALUES (:id, :class_id, :notes, :updated_at)
        ON CONFLICT (class_id)
        DO UPDATE SET notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("upsert teacher note: %w", err)
	}
	return nil
}
