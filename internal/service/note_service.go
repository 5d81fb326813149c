package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type noteRepository interface {
	GetByClass(ctx context.Context, classID string) (*models.TeacherNote, error)
	Upsert(ctx context.Context, note *models.TeacherNote) error
}

// NoteService manages the single free-text note attached to a class.
type NoteService struct {
	repo   noteRepository
	guard  *AccessGuard
	logger *zap.Logger
}

// NewNoteService constructs a NoteService instance.
func NewNoteService(repo noteRepository, guard *AccessGuard, logger *zap.Logger) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{repo: repo, guard: guard, logger: logger}
}

// Get returns the class note, or an empty note when none was saved yet.
func (s *NoteService) Get(ctx context.Context, actor *models.JWTClaims, classID string) (*models.TeacherNote, error) {
	if _, err := s.guard.Class(ctx, actor, classID); err != nil {
		return nil, err
	}
	note, err := s.repo.GetByClass(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.TeacherNote{ClassID: classID}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch note")
	}
	return note, nil
}

// Upsert writes the class note, keeping at most one per class.
func (s *NoteService) Upsert(ctx context.Context, actor *models.JWTClaims, classID, notes string) (*models.TeacherNote, error) {
	if _, err := s.guard.Class(ctx, actor, classID); err != nil {
		return nil, err
	}
	note := &models.TeacherNote{ClassID: classID, Notes: notes}
	if err := s.repo.Upsert(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save note")
	}
	return note, nil
}
