package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type submissionRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Submission, error)
	Upsert(ctx context.Context, submission *models.Submission) error
}

// UpsertSubmissionRequest marks one (student, assignment) pair.
type UpsertSubmissionRequest struct {
	StudentID    string                  `json:"student_id" validate:"required"`
	AssignmentID string                  `json:"assignment_id" validate:"required"`
	Status       models.SubmissionStatus `json:"status" validate:"required"`
}

// SubmissionService provides homework status tracking.
type SubmissionService struct {
	repo      submissionRepository
	guard     *AccessGuard
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(repo submissionRepository, guard *AccessGuard, validate *validator.Validate, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SubmissionService{repo: repo, guard: guard, validator: validate, logger: logger}
}

// ListByClass returns every submission row for a class.
func (s *SubmissionService) ListByClass(ctx context.Context, actor *models.JWTClaims, classID string) ([]models.Submission, error) {
	if _, err := s.guard.Class(ctx, actor, classID); err != nil {
		return nil, err
	}
	submissions, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}
	return submissions, nil
}

// Upsert sets the status of one pair, last write wins. Both the student and
// the assignment must belong to the same class the actor owns.
func (s *SubmissionService) Upsert(ctx context.Context, actor *models.JWTClaims, req UpsertSubmissionRequest) (*models.Submission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}
	if !models.ValidSubmissionStatus(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown submission status")
	}

	student, studentClass, err := s.guard.Student(ctx, actor, req.StudentID)
	if err != nil {
		return nil, err
	}
	assignment, _, err := s.guard.Assignment(ctx, actor, req.AssignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.ClassID != studentClass.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student and assignment belong to different classes")
	}

	submission := &models.Submission{
		StudentID:    student.ID,
		AssignmentID: assignment.ID,
		Status:       req.Status,
	}
	if err := s.repo.Upsert(ctx, submission); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save submission")
	}
	return submission, nil
}
