package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type assignmentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Assignment, error)
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id string) error
}

// CreateAssignmentRequest carries the fields for a new assignment.
type CreateAssignmentRequest struct {
	Name       string     `json:"name" validate:"required,min=1"`
	WeekLabel  string     `json:"week_label" validate:"required,min=1"`
	WeekNumber int        `json:"week_number" validate:"min=0"`
	DueDate    *time.Time `json:"due_date"`
	Points     *float64   `json:"points" validate:"omitempty,gt=0"`
}

// UpdateAssignmentRequest carries the mutable assignment fields.
type UpdateAssignmentRequest struct {
	Name       *string    `json:"name" validate:"omitempty,min=1"`
	WeekLabel  *string    `json:"week_label" validate:"omitempty,min=1"`
	WeekNumber *int       `json:"week_number" validate:"omitempty,min=0"`
	DueDate    *time.Time `json:"due_date"`
	Points     *float64   `json:"points" validate:"omitempty,gt=0"`
}

// AssignmentService provides homework assignment use cases.
type AssignmentService struct {
	repo      assignmentRepository
	guard     *AccessGuard
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(repo assignmentRepository, guard *AccessGuard, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AssignmentService{repo: repo, guard: guard, validator: validate, logger: logger}
}

// List returns a class's assignments.
func (s *AssignmentService) List(ctx context.Context, actor *models.JWTClaims, classID string) ([]models.Assignment, error) {
	if _, err := s.guard.Class(ctx, actor, classID); err != nil {
		return nil, err
	}
	assignments, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	return assignments, nil
}

// Create adds an assignment to a class.
func (s *AssignmentService) Create(ctx context.Context, actor *models.JWTClaims, classID string, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	if _, err := s.guard.Class(ctx, actor, classID); err != nil {
		return nil, err
	}

	points := float64(models.DefaultAssignmentPoints)
	if req.Points != nil {
		points = *req.Points
	}
	assignment := &models.Assignment{
		ClassID:    classID,
		Name:       req.Name,
		WeekLabel:  req.WeekLabel,
		WeekNumber: req.WeekNumber,
		DueDate:    req.DueDate,
		Points:     points,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return assignment, nil
}

// Update applies the provided fields to an assignment.
func (s *AssignmentService) Update(ctx context.Context, actor *models.JWTClaims, assignmentID string, req UpdateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	assignment, _, err := s.guard.Assignment(ctx, actor, assignmentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		assignment.Name = *req.Name
	}
	if req.WeekLabel != nil {
		assignment.WeekLabel = *req.WeekLabel
	}
	if req.WeekNumber != nil {
		assignment.WeekNumber = *req.WeekNumber
	}
	if req.DueDate != nil {
		assignment.DueDate = req.DueDate
	}
	if req.Points != nil {
		assignment.Points = *req.Points
	}
	if err := s.repo.Update(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	return assignment, nil
}

// Delete removes an assignment and its submissions.
func (s *AssignmentService) Delete(ctx context.Context, actor *models.JWTClaims, assignmentID string) error {
	if _, _, err := s.guard.Assignment(ctx, actor, assignmentID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, assignmentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}
