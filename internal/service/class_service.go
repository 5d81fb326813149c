package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type classRepository interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Class, error)
	ListAll(ctx context.Context) ([]models.Class, error)
	GetByID(ctx context.Context, id string) (*models.Class, error)
	CountByTeacher(ctx context.Context, teacherID string) (int, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
}

// CreateClassRequest carries the fields for a new class.
type CreateClassRequest struct {
	SubjectName    string `json:"subject_name" validate:"required,min=1"`
	GradeLevel     string `json:"grade_level" validate:"required,min=1"`
	Section        string `json:"section" validate:"required,min=1"`
	AcademicYear   string `json:"academic_year" validate:"required,min=4"`
	Term           string `json:"term" validate:"required,min=1"`
	AlertThreshold *int   `json:"alert_threshold" validate:"omitempty,min=0,max=100"`
}

// UpdateClassRequest carries the mutable class fields.
type UpdateClassRequest struct {
	SubjectName    *string `json:"subject_name" validate:"omitempty,min=1"`
	GradeLevel     *string `json:"grade_level" validate:"omitempty,min=1"`
	Section        *string `json:"section" validate:"omitempty,min=1"`
	AcademicYear   *string `json:"academic_year" validate:"omitempty,min=4"`
	Term           *string `json:"term" validate:"omitempty,min=1"`
	AlertThreshold *int    `json:"alert_threshold" validate:"omitempty,min=0,max=100"`
}

// ClassService provides class management use cases.
type ClassService struct {
	repo      classRepository
	guard     *AccessGuard
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService instance.
func NewClassService(repo classRepository, guard *AccessGuard, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ClassService{repo: repo, guard: guard, validator: validate, logger: logger}
}

// List returns the actor's classes; admins see every class.
func (s *ClassService) List(ctx context.Context, actor *models.JWTClaims) ([]models.Class, error) {
	var (
		classes []models.Class
		err     error
	)
	if actor.IsAdmin() {
		classes, err = s.repo.ListAll(ctx)
	} else {
		classes, err = s.repo.ListByTeacher(ctx, actor.UserID)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	if classes == nil {
		classes = []models.Class{}
	}
	return classes, nil
}

// Get returns one class after the ownership check.
func (s *ClassService) Get(ctx context.Context, actor *models.JWTClaims, classID string) (*models.Class, error) {
	return s.guard.Class(ctx, actor, classID)
}

// Create adds a class for the actor. Teachers are capped at three classes;
// admins are exempt.
func (s *ClassService) Create(ctx context.Context, actor *models.JWTClaims, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	if !actor.IsAdmin() {
		count, err := s.repo.CountByTeacher(ctx, actor.UserID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count classes")
		}
		if count >= models.MaxClassesPerTeacher {
			return nil, appErrors.Clone(appErrors.ErrCapacity, "class limit reached; delete an existing class first")
		}
	}

	threshold := models.DefaultAlertThreshold
	if req.AlertThreshold != nil {
		threshold = *req.AlertThreshold
	}
	class := &models.Class{
		TeacherID:      actor.UserID,
		SubjectName:    req.SubjectName,
		GradeLevel:     req.GradeLevel,
		Section:        req.Section,
		AcademicYear:   req.AcademicYear,
		Term:           req.Term,
		AlertThreshold: threshold,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	s.logger.Info("class created", zap.String("class_id", class.ID), zap.String("teacher_id", class.TeacherID))
	return class, nil
}

// Update applies the provided fields to a class.
func (s *ClassService) Update(ctx context.Context, actor *models.JWTClaims, classID string, req UpdateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	class, err := s.guard.Class(ctx, actor, classID)
	if err != nil {
		return nil, err
	}
	if req.SubjectName != nil {
		class.SubjectName = *req.SubjectName
	}
	if req.GradeLevel != nil {
		class.GradeLevel = *req.GradeLevel
	}
	if req.Section != nil {
		class.Section = *req.Section
	}
	if req.AcademicYear != nil {
		class.AcademicYear = *req.AcademicYear
	}
	if req.Term != nil {
		class.Term = *req.Term
	}
	if req.AlertThreshold != nil {
		class.AlertThreshold = *req.AlertThreshold
	}
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class")
	}
	return class, nil
}

// Delete removes a class and all dependent rows.
func (s *ClassService) Delete(ctx context.Context, actor *models.JWTClaims, classID string) error {
	if _, err := s.guard.Class(ctx, actor, classID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, classID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}
	s.logger.Info("class deleted", zap.String("class_id", classID))
	return nil
}
