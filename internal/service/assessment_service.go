package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type assessmentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Assessment, error)
	GetByID(ctx context.Context, id string) (*models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) error
	Update(ctx context.Context, assessment *models.Assessment) error
	SetFile(ctx context.Context, id, filePath, fileURL, fileName string) error
	ClearFile(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type fileStore interface {
	Put(key string, data []byte, mimeType string) (string, error)
	Delete(key string) error
}

// CreateAssessmentRequest carries the fields for a new assessment.
type CreateAssessmentRequest struct {
	Name        string                `json:"name" validate:"required,min=1"`
	Type        models.AssessmentType `json:"type" validate:"required"`
	DateTaken   *time.Time            `json:"date_taken"`
	MaxScore    *float64              `json:"max_score" validate:"omitempty,gt=0"`
	Description *string               `json:"description"`
}

// UpdateAssessmentRequest carries the mutable assessment fields.
type UpdateAssessmentRequest struct {
	Name        *string                `json:"name" validate:"omitempty,min=1"`
	Type        *models.AssessmentType `json:"type"`
	DateTaken   *time.Time             `json:"date_taken"`
	MaxScore    *float64               `json:"max_score" validate:"omitempty,gt=0"`
	Description *string                `json:"description"`
}

// UploadLimits bounds test-paper uploads.
type UploadLimits struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// AssessmentService provides assessment management use cases, including the
// optional test-paper file attached to an assessment.
type AssessmentService struct {
	repo      assessmentRepository
	store     fileStore
	limits    UploadLimits
	guard     *AccessGuard
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssessmentService constructs an AssessmentService instance.
func NewAssessmentService(repo assessmentRepository, store fileStore, limits UploadLimits, guard *AccessGuard, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AssessmentService{repo: repo, store: store, limits: limits, guard: guard, validator: validate, logger: logger}
}

// List returns a class's assessments.
func (s *AssessmentService) List(ctx context.Context, actor *models.JWTClaims, classID string) ([]models.Assessment, error) {
	if _, err := s.guard.Class(ctx, actor, classID); err != nil {
		return nil, err
	}
	assessments, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assessments")
	}
	if assessments == nil {
		assessments = []models.Assessment{}
	}
	return assessments, nil
}

// Get returns one assessment after the ownership check.
func (s *AssessmentService) Get(ctx context.Context, actor *models.JWTClaims, assessmentID string) (*models.Assessment, error) {
	assessment, _, err := s.guard.Assessment(ctx, actor, assessmentID)
	return assessment, err
}

// Create adds an assessment to a class.
func (s *AssessmentService) Create(ctx context.Context, actor *models.JWTClaims, classID string, req CreateAssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}
	if !models.ValidAssessmentType(req.Type) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown assessment type")
	}
	if _, err := s.guard.Class(ctx, actor, classID); err != nil {
		return nil, err
	}

	maxScore := float64(models.DefaultMaxScore)
	if req.MaxScore != nil {
		maxScore = *req.MaxScore
	}
	assessment := &models.Assessment{
		ClassID:     classID,
		Name:        req.Name,
		Type:        req.Type,
		DateTaken:   req.DateTaken,
		MaxScore:    maxScore,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assessment")
	}
	return assessment, nil
}

// Update applies the provided fields to an assessment.
func (s *AssessmentService) Update(ctx context.Context, actor *models.JWTClaims, assessmentID string, req UpdateAssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}
	assessment, _, err := s.guard.Assessment(ctx, actor, assessmentID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !models.ValidAssessmentType(*req.Type) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown assessment type")
		}
		assessment.Type = *req.Type
	}
	if req.Name != nil {
		assessment.Name = *req.Name
	}
	if req.DateTaken != nil {
		assessment.DateTaken = req.DateTaken
	}
	if req.MaxScore != nil {
		assessment.MaxScore = *req.MaxScore
	}
	if req.Description != nil {
		assessment.Description = req.Description
	}
	if err := s.repo.Update(ctx, assessment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assessment")
	}
	return assessment, nil
}

// UploadFile attaches a test-paper file to an assessment, replacing any
// previous one. Only the configured MIME types are accepted, up to the
// configured size.
func (s *AssessmentService) UploadFile(ctx context.Context, actor *models.JWTClaims, assessmentID, fileName, mimeType string, data []byte) (*models.Assessment, error) {
	assessment, _, err := s.guard.Assessment(ctx, actor, assessmentID)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.limits.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d MB limit", s.limits.MaxFileSizeBytes/(1<<20)))
	}
	if !s.mimeAllowed(mimeType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only PDF files are accepted")
	}

	if assessment.FilePath != nil {
		if err := s.store.Delete(*assessment.FilePath); err != nil {
			s.logger.Warn("failed to remove previous test paper", zap.Error(err))
		}
	}

	safeName := filepath.Base(strings.TrimSpace(fileName))
	key := fmt.Sprintf("test-papers/%s/%s-%s", assessmentID, uuid.NewString()[:8], safeName)
	url, err := s.store.Put(key, data, mimeType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
	}
	if err := s.repo.SetFile(ctx, assessmentID, key, url, safeName); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record file")
	}

	assessment.FilePath = &key
	assessment.FileURL = &url
	assessment.FileName = &safeName
	return assessment, nil
}

// RemoveFile detaches and deletes the test-paper file.
func (s *AssessmentService) RemoveFile(ctx context.Context, actor *models.JWTClaims, assessmentID string) error {
	assessment, _, err := s.guard.Assessment(ctx, actor, assessmentID)
	if err != nil {
		return err
	}
	if assessment.FilePath == nil {
		return nil
	}
	if err := s.store.Delete(*assessment.FilePath); err != nil {
		s.logger.Warn("failed to delete stored file", zap.Error(err))
	}
	if err := s.repo.ClearFile(ctx, assessmentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to detach file")
	}
	return nil
}

// Delete removes an assessment, its grades and its stored file.
func (s *AssessmentService) Delete(ctx context.Context, actor *models.JWTClaims, assessmentID string) error {
	assessment, _, err := s.guard.Assessment(ctx, actor, assessmentID)
	if err != nil {
		return err
	}
	if assessment.FilePath != nil {
		if err := s.store.Delete(*assessment.FilePath); err != nil {
			s.logger.Warn("failed to delete stored file", zap.Error(err))
		}
	}
	if err := s.repo.Delete(ctx, assessmentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assessment")
	}
	return nil
}

func (s *AssessmentService) mimeAllowed(mimeType string) bool {
	for _, m := range s.limits.AllowedMIMEs {
		if strings.EqualFold(m, mimeType) {
			return true
		}
	}
	return false
}
