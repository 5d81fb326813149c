package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type parentViewStudentRepository interface {
	GetByShareToken(ctx context.Context, token string) (*models.Student, error)
}

type parentViewClassRepository interface {
	GetByID(ctx context.Context, id string) (*models.Class, error)
}

type parentViewAssessmentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Assessment, error)
}

type parentViewGradeRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error)
}

type parentViewAssignmentRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Assignment, error)
}

type parentViewSubmissionRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Submission, error)
}

// ParentViewService resolves public share tokens into read-only projections.
// Projections are cached briefly per token; a revoked token stops resolving
// at the store even if a cached copy has not yet expired, because the cache
// key is the token itself and resolution always re-checks the token first.
type ParentViewService struct {
	students    parentViewStudentRepository
	classes     parentViewClassRepository
	assessments parentViewAssessmentRepository
	grades      parentViewGradeRepository
	assignments parentViewAssignmentRepository
	submissions parentViewSubmissionRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewParentViewService constructs a ParentViewService instance. The cache
// client may be nil, in which case every resolve hits the store.
func NewParentViewService(
	students parentViewStudentRepository,
	classes parentViewClassRepository,
	assessments parentViewAssessmentRepository,
	grades parentViewGradeRepository,
	assignments parentViewAssignmentRepository,
	submissions parentViewSubmissionRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ParentViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParentViewService{
		students:    students,
		classes:     classes,
		assessments: assessments,
		grades:      grades,
		assignments: assignments,
		submissions: submissions,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// GetByToken resolves a share token to a projection. Unknown and revoked
// tokens are indistinguishable: both return NotFound.
func (s *ParentViewService) GetByToken(ctx context.Context, token string) (*models.ParentViewProjection, error) {
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "share link not found")
	}

	student, err := s.students.GetByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "share link not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve share link")
	}

	if cached := s.fromCache(ctx, token); cached != nil {
		return cached, nil
	}

	class, err := s.classes.GetByID(ctx, student.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	assessments, err := s.assessments.ListByClass(ctx, class.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessments")
	}
	grades, err := s.grades.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}
	assignments, err := s.assignments.ListByClass(ctx, class.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	submissions, err := s.submissions.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submissions")
	}

	projection := buildProjection(student, class, assessments, grades, assignments, submissions)
	s.toCache(ctx, token, &projection)
	return &projection, nil
}

func (s *ParentViewService) cacheKey(token string) string {
	return fmt.Sprintf("parentview:%s", token)
}

func (s *ParentViewService) fromCache(ctx context.Context, token string) *models.ParentViewProjection {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, s.cacheKey(token)).Bytes()
	if err != nil {
		return nil
	}
	var projection models.ParentViewProjection
	if err := json.Unmarshal(payload, &projection); err != nil {
		return nil
	}
	return &projection
}

func (s *ParentViewService) toCache(ctx context.Context, token string, projection *models.ParentViewProjection) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(projection)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(token), payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache parent view", zap.Error(err))
	}
}
