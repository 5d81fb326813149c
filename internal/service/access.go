package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type guardClassRepository interface {
	GetByID(ctx context.Context, id string) (*models.Class, error)
}

type guardStudentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Student, error)
}

type guardAssignmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
}

type guardAssessmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Assessment, error)
}

// AccessGuard decides whether an actor may touch a class. Every scoped read
// and every mutation goes through it; entities that hang off a class resolve
// their owning class first and apply the same rule. A missing entity is
// NotFound, an existing one owned by someone else is Forbidden, in that
// order, so callers cannot probe for existence.
type AccessGuard struct {
	classes     guardClassRepository
	students    guardStudentRepository
	assignments guardAssignmentRepository
	assessments guardAssessmentRepository
}

// NewAccessGuard constructs an AccessGuard instance.
func NewAccessGuard(classes guardClassRepository, students guardStudentRepository, assignments guardAssignmentRepository, assessments guardAssessmentRepository) *AccessGuard {
	return &AccessGuard{classes: classes, students: students, assignments: assignments, assessments: assessments}
}

// Class authorizes an actor against a class and returns it.
func (g *AccessGuard) Class(ctx context.Context, actor *models.JWTClaims, classID string) (*models.Class, error) {
	class, err := g.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch class")
	}
	if !actor.IsAdmin() && class.TeacherID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you do not own this class")
	}
	return class, nil
}

// Student authorizes an actor against a student via the owning class.
func (g *AccessGuard) Student(ctx context.Context, actor *models.JWTClaims, studentID string) (*models.Student, *models.Class, error) {
	student, err := g.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}
	class, err := g.Class(ctx, actor, student.ClassID)
	if err != nil {
		return nil, nil, err
	}
	return student, class, nil
}

// Assignment authorizes an actor against an assignment via the owning class.
func (g *AccessGuard) Assignment(ctx context.Context, actor *models.JWTClaims, assignmentID string) (*models.Assignment, *models.Class, error) {
	assignment, err := g.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch assignment")
	}
	class, err := g.Class(ctx, actor, assignment.ClassID)
	if err != nil {
		return nil, nil, err
	}
	return assignment, class, nil
}

// Assessment authorizes an actor against an assessment via the owning class.
func (g *AccessGuard) Assessment(ctx context.Context, actor *models.JWTClaims, assessmentID string) (*models.Assessment, *models.Class, error) {
	assessment, err := g.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch assessment")
	}
	class, err := g.Class(ctx, actor, assessment.ClassID)
	if err != nil {
		return nil, nil, err
	}
	return assessment, class, nil
}
