package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type adminUserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateRole(ctx context.Context, id string, role models.UserRole, eduRole models.EduRole) error
	UpdateAccountStatus(ctx context.Context, id string, status models.AccountStatus) error
}

// UpdateUserRoleRequest changes both role fields of an account.
type UpdateUserRoleRequest struct {
	Role    models.UserRole `json:"role" validate:"required,oneof=user admin"`
	EduRole models.EduRole  `json:"edu_role" validate:"required,oneof=teacher admin"`
}

// UpdateAccountStatusRequest moves an account through the approval workflow.
type UpdateAccountStatusRequest struct {
	Status models.AccountStatus `json:"status" validate:"required,oneof=pending approved rejected"`
}

// AdminService provides account administration. Handlers gate these routes
// behind the admin middleware; the service still refuses non-admin actors.
type AdminService struct {
	repo      adminUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdminService constructs an AdminService instance.
func NewAdminService(repo adminUserRepository, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AdminService{repo: repo, validator: validate, logger: logger}
}

// ListUsers returns every account.
func (s *AdminService) ListUsers(ctx context.Context, actor *models.JWTClaims) ([]models.UserInfo, error) {
	if !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "admin access required")
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	infos := make([]models.UserInfo, len(users))
	for i := range users {
		infos[i] = userInfo(&users[i])
	}
	return infos, nil
}

// UpdateUserRole changes the role fields of an account.
func (s *AdminService) UpdateUserRole(ctx context.Context, actor *models.JWTClaims, userID string, req UpdateUserRoleRequest) error {
	if !actor.IsAdmin() {
		return appErrors.Clone(appErrors.ErrForbidden, "admin access required")
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}
	if err := s.repo.UpdateRole(ctx, userID, req.Role, req.EduRole); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update role")
	}
	s.logger.Info("user role updated", zap.String("user_id", userID), zap.String("role", string(req.Role)), zap.String("edu_role", string(req.EduRole)))
	return nil
}

// UpdateAccountStatus approves or rejects an account.
func (s *AdminService) UpdateAccountStatus(ctx context.Context, actor *models.JWTClaims, userID string, req UpdateAccountStatusRequest) error {
	if !actor.IsAdmin() {
		return appErrors.Clone(appErrors.ErrForbidden, "admin access required")
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if err := s.repo.UpdateAccountStatus(ctx, userID, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update status")
	}
	s.logger.Info("account status updated", zap.String("user_id", userID), zap.String("status", string(req.Status)))
	return nil
}
