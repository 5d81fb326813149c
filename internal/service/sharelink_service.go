package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"go.uber.org/zap"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

const shareTokenBytes = 18

type shareLinkStudentRepository interface {
	SetShareToken(ctx context.Context, id string, token *string) error
}

// ShareLinkService manages parent share tokens. At most one live token per
// student: generating a new one silently invalidates the previous link.
type ShareLinkService struct {
	repo   shareLinkStudentRepository
	guard  *AccessGuard
	logger *zap.Logger
}

// NewShareLinkService constructs a ShareLinkService instance.
func NewShareLinkService(repo shareLinkStudentRepository, guard *AccessGuard, logger *zap.Logger) *ShareLinkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShareLinkService{repo: repo, guard: guard, logger: logger}
}

// Generate mints a fresh URL-safe token for a student and stores it,
// overwriting any prior token.
func (s *ShareLinkService) Generate(ctx context.Context, actor *models.JWTClaims, studentID string) (string, error) {
	if _, _, err := s.guard.Student(ctx, actor, studentID); err != nil {
		return "", err
	}

	raw := make([]byte, shareTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate token")
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	if err := s.repo.SetShareToken(ctx, studentID, &token); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store token")
	}
	s.logger.Info("share link generated", zap.String("student_id", studentID))
	return token, nil
}

// Revoke clears the student's token. A revoked link resolves exactly like
// one that never existed.
func (s *ShareLinkService) Revoke(ctx context.Context, actor *models.JWTClaims, studentID string) error {
	if _, _, err := s.guard.Student(ctx, actor, studentID); err != nil {
		return err
	}
	if err := s.repo.SetShareToken(ctx, studentID, nil); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke token")
	}
	s.logger.Info("share link revoked", zap.String("student_id", studentID))
	return nil
}
