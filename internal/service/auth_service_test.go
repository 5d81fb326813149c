package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
	appErrors "github.com/RoaringMaas/edutrack-lms/pkg/errors"
)

type mockUserRepo struct {
	users map[string]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*models.User{}}
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "u" + user.Name
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email != nil && *user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if user, ok := m.users[id]; ok {
		user.PasswordHash = &passwordHash
		return nil
	}
	return sql.ErrNoRows
}

func (m *mockUserRepo) TouchLastSignedIn(ctx context.Context, id string) error { return nil }

func newTestAuthService(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "edutrack-test",
	})
}

func seedUser(repo *mockUserRepo, id, email, password string, status models.AccountStatus) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	hashStr := string(hash)
	repo.users[id] = &models.User{
		ID:            id,
		Name:          "Teacher " + id,
		Email:         &email,
		PasswordHash:  &hashStr,
		Role:          models.RoleUser,
		EduRole:       models.EduRoleTeacher,
		AccountStatus: status,
	}
}

func TestRegisterCreatesPendingAccount(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	info, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "New Teacher",
		Email:    "new@school.edu",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AccountPending, info.AccountStatus)
	assert.Equal(t, models.EduRoleTeacher, info.EduRole)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "u1", "taken@school.edu", "password1", models.AccountApproved)
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Other Teacher",
		Email:    "taken@school.edu",
		Password: "supersecret1",
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestLoginApprovedAccount(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "u1", "ok@school.edu", "password1", models.AccountApproved)
	svc := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "ok@school.edu", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "u1", "ok@school.edu", "password1", models.AccountApproved)
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ok@school.edu", Password: "wrong"})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestLoginPendingAndRejectedDenied(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "u1", "pending@school.edu", "password1", models.AccountPending)
	seedUser(repo, "u2", "rejected@school.edu", "password1", models.AccountRejected)
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "pending@school.edu", Password: "password1"})
	assert.True(t, appErrors.Is(err, appErrors.ErrAccountPending))

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "rejected@school.edu", Password: "password1"})
	assert.True(t, appErrors.Is(err, appErrors.ErrAccountRejected))
}

func TestChangePassword(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "u1", "ok@school.edu", "password1", models.AccountApproved)
	svc := newTestAuthService(repo)

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword1",
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))

	err = svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{
		CurrentPassword: "password1",
		NewPassword:     "newpassword1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "ok@school.edu", Password: "newpassword1"})
	assert.NoError(t, err)
}
