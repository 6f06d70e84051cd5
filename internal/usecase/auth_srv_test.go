package usecase

import (
	"context"
	"testing"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/dto/request"
	"rising-bms/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthService_Register(t *testing.T) {
	f := newFakeRepos()
	seedUser(f, "admin", "admin@example.de", "geheim1234", entity.RoleAdmin)
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "mschmidt",
		Email:    "m.schmidt@example.de",
		Password: "geheim1234",
		Role:     "employee",
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "mschmidt", resp.Username)
	assert.Equal(t, entity.RoleEmployee, resp.Role)
	assert.True(t, resp.IsActive)
}

func TestAuthService_Register_Bootstrap(t *testing.T) {
	f := newFakeRepos()
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())

	// No accounts exist yet: the call is open and the role is forced
	// to admin regardless of the request
	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "mschmidt",
		Email:    "m.schmidt@example.de",
		Password: "geheim1234",
		Role:     "employee",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.Role)

	// The second registration needs an admin caller
	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Username: "second",
		Email:    "second@example.de",
		Password: "geheim1234",
		Role:     "employee",
	}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin privileges required")

	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Username: "second",
		Email:    "second@example.de",
		Password: "geheim1234",
		Role:     "employee",
	}, "employee")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin privileges required")
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newFakeRepos()
	seedUser(f, "mschmidt", "m.schmidt@example.de", "geheim1234", entity.RoleAdmin)
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "other",
		Email:    "m.schmidt@example.de",
		Password: "geheim1234",
		Role:     "employee",
	}, "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestAuthService_Login_Session(t *testing.T) {
	f := newFakeRepos()
	user := seedUser(f, "mschmidt", "m.schmidt@example.de", "geheim1234", entity.RoleEmployee)
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "mschmidt",
		Password: "geheim1234",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "session", resp.TokenType)
	assert.Equal(t, user.ID.String(), resp.UserID)
	assert.NotEmpty(t, resp.Token)

	// The issued session token must validate
	session, err := f.session.FindValidSession(context.Background(), resp.Token)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.UserID)
}

func TestAuthService_Login_JWT(t *testing.T) {
	f := newFakeRepos()
	user := seedUser(f, "mschmidt", "m.schmidt@example.de", "geheim1234", entity.RoleAdmin)
	config := testConfig()
	svc := NewAuthService(f.repo, config, zap.NewNop())

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "mschmidt",
		Password: "geheim1234",
		UseJWT:   true,
	}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.TokenType)
	assert.NotEmpty(t, resp.RefreshToken)

	userID, role, err := utils.VerifyAccessToken(config.JWT.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "admin", role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newFakeRepos()
	seedUser(f, "mschmidt", "m.schmidt@example.de", "geheim1234", entity.RoleEmployee)
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "mschmidt",
		Password: "falschfalsch",
	}, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestAuthService_Login_Deactivated(t *testing.T) {
	f := newFakeRepos()
	user := seedUser(f, "mschmidt", "m.schmidt@example.de", "geheim1234", entity.RoleEmployee)
	user.IsActive = false
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "mschmidt",
		Password: "geheim1234",
	}, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deactivated")
}

func TestAuthService_Refresh_Rotation(t *testing.T) {
	f := newFakeRepos()
	seedUser(f, "mschmidt", "m.schmidt@example.de", "geheim1234", entity.RoleEmployee)
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())

	login, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "mschmidt",
		Password: "geheim1234",
		UseJWT:   true,
	}, "", "")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), &request.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token is spent after rotation
	_, err = svc.Refresh(context.Background(), &request.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh token")
}

func TestAuthService_ChangePassword_RevokesSessions(t *testing.T) {
	f := newFakeRepos()
	user := seedUser(f, "mschmidt", "m.schmidt@example.de", "geheim1234", entity.RoleEmployee)
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())

	login, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "mschmidt",
		Password: "geheim1234",
	}, "", "")
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID.String(), &request.ChangePasswordRequest{
		CurrentPassword: "geheim1234",
		NewPassword:     "nochgeheimer1",
	})
	require.NoError(t, err)

	// Existing session is no longer valid
	session, err := f.session.FindValidSession(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Nil(t, session)

	// New password works, old one does not
	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "mschmidt",
		Password: "nochgeheimer1",
	}, "", "")
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "mschmidt",
		Password: "geheim1234",
	}, "", "")
	assert.Error(t, err)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	f := newFakeRepos()
	user := seedUser(f, "mschmidt", "m.schmidt@example.de", "geheim1234", entity.RoleEmployee)
	svc := NewAuthService(f.repo, testConfig(), zap.NewNop())

	err := svc.ChangePassword(context.Background(), user.ID.String(), &request.ChangePasswordRequest{
		CurrentPassword: "falschfalsch",
		NewPassword:     "nochgeheimer1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect")
}
