package usecase

import (
	"context"
	"fmt"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/dto/request"
	"rising-bms/internal/dto/response"
	"rising-bms/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, callerRole string) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, req *request.RefreshRequest) (*response.AuthResponse, error)
	Me(ctx context.Context, userID string) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req *request.ChangePasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log,
	}
}

// Register creates a new staff account. While the users table is empty
// the call is open and the new account becomes the bootstrap admin; after
// that only admins may register further accounts.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, callerRole string) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	role := entity.UserRole(req.Role)

	count, err := s.repo.User.CountAll(ctx, false)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("failed to create account")
	}
	if count == 0 {
		// Bootstrap: the very first account is always an admin
		role = entity.RoleAdmin
		s.log.Info("Bootstrapping first admin account", zap.String("email", req.Email))
	} else if callerRole != string(entity.RoleAdmin) {
		return nil, fmt.Errorf("admin privileges required")
	}

	// 2. Check email already registered
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existingUser != nil {
		return nil, fmt.Errorf("email already registered")
	}

	// 3. Check username already taken
	existingUser, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to check username")
	}
	if existingUser != nil {
		return nil, fmt.Errorf("username already taken")
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 5. Create user entity
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account")
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user by username, fall back to email
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("login failed")
	}
	if user == nil {
		user, err = s.repo.User.FindByEmail(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("login failed")
		}
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid credentials")
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	// 3. Issue credentials
	if req.UseJWT {
		return s.issueTokenPair(ctx, user)
	}

	session, err := s.createSession(ctx, user, userAgent, ip)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("login failed")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("auth", "session"))

	resp := response.SessionToAuthResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("logout failed")
	}

	return nil
}

// Refresh rotates a refresh token into a fresh JWT pair.
func (s *authService) Refresh(ctx context.Context, req *request.RefreshRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	stored, err := s.repo.RefreshToken.FindValid(ctx, req.RefreshToken)
	if err != nil {
		s.log.Error("Failed to look up refresh token", zap.Error(err))
		return nil, fmt.Errorf("refresh failed")
	}
	if stored == nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	user, err := s.repo.User.FindByID(ctx, stored.UserID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("invalid refresh token")
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	// Rotation: the old token is spent once used
	if err := s.repo.RefreshToken.Revoke(ctx, req.RefreshToken); err != nil {
		s.log.Error("Failed to revoke used refresh token", zap.Error(err))
		return nil, fmt.Errorf("refresh failed")
	}

	return s.issueTokenPair(ctx, user)
}

func (s *authService) Me(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to load profile")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *request.ChangePasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := utils.ParseUUID(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID")
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil || user == nil {
		return fmt.Errorf("user not found")
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return fmt.Errorf("current password is incorrect")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to process password")
	}

	user.PasswordHash = hashed
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("failed to change password")
	}

	// All other sessions and refresh tokens are invalidated
	if err := s.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
		s.log.Warn("Failed to revoke sessions after password change", zap.Error(err))
	}
	if err := s.repo.RefreshToken.RevokeAllForUser(ctx, id); err != nil {
		s.log.Warn("Failed to revoke refresh tokens after password change", zap.Error(err))
	}

	s.log.Info("Password changed", zap.String("user_id", userID))
	return nil
}

func (s *authService) createSession(ctx context.Context, user *entity.User, userAgent, ip string) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ip != "" {
		session.IPAddress = &ip
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *authService) issueTokenPair(ctx context.Context, user *entity.User) (*response.AuthResponse, error) {
	accessTTL := time.Duration(s.config.JWT.AccessExpiryMin) * time.Minute
	accessToken, err := utils.GenerateAccessToken(s.config.JWT.Secret, user.ID, string(user.Role), accessTTL)
	if err != nil {
		s.log.Error("Failed to sign access token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("login failed")
	}

	now := time.Now()
	refreshToken := &entity.RefreshToken{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(time.Duration(s.config.JWT.RefreshExpiryHours) * time.Hour),
	}
	if err := s.repo.RefreshToken.Create(ctx, refreshToken); err != nil {
		s.log.Error("Failed to store refresh token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("login failed")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("auth", "jwt"))

	resp := response.JWTToAuthResponse(user, accessToken, refreshToken.Token.String(), now.Add(accessTTL))
	return &resp, nil
}
