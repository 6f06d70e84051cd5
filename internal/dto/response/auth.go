package response

import (
	"time"

	"rising-bms/internal/data/entity"
)

type AuthResponse struct {
	UserID    string          `json:"user_id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
	TokenType string          `json:"token_type"` // "session" or "jwt"
	Token     string          `json:"token"`
	// RefreshToken is only set for JWT logins.
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Phone     *string         `json:"phone,omitempty"`
	Role      entity.UserRole `json:"role"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

type UserSettingsResponse struct {
	Language             string `json:"language"`
	Timezone             string `json:"timezone"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	EmailDigest          bool   `json:"email_digest"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func SettingsToResponse(settings *entity.UserSettings) UserSettingsResponse {
	return UserSettingsResponse{
		Language:             settings.Language,
		Timezone:             settings.Timezone,
		NotificationsEnabled: settings.NotificationsEnabled,
		EmailDigest:          settings.EmailDigest,
	}
}

func SessionToAuthResponse(user *entity.User, session *entity.Session) AuthResponse {
	return AuthResponse{
		UserID:    user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: "session",
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}
}

func JWTToAuthResponse(user *entity.User, accessToken, refreshToken string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		UserID:       user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		TokenType:    "jwt",
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}
}
