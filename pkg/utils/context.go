package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	RoleKey     contextKey = "role"
	TokenKey    contextKey = "token"
	AuthKindKey contextKey = "auth_kind" // "session" or "jwt"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetUserContext(ctx context.Context, userID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetAuthKindFromContext(ctx context.Context) (string, bool) {
	kindVal := ctx.Value(AuthKindKey)
	if kindVal == nil {
		return "", false
	}

	kind, ok := kindVal.(string)
	return kind, ok
}

func SetAuthKindContext(ctx context.Context, kind string) context.Context {
	return context.WithValue(ctx, AuthKindKey, kind)
}
