package utils

import (
	"context"
)

type contextKey string

const (
	MemberIDKey contextKey = "member_id"
	RoleKey     contextKey = "role"
	TokenKey    contextKey = "token"
)

// GetMemberIDFromContext returns the member ID set by the auth middleware
func GetMemberIDFromContext(ctx context.Context) (string, bool) {
	memberIDVal := ctx.Value(MemberIDKey)
	if memberIDVal == nil {
		return "", false
	}

	memberID, ok := memberIDVal.(string)
	if !ok || memberID == "" {
		return "", false
	}

	return memberID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetMemberContext(ctx context.Context, memberID, role string) context.Context {
	ctx = context.WithValue(ctx, MemberIDKey, memberID)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

// GetTokenFromContext returns the session token from the context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

// SetTokenContext stores the session token in the context
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
