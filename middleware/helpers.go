package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/services"
)

var ErrNoClaims = errors.New("user claims not found in context")

// WithClaims stores claims the way Authenticate does; handler tests use it directly.
func WithClaims(ctx context.Context, claims *services.Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

func GetClaimsFromContext(ctx context.Context) (*services.Claims, error) {
	claims, ok := ctx.Value(userContextKey).(*services.Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, err := GetClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject claim %q: %w", claims.Subject, err)
	}
	return id, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, err := GetClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}

	switch claims.Role {
	case models.RoleStudent, models.RoleAdmin:
		return claims.Role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", claims.Role)
	}
}
