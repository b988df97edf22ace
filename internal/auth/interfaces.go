package auth

import (
	"context"

	"github.com/hugh/orgroster/internal/database/models"
)

// Authenticator defines the identity operations exposed over HTTP.
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	GetUser(ctx context.Context, orgID, userID uint) (*models.User, error)
}

// TokenService issues and verifies bearer credentials.
type TokenService interface {
	GenerateToken(userID, orgID uint) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator = (*Service)(nil)
	_ TokenService  = (*JWTService)(nil)
)
