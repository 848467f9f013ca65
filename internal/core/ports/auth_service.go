package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// RegisterInput carries the data needed to create an account. Role is not
// accepted here: every registration is stored with the "user" role and
// elevation happens out of band.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// AuthResult pairs a sanitized user with a freshly issued bearer token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService issues and verifies identities.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// VerifyToken validates signature and expiry, then resolves the claims
	// back to a live user record. Any failure yields domain.ErrInvalidToken.
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}
