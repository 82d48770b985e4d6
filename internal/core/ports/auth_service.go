package ports

import (
	"context"

	"github.com/legalaid/practice-api/internal/core/domain"
)

// RegisterInput carries a self-service signup.
type RegisterInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Role     domain.Role
}

// TokenVerifier recovers the principal embedded in a bearer token.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

type AuthService interface {
	TokenVerifier
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	Me(ctx context.Context, accountID string) (*domain.Account, error)
}
