package ports

import (
	"context"

	"github.com/primstrade/platform/internal/core/domain"
)

// RegisterInput is the DTO passed from the transport layer to AuthService.Register.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role // empty means domain.RoleUser
}

// AuthResult is returned by every successful authentication operation.
type AuthResult struct {
	User   *domain.User
	Tokens TokenPair
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}
