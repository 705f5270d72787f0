package ports

import (
	"context"

	"github.com/primstrade/platform/internal/core/domain"
)

// UpdateProfileInput holds the profile fields a user may change. Nil means unchanged.
type UpdateProfileInput struct {
	Name *string
}

type UserService interface {
	GetMe(ctx context.Context, p *domain.Principal) (*domain.User, error)
	UpdateMe(ctx context.Context, p *domain.Principal, in UpdateProfileInput) (*domain.User, error)
}
