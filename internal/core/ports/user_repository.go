package ports

import (
	"context"

	"github.com/primstrade/platform/internal/core/domain"
)

// UserRepository is the credential store: identity plus password hash.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail expects a normalised (trimmed, lower-case) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateName(ctx context.Context, id, name string) (*domain.User, error)
}
