package ports

import (
	"context"
	"time"

	"github.com/primstrade/platform/internal/core/domain"
)

// DiscussionChanges carries the fields to overwrite. Nil means unchanged.
type DiscussionChanges struct {
	Title     *string
	Content   *string
	UpdatedAt time.Time
}

// DiscussionRepository persists discussions with their embedded comments.
// The repository assigns ids to new discussions and comments.
type DiscussionRepository interface {
	Create(ctx context.Context, d *domain.Discussion) (*domain.Discussion, error)
	FindByID(ctx context.Context, id string) (*domain.Discussion, error)
	List(ctx context.Context) ([]*domain.Discussion, error)
	Update(ctx context.Context, id string, changes DiscussionChanges) (*domain.Discussion, error)
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, discussionID string, c *domain.Comment) (*domain.Discussion, error)
	RemoveComment(ctx context.Context, discussionID, commentID string) (*domain.Discussion, error)
}
