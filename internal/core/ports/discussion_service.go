package ports

import (
	"context"

	"github.com/primstrade/platform/internal/core/domain"
)

type CreateDiscussionInput struct {
	Title   string
	Content string
}

type UpdateDiscussionInput struct {
	Title   *string
	Content *string
}

type DiscussionService interface {
	List(ctx context.Context) ([]*domain.Discussion, error)
	Get(ctx context.Context, id string) (*domain.Discussion, error)
	Create(ctx context.Context, p *domain.Principal, in CreateDiscussionInput) (*domain.Discussion, error)
	Update(ctx context.Context, p *domain.Principal, id string, in UpdateDiscussionInput) (*domain.Discussion, error)
	Delete(ctx context.Context, p *domain.Principal, id string) error
	AddComment(ctx context.Context, p *domain.Principal, discussionID, content string) (*domain.Discussion, error)
	DeleteComment(ctx context.Context, p *domain.Principal, discussionID, commentID string) (*domain.Discussion, error)
}
