package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/policy"
	"github.com/primstrade/platform/internal/core/ports"
)

// DiscussionService implements discussions and their comments. Reads are
// public; writes need a principal.
type DiscussionService struct {
	repo   ports.DiscussionRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewDiscussionService(repo ports.DiscussionRepository, logger zerolog.Logger) *DiscussionService {
	return &DiscussionService{repo: repo, logger: logger, now: time.Now}
}

func (s *DiscussionService) List(ctx context.Context) ([]*domain.Discussion, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list discussions: %w", err)
	}
	if list == nil {
		list = []*domain.Discussion{}
	}
	return list, nil
}

func (s *DiscussionService) Get(ctx context.Context, id string) (*domain.Discussion, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DiscussionService) Create(ctx context.Context, p *domain.Principal, in ports.CreateDiscussionInput) (*domain.Discussion, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	title, err := requireText("title", in.Title)
	if err != nil {
		return nil, err
	}
	content, err := requireText("content", in.Content)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Discussion{
		Title:     title,
		Content:   content,
		CreatedBy: p.ID,
		Comments:  []domain.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create discussion: %w", err)
	}
	s.logger.Info().Str("discussion_id", created.ID).Str("author", p.ID).Msg("discussion created")
	return created, nil
}

func (s *DiscussionService) Update(ctx context.Context, p *domain.Principal, id string, in ports.UpdateDiscussionInput) (*domain.Discussion, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModerate(p, existing) {
		return nil, domain.Forbidden("you can only edit your own discussions")
	}

	changes := ports.DiscussionChanges{UpdatedAt: s.now().UTC()}
	if in.Title != nil {
		v, err := requireText("title", *in.Title)
		if err != nil {
			return nil, err
		}
		changes.Title = &v
	}
	if in.Content != nil {
		v, err := requireText("content", *in.Content)
		if err != nil {
			return nil, err
		}
		changes.Content = &v
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("update discussion: %w", err)
	}
	return updated, nil
}

func (s *DiscussionService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	if p == nil {
		return domain.ErrUnauthorized
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanModerate(p, existing) {
		return domain.Forbidden("you can only delete your own discussions")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete discussion: %w", err)
	}
	s.logger.Info().Str("discussion_id", id).Str("by", p.ID).Msg("discussion deleted")
	return nil
}

// AddComment appends a comment by p. Any authenticated principal may comment.
func (s *DiscussionService) AddComment(ctx context.Context, p *domain.Principal, discussionID, content string) (*domain.Discussion, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewValidationError("content", "must not be empty")
	}

	now := s.now().UTC()
	updated, err := s.repo.AddComment(ctx, discussionID, &domain.Comment{
		Content:   content,
		CreatedBy: p.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteComment removes a comment. Only the comment's author or an admin may
// do this; owning the discussion grants nothing here.
func (s *DiscussionService) DeleteComment(ctx context.Context, p *domain.Principal, discussionID, commentID string) (*domain.Discussion, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	discussion, err := s.repo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	comment := discussion.FindComment(commentID)
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if !policy.CanModerate(p, comment) {
		return nil, domain.Forbidden("you can only delete your own comments")
	}

	updated, err := s.repo.RemoveComment(ctx, discussionID, commentID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("discussion_id", discussionID).Str("comment_id", commentID).Str("by", p.ID).Msg("comment deleted")
	return updated, nil
}
