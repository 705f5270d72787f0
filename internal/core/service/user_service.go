package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/ports"
)

// UserService serves the caller's own profile.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) GetMe(ctx context.Context, p *domain.Principal) (*domain.User, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, p.ID)
}

// UpdateMe changes the display name. Email and role are not editable here.
func (s *UserService) UpdateMe(ctx context.Context, p *domain.Principal, in ports.UpdateProfileInput) (*domain.User, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == nil {
		return s.repo.FindByID(ctx, p.ID)
	}

	name := strings.TrimSpace(*in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}

	user, err := s.repo.UpdateName(ctx, p.ID, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", p.ID).Msg("profile updated")
	return user, nil
}
