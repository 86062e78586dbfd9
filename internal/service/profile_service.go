package service

import (
	"context"
	"fmt"

	"github.com/blog-article-api/internal/models"
	"github.com/blog-article-api/internal/repository"
	"github.com/rs/zerolog"
)

// profileService is the concrete implementation of ProfileService
type profileService struct {
	users   repository.UserRepository
	social  repository.SocialRepository
	builder *responseBuilder
	log     zerolog.Logger
}

func newProfileService(users repository.UserRepository, social repository.SocialRepository, builder *responseBuilder, log zerolog.Logger) ProfileService {
	return &profileService{
		users:   users,
		social:  social,
		builder: builder,
		log:     log.With().Str("service", "profile").Logger(),
	}
}

// GetProfile returns the public profile of a user, viewer-relativized
func (s *profileService) GetProfile(ctx context.Context, viewerID, username string) (*models.Profile, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.builder.BuildProfile(ctx, user, viewerID)
}

// Follow records that the viewer follows the named user. Following an
// already-followed user is a no-op success; following yourself is not
// allowed.
func (s *profileService) Follow(ctx context.Context, viewerID, username string) (*models.Profile, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.ID == viewerID {
		return nil, fmt.Errorf("cannot follow yourself: %w", ErrForbidden)
	}

	if err := s.social.Follow(ctx, viewerID, user.ID); err != nil {
		return nil, fmt.Errorf("follow %q: %w", username, err)
	}

	s.log.Info().Str("username", username).Str("follower_id", viewerID).Msg("Profile followed")
	return s.builder.BuildProfile(ctx, user, viewerID)
}

// Unfollow removes the follow relation; unfollowing a non-followed user
// is a no-op success
func (s *profileService) Unfollow(ctx context.Context, viewerID, username string) (*models.Profile, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.ID == viewerID {
		return nil, fmt.Errorf("cannot unfollow yourself: %w", ErrForbidden)
	}

	if err := s.social.Unfollow(ctx, viewerID, user.ID); err != nil {
		return nil, fmt.Errorf("unfollow %q: %w", username, err)
	}

	return s.builder.BuildProfile(ctx, user, viewerID)
}

func (s *profileService) findByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("profile %q: %w", username, ErrNotFound)
	}
	return user, nil
}
