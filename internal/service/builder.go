package service

import (
	"context"
	"fmt"

	"github.com/blog-article-api/internal/models"
	"github.com/blog-article-api/internal/repository"
)

// responseBuilder projects persisted rows into viewer-relative response
// shapes. Every cross-entity read is an explicit repository call; nothing
// is cached between invocations and nothing is written.
type responseBuilder struct {
	users  repository.UserRepository
	social repository.SocialRepository
}

func newResponseBuilder(users repository.UserRepository, social repository.SocialRepository) *responseBuilder {
	return &responseBuilder{users: users, social: social}
}

// Build projects an article for the given viewer. An empty viewerID is an
// anonymous viewer: favorited and author.following are always false.
func (b *responseBuilder) Build(ctx context.Context, article *models.Article, viewerID string) (*models.ArticleResponse, error) {
	author, err := b.users.GetByID(ctx, article.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	if author == nil {
		return nil, fmt.Errorf("author %s: %w", article.AuthorID, ErrNotFound)
	}

	profile, err := b.BuildProfile(ctx, author, viewerID)
	if err != nil {
		return nil, err
	}

	favorited := false
	if viewerID != "" {
		favorited, err = b.social.IsFavorited(ctx, viewerID, article.ID)
		if err != nil {
			return nil, fmt.Errorf("check favorited: %w", err)
		}
	}

	count, err := b.social.FavoritesCount(ctx, article.ID)
	if err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}

	tags := article.TagList
	if tags == nil {
		tags = []string{}
	}

	return &models.ArticleResponse{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        tags,
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: count,
		Author:         *profile,
	}, nil
}

// BuildProfile projects a user into its public profile for the given viewer
func (b *responseBuilder) BuildProfile(ctx context.Context, user *models.User, viewerID string) (*models.Profile, error) {
	following := false
	if viewerID != "" && viewerID != user.ID {
		var err error
		following, err = b.social.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("check following: %w", err)
		}
	}

	return &models.Profile{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}, nil
}

// BuildComment attaches the author's public profile to a comment
func (b *responseBuilder) BuildComment(ctx context.Context, comment *models.Comment) (*models.CommentResponse, error) {
	author, err := b.users.GetByID(ctx, comment.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("load comment author: %w", err)
	}
	if author == nil {
		return nil, fmt.Errorf("comment author %s: %w", comment.AuthorID, ErrNotFound)
	}

	return &models.CommentResponse{
		ID:        comment.ID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Author: models.Profile{
			Username: author.Username,
			Bio:      author.Bio,
			Image:    author.Image,
		},
	}, nil
}
