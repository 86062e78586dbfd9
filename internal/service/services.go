package service

import (
	"context"

	"github.com/blog-article-api/internal/models"
	"github.com/blog-article-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService owns the article read and write paths: filtered listing,
// the personalized feed, CRUD, favoriting and the comment sub-resource.
// A viewerID of "" means the caller is anonymous.
type ArticleService interface {
	GetArticles(ctx context.Context, viewerID string, filter models.ListFilter) (*models.ArticlesResponse, error)
	GetFeed(ctx context.Context, viewerID string, filter models.FeedFilter) (*models.ArticlesResponse, error)
	GetArticle(ctx context.Context, viewerID, slug string) (*models.ArticleResponse, error)
	Create(ctx context.Context, authorID string, input models.CreateArticleInput) (*models.ArticleResponse, error)
	Update(ctx context.Context, userID, slug string, input models.UpdateArticleInput) (*models.ArticleResponse, error)
	Delete(ctx context.Context, userID, slug string) (*models.DeleteResult, error)

	Favorite(ctx context.Context, userID, slug string) (*models.ArticleResponse, error)
	Unfavorite(ctx context.Context, userID, slug string) (*models.ArticleResponse, error)

	AddComment(ctx context.Context, userID, slug string, input models.CreateCommentInput) (*models.CommentResponse, error)
	GetComments(ctx context.Context, slug string) ([]*models.CommentResponse, error)
	DeleteComment(ctx context.Context, userID, slug, commentID string) (*models.DeleteResult, error)
}

// ProfileService exposes the public profile view and the follow edge of
// the social graph
type ProfileService interface {
	GetProfile(ctx context.Context, viewerID, username string) (*models.Profile, error)
	Follow(ctx context.Context, viewerID, username string) (*models.Profile, error)
	Unfollow(ctx context.Context, viewerID, username string) (*models.Profile, error)
}

// Services holds all service interfaces
type Services struct {
	Article ArticleService
	Profile ProfileService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	builder := newResponseBuilder(repos.User, repos.Social)

	return &Services{
		Article: newArticleService(repos, builder, log),
		Profile: newProfileService(repos.User, repos.Social, builder, log),
	}
}
