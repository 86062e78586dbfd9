package repository

import (
	"context"

	"github.com/blog-article-api/internal/database"
	"github.com/blog-article-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ArticleRepository defines the interface for article data operations.
// Lookup misses return (nil, nil); the service layer owns the NotFound
// translation.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Article, int, error)
	ListByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]*models.Article, int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// SocialRepository tracks the follow and favorite relations. Follow and
// Favorite are idempotent: redundant calls succeed without effect.
type SocialRepository interface {
	IsFollowing(ctx context.Context, followerID, authorID string) (bool, error)
	Follow(ctx context.Context, followerID, authorID string) error
	Unfollow(ctx context.Context, followerID, authorID string) error
	FollowedAuthorIDs(ctx context.Context, userID string) ([]string, error)

	IsFavorited(ctx context.Context, userID, articleID string) (bool, error)
	Favorite(ctx context.Context, userID, articleID string) error
	Unfavorite(ctx context.Context, userID, articleID string) error
	FavoritesCount(ctx context.Context, articleID string) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
	Social  SocialRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
		Social:  NewSocialRepo(db),
	}
}
