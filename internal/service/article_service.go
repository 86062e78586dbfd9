package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blog-article-api/internal/models"
	"github.com/blog-article-api/internal/repository"
	sluggen "github.com/blog-article-api/pkg/slug"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
	social   repository.SocialRepository
	builder  *responseBuilder
	log      zerolog.Logger
}

func newArticleService(repos *repository.Repositories, builder *responseBuilder, log zerolog.Logger) ArticleService {
	return &articleService{
		articles: repos.Article,
		comments: repos.Comment,
		social:   repos.Social,
		builder:  builder,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// GetArticles returns the global filtered listing, most recent first
func (s *articleService) GetArticles(ctx context.Context, viewerID string, filter models.ListFilter) (*models.ArticlesResponse, error) {
	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return s.buildListing(ctx, articles, total, viewerID)
}

// GetFeed returns the viewer's personalized feed: articles by followed
// authors only. An empty followed set short-circuits to an empty page
// without touching the article store.
func (s *articleService) GetFeed(ctx context.Context, viewerID string, filter models.FeedFilter) (*models.ArticlesResponse, error) {
	authorIDs, err := s.social.FollowedAuthorIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("resolve followed authors: %w", err)
	}
	if len(authorIDs) == 0 {
		return &models.ArticlesResponse{Articles: []*models.ArticleResponse{}, ArticlesCount: 0}, nil
	}

	articles, total, err := s.articles.ListByAuthors(ctx, authorIDs, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list feed articles: %w", err)
	}
	return s.buildListing(ctx, articles, total, viewerID)
}

func (s *articleService) buildListing(ctx context.Context, articles []*models.Article, total int, viewerID string) (*models.ArticlesResponse, error) {
	responses := make([]*models.ArticleResponse, 0, len(articles))
	for _, article := range articles {
		resp, err := s.builder.Build(ctx, article, viewerID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return &models.ArticlesResponse{Articles: responses, ArticlesCount: total}, nil
}

// GetArticle returns a single article by slug, projected for the viewer
func (s *articleService) GetArticle(ctx context.Context, viewerID, slug string) (*models.ArticleResponse, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.builder.Build(ctx, article, viewerID)
}

// Create persists a new article owned by authorID. The slug is derived
// from the title with a random disambiguator; a residual collision shows
// up as the unique index firing and is surfaced as ErrConflict.
func (s *articleService) Create(ctx context.Context, authorID string, input models.CreateArticleInput) (*models.ArticleResponse, error) {
	now := time.Now().UTC()
	article := &models.Article{
		ID:          uuid.NewString(),
		Slug:        sluggen.Generate(input.Title),
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		AuthorID:    authorID,
		TagList:     input.TagList,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("slug %q already taken: %w", article.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.log.Info().Str("slug", article.Slug).Str("author_id", authorID).Msg("Article created")
	return s.builder.Build(ctx, article, authorID)
}

// Update patches an article. Only its author may update it; the slug is
// regenerated only when the patch carries a title; UpdatedAt is always
// refreshed.
func (s *articleService) Update(ctx context.Context, userID, slug string, input models.UpdateArticleInput) (*models.ArticleResponse, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != userID {
		return nil, fmt.Errorf("article %q is not owned by the caller: %w", slug, ErrForbidden)
	}

	if input.Title != nil {
		article.Title = *input.Title
		article.Slug = sluggen.Generate(article.Title)
	}
	if input.Description != nil {
		article.Description = *input.Description
	}
	if input.Body != nil {
		article.Body = *input.Body
	}
	article.UpdatedAt = time.Now().UTC()

	if err := s.articles.Update(ctx, article); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("slug %q already taken: %w", article.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("update article: %w", err)
	}

	s.log.Info().Str("slug", article.Slug).Msg("Article updated")
	return s.builder.Build(ctx, article, userID)
}

// Delete removes an article. Only its author may delete it; the article's
// comments go with it.
func (s *articleService) Delete(ctx context.Context, userID, slug string) (*models.DeleteResult, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != userID {
		return nil, fmt.Errorf("article %q is not owned by the caller: %w", slug, ErrForbidden)
	}

	affected, err := s.articles.Delete(ctx, article.ID)
	if err != nil {
		return nil, fmt.Errorf("delete article: %w", err)
	}

	s.log.Info().Str("slug", slug).Int64("rows", affected).Msg("Article deleted")
	return &models.DeleteResult{RowsAffected: affected}, nil
}

// Favorite marks the article as favorited by userID and returns the
// re-projected article. Favoriting twice is a no-op on the count.
func (s *articleService) Favorite(ctx context.Context, userID, slug string) (*models.ArticleResponse, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.social.Favorite(ctx, userID, article.ID); err != nil {
		return nil, fmt.Errorf("favorite article: %w", err)
	}
	return s.builder.Build(ctx, article, userID)
}

// Unfavorite removes userID's favorite and returns the re-projected
// article. Unfavoriting a non-favorited article is a no-op.
func (s *articleService) Unfavorite(ctx context.Context, userID, slug string) (*models.ArticleResponse, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.social.Unfavorite(ctx, userID, article.ID); err != nil {
		return nil, fmt.Errorf("unfavorite article: %w", err)
	}
	return s.builder.Build(ctx, article, userID)
}

// AddComment creates a comment owned by userID against the article
func (s *articleService) AddComment(ctx context.Context, userID, slug string, input models.CreateCommentInput) (*models.CommentResponse, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		ID:        uuid.NewString(),
		ArticleID: article.ID,
		AuthorID:  userID,
		Body:      input.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return s.builder.BuildComment(ctx, comment)
}

// GetComments returns the article's comments oldest first
func (s *articleService) GetComments(ctx context.Context, slug string) ([]*models.CommentResponse, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByArticle(ctx, article.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	responses := make([]*models.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp, err := s.builder.BuildComment(ctx, comment)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// DeleteComment removes a comment. The comment must exist, be attached to
// the given slug, and belong to the caller.
func (s *articleService) DeleteComment(ctx context.Context, userID, slug, commentID string) (*models.DeleteResult, error) {
	article, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("load comment: %w", err)
	}
	if comment == nil || comment.ArticleID != article.ID {
		return nil, fmt.Errorf("comment %s on %q: %w", commentID, slug, ErrNotFound)
	}
	if comment.AuthorID != userID {
		return nil, fmt.Errorf("comment %s is not owned by the caller: %w", commentID, ErrForbidden)
	}

	affected, err := s.comments.Delete(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return &models.DeleteResult{RowsAffected: affected}, nil
}

func (s *articleService) findBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find article: %w", err)
	}
	if article == nil {
		return nil, fmt.Errorf("article %q: %w", slug, ErrNotFound)
	}
	return article, nil
}
