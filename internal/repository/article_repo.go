package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blog-article-api/internal/database"
	"github.com/blog-article-api/internal/models"
	"github.com/lib/pq"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = "id, slug, title, description, body, author_id, tags, created_at, updated_at"

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	tagsJSON, _ := json.Marshal(article.TagList)
	if article.TagList == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		INSERT INTO articles (id, slug, title, description, body, author_id, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Slug, article.Title, article.Description, article.Body,
		article.AuthorID, tagsJSON, article.CreatedAt, article.UpdatedAt,
	)
	return err
}

// GetBySlug retrieves an article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM articles WHERE slug = $1", articleColumns)

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Update rewrites the mutable columns of an article row
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	tagsJSON, _ := json.Marshal(article.TagList)
	if article.TagList == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		UPDATE articles
		SET slug = $1, title = $2, description = $3, body = $4, tags = $5, updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		article.Slug, article.Title, article.Description, article.Body,
		tagsJSON, article.UpdatedAt, article.ID,
	)
	return err
}

// Delete removes an article; comments go with it via the FK cascade
func (r *articleRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// List returns a page of articles matching the filter, most recent first,
// plus the total count of the filtered set (not the page size). Filters
// compose with AND.
func (r *articleRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Article, int, error) {
	var conds []string
	var args []interface{}

	if filter.Tag != "" {
		tagJSON, _ := json.Marshal([]string{filter.Tag})
		args = append(args, string(tagJSON))
		conds = append(conds, fmt.Sprintf("a.tags @> $%d::jsonb", len(args)))
	}
	if filter.Author != "" {
		args = append(args, filter.Author)
		conds = append(conds, fmt.Sprintf("u.username = $%d", len(args)))
	}
	if filter.FavoritedBy != "" {
		args = append(args, filter.FavoritedBy)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM favorites f JOIN users fu ON fu.id = f.user_id WHERE f.article_id = a.id AND fu.username = $%d)",
			len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	from := "FROM articles a JOIN users u ON u.id = a.author_id" + where

	// Count the filtered set before pagination
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) "+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf(
		"SELECT a.id, a.slug, a.title, a.description, a.body, a.author_id, a.tags, a.created_at, a.updated_at %s ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d",
		from, limitPos, offsetPos,
	)

	articles, err := r.queryArticles(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// ListByAuthors returns a page of articles written by any of the given
// authors, most recent first, plus the total count across the set
func (r *articleRepo) ListByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]*models.Article, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM articles WHERE author_id = ANY($1)",
		pq.Array(authorIDs),
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM articles WHERE author_id = ANY($1) ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3",
		articleColumns,
	)
	articles, err := r.queryArticles(ctx, query, pq.Array(authorIDs), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepo) queryArticles(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*models.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var tagsJSON []byte

	err := row.Scan(
		&article.ID, &article.Slug, &article.Title, &article.Description, &article.Body,
		&article.AuthorID, &tagsJSON, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	json.Unmarshal(tagsJSON, &article.TagList)
	if article.TagList == nil {
		article.TagList = []string{}
	}
	return &article, nil
}
