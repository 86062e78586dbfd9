package models

import (
	"time"
)

// Article represents a persisted article row
type Article struct {
	ID          string    `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Body        string    `json:"body" db:"body"`
	AuthorID    string    `json:"author_id" db:"author_id"`
	TagList     []string  `json:"tagList" db:"-"` // Stored as JSON string in DB
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ArticleResponse is the viewer-relative projection of an article.
// Favorited, FavoritesCount and Author.Following are derived per request,
// never persisted.
type ArticleResponse struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int       `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

// ArticlesResponse is the paginated listing envelope
type ArticlesResponse struct {
	Articles      []*ArticleResponse `json:"articles"`
	ArticlesCount int                `json:"articlesCount"`
}

// CreateArticleInput is the payload for creating an article
type CreateArticleInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Body        string   `json:"body" binding:"required"`
	TagList     []string `json:"tagList"`
}

// UpdateArticleInput is a patch: nil fields are left untouched.
// A non-nil Title triggers slug regeneration.
type UpdateArticleInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
}

// ListFilter holds the article listing query parameters.
// Filters compose with AND when several are present.
type ListFilter struct {
	Tag         string
	Author      string // author username
	FavoritedBy string // username whose favorites to intersect with
	Limit       int
	Offset      int
}

// FeedFilter holds the feed pagination parameters
type FeedFilter struct {
	Limit  int
	Offset int
}

// DeleteResult is the generic affected-rows acknowledgement returned by
// delete operations
type DeleteResult struct {
	RowsAffected int64 `json:"rowsAffected"`
}

// Pagination defaults applied at the API boundary when parameters are
// absent or unparsable
const (
	DefaultLimit  = 20
	DefaultOffset = 0
)
