package models

import (
	"time"
)

// Comment represents a comment on an article
type Comment struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CommentResponse is the outbound comment shape with the author's
// public profile attached
type CommentResponse struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    Profile   `json:"author"`
}

// CommentsResponse is the comment listing envelope
type CommentsResponse struct {
	Comments []*CommentResponse `json:"comments"`
}

// CreateCommentInput is the payload for adding a comment
type CreateCommentInput struct {
	Body string `json:"body" binding:"required"`
}
