package repository

import (
	"context"

	"github.com/blog-article-api/internal/database"
)

// socialRepo is the concrete implementation of SocialRepository. Idempotency
// of Follow/Favorite rests on the composite primary keys plus ON CONFLICT
// DO NOTHING rather than application-level locking.
type socialRepo struct {
	db *database.DB
}

// NewSocialRepo creates a new social graph repository
func NewSocialRepo(db *database.DB) SocialRepository {
	return &socialRepo{db: db}
}

// IsFollowing reports whether followerID follows authorID
func (r *socialRepo) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)",
		followerID, authorID,
	).Scan(&exists)
	return exists, err
}

// Follow records a follow relation; following an already-followed author
// is a no-op success
func (r *socialRepo) Follow(ctx context.Context, followerID, authorID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO follows (follower_id, followee_id, created_at) VALUES ($1, $2, NOW()) ON CONFLICT DO NOTHING",
		followerID, authorID,
	)
	return err
}

// Unfollow removes a follow relation; unfollowing a non-followed author
// is a no-op success
func (r *socialRepo) Unfollow(ctx context.Context, followerID, authorID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2",
		followerID, authorID,
	)
	return err
}

// FollowedAuthorIDs returns the ids of every author the user follows
func (r *socialRepo) FollowedAuthorIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT followee_id FROM follows WHERE follower_id = $1", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IsFavorited reports whether the user has favorited the article
func (r *socialRepo) IsFavorited(ctx context.Context, userID, articleID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND article_id = $2)",
		userID, articleID,
	).Scan(&exists)
	return exists, err
}

// Favorite records a favorite relation; redundant calls are no-op successes
func (r *socialRepo) Favorite(ctx context.Context, userID, articleID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, article_id, created_at) VALUES ($1, $2, NOW()) ON CONFLICT DO NOTHING",
		userID, articleID,
	)
	return err
}

// Unfavorite removes a favorite relation; redundant calls are no-op successes
func (r *socialRepo) Unfavorite(ctx context.Context, userID, articleID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = $1 AND article_id = $2",
		userID, articleID,
	)
	return err
}

// FavoritesCount returns the exact size of the article's favoriting-users
// set, recomputed on demand
func (r *socialRepo) FavoritesCount(ctx context.Context, articleID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM favorites WHERE article_id = $1", articleID,
	).Scan(&count)
	return count, err
}
