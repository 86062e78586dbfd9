package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/blog-article-api/internal/mocks"
	"github.com/blog-article-api/internal/models"
)

// The map-backed mocks mirror the SQL semantics the Postgres
// implementations rely on (ordering, tie-breaks, conflict no-ops); these
// tests pin those semantics down since the service suites build on them.

func newMockStore() (*mocks.MockUserRepository, *mocks.MockArticleRepository, *mocks.MockCommentRepository, *mocks.MockSocialRepository) {
	users := mocks.NewMockUserRepository()
	social := mocks.NewMockSocialRepository()
	comments := mocks.NewMockCommentRepository()
	articles := mocks.NewMockArticleRepository(users, social, comments)
	return users, articles, comments, social
}

func TestMockArticleRepository_OrderingAndTieBreak(t *testing.T) {
	_, articles, _, _ := newMockStore()
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// Same createdAt: id descending keeps pagination windows stable
	articles.Create(ctx, &models.Article{ID: "a-1", Slug: "s1", AuthorID: "u", CreatedAt: at})
	articles.Create(ctx, &models.Article{ID: "a-3", Slug: "s3", AuthorID: "u", CreatedAt: at})
	articles.Create(ctx, &models.Article{ID: "a-2", Slug: "s2", AuthorID: "u", CreatedAt: at.Add(time.Hour)})

	page, total, err := articles.List(ctx, models.ListFilter{Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}

	wantOrder := []string{"a-2", "a-3", "a-1"}
	for i, want := range wantOrder {
		if page[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, page[i].ID)
		}
	}
}

func TestMockArticleRepository_OffsetBeyondEnd(t *testing.T) {
	_, articles, _, _ := newMockStore()
	ctx := context.Background()

	articles.Create(ctx, &models.Article{ID: "a-1", Slug: "s1", AuthorID: "u", CreatedAt: time.Now()})

	page, total, err := articles.List(ctx, models.ListFilter{Limit: 10, Offset: 5})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 0 {
		t.Errorf("Expected empty page past the end, got %d", len(page))
	}
	if total != 1 {
		t.Errorf("Total reflects the filtered set, expected 1 got %d", total)
	}
}

func TestMockArticleRepository_ListByAuthors(t *testing.T) {
	_, articles, _, _ := newMockStore()
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	articles.Create(ctx, &models.Article{ID: "a-1", Slug: "s1", AuthorID: "u1", CreatedAt: at})
	articles.Create(ctx, &models.Article{ID: "a-2", Slug: "s2", AuthorID: "u2", CreatedAt: at.Add(time.Hour)})
	articles.Create(ctx, &models.Article{ID: "a-3", Slug: "s3", AuthorID: "u3", CreatedAt: at.Add(2 * time.Hour)})

	page, total, err := articles.ListByAuthors(ctx, []string{"u1", "u3"}, 10, 0)
	if err != nil {
		t.Fatalf("ListByAuthors failed: %v", err)
	}
	if total != 2 || len(page) != 2 {
		t.Fatalf("Expected 2 articles, got total=%d page=%d", total, len(page))
	}
	if page[0].ID != "a-3" || page[1].ID != "a-1" {
		t.Errorf("Expected newest-first a-3, a-1; got %s, %s", page[0].ID, page[1].ID)
	}
}

func TestMockSocialRepository_FollowIdempotency(t *testing.T) {
	_, _, _, social := newMockStore()
	ctx := context.Background()

	social.Follow(ctx, "u1", "u2")
	social.Follow(ctx, "u1", "u2")

	ids, err := social.FollowedAuthorIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("FollowedAuthorIDs failed: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("Expected 1 followed author after double follow, got %d", len(ids))
	}

	// Unfollowing a non-followed author is a no-op success
	if err := social.Unfollow(ctx, "u1", "u9"); err != nil {
		t.Errorf("Unfollow of non-followed author should not error: %v", err)
	}
	if following, _ := social.IsFollowing(ctx, "u1", "u2"); !following {
		t.Error("Unrelated unfollow should not affect existing follows")
	}
}

func TestMockSocialRepository_FavoritesCount(t *testing.T) {
	_, _, _, social := newMockStore()
	ctx := context.Background()

	social.Favorite(ctx, "u1", "art-1")
	social.Favorite(ctx, "u2", "art-1")
	social.Favorite(ctx, "u2", "art-1")
	social.Favorite(ctx, "u2", "art-2")

	count, err := social.FavoritesCount(ctx, "art-1")
	if err != nil {
		t.Fatalf("FavoritesCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}

	social.Unfavorite(ctx, "u1", "art-1")
	if count, _ = social.FavoritesCount(ctx, "art-1"); count != 1 {
		t.Errorf("Expected count 1 after unfavorite, got %d", count)
	}
}

func TestMockCommentRepository_ListOldestFirst(t *testing.T) {
	_, _, comments, _ := newMockStore()
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	comments.Create(ctx, &models.Comment{ID: "c-2", ArticleID: "art-1", CreatedAt: at.Add(time.Minute)})
	comments.Create(ctx, &models.Comment{ID: "c-1", ArticleID: "art-1", CreatedAt: at})
	comments.Create(ctx, &models.Comment{ID: "c-3", ArticleID: "art-2", CreatedAt: at})

	listed, err := comments.ListByArticle(ctx, "art-1")
	if err != nil {
		t.Fatalf("ListByArticle failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(listed))
	}
	if listed[0].ID != "c-1" || listed[1].ID != "c-2" {
		t.Errorf("Expected oldest-first c-1, c-2; got %s, %s", listed[0].ID, listed[1].ID)
	}
}
