package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/blog-article-api/internal/models"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	Users      map[string]*models.User
	ByUsername map[string]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[string]*models.User),
		ByUsername: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.Users[user.ID] = user
	m.ByUsername[user.Username] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.ByUsername[username], nil
}

// MockArticleRepository is a mock implementation of
// repository.ArticleRepository. List/ListByAuthors mirror the SQL
// semantics: created_at descending with id descending as tiebreak, total
// counted before pagination. Author and favorited filters resolve through
// the attached user and social mocks.
type MockArticleRepository struct {
	Articles map[string]*models.Article
	BySlug   map[string]*models.Article

	Users    *MockUserRepository
	Social   *MockSocialRepository
	Comments *MockCommentRepository // article deletes cascade into it, like the FK does

	CreateError error
	UpdateError error
}

func NewMockArticleRepository(users *MockUserRepository, social *MockSocialRepository, comments *MockCommentRepository) *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
		BySlug:   make(map[string]*models.Article),
		Users:    users,
		Social:   social,
		Comments: comments,
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Articles[article.ID] = article
	m.BySlug[article.Slug] = article
	return nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return m.BySlug[slug], nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	for slug, a := range m.BySlug {
		if a.ID == article.ID && slug != article.Slug {
			delete(m.BySlug, slug)
		}
	}
	m.Articles[article.ID] = article
	m.BySlug[article.Slug] = article
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) (int64, error) {
	article, exists := m.Articles[id]
	if !exists {
		return 0, nil
	}
	delete(m.Articles, id)
	delete(m.BySlug, article.Slug)
	if m.Comments != nil {
		m.Comments.DeleteByArticle(id)
	}
	return 1, nil
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.Article, int, error) {
	var matched []*models.Article
	for _, article := range m.Articles {
		if filter.Tag != "" && !hasTag(article, filter.Tag) {
			continue
		}
		if filter.Author != "" && !m.isByAuthor(article, filter.Author) {
			continue
		}
		if filter.FavoritedBy != "" && !m.isFavoritedBy(article, filter.FavoritedBy) {
			continue
		}
		matched = append(matched, article)
	}
	sortNewestFirst(matched)
	return paginate(matched, filter.Limit, filter.Offset), len(matched), nil
}

func (m *MockArticleRepository) ListByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]*models.Article, int, error) {
	authors := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}

	var matched []*models.Article
	for _, article := range m.Articles {
		if authors[article.AuthorID] {
			matched = append(matched, article)
		}
	}
	sortNewestFirst(matched)
	return paginate(matched, limit, offset), len(matched), nil
}

func (m *MockArticleRepository) isByAuthor(article *models.Article, username string) bool {
	author := m.Users.ByUsername[username]
	return author != nil && article.AuthorID == author.ID
}

func (m *MockArticleRepository) isFavoritedBy(article *models.Article, username string) bool {
	user := m.Users.ByUsername[username]
	return user != nil && m.Social.Favorites[user.ID][article.ID]
}

func hasTag(article *models.Article, tag string) bool {
	for _, t := range article.TagList {
		if t == tag {
			return true
		}
	}
	return false
}

func sortNewestFirst(articles []*models.Article) {
	sort.Slice(articles, func(i, j int) bool {
		if !articles[i].CreatedAt.Equal(articles[j].CreatedAt) {
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		}
		return strings.Compare(articles[i].ID, articles[j].ID) > 0
	})
}

func paginate(articles []*models.Article, limit, offset int) []*models.Article {
	if offset >= len(articles) {
		return []*models.Article{}
	}
	end := offset + limit
	if end > len(articles) {
		end = len(articles)
	}
	return articles[offset:end]
}

// MockCommentRepository is a mock implementation of
// repository.CommentRepository
type MockCommentRepository struct {
	Comments map[string]*models.Comment
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string]*models.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return m.Comments[id], nil
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, comment := range m.Comments {
		if comment.ArticleID == articleID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return strings.Compare(comments[i].ID, comments[j].ID) < 0
	})
	return comments, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) (int64, error) {
	if _, exists := m.Comments[id]; !exists {
		return 0, nil
	}
	delete(m.Comments, id)
	return 1, nil
}

// DeleteByArticle mimics the FK cascade fired by an article delete
func (m *MockCommentRepository) DeleteByArticle(articleID string) {
	for id, comment := range m.Comments {
		if comment.ArticleID == articleID {
			delete(m.Comments, id)
		}
	}
}

// MockSocialRepository is a mock implementation of
// repository.SocialRepository. Redundant Follow/Favorite calls are no-ops,
// matching the composite-key ON CONFLICT semantics.
type MockSocialRepository struct {
	Follows   map[string]map[string]bool // follower -> followee set
	Favorites map[string]map[string]bool // user -> article set
}

func NewMockSocialRepository() *MockSocialRepository {
	return &MockSocialRepository{
		Follows:   make(map[string]map[string]bool),
		Favorites: make(map[string]map[string]bool),
	}
}

func (m *MockSocialRepository) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	return m.Follows[followerID][authorID], nil
}

func (m *MockSocialRepository) Follow(ctx context.Context, followerID, authorID string) error {
	if m.Follows[followerID] == nil {
		m.Follows[followerID] = make(map[string]bool)
	}
	m.Follows[followerID][authorID] = true
	return nil
}

func (m *MockSocialRepository) Unfollow(ctx context.Context, followerID, authorID string) error {
	delete(m.Follows[followerID], authorID)
	return nil
}

func (m *MockSocialRepository) FollowedAuthorIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	for id := range m.Follows[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MockSocialRepository) IsFavorited(ctx context.Context, userID, articleID string) (bool, error) {
	return m.Favorites[userID][articleID], nil
}

func (m *MockSocialRepository) Favorite(ctx context.Context, userID, articleID string) error {
	if m.Favorites[userID] == nil {
		m.Favorites[userID] = make(map[string]bool)
	}
	m.Favorites[userID][articleID] = true
	return nil
}

func (m *MockSocialRepository) Unfavorite(ctx context.Context, userID, articleID string) error {
	delete(m.Favorites[userID], articleID)
	return nil
}

func (m *MockSocialRepository) FavoritesCount(ctx context.Context, articleID string) (int, error) {
	count := 0
	for _, articles := range m.Favorites {
		if articles[articleID] {
			count++
		}
	}
	return count, nil
}
