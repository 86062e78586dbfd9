package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blog-article-api/internal/api"
	"github.com/blog-article-api/internal/config"
	"github.com/blog-article-api/internal/mocks"
	"github.com/blog-article-api/internal/models"
	"github.com/blog-article-api/internal/repository"
	"github.com/blog-article-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

type testStore struct {
	users    *mocks.MockUserRepository
	articles *mocks.MockArticleRepository
	comments *mocks.MockCommentRepository
	social   *mocks.MockSocialRepository
}

func setupTestRouter() (*gin.Engine, *testStore) {
	gin.SetMode(gin.TestMode)

	users := mocks.NewMockUserRepository()
	social := mocks.NewMockSocialRepository()
	comments := mocks.NewMockCommentRepository()
	articles := mocks.NewMockArticleRepository(users, social, comments)

	repos := &repository.Repositories{
		User:    users,
		Article: articles,
		Comment: comments,
		Social:  social,
	}

	cfg := &config.Config{
		Server:     config.ServerConfig{Port: "8080"},
		Pagination: config.PaginationConfig{DefaultLimit: 20, MaxLimit: 100},
	}

	log := zerolog.Nop()
	router := api.NewRouter(service.NewServices(repos, log), cfg, log)

	return router, &testStore{users: users, articles: articles, comments: comments, social: social}
}

func seedUser(store *testStore, id, username string) {
	store.users.Create(context.Background(), &models.User{ID: id, Username: username, Email: username + "@test.com"})
}

func seedArticle(store *testStore, id, slug, authorID string, createdAt time.Time) {
	store.articles.Create(context.Background(), &models.Article{
		ID: id, Slug: slug, Title: "t", Body: "b", AuthorID: authorID,
		CreatedAt: createdAt, UpdatedAt: createdAt,
	})
}

func doJSON(router *gin.Engine, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
}

func TestGetArticles_DefaultPagination(t *testing.T) {
	router, store := setupTestRouter()
	seedUser(store, "user-a", "alice")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedArticle(store, fmt.Sprintf("art-%02d", i), fmt.Sprintf("slug-%02d", i), "user-a", base.Add(time.Duration(i)*time.Minute))
	}

	// No limit/offset: defaults of 20 and 0 apply; garbage values fall back too
	for _, path := range []string{"/api/articles", "/api/articles?limit=abc&offset=-5"} {
		w := doJSON(router, "GET", path, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}

		var resp models.ArticlesResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		if len(resp.Articles) != 20 {
			t.Errorf("%s: expected default page of 20, got %d", path, len(resp.Articles))
		}
		if resp.ArticlesCount != 25 {
			t.Errorf("%s: expected articlesCount 25, got %d", path, resp.ArticlesCount)
		}
		if resp.Articles[0].Slug != "slug-24" {
			t.Errorf("%s: expected newest first, got %s", path, resp.Articles[0].Slug)
		}
	}
}

func TestGetArticle_NotFound(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, "GET", "/api/articles/missing", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestCreateArticle(t *testing.T) {
	router, store := setupTestRouter()
	seedUser(store, "user-a", "alice")

	body := gin.H{"article": gin.H{"title": "Hello World", "body": "content", "tagList": []string{"go"}}}

	// Identity is required
	w := doJSON(router, "POST", "/api/articles", "", body)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without identity, got %d", w.Code)
	}

	w = doJSON(router, "POST", "/api/articles", "user-a", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Article models.ArticleResponse `json:"article"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !strings.HasPrefix(resp.Article.Slug, "hello-world-") {
		t.Errorf("Expected slug prefix hello-world-, got %q", resp.Article.Slug)
	}
	if resp.Article.Author.Username != "alice" {
		t.Errorf("Expected author alice, got %q", resp.Article.Author.Username)
	}
}

func TestCreateArticle_MissingTitleIsUnprocessable(t *testing.T) {
	router, store := setupTestRouter()
	seedUser(store, "user-a", "alice")

	w := doJSON(router, "POST", "/api/articles", "user-a", gin.H{"article": gin.H{"body": "content"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", w.Code)
	}
}

func TestCreateArticle_SlugConflict(t *testing.T) {
	router, store := setupTestRouter()
	seedUser(store, "user-a", "alice")
	store.articles.CreateError = &pq.Error{Code: "23505"}

	w := doJSON(router, "POST", "/api/articles", "user-a", gin.H{"article": gin.H{"title": "Hello", "body": "b"}})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", w.Code)
	}
}

func TestUpdateArticle_NonOwnerForbidden(t *testing.T) {
	router, store := setupTestRouter()
	seedUser(store, "user-a", "alice")
	seedUser(store, "user-b", "bob")
	seedArticle(store, "art-1", "hello-abc123", "user-a", time.Now())

	w := doJSON(router, "PUT", "/api/articles/hello-abc123", "user-b", gin.H{"article": gin.H{"body": "hijack"}})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", w.Code)
	}
}

func TestFavoriteFlow(t *testing.T) {
	router, store := setupTestRouter()
	seedUser(store, "user-a", "alice")
	seedUser(store, "user-b", "bob")
	seedArticle(store, "art-1", "hello-abc123", "user-a", time.Now())

	w := doJSON(router, "POST", "/api/articles/hello-abc123/favorite", "user-b", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Article models.ArticleResponse `json:"article"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Article.Favorited || resp.Article.FavoritesCount != 1 {
		t.Errorf("Expected favorited=true count=1, got %v/%d", resp.Article.Favorited, resp.Article.FavoritesCount)
	}

	w = doJSON(router, "DELETE", "/api/articles/hello-abc123/favorite", "user-b", nil)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Article.Favorited || resp.Article.FavoritesCount != 0 {
		t.Errorf("Expected favorited=false count=0 after unfavorite, got %v/%d", resp.Article.Favorited, resp.Article.FavoritesCount)
	}
}

func TestDeleteArticle_ReturnsAffectedRows(t *testing.T) {
	router, store := setupTestRouter()
	seedUser(store, "user-a", "alice")
	seedArticle(store, "art-1", "hello-abc123", "user-a", time.Now())

	w := doJSON(router, "DELETE", "/api/articles/hello-abc123", "user-a", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var result models.DeleteResult
	json.Unmarshal(w.Body.Bytes(), &result)
	if result.RowsAffected != 1 {
		t.Errorf("Expected rowsAffected 1, got %d", result.RowsAffected)
	}
}

func TestComments_EndToEnd(t *testing.T) {
	router, store := setupTestRouter()
	seedUser(store, "user-a", "alice")
	seedUser(store, "user-b", "bob")
	seedArticle(store, "art-1", "hello-abc123", "user-a", time.Now())

	w := doJSON(router, "POST", "/api/articles/hello-abc123/comments", "user-b", gin.H{"comment": gin.H{"body": "great post"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		Comment models.CommentResponse `json:"comment"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	// Anyone can list comments
	w = doJSON(router, "GET", "/api/articles/hello-abc123/comments", "", nil)
	var listing models.CommentsResponse
	json.Unmarshal(w.Body.Bytes(), &listing)
	if len(listing.Comments) != 1 || listing.Comments[0].Body != "great post" {
		t.Fatalf("Expected 1 comment 'great post', got %+v", listing.Comments)
	}

	// Deleting someone else's comment is forbidden
	w = doJSON(router, "DELETE", "/api/articles/hello-abc123/comments/"+created.Comment.ID, "user-a", nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", w.Code)
	}

	// Deleting a missing comment is 404
	w = doJSON(router, "DELETE", "/api/articles/hello-abc123/comments/missing", "user-b", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestFeed_RequiresIdentity(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, "GET", "/api/articles/feed", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestProfileFollow(t *testing.T) {
	router, store := setupTestRouter()
	seedUser(store, "user-a", "alice")
	seedUser(store, "user-b", "bob")

	w := doJSON(router, "POST", "/api/profiles/alice/follow", "user-b", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp models.ProfileResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Profile.Following {
		t.Error("Expected following=true after follow")
	}

	// Self-follow is rejected
	w = doJSON(router, "POST", "/api/profiles/alice/follow", "user-a", nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for self-follow, got %d", w.Code)
	}

	// Unknown profile is 404
	w = doJSON(router, "GET", "/api/profiles/ghost", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
