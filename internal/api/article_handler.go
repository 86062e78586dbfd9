package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blog-article-api/internal/config"
	"github.com/blog-article-api/internal/models"
	"github.com/blog-article-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// GetArticles handles GET /api/articles?tag=&author=&favorited=&limit=&offset=
func (h *ArticleHandler) GetArticles(c *gin.Context) {
	filter := models.ListFilter{
		Tag:         c.Query("tag"),
		Author:      c.Query("author"),
		FavoritedBy: c.Query("favorited"),
	}
	filter.Limit, filter.Offset = h.parsePage(c)

	resp, err := h.services.Article.GetArticles(c.Request.Context(), viewerID(c), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetFeed handles GET /api/articles/feed?limit=&offset=
func (h *ArticleHandler) GetFeed(c *gin.Context) {
	var filter models.FeedFilter
	filter.Limit, filter.Offset = h.parsePage(c)

	resp, err := h.services.Article.GetFeed(c.Request.Context(), viewerID(c), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetArticle handles GET /api/articles/:slug
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	resp, err := h.services.Article.GetArticle(c.Request.Context(), viewerID(c), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": resp})
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req struct {
		Article models.CreateArticleInput `json:"article" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "title and body are required"})
		return
	}

	resp, err := h.services.Article.Create(c.Request.Context(), viewerID(c), req.Article)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"article": resp})
}

// Update handles PUT /api/articles/:slug
func (h *ArticleHandler) Update(c *gin.Context) {
	var req struct {
		Article models.UpdateArticleInput `json:"article" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid article patch"})
		return
	}

	resp, err := h.services.Article.Update(c.Request.Context(), viewerID(c), c.Param("slug"), req.Article)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": resp})
}

// Delete handles DELETE /api/articles/:slug
func (h *ArticleHandler) Delete(c *gin.Context) {
	result, err := h.services.Article.Delete(c.Request.Context(), viewerID(c), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Favorite handles POST /api/articles/:slug/favorite
func (h *ArticleHandler) Favorite(c *gin.Context) {
	resp, err := h.services.Article.Favorite(c.Request.Context(), viewerID(c), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": resp})
}

// Unfavorite handles DELETE /api/articles/:slug/favorite
func (h *ArticleHandler) Unfavorite(c *gin.Context) {
	resp, err := h.services.Article.Unfavorite(c.Request.Context(), viewerID(c), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": resp})
}

// parsePage coerces limit/offset query params, falling back to defaults
// for absent, unparsable or negative values
func (h *ArticleHandler) parsePage(c *gin.Context) (limit, offset int) {
	limit = h.cfg.Pagination.DefaultLimit
	offset = models.DefaultOffset

	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v >= 0 {
		limit = v
	}
	if limit > h.cfg.Pagination.MaxLimit {
		limit = h.cfg.Pagination.MaxLimit
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

func (h *ArticleHandler) writeError(c *gin.Context, err error) {
	writeError(c, h.log, err)
}

// writeError maps service errors to protocol status codes
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
