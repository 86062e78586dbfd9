package api

import (
	"net/http"

	"github.com/blog-article-api/internal/models"
	"github.com/blog-article-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles the comment sub-resource of articles
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// AddComment handles POST /api/articles/:slug/comments
func (h *CommentHandler) AddComment(c *gin.Context) {
	var req struct {
		Comment models.CreateCommentInput `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "comment body is required"})
		return
	}

	resp, err := h.services.Article.AddComment(c.Request.Context(), viewerID(c), c.Param("slug"), req.Comment)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": resp})
}

// GetComments handles GET /api/articles/:slug/comments
func (h *CommentHandler) GetComments(c *gin.Context) {
	comments, err := h.services.Article.GetComments(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.CommentsResponse{Comments: comments})
}

// DeleteComment handles DELETE /api/articles/:slug/comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	result, err := h.services.Article.DeleteComment(c.Request.Context(), viewerID(c), c.Param("slug"), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
