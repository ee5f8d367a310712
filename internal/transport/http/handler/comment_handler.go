package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artshare/internal/service"
	resp "artshare/internal/transport/http/response"
)

type CommentHandler struct {
	comments *service.CommentService
	log      *zap.Logger
}

func NewCommentHandler(comments *service.CommentService, l *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, log: l}
}

// POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	var in struct {
		WorkID  uint   `json:"workId"`
		UserID  uint   `json:"userId"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	view, err := h.comments.Create(c.Request.Context(), in.WorkID, in.UserID, in.Content)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GET /comments/post/:workId
func (h *CommentHandler) ListForPost(c *gin.Context) {
	views, err := h.comments.ListForPost(c.Request.Context(), parseUint(c.Param("workId")))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// DELETE /comments/:id — requester id from the JSON body.
func (h *CommentHandler) Delete(c *gin.Context) {
	var in struct {
		UserID uint `json:"userId"`
	}
	_ = c.ShouldBindJSON(&in)
	if err := h.comments.Delete(c.Request.Context(), parseUint(c.Param("id")), in.UserID); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
