package handlers

import (
	"net/http"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/middleware"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments services.CommentService
	// onAppend runs after a successful append so the board cache drops its
	// stale snapshot. May be nil when no cache is wired.
	onAppend func()
}

func NewCommentHandler(comments services.CommentService, onAppend func()) *CommentHandler {
	return &CommentHandler{comments: comments, onAppend: onAppend}
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.comments.Append(c.Request.Context(), actor, id, req.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if h.onAppend != nil {
		h.onAppend()
	}
	c.JSON(http.StatusCreated, view)
}
