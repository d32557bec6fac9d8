package handler

import (
	"net/http"
	"strconv"

	"github.com/PresidentDoug/my-game-sync/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	svc *service.FeedbackService
}

type SubmitFeedbackReq struct {
	Message string `json:"message" binding:"required"`
}

func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// Submit 提交反馈
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req SubmitFeedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.Submit(currentUserID(c), req.Message); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "thanks for your feedback"})
}

func (h *FeedbackHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	list, err := h.svc.List(limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": list})
}
