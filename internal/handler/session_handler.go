package handler

import (
	"net/http"
	"strconv"

	"github.com/PresidentDoug/my-game-sync/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	svc *service.SessionService
}

type CreateSessionReq struct {
	GuildID        uint64  `json:"guild_id"`
	GameTitle      string  `json:"game_title" binding:"required"`
	Date           string  `json:"date" binding:"required"`
	StartTime      string  `json:"start_time" binding:"required"`
	DurationHours  float64 `json:"duration_hours"`
	MaxOpenings    int     `json:"max_openings"`
	IsStreaming    bool    `json:"is_streaming"`
	StreamPlatform string  `json:"stream_platform"`
}

func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Create 建场次，房主自动占第一个位置
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	sess, err := h.svc.Create(currentUserID(c), req.GuildID, service.SessionDraft{
		GameTitle:      req.GameTitle,
		Date:           req.Date,
		StartTime:      req.StartTime,
		DurationHours:  req.DurationHours,
		MaxOpenings:    req.MaxOpenings,
		IsStreaming:    req.IsStreaming,
		StreamPlatform: req.StreamPlatform,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Toggle 报名/退出，满员返回 409
func (h *SessionHandler) Toggle(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid session id"})
		return
	}

	joined, err := h.svc.Toggle(c.Request.Context(), currentUserID(c), sessionID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"joined": joined})
}

// Delete 仅房主可删
func (h *SessionHandler) Delete(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid session id"})
		return
	}

	if err := h.svc.Delete(currentUserID(c), sessionID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// List 按日期分组的场次列表。guild_id 选一个公会，不传就看所有已加入的；
// search 按游戏名模糊过滤。
func (h *SessionHandler) List(c *gin.Context) {
	guildID, _ := strconv.ParseUint(c.DefaultQuery("guild_id", "0"), 10, 64)
	search := c.Query("search")

	groups, err := h.svc.ListGrouped(currentUserID(c), guildID, search)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": groups})
}

// Seats 座位占用情况
func (h *SessionHandler) Seats(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid session id"})
		return
	}

	count, capacity, err := h.svc.SeatCount(c.Request.Context(), sessionID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count, "capacity": capacity})
}
