package handler

import (
	"net/http"
	"strconv"

	"github.com/PresidentDoug/my-game-sync/internal/service"

	"github.com/gin-gonic/gin"
)

type GuildHandler struct {
	svc *service.GuildService
}

type CreateGuildReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
}

type JoinByInviteReq struct {
	Code string `json:"code" binding:"required"`
}

func NewGuildHandler(svc *service.GuildService) *GuildHandler {
	return &GuildHandler{svc: svc}
}

// Create 建公会，创建者自动入会
func (h *GuildHandler) Create(c *gin.Context) {
	var req CreateGuildReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	guild, err := h.svc.CreateGuild(currentUserID(c), req.Name, req.Description, req.IsPrivate)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, guild)
}

// JoinByInvite 邀请码入会
func (h *GuildHandler) JoinByInvite(c *gin.Context) {
	var req JoinByInviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	guild, err := h.svc.JoinByInvite(currentUserID(c), req.Code)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, guild)
}

// Toggle 已入会则退会，否则入会。最后一人退出会顺带解散。
func (h *GuildHandler) Toggle(c *gin.Context) {
	guildID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid guild id"})
		return
	}

	joined, disbanded, err := h.svc.ToggleMembership(currentUserID(c), guildID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"joined": joined, "disbanded": disbanded})
}

// Disband owner 解散公会
func (h *GuildHandler) Disband(c *gin.Context) {
	guildID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid guild id"})
		return
	}

	if err := h.svc.Disband(currentUserID(c), guildID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *GuildHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	guilds, err := h.svc.ListGuilds(page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guilds": guilds})
}

func (h *GuildHandler) Members(c *gin.Context) {
	guildID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid guild id"})
		return
	}

	members, err := h.svc.Members(guildID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}
