package handler

import (
	"net/http"
	"strconv"

	"github.com/PresidentDoug/my-game-sync/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

type SaveProfileReq struct {
	DisplayName   string            `json:"display_name" binding:"required"`
	Theme         string            `json:"theme" binding:"required"`
	Handles       map[string]string `json:"handles"`
	ShowcaseGames []string          `json:"showcase_games"`
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// GetOwn 自己的完整资料
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	own, err := h.svc.GetOwn(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, own)
}

// Save 保存资料，改名会同步到成员表和场次表
func (h *ProfileHandler) Save(c *gin.Context) {
	var req SaveProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	err := h.svc.Save(currentUserID(c), service.ProfilePatch{
		DisplayName:   req.DisplayName,
		Theme:         req.Theme,
		Handles:       req.Handles,
		ShowcaseGames: req.ShowcaseGames,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// GetPublic 查别人的公开资料
func (h *ProfileHandler) GetPublic(c *gin.Context) {
	uid, err := strconv.ParseUint(c.Param("uid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid uid"})
		return
	}

	pub, err := h.svc.Public(uid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pub)
}
