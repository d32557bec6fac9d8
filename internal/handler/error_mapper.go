package handler

import (
	"errors"
	"net/http"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// 领域错误到 HTTP 状态码的统一映射
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, model.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidCode),
		errors.Is(err, model.ErrAlreadyMember),
		errors.Is(err, model.ErrPrivateGuild),
		errors.Is(err, model.ErrOwnerMustDisband),
		errors.Is(err, model.ErrInvalidTarget),
		errors.Is(err, model.ErrNotMember):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrEmailNotVerified):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	default:
		// 库/驱动等未知错误不把细节透给客户端
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}

func currentUserID(c *gin.Context) uint64 {
	userIDAny, _ := c.Get("user_id")
	userID, _ := userIDAny.(uint64)
	return userID
}
