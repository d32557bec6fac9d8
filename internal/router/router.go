package router

import (
	"github.com/PresidentDoug/my-game-sync/internal/config"
	"github.com/PresidentDoug/my-game-sync/internal/handler"
	"github.com/PresidentDoug/my-game-sync/internal/middleware"
	"github.com/PresidentDoug/my-game-sync/internal/pkg"
	"github.com/PresidentDoug/my-game-sync/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InitRouter 组装服务和路由
func InitRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	emailSvc := service.NewEmailService(pkg.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	userHandler := handler.NewUserHandler(service.NewUserService(db, emailSvc))
	emailHandler := handler.NewEmailHandler(emailSvc)
	profileHandler := handler.NewProfileHandler(service.NewProfileService(db))
	guildHandler := handler.NewGuildHandler(service.NewGuildService(db))
	sessionHandler := handler.NewSessionHandler(service.NewSessionService(db))
	feedbackHandler := handler.NewFeedbackHandler(service.NewFeedbackService(db))

	r := gin.Default()

	api := r.Group("/api")
	{
		// 无需登录
		api.POST("/email/:scope/code", emailHandler.SendCode)
		api.POST("/user/register", userHandler.Register)
		api.POST("/user/verify", userHandler.VerifyEmail)
		api.POST("/user/login", userHandler.Login)
		api.POST("/user/reset", userHandler.ResetPassword)
		api.POST("/token/refresh", userHandler.TokenRefresh)

		// 登录态
		auth := api.Group("", middleware.Auth())
		{
			auth.POST("/user/logout", userHandler.Logout)
			auth.POST("/auth/change-password", userHandler.ChangePassword)

			auth.GET("/profile", profileHandler.GetOwn)
			auth.PUT("/profile", profileHandler.Save)
			auth.GET("/profile/:uid", profileHandler.GetPublic)

			auth.POST("/guild/create", guildHandler.Create)
			auth.POST("/guild/join-by-invite", guildHandler.JoinByInvite)
			auth.POST("/guild/:id/toggle", guildHandler.Toggle)
			auth.DELETE("/guild/:id", guildHandler.Disband)
			auth.GET("/guild/list", guildHandler.List)
			auth.GET("/guild/:id/members", guildHandler.Members)

			auth.POST("/session/create", sessionHandler.Create)
			auth.POST("/session/:id/toggle", sessionHandler.Toggle)
			auth.DELETE("/session/:id", sessionHandler.Delete)
			auth.GET("/session/list", sessionHandler.List)
			auth.GET("/session/:id/seats", sessionHandler.Seats)

			auth.POST("/feedback", feedbackHandler.Submit)
			auth.GET("/feedback/list", feedbackHandler.List)
		}
	}

	return r
}
