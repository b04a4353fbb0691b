package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/permission"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/quizsession"
)

type QuizSessionRouteConfig struct {
	Handler *quizsession.Handler
	Guards  *Guards
}

func SetupQuizSessionRoutes(api *gin.RouterGroup, cfg *QuizSessionRouteConfig) {
	g := cfg.Guards
	read := g.can(permission.ResourceQuizSession, permission.ActionRead)
	write := g.can(permission.ResourceQuizSession, permission.ActionWrite)

	sessions := api.Group("/quiz-sessions")
	sessions.Use(g.authenticated()...)
	{
		sessions.POST("", write, cfg.Handler.CreateSession)
		sessions.GET("", read, cfg.Handler.ListHistory)

		// Specific paths before /:id
		sessions.GET("/active", read, cfg.Handler.GetActiveSession)
		sessions.POST("/cleanup", write, cfg.Handler.CleanupOrphans)

		sessions.POST("/:id/start", write, cfg.Handler.StartSession)
		sessions.POST("/:id/resume", write, cfg.Handler.ResumeSession)
		sessions.POST("/:id/pause", write, cfg.Handler.PauseSession)
		sessions.POST("/:id/end", write, cfg.Handler.EndSession)
		sessions.GET("/:id/active-time", read, cfg.Handler.GetActiveTime)
		sessions.GET("/:id/results", read, cfg.Handler.GetResults)

		// High-frequency writes share one budget per user
		limited := g.RateLimiter.Limit("quiz-writes")
		sessions.PUT("/:id/answers/:question_id", limited, write, cfg.Handler.RecordAnswer)
		sessions.PUT("/:id/flags/:question_id", limited, write, cfg.Handler.FlagQuestion)
		sessions.POST("/:id/sync", limited, write, cfg.Handler.SyncTime)
	}
}
