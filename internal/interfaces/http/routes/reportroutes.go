package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/permission"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/report"
)

type ReportRouteConfig struct {
	Handler *report.Handler
	Guards  *Guards
}

func SetupReportRoutes(api *gin.RouterGroup, cfg *ReportRouteConfig) {
	g := cfg.Guards

	reports := api.Group("/reports")
	reports.Use(g.authenticated()...)
	reports.Use(g.can(permission.ResourceReport, permission.ActionRead))
	{
		reports.GET("/summary", cfg.Handler.Summary)
		reports.GET("/progress", cfg.Handler.Progress)
	}
}
