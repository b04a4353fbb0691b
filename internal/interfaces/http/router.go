package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/middleware"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/routes"

	_ "github.com/soripaulos/medical-quiz-app-sub001/docs"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.Metrics(c.metrics))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.ErrorHandler(c.log))

	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	c.engine.GET("/metrics", gin.WrapH(c.metrics.Handler()))
	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	guards := &routes.Guards{
		Auth:        c.authMiddleware,
		Permission:  c.permissionMiddleware,
		RateLimiter: c.rateLimiter,
	}

	api := c.engine.Group("/api")

	routes.SetupAuthSessionRoutes(api, &routes.AuthSessionRouteConfig{
		Handler: c.hdlrs.authSessionHandler,
		Guards:  guards,
	})
	routes.SetupQuizSessionRoutes(api, &routes.QuizSessionRouteConfig{
		Handler: c.hdlrs.quizSessionHandler,
		Guards:  guards,
	})
	routes.SetupQuestionRoutes(api, &routes.QuestionRouteConfig{
		Handler: c.hdlrs.questionHandler,
		Guards:  guards,
	})
	routes.SetupSessionCacheRoutes(api, &routes.SessionCacheRouteConfig{
		Handler: c.hdlrs.sessionCacheHandler,
		Guards:  guards,
	})
	routes.SetupReportRoutes(api, &routes.ReportRouteConfig{
		Handler: c.hdlrs.reportHandler,
		Guards:  guards,
	})
	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		HousekeepingHandler: c.hdlrs.housekeepingHandler,
		Guards:              guards,
	})
}

// GetEngine returns the gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}
