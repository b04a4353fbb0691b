package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/permission"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/question"
)

type QuestionRouteConfig struct {
	Handler *question.Handler
	Guards  *Guards
}

func SetupQuestionRoutes(api *gin.RouterGroup, cfg *QuestionRouteConfig) {
	g := cfg.Guards

	questions := api.Group("/questions")
	questions.Use(g.authenticated()...)
	{
		questions.GET("", g.can(permission.ResourceQuestion, permission.ActionRead), cfg.Handler.ListQuestions)
	}

	notes := api.Group("/notes")
	notes.Use(g.authenticated()...)
	{
		notes.PUT("/:question_id", g.can(permission.ResourceNote, permission.ActionWrite), cfg.Handler.SaveNote)
	}
}
