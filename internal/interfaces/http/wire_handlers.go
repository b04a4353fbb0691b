package http

import (
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers"
	adminHandlers "github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/admin"
	authSessionHandlers "github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/authsession"
	questionHandlers "github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/question"
	quizSessionHandlers "github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/quizsession"
	reportHandlers "github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/report"
	sessionCacheHandlers "github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/sessioncache"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler       *handlers.HealthHandler
	authSessionHandler  *authSessionHandlers.Handler
	quizSessionHandler  *quizSessionHandlers.Handler
	questionHandler     *questionHandlers.Handler
	sessionCacheHandler *sessionCacheHandlers.Handler
	reportHandler       *reportHandlers.Handler
	housekeepingHandler *adminHandlers.HousekeepingHandler
}

func newHandlers(ucs *allUseCases, checks map[string]handlers.Pinger, log logger.Interface) *allHandlers {
	return &allHandlers{
		healthHandler: handlers.NewHealthHandler(checks, log),
		authSessionHandler: authSessionHandlers.NewHandler(
			ucs.createAuthSessionUC, ucs.listAuthSessionsUC, ucs.endAuthSessionUC, ucs.endAllAuthSessionsUC, log,
		),
		quizSessionHandler: quizSessionHandlers.NewHandler(quizSessionHandlers.Executors{
			Create:     ucs.createQuizSessionUC,
			Activate:   ucs.activateSessionUC,
			Record:     ucs.recordAnswerUC,
			Flag:       ucs.flagQuestionUC,
			Pause:      ucs.pauseSessionUC,
			End:        ucs.endSessionUC,
			ActiveTime: ucs.getActiveTimeUC,
			Sync:       ucs.syncTimeUC,
			Results:    ucs.getResultsUC,
			History:    ucs.listHistoryUC,
			GetActive:  ucs.getActiveSessionUC,
			Cleanup:    ucs.cleanupOrphansUC,
		}, log),
		questionHandler:     questionHandlers.NewHandler(ucs.listQuestionsUC, ucs.saveNoteUC, log),
		sessionCacheHandler: sessionCacheHandlers.NewHandler(ucs.reconciler, log),
		reportHandler:       reportHandlers.NewHandler(ucs.summaryUC, ucs.progressUC, log),
		housekeepingHandler: adminHandlers.NewHousekeepingHandler(ucs.cleanupAuthSessionsUC, ucs.sweepAllUC, log),
	}
}
