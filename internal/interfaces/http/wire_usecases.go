package http

import (
	authusecases "github.com/soripaulos/medical-quiz-app-sub001/internal/application/authsession/usecases"
	questionusecases "github.com/soripaulos/medical-quiz-app-sub001/internal/application/question/usecases"
	quizusecases "github.com/soripaulos/medical-quiz-app-sub001/internal/application/quizsession/usecases"
	reportusecases "github.com/soripaulos/medical-quiz-app-sub001/internal/application/report/usecases"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/sessioncache"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/config"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/metrics"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/db"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/services/markdown"
)

// allUseCases holds every use case the HTTP layer dispatches to.
type allUseCases struct {
	// Auth sessions
	createAuthSessionUC   *authusecases.CreateAuthSessionUseCase
	listAuthSessionsUC    *authusecases.ListAuthSessionsUseCase
	endAuthSessionUC      *authusecases.EndAuthSessionUseCase
	endAllAuthSessionsUC  *authusecases.EndAllAuthSessionsUseCase
	touchAuthSessionUC    *authusecases.TouchAuthSessionUseCase
	cleanupAuthSessionsUC *authusecases.CleanupAuthSessionsUseCase

	// Quiz sessions
	createQuizSessionUC *quizusecases.CreateQuizSessionUseCase
	activateSessionUC   *quizusecases.ActivateSessionUseCase
	recordAnswerUC      *quizusecases.RecordAnswerUseCase
	flagQuestionUC      *quizusecases.FlagQuestionUseCase
	pauseSessionUC      *quizusecases.PauseSessionUseCase
	endSessionUC        *quizusecases.EndSessionUseCase
	getActiveTimeUC     *quizusecases.GetActiveTimeUseCase
	syncTimeUC          *quizusecases.SyncTimeUseCase
	getResultsUC        *quizusecases.GetResultsUseCase
	listHistoryUC       *quizusecases.ListHistoryUseCase
	getActiveSessionUC  *quizusecases.GetActiveQuizSessionUseCase
	cleanupOrphansUC    *quizusecases.CleanupOrphanedSessionsUseCase
	sweepAllUC          *quizusecases.SweepAllUseCase

	// Questions and notes
	listQuestionsUC *questionusecases.ListQuestionsUseCase
	saveNoteUC      *questionusecases.SaveNoteUseCase

	// Reporting
	summaryUC  *reportusecases.SummaryUseCase
	progressUC *reportusecases.ProgressUseCase

	reconciler *sessioncache.Reconciler
}

func newUseCases(
	repos *repositories,
	txMgr db.Transactor,
	cfg *config.Config,
	m *metrics.Metrics,
	store sessioncache.Store,
	log logger.Interface,
) *allUseCases {
	markdownSvc := markdown.NewMarkdownService()
	tracker := quizusecases.NewActivityTracker(repos.quizSessionRepo, cfg.Quiz.ActivityGap, log)

	ucs := &allUseCases{}

	ucs.createAuthSessionUC = authusecases.NewCreateAuthSessionUseCase(
		repos.authSessionRepo, repos.profileRepo, txMgr, cfg.Session.MaxConcurrent, log,
	).WithRecorder(m)
	ucs.listAuthSessionsUC = authusecases.NewListAuthSessionsUseCase(repos.authSessionRepo, log)
	ucs.endAuthSessionUC = authusecases.NewEndAuthSessionUseCase(repos.authSessionRepo, log)
	ucs.endAllAuthSessionsUC = authusecases.NewEndAllAuthSessionsUseCase(repos.authSessionRepo, log)
	ucs.touchAuthSessionUC = authusecases.NewTouchAuthSessionUseCase(repos.authSessionRepo, log)
	ucs.cleanupAuthSessionsUC = authusecases.NewCleanupAuthSessionsUseCase(repos.authSessionRepo, cfg.Session.RetentionDays, log)

	ucs.cleanupOrphansUC = quizusecases.NewCleanupOrphanedSessionsUseCase(
		repos.quizSessionRepo, repos.answerRepo, repos.profileRepo, cfg.Quiz.AbandonAfter, m, log,
	)
	ucs.createQuizSessionUC = quizusecases.NewCreateQuizSessionUseCase(
		repos.quizSessionRepo, repos.questionRepo, repos.profileRepo, txMgr, ucs.cleanupOrphansUC, m, log,
	)
	ucs.activateSessionUC = quizusecases.NewActivateSessionUseCase(repos.quizSessionRepo, repos.profileRepo, tracker, m, log)
	ucs.recordAnswerUC = quizusecases.NewRecordAnswerUseCase(
		repos.quizSessionRepo, repos.answerRepo, repos.progressRepo, tracker, m, log,
	)
	ucs.flagQuestionUC = quizusecases.NewFlagQuestionUseCase(repos.quizSessionRepo, repos.progressRepo, log)
	ucs.pauseSessionUC = quizusecases.NewPauseSessionUseCase(repos.quizSessionRepo, repos.answerRepo, tracker, m, log)
	ucs.endSessionUC = quizusecases.NewEndSessionUseCase(repos.quizSessionRepo, repos.answerRepo, repos.profileRepo, m, log)
	ucs.getActiveTimeUC = quizusecases.NewGetActiveTimeUseCase(repos.quizSessionRepo, log)
	ucs.syncTimeUC = quizusecases.NewSyncTimeUseCase(repos.quizSessionRepo, log)
	ucs.getResultsUC = quizusecases.NewGetResultsUseCase(
		repos.quizSessionRepo, repos.questionRepo, repos.answerRepo, repos.progressRepo, repos.noteRepo, markdownSvc, log,
	)
	ucs.listHistoryUC = quizusecases.NewListHistoryUseCase(repos.quizSessionRepo, log)
	ucs.getActiveSessionUC = quizusecases.NewGetActiveQuizSessionUseCase(repos.quizSessionRepo, repos.profileRepo, log)
	ucs.sweepAllUC = quizusecases.NewSweepAllUseCase(
		repos.quizSessionRepo, repos.answerRepo, repos.profileRepo, cfg.Quiz.AbandonAfter, cfg.Quiz.SweepBatch, m, log,
	)

	ucs.listQuestionsUC = questionusecases.NewListQuestionsUseCase(repos.questionRepo, log)
	ucs.saveNoteUC = questionusecases.NewSaveNoteUseCase(repos.noteRepo, repos.questionRepo, markdownSvc, log)

	ucs.summaryUC = reportusecases.NewSummaryUseCase(repos.quizSessionRepo, repos.answerRepo, log)
	ucs.progressUC = reportusecases.NewProgressUseCase(repos.quizSessionRepo, repos.answerRepo, log)

	ucs.reconciler = sessioncache.NewReconciler(
		store, repos.quizSessionRepo, repos.answerRepo, repos.profileRepo, cfg.Cache.TTL, log,
	)

	return ucs
}
