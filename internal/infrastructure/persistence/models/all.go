package models

// All lists every model, in dependency order, for AutoMigrate in tests and local sqlite runs.
func All() []interface{} {
	return []interface{}{
		&UserProfileModel{},
		&AuthSessionModel{},
		&QuestionModel{},
		&QuizSessionModel{},
		&SessionQuestionModel{},
		&UserAnswerModel{},
		&UserQuestionProgressModel{},
		&UserNoteModel{},
	}
}
