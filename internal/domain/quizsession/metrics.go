package quizsession

// Metrics is the answer breakdown of a session.
type Metrics struct {
	Correct    int `json:"correct_answers"`
	Incorrect  int `json:"incorrect_answers"`
	Unanswered int `json:"unanswered_questions"`
}

// ComputeMetrics derives the breakdown for a session of total questions.
// Unanswered never goes negative.
func ComputeMetrics(total, correct, incorrect int) Metrics {
	unanswered := total - (correct + incorrect)
	if unanswered < 0 {
		unanswered = 0
	}
	return Metrics{
		Correct:    correct,
		Incorrect:  incorrect,
		Unanswered: unanswered,
	}
}

// Answered is the number of questions with a recorded answer.
func (m Metrics) Answered() int {
	return m.Correct + m.Incorrect
}

// Score is correct/(correct+incorrect) as a percentage, 0 when nothing was answered.
func (m Metrics) Score() float64 {
	answered := m.Answered()
	if answered == 0 {
		return 0
	}
	return float64(m.Correct) / float64(answered) * 100
}
