package valueobjects

import "fmt"

type SessionStatus string

const (
	StatusCreated   SessionStatus = "created"
	StatusActive    SessionStatus = "active"
	StatusPaused    SessionStatus = "paused"
	StatusCompleted SessionStatus = "completed"
	StatusAbandoned SessionStatus = "abandoned"
)

var sessionStatusTransitions = map[SessionStatus][]SessionStatus{
	StatusCreated: {
		StatusActive,
		StatusPaused,
		StatusCompleted,
		StatusAbandoned,
	},
	StatusActive: {
		StatusPaused,
		StatusCompleted,
		StatusAbandoned,
	},
	StatusPaused: {
		StatusActive,
		StatusCompleted,
		StatusAbandoned,
	},
}

func (s SessionStatus) String() string {
	return string(s)
}

func (s SessionStatus) IsValid() bool {
	switch s {
	case StatusCreated, StatusActive, StatusPaused, StatusCompleted, StatusAbandoned:
		return true
	}
	return false
}

func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range sessionStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// AcceptsAnswers reports whether answers may be recorded in this status.
func (s SessionStatus) AcceptsAnswers() bool {
	return s == StatusCreated || s == StatusActive
}

func NewSessionStatus(s string) (SessionStatus, error) {
	st := SessionStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid session status: %s", s)
	}
	return st, nil
}

type SessionType string

const (
	TypePractice SessionType = "practice"
	TypeExam     SessionType = "exam"
)

func (t SessionType) String() string {
	return string(t)
}

func (t SessionType) IsValid() bool {
	return t == TypePractice || t == TypeExam
}

// IsTimed reports whether sessions of this type count down a time limit.
func (t SessionType) IsTimed() bool {
	return t == TypeExam
}

func NewSessionType(s string) (SessionType, error) {
	t := SessionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid session type: %s", s)
	}
	return t, nil
}
