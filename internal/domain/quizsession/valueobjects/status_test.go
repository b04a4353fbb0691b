package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStatus_Transitions(t *testing.T) {
	tests := []struct {
		from SessionStatus
		to   SessionStatus
		ok   bool
	}{
		{StatusCreated, StatusActive, true},
		{StatusActive, StatusPaused, true},
		{StatusPaused, StatusActive, true},
		{StatusPaused, StatusCompleted, true},
		{StatusActive, StatusAbandoned, true},
		{StatusCompleted, StatusActive, false},
		{StatusAbandoned, StatusCompleted, false},
		{StatusCompleted, StatusAbandoned, false},
		{StatusActive, StatusCreated, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSessionStatus_Predicates(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusAbandoned.IsTerminal())
	assert.False(t, StatusPaused.IsTerminal())

	assert.True(t, StatusCreated.AcceptsAnswers())
	assert.True(t, StatusActive.AcceptsAnswers())
	assert.False(t, StatusPaused.AcceptsAnswers())

	_, err := NewSessionStatus("running")
	assert.Error(t, err)
}

func TestSessionType(t *testing.T) {
	assert.True(t, TypeExam.IsTimed())
	assert.False(t, TypePractice.IsTimed())
	assert.Equal(t, "exam", TypeExam.String())

	typ, err := NewSessionType(TypePractice.String())
	assert.NoError(t, err)
	assert.Equal(t, TypePractice, typ)

	_, err = NewSessionType("mock")
	assert.Error(t, err)
}
