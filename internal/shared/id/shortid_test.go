package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuizSessionID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		qsID, err := NewQuizSessionID()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(qsID, "qs_"))
		assert.Len(t, qsID, len("qs_")+DefaultLength)
		assert.NoError(t, ValidatePrefix(qsID, PrefixQuizSession))
		seen[qsID] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"qs_abc123", false},
		{"as_abc123", true},
		{"qs_", true},
		{"qsabc", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidatePrefix(tt.input, PrefixQuizSession)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewAuthSessionID(t *testing.T) {
	assert.True(t, IsUUID(NewAuthSessionID()))
	assert.False(t, IsUUID("qs_abc"))
}
