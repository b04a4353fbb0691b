package common

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/testutil"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/constants"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
)

func TestUserID(t *testing.T) {
	c, _ := testutil.NewTestContext(http.MethodGet, "/", nil)
	_, err := UserID(c)
	assert.True(t, errors.IsUnauthorizedError(err))

	testutil.SetAuthContext(c, "user-1")
	userID, err := UserID(c)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "test-session-id", SessionID(c))
}

func TestClientID(t *testing.T) {
	c, _ := testutil.NewTestContext(http.MethodGet, "/", nil)
	assert.Equal(t, constants.DefaultClientID, ClientID(c))

	c.Request.Header.Set(constants.HeaderXClientID, " tablet ")
	assert.Equal(t, "tablet", ClientID(c))
}

func TestParseQuestionFilter(t *testing.T) {
	c, _ := testutil.NewTestContext(http.MethodGet, "/", nil)
	testutil.SetQueryParams(c, map[string]string{
		"specialty":  "Cardiology, Neurology,,",
		"year":       "2021,2022",
		"difficulty": "hard",
	})

	filter, err := ParseQuestionFilter(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology", "Neurology"}, filter.Specialties)
	assert.Equal(t, []int{2021, 2022}, filter.Years)
	assert.Equal(t, []string{"hard"}, filter.Difficulties)
	assert.Nil(t, filter.ExamTypes)
}

func TestParseQuestionFilter_BadYear(t *testing.T) {
	c, _ := testutil.NewTestContext(http.MethodGet, "/", nil)
	testutil.SetQueryParams(c, map[string]string{"year": "twenty"})

	_, err := ParseQuestionFilter(c)
	assert.True(t, errors.IsValidationError(err))
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		name    string
		query   map[string]string
		want    int
		wantErr bool
	}{
		{"absent", nil, 0, false},
		{"zero", map[string]string{"days": "0"}, 0, true},
		{"negative", map[string]string{"days": "-3"}, 0, true},
		{"not a number", map[string]string{"days": "week"}, 0, true},
		{"positive", map[string]string{"days": "14"}, 14, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testutil.NewTestContext(http.MethodGet, "/", nil)
			if tt.query != nil {
				testutil.SetQueryParams(c, tt.query)
			}

			days, err := ParseDays(c)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestBindJSON(t *testing.T) {
	type body struct {
		Choice string `json:"choice" binding:"required" validate:"choice_letter"`
	}

	tests := []struct {
		name    string
		payload map[string]any
		wantErr bool
	}{
		{"valid letter", map[string]any{"choice": "C"}, false},
		{"missing", map[string]any{}, true},
		{"not a letter", map[string]any{"choice": "CC"}, true},
		{"out of range", map[string]any{"choice": "Z"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testutil.NewTestContext(http.MethodPost, "/", tt.payload)
			var b body
			err := BindJSON(c, &b)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "C", b.Choice)
				return
			}
			assert.True(t, errors.IsValidationError(err))
		})
	}
}
