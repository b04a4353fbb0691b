package quizsession

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name                  string
		total, correct, wrong int
		want                  Metrics
		wantScore             float64
	}{
		{"no answers", 5, 0, 0, Metrics{Unanswered: 5}, 0},
		{"partial", 5, 2, 1, Metrics{Correct: 2, Incorrect: 1, Unanswered: 2}, 200.0 / 3},
		{"all correct", 4, 4, 0, Metrics{Correct: 4, Unanswered: 0}, 100},
		{"more answers than total", 2, 2, 1, Metrics{Correct: 2, Incorrect: 1}, 200.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics(tt.total, tt.correct, tt.wrong)
			assert.Equal(t, tt.want, m)
			assert.GreaterOrEqual(t, m.Unanswered, 0)
			assert.InDelta(t, tt.wantScore, m.Score(), 0.0001)
		})
	}
}

func TestComputeMetrics_SumsToTotal(t *testing.T) {
	for total := 0; total <= 6; total++ {
		for c := 0; c <= total; c++ {
			for i := 0; c+i <= total; i++ {
				m := ComputeMetrics(total, c, i)
				assert.Equal(t, total, m.Correct+m.Incorrect+m.Unanswered)
			}
		}
	}
}
