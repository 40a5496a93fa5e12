package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name     string
		done     int
		total    int
		fraction float64
		text     string
	}{
		{"empty topic", 0, 0, 0, "0/0   0%"},
		{"none done", 0, 4, 0, "0/4   0%"},
		{"half", 2, 4, 0.5, "2/4  50%"},
		{"all", 4, 4, 1, "4/4 100%"},
		{"over", 5, 4, 1, "5/4 100%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewProgressBar("Topic", tt.done, tt.total, 40)
			assert.Equal(t, tt.fraction, bar.Fraction())
			assert.Contains(t, bar.View(), tt.text)
		})
	}
}
