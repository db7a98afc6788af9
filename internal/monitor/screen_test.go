package monitor

import (
	"testing"

	"github.com/genricoloni/synframe/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fixedSizer struct{ w, h int }

func (s fixedSizer) Size() (int, int) { return s.w, s.h }

func TestNewScreenResolution(t *testing.T) {
	tests := []struct {
		name    string
		output  Sizer
		display [2]int
		want    domain.ScreenResolution
	}{
		{"Output size wins", fixedSizer{800, 480}, [2]int{1920, 1080}, domain.ScreenResolution{Width: 800, Height: 480}},
		{"Output without size", fixedSizer{}, [2]int{1920, 1080}, domain.ScreenResolution{Width: 1920, Height: 1080}},
		{"No output", nil, [2]int{1280, 720}, domain.ScreenResolution{Width: 1280, Height: 720}},
		{"Nothing detected", fixedSizer{}, [2]int{0, 0}, FallbackResolution},
	}

	orig := displayBounds
	t.Cleanup(func() { displayBounds = orig })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			displayBounds = func() (int, int) { return tt.display[0], tt.display[1] }
			got := NewScreenResolution(zap.NewNop(), tt.output)
			assert.Equal(t, tt.want, *got)
		})
	}
}
