package textfit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// monoMeasurer is a deterministic fixed-pitch measurer: every rune is
// 0.6em wide, ascent is 0.8em and descent 0.2em.
type monoMeasurer struct {
	noBounds bool
	calls    []int
}

func (m *monoMeasurer) Measure(text string, size int) Metrics {
	m.calls = append(m.calls, size)
	metrics := Metrics{Width: float64(len([]rune(text))) * float64(size) * 0.6}
	if !m.noBounds {
		metrics.Ascent = float64(size) * 0.8
		metrics.Descent = float64(size) * 0.2
	}
	return metrics
}

func TestFit(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		minSize   int
		maxSize   int
		boxWidth  float64
		boxHeight float64
		want      int
	}{
		{
			name:    "Empty text fits at max",
			text:    "",
			minSize: 10, maxSize: 100,
			boxWidth: 380, boxHeight: 160,
			want: 100,
		},
		{
			name:    "Empty text is capped",
			text:    "",
			minSize: 10, maxSize: 400,
			boxWidth: 380, boxHeight: 160,
			want: MaxFontSize,
		},
		{
			name:    "Nothing fits a 1x1 box",
			text:    "Abbey Road",
			minSize: 10, maxSize: 100,
			boxWidth: 1, boxHeight: 1,
			want: 10,
		},
		{
			name:    "Width bound",
			text:    strings.Repeat("x", 10), // 6px wide per size unit
			minSize: 10, maxSize: 100,
			boxWidth: 300, boxHeight: 1000,
			want: 50,
		},
		{
			name:    "Height bound",
			text:    "x",
			minSize: 10, maxSize: 100,
			boxWidth: 1000, boxHeight: 42,
			want: 42,
		},
		{
			name:    "Whole range fits",
			text:    "ok",
			minSize: 30, maxSize: 40,
			boxWidth: 380, boxHeight: 160,
			want: 40,
		},
		{
			name:    "Ceiling applies to fitting sizes",
			text:    "a",
			minSize: 10, maxSize: 500,
			boxWidth: 10000, boxHeight: 10000,
			want: MaxFontSize,
		},
		{
			name:    "Single size range",
			text:    "abc",
			minSize: 20, maxSize: 20,
			boxWidth: 1000, boxHeight: 1000,
			want: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fit(&monoMeasurer{}, tt.text, tt.minSize, tt.maxSize, tt.boxWidth, tt.boxHeight)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFit_InvalidRange(t *testing.T) {
	_, err := Fit(&monoMeasurer{}, "text", 50, 10, 380, 160)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestFit_HeightFallsBackToSize(t *testing.T) {
	// Without bounds the height is the tried size, so a 42px box caps at 42
	// even though ascent+descent would have allowed the same.
	m := &monoMeasurer{noBounds: true}
	got, err := Fit(m, "x", 10, 100, 1000, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	// A box shorter than every candidate size still returns the floor
	got, err = Fit(m, "x", 10, 100, 1000, 5)
	require.NoError(t, err)
	assert.Equal(t, 10, got)
}

func TestFit_BinarySearchMeasurements(t *testing.T) {
	m := &monoMeasurer{}
	_, err := Fit(m, "Abbey Road", 10, 100, 380, 160)
	require.NoError(t, err)

	// ceil(log2(91)) + 1 measurements at most
	assert.LessOrEqual(t, len(m.calls), 8)
	assert.Equal(t, 55, m.calls[0], "first measurement is the midpoint")
}

func TestFit_ResultIsLargestFit(t *testing.T) {
	m := &monoMeasurer{}
	for _, text := range []string{"The Beatles", "Come Together", "Something", "Maxwell's Silver Hammer"} {
		got, err := Fit(m, text, 10, 100, 380, 160)
		require.NoError(t, err)

		fits := func(size int) bool {
			metrics := m.Measure(text, size)
			return metrics.Width <= 380 && metrics.height(size) <= 160
		}
		if got > 10 || fits(10) {
			assert.True(t, fits(got), "%q must fit at %d", text, got)
		}
		if got < 100 {
			assert.False(t, fits(got+1), "%q must not fit at %d", text, got+1)
		}
	}
}

func TestFaceMeasurer(t *testing.T) {
	fm, err := NewFaceMeasurer(zap.NewNop())
	require.NoError(t, err)
	defer fm.Close()

	small := fm.Measure("Abbey Road", 20)
	large := fm.Measure("Abbey Road", 60)

	assert.Greater(t, small.Width, 0.0)
	assert.Greater(t, large.Width, small.Width)
	assert.Greater(t, large.Ascent, 0.0)
	assert.Greater(t, large.Descent, 0.0, "y has a descender")

	// Faces are cached per size
	f1, err := fm.Face(20)
	require.NoError(t, err)
	f2, err := fm.Face(20)
	require.NoError(t, err)
	assert.Same(t, f1, f2)
}

func TestFaceMeasurer_Fit(t *testing.T) {
	fm, err := NewFaceMeasurer(zap.NewNop())
	require.NoError(t, err)
	defer fm.Close()

	text := "Golden Slumbers / Carry That Weight"
	size, err := Fit(fm, text, 10, 100, 380, 160)
	require.NoError(t, err)
	require.GreaterOrEqual(t, size, 10)
	require.LessOrEqual(t, size, 100)

	assert.LessOrEqual(t, fm.Measure(text, size).Width, 380.0)
}

func TestFaceMeasurerFromBytes_Invalid(t *testing.T) {
	_, err := NewFaceMeasurerFromBytes(zap.NewNop(), []byte("not a font"))
	require.Error(t, err)
}

func TestFallbackMetrics_CountsRunes(t *testing.T) {
	assert.Equal(t, 10.0*20, fallbackMetrics("Abbey Road", 20).Width)
	// 15 runes, 20 bytes
	assert.Equal(t, 15.0*20, fallbackMetrics("Beyoncé Ünïcødé", 20).Width)
	assert.Equal(t, 0.0, fallbackMetrics("", 20).Width)
}
