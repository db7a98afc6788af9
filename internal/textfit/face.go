package textfit

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"go.uber.org/zap"
)

// FaceMeasurer measures text with an OpenType font. One face is built per
// pixel size and cached, so the renderer can draw with the same faces the
// fit was computed with.
type FaceMeasurer struct {
	logger *zap.Logger
	font   *opentype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

// NewFaceMeasurer creates a measurer backed by the Go Regular font
func NewFaceMeasurer(logger *zap.Logger) (*FaceMeasurer, error) {
	return NewFaceMeasurerFromBytes(logger, goregular.TTF)
}

// NewFaceMeasurerFromBytes creates a measurer from raw TTF/OTF data
func NewFaceMeasurerFromBytes(logger *zap.Logger, data []byte) (*FaceMeasurer, error) {
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FaceMeasurer{
		logger: logger,
		font:   fnt,
		faces:  make(map[int]font.Face),
	}, nil
}

// fallbackMetrics treats every rune as one em wide
func fallbackMetrics(text string, size int) Metrics {
	return Metrics{Width: float64(utf8.RuneCountInString(text) * size)}
}

// Face returns the cached face for a pixel size
func (f *FaceMeasurer) Face(size int) (font.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[size]; ok {
		return face, nil
	}

	// DPI 72 makes one point equal to one pixel
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face at %dpx: %w", size, err)
	}
	f.faces[size] = face
	return face, nil
}

// Measure implements Measurer. Width is the advance width; ascent and
// descent come from the ink bounds of the string.
func (f *FaceMeasurer) Measure(text string, size int) Metrics {
	face, err := f.Face(size)
	if err != nil {
		f.logger.Warn("Measuring without a face", zap.Int("size", size), zap.Error(err))
		return fallbackMetrics(text, size)
	}

	advance := font.MeasureString(face, text)
	bounds, _ := font.BoundString(face, text)

	return Metrics{
		Width:   fixedToFloat(int64(advance)),
		Ascent:  fixedToFloat(int64(-bounds.Min.Y)),
		Descent: fixedToFloat(int64(bounds.Max.Y)),
	}
}

// Close releases every cached face
func (f *FaceMeasurer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for size, face := range f.faces {
		if err := face.Close(); err != nil {
			return fmt.Errorf("failed to close face at %dpx: %w", size, err)
		}
		delete(f.faces, size)
	}
	return nil
}

func fixedToFloat(v int64) float64 {
	return float64(v) / 64
}
