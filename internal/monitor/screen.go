package monitor

import (
	"github.com/genricoloni/synframe/internal/domain"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// FallbackResolution matches the 7" panels the frame is usually built with
var FallbackResolution = domain.ScreenResolution{Width: 1024, Height: 600}

// Sizer reports the pixel size of an output, zero when unknown
type Sizer interface {
	Size() (width, height int)
}

// displayBounds is replaced in tests
var displayBounds = func() (int, int) {
	if screenshot.NumActiveDisplays() <= 0 {
		return 0, 0
	}
	// Use primary monitor (index 0)
	bounds := screenshot.GetDisplayBounds(0)
	return bounds.Dx(), bounds.Dy()
}

// NewScreenResolution picks the render resolution at startup: the output's
// own size when it knows one, then the primary X display, then the fallback
func NewScreenResolution(logger *zap.Logger, output Sizer) *domain.ScreenResolution {
	if output != nil {
		if w, h := output.Size(); w > 0 && h > 0 {
			logger.Info("Screen resolution taken from output",
				zap.Int("width", w),
				zap.Int("height", h))
			return &domain.ScreenResolution{Width: w, Height: h}
		}
	}

	w, h := displayBounds()
	if w <= 0 || h <= 0 {
		logger.Warn("No active displays detected, using fallback resolution",
			zap.Int("width", FallbackResolution.Width),
			zap.Int("height", FallbackResolution.Height))
		res := FallbackResolution
		return &res
	}

	res := &domain.ScreenResolution{Width: w, Height: h}
	logger.Info("Screen resolution detected",
		zap.Int("width", res.Width),
		zap.Int("height", res.Height))
	return res
}
