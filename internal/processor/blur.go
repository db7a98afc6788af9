package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF format support
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support

	"github.com/disintegration/imaging"
	"github.com/genricoloni/synframe/internal/domain"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // BMP format support
	_ "golang.org/x/image/tiff" // TIFF format support
	_ "golang.org/x/image/webp" // WEBP format support
)

const (
	defaultBlurRadius = 15.0
	coverHeightRatio  = 0.70 // Cover size as percentage of screen height
)

// ProcessorConfig holds configuration for image processing
type ProcessorConfig struct {
	BlurRadius       float64
	CoverSizePercent float64 // Cover size as percentage of screen height (0.0-1.0)
}

// BlurProcessor prepares album art and slides for the screen
type BlurProcessor struct {
	logger *zap.Logger
	res    *domain.ScreenResolution // Injected automatically by Fx
	config ProcessorConfig
}

// NewBlurProcessor creates a new blur-based image processor
func NewBlurProcessor(logger *zap.Logger, res *domain.ScreenResolution) *BlurProcessor {
	return &BlurProcessor{
		logger: logger,
		res:    res,
		config: ProcessorConfig{
			BlurRadius:       defaultBlurRadius,
			CoverSizePercent: coverHeightRatio,
		},
	}
}

// Artwork decodes album art into a blurred full-screen background and a
// sharp cover scaled to the configured share of the screen height
func (p *BlurProcessor) Artwork(ctx context.Context, imageData []byte) (domain.Artwork, error) {
	// 1. Decode image from bytes
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("failed to decode image: %w", err)
	}

	// Validate image dimensions to prevent division by zero
	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return domain.Artwork{}, fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	// 2. Create blurred background covering the entire resolution
	p.logger.Debug("Creating blurred background",
		zap.String("format", format),
		zap.Int("w", p.res.Width),
		zap.Int("h", p.res.Height))
	background := imaging.Fill(img, p.res.Width, p.res.Height, imaging.Center, imaging.Lanczos)
	background = imaging.Blur(background, p.config.BlurRadius)

	// 3. Resize cover (sharp, no blur), keeping the aspect ratio
	coverSide := max(1, int(float64(p.res.Height)*p.config.CoverSizePercent))
	cover := scaleToBox(img, coverSide, coverSide)

	p.logger.Debug("Artwork processed successfully",
		zap.Int("coverW", cover.Bounds().Dx()),
		zap.Int("coverH", cover.Bounds().Dy()))

	return domain.Artwork{Background: background, Cover: cover}, nil
}

// Slide scales a photo to fit the screen without cropping
func (p *BlurProcessor) Slide(img image.Image) image.Image {
	if img == nil {
		return nil
	}
	return scaleToBox(img, p.res.Width, p.res.Height)
}

// scaleToBox scales img up or down until it touches the box, keeping the
// aspect ratio. imaging.Fit only ever shrinks.
func scaleToBox(img image.Image, width, height int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx()*height >= b.Dy()*width {
		return imaging.Resize(img, width, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, height, imaging.Lanczos)
}

// Compose pastes the cover at the center of the background, giving a
// standalone preview of the artwork at any size
func Compose(art domain.Artwork, width, height int) *image.NRGBA {
	canvas := imaging.New(width, height, image.Black)
	if art.Background != nil {
		canvas = imaging.Paste(canvas, imaging.Fill(art.Background, width, height, imaging.Center, imaging.Linear), image.Pt(0, 0))
	}
	if art.Cover != nil {
		cb := art.Cover.Bounds()
		canvas = imaging.Overlay(canvas, art.Cover, image.Pt((width-cb.Dx())/2, (height-cb.Dy())/2), 1.0)
	}
	return canvas
}
