// Package slides discovers the slide set and generates placeholder art when
// the slide folder has no pictures.
package slides

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/synframe/internal/domain"
	"github.com/samber/lo"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // BMP format support
	_ "golang.org/x/image/tiff" // TIFF format support
)

// PlaceholderCount is how many placeholder pictures replace an empty folder
const PlaceholderCount = 10

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff"}

// Options controls slide discovery
type Options struct {
	Enabled bool
	Folder  string
	// Rand drives placeholder generation. A randomly seeded source is used when nil.
	Rand *rand.Rand
}

// Load returns the slide set, sorted by file name. A disabled slideshow has
// no slides; a folder without pictures gets generated placeholders.
func Load(logger *zap.Logger, opts Options) ([]domain.Slide, error) {
	if !opts.Enabled {
		logger.Info("Slideshow disabled, no slides loaded")
		return nil, nil
	}

	entries, err := os.ReadDir(opts.Folder)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read slide folder: %w", err)
	}
	if err != nil {
		logger.Warn("Slide folder does not exist", zap.String("folder", opts.Folder))
	}

	pictures := lo.Filter(entries, func(e fs.DirEntry, _ int) bool {
		return !e.IsDir() && IsImage(e.Name())
	})

	if len(pictures) == 0 {
		logger.Info("No pictures found, generating placeholder art",
			zap.String("folder", opts.Folder),
			zap.Int("count", PlaceholderCount))
		return Placeholders(opts.Rand, PlaceholderCount), nil
	}

	slides := lo.Map(pictures, func(e fs.DirEntry, _ int) domain.Slide {
		return domain.Slide{ID: e.Name(), Path: filepath.Join(opts.Folder, e.Name())}
	})

	logger.Info("Slides loaded", zap.String("folder", opts.Folder), zap.Int("count", len(slides)))
	return slides, nil
}

// IsImage reports whether name has a supported picture extension
func IsImage(name string) bool {
	return lo.Contains(imageExtensions, strings.ToLower(filepath.Ext(name)))
}

// Placeholders generates n Mondrian-style slides
func Placeholders(rng *rand.Rand, n int) []domain.Slide {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return lo.Times(n, func(i int) domain.Slide {
		return domain.Slide{
			ID:    fmt.Sprintf("mondrian-%02d", i+1),
			Image: Mondrian(rng, ArtWidth, ArtHeight),
		}
	})
}

// Open returns the picture of a slide, decoding it from disk when needed
func Open(slide domain.Slide) (image.Image, error) {
	if slide.Image != nil {
		return slide.Image, nil
	}
	img, err := imaging.Open(slide.Path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open slide %s: %w", slide.ID, err)
	}
	return img, nil
}
