package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// FrameFileName is the file the file sink writes
const FrameFileName = "frame.jpg"

// FileSink writes each frame as a JPEG into a directory, replacing the
// previous one atomically. Useful for headless runs and image viewers that
// watch a file.
type FileSink struct {
	logger *zap.Logger
	dir    string
	width  int
	height int
}

// NewFileSink creates the output directory and returns a sink writing into it
func NewFileSink(logger *zap.Logger, dir string, width, height int) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	logger.Info("Writing frames to file", zap.String("path", filepath.Join(dir, FrameFileName)))
	return &FileSink{logger: logger, dir: dir, width: width, height: height}, nil
}

// Size returns the configured resolution, zero when unset
func (s *FileSink) Size() (int, int) {
	return s.width, s.height
}

// Present encodes the frame to dir/frame.jpg
func (s *FileSink) Present(frame *image.RGBA) error {
	tmp := filepath.Join(s.dir, "."+FrameFileName+".tmp.jpg")
	if err := imaging.Save(frame, tmp, imaging.JPEGQuality(90)); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, FrameFileName)); err != nil {
		return fmt.Errorf("failed to replace frame: %w", err)
	}
	return nil
}

// Close is a no-op; the last frame stays on disk
func (s *FileSink) Close() error {
	return nil
}
