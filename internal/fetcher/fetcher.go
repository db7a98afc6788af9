package fetcher

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const _maxImageSize = 10 * 1024 * 1024 // 10 MB

// ErrUnsupportedScheme is returned for artwork references the fetcher cannot resolve
var ErrUnsupportedScheme = errors.New("unsupported artwork scheme")

// Fetcher retrieves artwork from HTTP/HTTPS URLs, data URIs and local files
type Fetcher struct {
	logger  *zap.Logger
	client  *http.Client
	maxSize int64
}

// NewFetcher creates a new artwork fetcher instance
func NewFetcher(logger *zap.Logger) *Fetcher {
	return &Fetcher{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second, // Essential to prevent blocking the daemon
		},
		maxSize: _maxImageSize,
	}
}

// Fetch returns the raw image bytes behind ref. Bodies larger than the size
// limit are truncated.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case strings.HasPrefix(ref, "data:"):
		data, err = f.fetchDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, err = f.fetchHTTP(ctx, ref)
	case strings.HasPrefix(ref, "file://"):
		u, perr := url.Parse(ref)
		if perr != nil {
			return nil, fmt.Errorf("invalid file url: %w", perr)
		}
		data, err = f.fetchFile(u.Path)
	case filepath.IsAbs(ref):
		data, err = f.fetchFile(ref)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, ref)
	}
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Image fetched successfully",
		zap.String("size", humanize.IBytes(uint64(len(data)))),
		zap.String("ref", shorten(ref)))
	return data, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "synframe/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return nil, fmt.Errorf("url is not an image: %s", resp.Header.Get("Content-Type"))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return data, nil
}

// fetchDataURI decodes data:[<mediatype>][;base64],<data>
func (f *Fetcher) fetchDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data uri: missing comma")
	}

	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if mediaType != "" && !strings.HasPrefix(mediaType, "image/") {
		return nil, fmt.Errorf("data uri is not an image: %s", mediaType)
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode data uri: %w", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to unescape data uri: %w", err)
		}
		data = []byte(unescaped)
	}

	if int64(len(data)) > f.maxSize {
		data = data[:f.maxSize]
	}
	return data, nil
}

func (f *Fetcher) fetchFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artwork: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, f.maxSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read artwork: %w", err)
	}
	return data, nil
}

// shorten keeps data URIs out of the logs
func shorten(ref string) string {
	if len(ref) > 64 {
		return ref[:61] + "..."
	}
	return ref
}
