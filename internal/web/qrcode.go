package web

import (
	"errors"
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"
)

var errEmptyQRPayload = errors.New("empty qr code payload")

// deviceQRCode encodes the address the frame is reachable at, side pixels
// square, at medium error recovery
func deviceQRCode(url string, side int) (image.Image, error) {
	if url == "" {
		return nil, errEmptyQRPayload
	}
	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %q: %w", url, err)
	}
	return code.Image(side), nil
}
