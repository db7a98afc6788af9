package web

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceQRCode(t *testing.T) {
	img, err := deviceQRCode("http://frame.local:5006/", 128)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(128, 128), img.Bounds().Size())

	img, err = deviceQRCode("", 128)
	require.ErrorIs(t, err, errEmptyQRPayload)
	assert.Nil(t, img)
}
