package util

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func TestSniffImage(t *testing.T) {
	var pngBuf, jpgBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, testImage()))
	require.NoError(t, jpeg.Encode(&jpgBuf, testImage(), nil))

	mime, err := SniffImage(&pngBuf)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	mime, err = SniffImage(&jpgBuf)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	_, err = SniffImage(strings.NewReader("definitely not an image"))
	assert.Error(t, err)

	// Other decodable formats are refused even when the name says png.
	var gifBuf bytes.Buffer
	require.NoError(t, gif.Encode(&gifBuf, testImage(), nil))
	_, err = SniffImage(&gifBuf)
	assert.Error(t, err)
}

func TestMakeDataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AQID", MakeDataURL("image/png", []byte{1, 2, 3}))
}
