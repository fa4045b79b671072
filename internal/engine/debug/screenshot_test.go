package debug

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2x2 RGBA, bottom row first: red, green / blue, white
var glPixels = []byte{
	255, 0, 0, 255, 0, 255, 0, 255,
	0, 0, 255, 255, 255, 255, 255, 255,
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 535000000, time.UTC)
}

func TestFlipPixels(t *testing.T) {
	img, err := FlipPixels(glPixels, 2, 2)
	require.NoError(t, err)

	// Top-left now holds the last GL row
	assert.Equal(t, []uint8{0, 0, 255, 255}, img.Pix[0:4])
	assert.Equal(t, []uint8{255, 0, 0, 255}, img.Pix[img.Stride:img.Stride+4])
}

func TestFlipPixelsRejectsBadInput(t *testing.T) {
	_, err := FlipPixels(glPixels, 3, 2)
	assert.Error(t, err)

	_, err = FlipPixels(nil, 0, 0)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"webp", FormatWebP, false},
		{"", FormatPNG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownFormat, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "orrery", FormatWebP)
	sc.now = fixedClock

	want := filepath.Join("shots", "orrery_2026-03-14_15-09-26.535.webp")
	assert.Equal(t, want, sc.GenerateFilename())
}

func TestCaptureFromPixelsPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := NewScreenshotCapture(dir, "orrery", FormatPNG)
	sc.now = fixedClock

	path, err := sc.CaptureFromPixels(glPixels, 2, 2)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".png"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b})
}

func TestCaptureFromImageWebP(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "orrery", FormatWebP)

	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	path, err := sc.CaptureFromImage(src)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := nativewebp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1)), Format("gif"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
