// Package texture provides image decoding and texture processing utilities.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"path"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// ErrUnknownFormat is returned for data no decoder recognizes.
var ErrUnknownFormat = errors.New("unknown image format")

type decoder func(r *bytes.Reader) (image.Image, error)

var byExtension = map[string]decoder{
	".png":  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
	".jpg":  func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) },
	".jpeg": func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) },
	".bmp":  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
	".tga":  func(r *bytes.Reader) (image.Image, error) { return tga.Decode(r) },
}

// Decode decodes image data. The extension of name picks the decoder;
// unknown extensions fall back to sniffing magic bytes. TGA has no magic,
// so it is only reachable by extension.
func Decode(data []byte, name string) (image.Image, error) {
	ext := strings.ToLower(path.Ext(name))
	dec, ok := byExtension[ext]
	if !ok {
		dec, ok = sniff(data)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}

	img, err := dec(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

func sniff(data []byte) (decoder, bool) {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return byExtension[".png"], true
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		return byExtension[".jpg"], true
	case bytes.HasPrefix(data, []byte("BM")):
		return byExtension[".bmp"], true
	}
	return nil, false
}

// ImageToRGBA converts any image.Image to *image.RGBA with origin (0,0),
// returning img unchanged when it already is one.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// SquareFace returns img resampled to a size x size RGBA image.
// Cube map faces must be square, so non-square or mismatched faces
// are scaled with Catmull-Rom filtering.
func SquareFace(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return ImageToRGBA(img)
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// FaceSize picks the common edge length for a set of cube map faces:
// the largest dimension among them.
func FaceSize(faces []image.Image) int {
	size := 0
	for _, f := range faces {
		if f == nil {
			continue
		}
		b := f.Bounds()
		size = max(size, b.Dx(), b.Dy())
	}
	return size
}
