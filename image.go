package videostream

import (
	"fmt"
	"image"
	"image/color"
)

// RGB is an in-memory image of packed 8-bit red, green, blue triples. The
// standard library has no 3-byte-per-pixel image type.
type RGB struct {
	// Pix holds the pixels in R, G, B order, row by row.
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewRGB returns a zeroed RGB image with bounds r.
func NewRGB(r image.Rectangle) *RGB {
	return &RGB{
		Pix:    make([]uint8, PackedSize(r.Dx(), r.Dy(), 3)),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

func (p *RGB) ColorModel() color.Model { return color.RGBAModel }

func (p *RGB) Bounds() image.Rectangle { return p.Rect }

func (p *RGB) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

// RGBAAt returns the pixel at (x, y) with opaque alpha.
func (p *RGB) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return color.RGBA{s[0], s[1], s[2], 0xff}
}

// PixOffset returns the index of the first byte of pixel (x, y) in Pix.
func (p *RGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// Set stores c at (x, y), dropping alpha.
func (p *RGB) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	c1 := color.RGBAModel.Convert(c).(color.RGBA)
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = c1.R, c1.G, c1.B
}

func checkPacked(buf []byte, width, height, channels int) error {
	if want := PackedSize(width, height, channels); len(buf) != want {
		return fmt.Errorf("%w: %d bytes for %dx%d with %d channels, want %d",
			ErrBuildImage, len(buf), width, height, channels, want)
	}
	return nil
}

func newRGB(width, height int, buf []byte) (*RGB, error) {
	if err := checkPacked(buf, width, height, 3); err != nil {
		return nil, err
	}
	return &RGB{Pix: buf, Stride: 3 * width, Rect: image.Rect(0, 0, width, height)}, nil
}

func newRGBA(width, height int, buf []byte) (*image.RGBA, error) {
	if err := checkPacked(buf, width, height, 4); err != nil {
		return nil, err
	}
	return &image.RGBA{Pix: buf, Stride: 4 * width, Rect: image.Rect(0, 0, width, height)}, nil
}

func newGray(width, height int, buf []byte) (*image.Gray, error) {
	if err := checkPacked(buf, width, height, 1); err != nil {
		return nil, err
	}
	return &image.Gray{Pix: buf, Stride: width, Rect: image.Rect(0, 0, width, height)}, nil
}
