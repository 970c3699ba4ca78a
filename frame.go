package videostream

import (
	"fmt"
	"image"
)

// Frame is one decoded picture. It borrows decoder memory and is only
// valid until the next call to Frames.Next; the buffers and images its
// conversion methods return are copies the caller owns.
type Frame struct {
	raw    RawFrame
	owner  *Frames
	gen    uint64
	width  int
	height int
	format PixelFormat
}

// Width is the decoded width in pixels.
func (f *Frame) Width() int { return f.width }

// Height is the decoded height in pixels.
func (f *Frame) Height() int { return f.height }

// Format is the decoder's native pixel format for this frame.
func (f *Frame) Format() PixelFormat { return f.format }

// AsRGB converts the frame to a packed 3-byte-per-pixel image.
func (f *Frame) AsRGB() (*RGB, error) {
	buf, err := f.AsBytes(PixelFormatRGB24)
	if err != nil {
		return nil, err
	}
	return newRGB(f.width, f.height, buf)
}

// AsRGBA converts the frame to an *image.RGBA with opaque alpha.
func (f *Frame) AsRGBA() (*image.RGBA, error) {
	buf, err := f.AsBytes(PixelFormatRGBA)
	if err != nil {
		return nil, err
	}
	return newRGBA(f.width, f.height, buf)
}

// AsLuma converts the frame to 8-bit grayscale.
func (f *Frame) AsLuma() (*image.Gray, error) {
	buf, err := f.AsBytes(PixelFormatGray8)
	if err != nil {
		return nil, err
	}
	return newGray(f.width, f.height, buf)
}

// AsBytes converts the frame to format, which must be PixelFormatRGB24,
// PixelFormatRGBA or PixelFormatGray8, and returns the pixels row by row
// with no padding: exactly Width*Height*format.Channels() bytes.
func (f *Frame) AsBytes(format PixelFormat) ([]byte, error) {
	channels := format.Channels()
	if channels == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	if f.width == 0 || f.height == 0 {
		return []byte{}, nil
	}

	plane, err := f.owner.vs.conv.Convert(f.raw, format)
	if err != nil {
		return nil, &ConversionError{From: f.format, To: format, Err: err}
	}

	buf := Pack(plane, channels)
	if want := PackedSize(f.width, f.height, channels); len(buf) != want {
		return nil, fmt.Errorf("%w: %s %dx%d packed to %d bytes, want %d",
			ErrBuildImage, format, f.width, f.height, len(buf), want)
	}
	return buf, nil
}

func (f *Frame) check() error {
	switch {
	case f.owner.vs.closed:
		return ErrClosed
	case f.gen != f.owner.gen:
		return ErrFrameExpired
	}
	return nil
}
