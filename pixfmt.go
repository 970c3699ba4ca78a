package videostream

import "fmt"

// PixelFormat is an FFmpeg AVPixelFormat value.
type PixelFormat int32

// Pixel formats. The three output formats a Frame converts to are RGB24,
// RGBA and Gray8; the others are common decoder outputs.
const (
	PixelFormatNone     PixelFormat = -1
	PixelFormatYUV420P  PixelFormat = 0
	PixelFormatYUYV422  PixelFormat = 1
	PixelFormatRGB24    PixelFormat = 2
	PixelFormatBGR24    PixelFormat = 3
	PixelFormatYUV422P  PixelFormat = 4
	PixelFormatYUV444P  PixelFormat = 5
	PixelFormatGray8    PixelFormat = 8
	PixelFormatPAL8     PixelFormat = 11
	PixelFormatYUVJ420P PixelFormat = 12
	PixelFormatNV12     PixelFormat = 23
	PixelFormatRGBA     PixelFormat = 26
	PixelFormatBGRA     PixelFormat = 28
)

var pixelFormatNames = map[PixelFormat]string{
	PixelFormatNone:     "none",
	PixelFormatYUV420P:  "yuv420p",
	PixelFormatYUYV422:  "yuyv422",
	PixelFormatRGB24:    "rgb24",
	PixelFormatBGR24:    "bgr24",
	PixelFormatYUV422P:  "yuv422p",
	PixelFormatYUV444P:  "yuv444p",
	PixelFormatGray8:    "gray",
	PixelFormatPAL8:     "pal8",
	PixelFormatYUVJ420P: "yuvj420p",
	PixelFormatNV12:     "nv12",
	PixelFormatRGBA:     "rgba",
	PixelFormatBGRA:     "bgra",
}

func (p PixelFormat) String() string {
	if name, ok := pixelFormatNames[p]; ok {
		return name
	}
	return fmt.Sprintf("pix_fmt(%d)", int32(p))
}

// Channels returns the bytes per pixel of a packed output format: 3 for
// RGB24, 4 for RGBA, 1 for Gray8, and 0 for every other format.
func (p PixelFormat) Channels() int {
	switch p {
	case PixelFormatRGB24:
		return 3
	case PixelFormatRGBA:
		return 4
	case PixelFormatGray8:
		return 1
	}
	return 0
}
