//go:build !ios && !android && (amd64 || arm64)

package avutil

import "strconv"

// PixelFormat is an AVPixelFormat value.
type PixelFormat int32

// Pixel formats from pixfmt.h. Only the ones videostream names are listed;
// any other value a decoder reports passes through untouched.
const (
	PixelFormatNone     PixelFormat = -1
	PixelFormatYUV420P  PixelFormat = 0  // planar YUV 4:2:0
	PixelFormatYUYV422  PixelFormat = 1  // packed YUV 4:2:2
	PixelFormatRGB24    PixelFormat = 2  // packed RGB 8:8:8
	PixelFormatBGR24    PixelFormat = 3  // packed BGR 8:8:8
	PixelFormatYUV422P  PixelFormat = 4  // planar YUV 4:2:2
	PixelFormatYUV444P  PixelFormat = 5  // planar YUV 4:4:4
	PixelFormatGray8    PixelFormat = 8  // 8-bit grayscale
	PixelFormatPAL8     PixelFormat = 11 // 8-bit palette
	PixelFormatYUVJ420P PixelFormat = 12 // planar YUV 4:2:0, full range
	PixelFormatYUVJ422P PixelFormat = 13 // planar YUV 4:2:2, full range
	PixelFormatYUVJ444P PixelFormat = 14 // planar YUV 4:4:4, full range
	PixelFormatNV12     PixelFormat = 23 // Y plane + interleaved UV
	PixelFormatNV21     PixelFormat = 24 // Y plane + interleaved VU
	PixelFormatARGB     PixelFormat = 25
	PixelFormatRGBA     PixelFormat = 26 // packed RGBA 8:8:8:8
	PixelFormatABGR     PixelFormat = 27
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
	PixelFormatYUVJ422P: "yuvj422p",
	PixelFormatYUVJ444P: "yuvj444p",
	PixelFormatNV12:     "nv12",
	PixelFormatNV21:     "nv21",
	PixelFormatARGB:     "argb",
	PixelFormatRGBA:     "rgba",
	PixelFormatABGR:     "abgr",
	PixelFormatBGRA:     "bgra",
}

// String returns the FFmpeg name of p. Formats missing from the local table
// are looked up in libavutil.
func (p PixelFormat) String() string {
	if name, ok := pixelFormatNames[p]; ok {
		return name
	}
	if name := PixFmtName(p); name != "" {
		return name
	}
	return "pix_fmt(" + strconv.Itoa(int(p)) + ")"
}

// MediaType is an AVMediaType value.
type MediaType int32

const (
	MediaTypeUnknown    MediaType = -1
	MediaTypeVideo      MediaType = 0
	MediaTypeAudio      MediaType = 1
	MediaTypeData       MediaType = 2
	MediaTypeSubtitle   MediaType = 3
	MediaTypeAttachment MediaType = 4
)
