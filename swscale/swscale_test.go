//go:build !ios && !android && (amd64 || arm64)

package swscale

import (
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenses/videostream/avutil"
	"github.com/expenses/videostream/internal/bindings"
)

var ffmpegAvailable bool

func TestMain(m *testing.M) {
	ffmpegAvailable = bindings.Load() == nil
	os.Exit(m.Run())
}

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if !ffmpegAvailable {
		t.Skip("FFmpeg not available")
	}
}

func newFrame(t *testing.T, w, h int, format avutil.PixelFormat) avutil.Frame {
	t.Helper()
	frame := avutil.FrameAlloc()
	require.NotNil(t, frame)
	t.Cleanup(func() { avutil.FrameFree(&frame) })

	avutil.SetFrameWidth(frame, int32(w))
	avutil.SetFrameHeight(frame, int32(h))
	avutil.SetFrameFormat(frame, int32(format))
	require.NoError(t, avutil.FrameGetBuffer(frame, 0))
	return frame
}

func TestNilSafety(t *testing.T) {
	FreeContext(nil)
	assert.Less(t, ScaleFrame(nil, nil, nil), int32(0))
}

func TestSupportedFormats(t *testing.T) {
	skipIfNoFFmpeg(t)

	for _, f := range []avutil.PixelFormat{avutil.PixelFormatRGB24, avutil.PixelFormatRGBA, avutil.PixelFormatGray8} {
		assert.True(t, IsSupportedOutput(f), f.String())
	}
	assert.True(t, IsSupportedInput(avutil.PixelFormatYUV420P))
	assert.False(t, IsSupportedInput(avutil.PixelFormat(9999)))
}

func TestGrayToRGB(t *testing.T) {
	skipIfNoFFmpeg(t)

	const w, h = 6, 3
	src := newFrame(t, w, h, avutil.PixelFormatGray8)
	dst := newFrame(t, w, h, avutil.PixelFormatRGB24)

	srcStride := int(avutil.GetFrameLinesizePlane(src, 0))
	srcData := unsafe.Slice((*byte)(avutil.GetFrameDataPlane(src, 0)), srcStride*h)
	for i := range srcData {
		srcData[i] = 0x80
	}

	ctx := GetContext(w, h, avutil.PixelFormatGray8, w, h, avutil.PixelFormatRGB24, FlagPoint)
	require.NotNil(t, ctx)
	defer FreeContext(ctx)

	require.Equal(t, int32(h), ScaleFrame(ctx, dst, src))

	dstStride := int(avutil.GetFrameLinesizePlane(dst, 0))
	require.GreaterOrEqual(t, dstStride, w*3)
	dstData := unsafe.Slice((*byte)(avutil.GetFrameDataPlane(dst, 0)), dstStride*h)
	for y := 0; y < h; y++ {
		row := dstData[y*dstStride : y*dstStride+w*3]
		for _, b := range row {
			assert.InDelta(t, 0x80, int(b), 2, "gray input stays gray")
		}
	}
}
