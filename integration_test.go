//go:build !ios && !android && (amd64 || arm64)

package videostream

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ffmpegCLI runs the ffmpeg command line tool to create a test input in a
// temporary directory, skipping the test when FFmpeg is not installed.
func ffmpegCLI(t *testing.T, name string, args ...string) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping FFmpeg integration test in short mode")
	}
	if err := Init(); err != nil {
		t.Skipf("FFmpeg libraries not available: %v", err)
	}

	path := filepath.Join(t.TempDir(), name)
	args = append([]string{"-y", "-loglevel", "error"}, args...)
	if out, err := exec.Command("ffmpeg", append(args, path)...).CombinedOutput(); err != nil {
		t.Skipf("ffmpeg CLI not available or failed: %v: %s", err, out)
	}
	return path
}

// createTestVideo writes a 10 frame 64x48 clip with B-frames, so the last
// frames only come out of the decoder when it is flushed.
func createTestVideo(t *testing.T) string {
	return ffmpegCLI(t, "test.mkv",
		"-f", "lavfi", "-i", "testsrc=size=64x48:rate=10",
		"-frames:v", "10",
		"-c:v", "mpeg4", "-bf", "2", "-g", "5",
		"-pix_fmt", "yuv420p")
}

func TestOpenDecodesEveryFrame(t *testing.T) {
	path := createTestVideo(t)
	require.NoError(t, SetLogLevel(LogError))

	vs, err := Open(path, WithThreads(1))
	require.NoError(t, err)
	defer vs.Close()

	info := vs.Info()
	assert.Equal(t, 0, info.Index)
	assert.Equal(t, "mpeg4", info.CodecName)
	assert.Equal(t, 64, info.Width)
	assert.Equal(t, 48, info.Height)
	assert.Equal(t, PixelFormatYUV420P, info.PixelFmt)

	frames := vs.Frames()
	var n int
	for frames.Next() {
		f := frames.Frame()
		assert.Equal(t, 64, f.Width())
		assert.Equal(t, 48, f.Height())

		if n == 0 {
			rgb, err := f.AsBytes(PixelFormatRGB24)
			require.NoError(t, err)
			assert.Len(t, rgb, 9216)

			luma, err := f.AsLuma()
			require.NoError(t, err)
			assert.Len(t, luma.Pix, 3072)

			rgba, err := f.AsRGBA()
			require.NoError(t, err)
			for i := 3; i < len(rgba.Pix); i += 4 {
				require.Equal(t, uint8(0xff), rgba.Pix[i], "alpha at byte %d", i)
			}
		}
		n++
	}
	require.NoError(t, frames.Err())
	assert.Equal(t, 10, n)
}

func TestOpenStripsConverterPadding(t *testing.T) {
	// 50 pixels of RGB24 is 150 bytes, which FFmpeg pads to its alignment.
	path := ffmpegCLI(t, "red.mkv",
		"-f", "lavfi", "-i", "color=c=red:size=50x30:rate=5",
		"-frames:v", "2", "-c:v", "ffv1", "-pix_fmt", "yuv444p")

	vs, err := Open(path, WithScaleFlags(ScalePoint))
	require.NoError(t, err)
	defer vs.Close()

	frames := vs.Frames()
	require.True(t, frames.Next())
	img, err := frames.Frame().AsRGB()
	require.NoError(t, err)
	require.Len(t, img.Pix, 50*30*3)

	for y := 0; y < 30; y++ {
		for x := 0; x < 50; x++ {
			c := img.RGBAAt(x, y)
			require.True(t, c.R > 200 && c.G < 50 && c.B < 50, "pixel (%d,%d) = %v", x, y, c)
		}
	}
}

func TestOpenWithoutVideoStream(t *testing.T) {
	path := ffmpegCLI(t, "tone.wav", "-f", "lavfi", "-i", "sine=frequency=440:duration=0.2")

	vs, err := Open(path)
	assert.Nil(t, vs)
	assert.ErrorIs(t, err, ErrNoVideoStream)
}

func TestOpenMissingFile(t *testing.T) {
	if err := Init(); err != nil {
		t.Skipf("FFmpeg libraries not available: %v", err)
	}

	source := filepath.Join(t.TempDir(), "missing.mp4")
	_, err := Open(source)

	var oerr *OpenError
	require.True(t, errors.As(err, &oerr), "got %v", err)
	assert.Equal(t, "open", oerr.Op)
	assert.Equal(t, source, oerr.Source)
}

func TestOpenUnknownFormat(t *testing.T) {
	path := createTestVideo(t)

	_, err := Open(path, WithFormat("no-such-demuxer"))
	var oerr *OpenError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, "open", oerr.Op)
	assert.Contains(t, err.Error(), "no-such-demuxer")
}

func TestOpenLogsThroughLogger(t *testing.T) {
	path := createTestVideo(t)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	vs, err := Open(path, WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, vs.Close())

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)
	assert.Equal(t, "Open", entries[0].Data["function"])
	assert.Equal(t, 64, entries[0].Data["width"])
	assert.Equal(t, "VideoStream.Close", hook.LastEntry().Data["function"])
}

func TestSetLogLevel(t *testing.T) {
	if err := Init(); err != nil {
		t.Skipf("FFmpeg libraries not available: %v", err)
	}
	prev := GetLogLevel()
	defer SetLogLevel(prev)

	require.NoError(t, SetLogLevel(LogQuiet))
	assert.Equal(t, LogQuiet, GetLogLevel())
}
