//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenses/videostream/internal/platform"
)

func TestLibrarySearchPathsHonoursDirEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, dir)

	paths := LibrarySearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, dir, paths[0])
}

func TestCandidatesOrder(t *testing.T) {
	names := candidates("avutil", []int{59, 58})
	require.Len(t, names, 3)
	assert.Equal(t, platform.FormatLibraryName("avutil", 59), names[0])
	assert.Equal(t, platform.FormatLibraryName("avutil", 58), names[1])
	assert.Equal(t, platform.FormatLibraryName("avutil", 0), names[2])
}

func TestFindLibraryInDirEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, dir)

	want := filepath.Join(dir, platform.FormatLibraryName("swscale", 7))
	require.NoError(t, os.WriteFile(want, []byte("not a library"), 0o644))

	got, err := FindLibrary("swscale", []int{8, 7})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindLibraryMissing(t *testing.T) {
	_, err := FindLibrary("definitely-not-ffmpeg", []int{1})
	require.ErrorIs(t, err, ErrLibraryNotFound)
	assert.True(t, strings.Contains(err.Error(), "definitely-not-ffmpeg"))
}

func TestVersionsBeforeLoad(t *testing.T) {
	if IsLoaded() {
		t.Skip("libraries already loaded by another test")
	}
	assert.Zero(t, AVUtilVersion())
	assert.Zero(t, SWScaleVersion())
}

// Integration test, runs only where FFmpeg is installed.
func TestLoadFFmpeg(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping FFmpeg load in short mode")
	}
	if err := Load(); err != nil {
		t.Skipf("FFmpeg not available: %v", err)
	}

	require.True(t, IsLoaded())
	ver := AVUtilVersion()
	assert.NotZero(t, ver)
	assert.NotZero(t, SWScaleVersion())
	t.Logf("FFmpeg loaded: avutil %d.%d.%d", ver>>16, (ver>>8)&0xFF, ver&0xFF)
}
