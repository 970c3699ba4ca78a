//go:build !ios && !android && (amd64 || arm64)

package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs64Bit(t *testing.T) {
	assert.True(t, Is64Bit, "only 64-bit platforms are supported")
}

func TestLibraryExtensionAndPrefix(t *testing.T) {
	switch runtime.GOOS {
	case "darwin":
		assert.Equal(t, ".dylib", LibraryExtension)
		assert.Equal(t, "lib", LibraryPrefix)
	case "windows":
		assert.Equal(t, ".dll", LibraryExtension)
		assert.Equal(t, "", LibraryPrefix)
	default:
		assert.Equal(t, ".so", LibraryExtension)
		assert.Equal(t, "lib", LibraryPrefix)
	}
}

func TestFormatLibraryName(t *testing.T) {
	tests := []struct {
		goos    string
		name    string
		version int
		want    string
	}{
		{"linux", "avcodec", 60, "libavcodec.so.60"},
		{"linux", "avcodec", 0, "libavcodec.so"},
		{"freebsd", "swscale", 7, "libswscale.so.7"},
		{"darwin", "avcodec", 60, "libavcodec.60.dylib"},
		{"darwin", "avcodec", 0, "libavcodec.dylib"},
		{"windows", "avcodec", 60, "avcodec-60.dll"},
		{"windows", "avcodec", 0, "avcodec.dll"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"_"+tt.want, func(t *testing.T) {
			got := formatLibraryName(namingFor(tt.goos), tt.name, tt.version)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatLibraryNameCurrentOS(t *testing.T) {
	assert.Equal(t, formatLibraryName(namingFor(runtime.GOOS), "avutil", 58), FormatLibraryName("avutil", 58))
}
