//go:build !ios && !android && (amd64 || arm64)

// Package bindings loads the FFmpeg shared libraries videostream needs and
// hands their handles to the binding packages.
package bindings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/expenses/videostream/internal/platform"
)

// ErrNotLoaded is returned when an FFmpeg function is called before Load
// succeeded.
var ErrNotLoaded = errors.New("videostream: FFmpeg libraries not loaded; call videostream.Init() first")

// ErrLibraryNotFound is returned when a required FFmpeg library cannot be found.
var ErrLibraryNotFound = errors.New("videostream: FFmpeg library not found")

// DirEnv names a directory searched before every other location.
const DirEnv = "VIDEOSTREAM_FFMPEG_DIR"

// library is one FFmpeg shared library and the major versions we accept,
// newest first.
type library struct {
	name     string
	versions []int
	handle   *uintptr
}

var (
	libAVUtil   uintptr
	libAVCodec  uintptr
	libAVFormat uintptr
	libSWScale  uintptr

	loaded   bool
	loadOnce sync.Once
	loadErr  error
)

var (
	avutilVersion   func() uint32
	avcodecVersion  func() uint32
	avformatVersion func() uint32
	swscaleVersion  func() uint32
)

// Libraries in dependency order: avutil first, everything else links to it.
var libraries = []library{
	{"avutil", []int{59, 58, 57, 56}, &libAVUtil},
	{"avcodec", []int{61, 60, 59, 58}, &libAVCodec},
	{"avformat", []int{61, 60, 59, 58}, &libAVFormat},
	{"swscale", []int{8, 7, 6, 5}, &libSWScale},
}

// IsLoaded reports whether Load has succeeded.
func IsLoaded() bool {
	return loaded
}

// Load opens the FFmpeg libraries. It is safe to call many times; only the
// first call does any work and its result is returned to every caller.
func Load() error {
	loadOnce.Do(func() {
		loadErr = doLoad()
		loaded = loadErr == nil
	})
	return loadErr
}

func doLoad() error {
	for _, lib := range libraries {
		h, err := loadLibrary(lib.name, lib.versions)
		if err != nil {
			return fmt.Errorf("loading lib%s: %w", lib.name, err)
		}
		*lib.handle = h
	}

	purego.RegisterLibFunc(&avutilVersion, libAVUtil, "avutil_version")
	purego.RegisterLibFunc(&avcodecVersion, libAVCodec, "avcodec_version")
	purego.RegisterLibFunc(&avformatVersion, libAVFormat, "avformat_version")
	purego.RegisterLibFunc(&swscaleVersion, libSWScale, "swscale_version")
	return nil
}

// candidates lists every file name tried for a library, most specific first.
func candidates(name string, versions []int) []string {
	names := make([]string, 0, len(versions)+1)
	for _, ver := range versions {
		names = append(names, platform.FormatLibraryName(name, ver))
	}
	return append(names, platform.FormatLibraryName(name, 0))
}

func loadLibrary(name string, versions []int) (uintptr, error) {
	names := candidates(name, versions)
	for _, dir := range LibrarySearchPaths() {
		for _, n := range names {
			if lib, err := tryOpen(filepath.Join(dir, n)); err == nil {
				return lib, nil
			}
		}
	}

	// Let the dynamic linker search its own paths.
	for _, n := range names {
		if lib, err := tryOpen(n); err == nil {
			return lib, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// tryOpen opens with RTLD_GLOBAL: the FFmpeg libraries resolve symbols from
// each other.
func tryOpen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// FindLibrary returns the path of the first file on the search path that
// matches library name. It does not open the file.
func FindLibrary(name string, versions []int) (string, error) {
	names := candidates(name, versions)
	for _, dir := range LibrarySearchPaths() {
		for _, n := range names {
			full := filepath.Join(dir, n)
			if _, err := os.Stat(full); err == nil {
				return full, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLibraryNotFound, name)
}

// LibrarySearchPaths returns the directories searched for FFmpeg libraries:
// DirEnv, then the OS loader path variable, then well-known install
// locations.
func LibrarySearchPaths() []string {
	var paths []string
	if dir := os.Getenv(DirEnv); dir != "" {
		paths = append(paths, dir)
	}

	switch runtime.GOOS {
	case "linux":
		paths = append(paths, splitEnv("LD_LIBRARY_PATH")...)
		paths = append(paths,
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib/aarch64-linux-gnu",
			"/usr/local/lib",
			"/usr/lib",
			"/lib/x86_64-linux-gnu",
			"/lib",
		)
	case "darwin":
		paths = append(paths, splitEnv("DYLD_LIBRARY_PATH")...)
		paths = append(paths,
			"/opt/homebrew/lib",
			"/usr/local/lib",
			"/opt/homebrew/opt/ffmpeg/lib",
			"/usr/local/opt/ffmpeg/lib",
		)
	case "windows":
		paths = append(paths, splitEnv("PATH")...)
		if exe, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Dir(exe))
		}
		paths = append(paths, `C:\ffmpeg\bin`, `C:\Program Files\ffmpeg\bin`)
	case "freebsd":
		paths = append(paths, splitEnv("LD_LIBRARY_PATH")...)
		paths = append(paths, "/usr/local/lib", "/usr/lib")
	}
	return paths
}

func splitEnv(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	return filepath.SplitList(v)
}

func version(fn func() uint32) uint32 {
	if !loaded || fn == nil {
		return 0
	}
	return fn()
}

// AVUtilVersion returns the packed libavutil version, or 0 before Load.
func AVUtilVersion() uint32 { return version(avutilVersion) }

// AVCodecVersion returns the packed libavcodec version, or 0 before Load.
func AVCodecVersion() uint32 { return version(avcodecVersion) }

// AVFormatVersion returns the packed libavformat version, or 0 before Load.
func AVFormatVersion() uint32 { return version(avformatVersion) }

// SWScaleVersion returns the packed libswscale version, or 0 before Load.
func SWScaleVersion() uint32 { return version(swscaleVersion) }

// LibAVUtil returns the libavutil handle.
func LibAVUtil() uintptr { return libAVUtil }

// LibAVCodec returns the libavcodec handle.
func LibAVCodec() uintptr { return libAVCodec }

// LibAVFormat returns the libavformat handle.
func LibAVFormat() uintptr { return libAVFormat }

// LibSWScale returns the libswscale handle.
func LibSWScale() uintptr { return libSWScale }

// RegisterOptional registers symbol name from handle into fptr, leaving fptr
// nil when the symbol is missing from this FFmpeg build.
func RegisterOptional(fptr any, handle uintptr, name string) {
	defer func() { _ = recover() }()
	purego.RegisterLibFunc(fptr, handle, name)
}
