//go:build !ios && !android && (amd64 || arm64)

// Package platform knows how FFmpeg shared libraries are named on each
// operating system videostream can load them on.
package platform

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Is64Bit reports whether pointers are 8 bytes wide. The struct offsets used
// by the binding packages assume a 64-bit layout.
const Is64Bit = unsafe.Sizeof(uintptr(0)) == 8

// naming describes how one OS spells a shared library file name.
type naming struct {
	prefix string
	ext    string
	// versioned formats prefix, name, ext and version in that order.
	versioned string
}

var namings = map[string]naming{
	"darwin":  {prefix: "lib", ext: ".dylib", versioned: "%s%s.%[4]d%[3]s"},
	"windows": {prefix: "", ext: ".dll", versioned: "%s%s-%[4]d%[3]s"},
}

// unix covers linux and the BSDs.
var unix = naming{prefix: "lib", ext: ".so", versioned: "%s%s%s.%d"}

func current() naming {
	return namingFor(runtime.GOOS)
}

func namingFor(goos string) naming {
	if n, ok := namings[goos]; ok {
		return n
	}
	return unix
}

// LibraryExtension is the shared library file extension on this OS.
var LibraryExtension = current().ext

// LibraryPrefix is the shared library file prefix on this OS.
var LibraryPrefix = current().prefix

// FormatLibraryName returns the file name of library name at the given major
// version. A version of 0 yields the unversioned name.
//
//   - linux:   FormatLibraryName("avcodec", 60) -> "libavcodec.so.60"
//   - darwin:  FormatLibraryName("avcodec", 60) -> "libavcodec.60.dylib"
//   - windows: FormatLibraryName("avcodec", 60) -> "avcodec-60.dll"
func FormatLibraryName(name string, version int) string {
	return formatLibraryName(current(), name, version)
}

func formatLibraryName(n naming, name string, version int) string {
	if version <= 0 {
		return n.prefix + name + n.ext
	}
	return fmt.Sprintf(n.versioned, n.prefix, name, n.ext, version)
}
