//go:build ios || android || !(amd64 || arm64)

package videostream

import (
	"errors"
	"runtime"
)

// ErrUnsupportedPlatform is returned by the FFmpeg entry points on platforms
// the purego bindings do not cover.
var ErrUnsupportedPlatform = errors.New("videostream: FFmpeg bindings are not available on " + runtime.GOOS + "/" + runtime.GOARCH)

func Init() error { return ErrUnsupportedPlatform }

func Version() (avutil, avcodec, avformat uint32) { return 0, 0, 0 }

func Open(source string, opts ...Option) (*VideoStream, error) {
	return nil, &OpenError{Source: source, Op: "init", Err: ErrUnsupportedPlatform}
}

func SetLogLevel(level LogLevel) error { return ErrUnsupportedPlatform }

func GetLogLevel() LogLevel { return LogInfo }
