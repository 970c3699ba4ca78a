//go:build !ios && !android && (amd64 || arm64)

package videostream

import (
	"github.com/expenses/videostream/avutil"
	"github.com/expenses/videostream/internal/bindings"
)

// SetLogLevel sets how much FFmpeg itself writes to stderr. FFmpeg defaults
// to LogInfo, which reports every corrupt packet it skips.
func SetLogLevel(level LogLevel) error {
	if err := bindings.Load(); err != nil {
		return err
	}
	return avutil.LogSetLevel(int32(level))
}

// GetLogLevel returns FFmpeg's current stderr verbosity.
func GetLogLevel() LogLevel {
	return LogLevel(avutil.LogGetLevel())
}
