package videostream

// LogLevel is a verbosity level of FFmpeg's own logging to stderr. It is
// separate from the logrus logger videostream reports through.
type LogLevel int32

// AV_LOG_* values.
const (
	LogQuiet   LogLevel = -8
	LogPanic   LogLevel = 0
	LogFatal   LogLevel = 8
	LogError   LogLevel = 16
	LogWarning LogLevel = 24
	LogInfo    LogLevel = 32
	LogVerbose LogLevel = 40
	LogDebug   LogLevel = 48
	LogTrace   LogLevel = 56
)

func (l LogLevel) String() string {
	switch {
	case l <= LogQuiet:
		return "quiet"
	case l <= LogPanic:
		return "panic"
	case l <= LogFatal:
		return "fatal"
	case l <= LogError:
		return "error"
	case l <= LogWarning:
		return "warning"
	case l <= LogInfo:
		return "info"
	case l <= LogVerbose:
		return "verbose"
	case l <= LogDebug:
		return "debug"
	}
	return "trace"
}
