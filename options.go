package videostream

import "github.com/sirupsen/logrus"

// ScaleFlags selects the libswscale interpolation used by conversions.
// Frames are never resized, so the flags only matter for chroma upsampling.
type ScaleFlags int32

const (
	ScaleFastBilinear ScaleFlags = 0x1
	ScaleBilinear     ScaleFlags = 0x2
	ScaleBicubic      ScaleFlags = 0x4
	ScalePoint        ScaleFlags = 0x10
	ScaleArea         ScaleFlags = 0x20
	ScaleLanczos      ScaleFlags = 0x200
)

// Options configures Open and New.
type Options struct {
	// Format forces a container format (e.g. "mp4", "v4l2"). Empty probes.
	Format string

	// AVOptions are passed to avformat_open_input, e.g. "timeout" or
	// "user_agent" for network sources.
	AVOptions map[string]string

	// Threads is the decoder thread count. 0 lets FFmpeg decide.
	Threads int

	ScaleFlags ScaleFlags

	Logger logrus.FieldLogger
}

// Option is a functional option for Open and New.
type Option func(*Options)

// WithFormat forces the container format instead of probing.
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithAVOptions sets FFmpeg options for opening the input.
func WithAVOptions(options map[string]string) Option {
	return func(o *Options) {
		o.AVOptions = options
	}
}

// WithThreads sets the number of decoder threads.
func WithThreads(n int) Option {
	return func(o *Options) {
		o.Threads = n
	}
}

// WithScaleFlags sets the swscale algorithm used by frame conversions.
func WithScaleFlags(flags ScaleFlags) Option {
	return func(o *Options) {
		o.ScaleFlags = flags
	}
}

// WithLogger routes diagnostics to logger instead of the logrus standard
// logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func buildOptions(opts []Option) *Options {
	o := &Options{ScaleFlags: ScaleBilinear}
	for _, opt := range opts {
		opt(o)
	}
	if o.ScaleFlags == 0 {
		o.ScaleFlags = ScaleBilinear
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}
