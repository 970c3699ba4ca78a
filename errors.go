package videostream

import (
	"errors"
	"fmt"
)

var (
	// ErrNoVideoStream is returned by Open when the source has no decodable
	// video stream.
	ErrNoVideoStream = errors.New("videostream: no video stream")

	// ErrBuildImage is returned when a packed buffer does not have exactly
	// width*height*channels bytes.
	ErrBuildImage = errors.New("videostream: failed to build image")

	// ErrClosed is returned when a closed VideoStream is used.
	ErrClosed = errors.New("videostream: stream is closed")

	// ErrFrameExpired is returned when a Frame is converted after the
	// sequence has moved past it.
	ErrFrameExpired = errors.New("videostream: frame used after Next")

	// ErrUnsupportedFormat is returned when a conversion target is not one
	// of RGB24, RGBA or Gray8.
	ErrUnsupportedFormat = errors.New("videostream: unsupported output pixel format")

	// ErrAgain is returned by Decoder.ReceiveFrame when the decoder needs
	// another packet before it can produce a frame.
	ErrAgain = errors.New("videostream: decoder needs more input")
)

// OpenError reports a failure to open a source. Op names the step that
// failed: "init", "open", "stream info", "select stream" or "open decoder".
type OpenError struct {
	Source string
	Op     string
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("videostream: %s %q: %v", e.Op, e.Source, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// DecodeError reports a failure to decode a packet of the selected stream.
// It ends the frame sequence and is available from Frames.Err.
type DecodeError struct {
	Stream int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("videostream: decoding stream %d: %v", e.Stream, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ConversionError reports a failed pixel format conversion.
type ConversionError struct {
	From PixelFormat
	To   PixelFormat
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("videostream: converting %s to %s: %v", e.From, e.To, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
