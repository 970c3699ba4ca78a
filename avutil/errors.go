//go:build !ios && !android && (amd64 || arm64)

package avutil

import (
	"errors"
	"fmt"
	"syscall"
)

// FFmpeg AVERROR values seen while demuxing and decoding.
const (
	AVERROR_EOF               int32 = -541478725             // AVERROR_EOF
	AVERROR_EAGAIN            int32 = -int32(syscall.EAGAIN) // AVERROR(EAGAIN)
	AVERROR_EINVAL            int32 = -int32(syscall.EINVAL) // AVERROR(EINVAL)
	AVERROR_ENOMEM            int32 = -int32(syscall.ENOMEM) // AVERROR(ENOMEM)
	AVERROR_DECODER_NOT_FOUND int32 = -1128613112
	AVERROR_STREAM_NOT_FOUND  int32 = -1381258232
	AVERROR_INVALIDDATA       int32 = -1094995529
)

// Error is a negative FFmpeg return code from the call named by Op.
type Error struct {
	Code    int32
	Message string
	Op      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ffmpeg %s: %s (code %d)", e.Op, e.Message, e.Code)
}

// NewError wraps code as an *Error, or returns nil when code is not negative.
func NewError(code int32, op string) error {
	if code >= 0 {
		return nil
	}
	return &Error{Code: code, Message: ErrorString(code), Op: op}
}

func hasCode(err error, code int32) bool {
	var ffErr *Error
	return errors.As(err, &ffErr) && ffErr.Code == code
}

// IsEOF reports whether err is AVERROR_EOF.
func IsEOF(err error) bool { return hasCode(err, AVERROR_EOF) }

// IsAgain reports whether err is AVERROR(EAGAIN): the codec wants more input
// before it can produce output.
func IsAgain(err error) bool { return hasCode(err, AVERROR_EAGAIN) }

// IsInvalidData reports whether err is AVERROR_INVALIDDATA.
func IsInvalidData(err error) bool { return hasCode(err, AVERROR_INVALIDDATA) }

// Code returns the FFmpeg code carried by err, or 0.
func Code(err error) int32 {
	var ffErr *Error
	if errors.As(err, &ffErr) {
		return ffErr.Code
	}
	return 0
}
