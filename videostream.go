// Package videostream decodes the video stream of a file or URL into frames
// and converts each frame to a packed RGB24, RGBA or Gray8 buffer with the
// decoder's row padding removed.
//
// Decoding and pixel format conversion are done by FFmpeg, loaded at run
// time without CGO:
//
//	vs, err := videostream.Open("clip.mp4")
//	if err != nil {
//		return err
//	}
//	defer vs.Close()
//
//	frames := vs.Frames()
//	for frames.Next() {
//		img, err := frames.Frame().AsRGBA()
//		...
//	}
//	if err := frames.Err(); err != nil {
//		return err
//	}
package videostream

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// VideoStream is an opened source with one selected video stream. It is not
// safe for concurrent use. Close releases the decoder and every buffer the
// stream's frames point into.
type VideoStream struct {
	demux  Demuxer
	conv   Converter
	info   StreamInfo
	log    logrus.FieldLogger
	frames *Frames
	closed bool
}

// New returns a VideoStream reading packets from d and converting frames
// with conv. Open is New over the FFmpeg implementations; New lets callers
// supply their own. Of the options only WithLogger applies; the others
// configure the FFmpeg source.
func New(d Demuxer, conv Converter, opts ...Option) (*VideoStream, error) {
	if d == nil || conv == nil {
		return nil, errors.New("videostream: nil demuxer or converter")
	}
	o := buildOptions(opts)
	return &VideoStream{
		demux: d,
		conv:  conv,
		info:  d.Info(),
		log:   o.Logger,
	}, nil
}

// Info describes the selected video stream.
func (vs *VideoStream) Info() StreamInfo {
	return vs.info
}

// StreamIndex is the index of the selected video stream. It never changes
// after Open.
func (vs *VideoStream) StreamIndex() int {
	return vs.info.Index
}

// Frames returns the stream's frame sequence. The sequence is forward-only
// and cannot be restarted: every call returns the same iterator.
func (vs *VideoStream) Frames() *Frames {
	if vs.frames == nil {
		vs.frames = &Frames{vs: vs}
	}
	return vs.frames
}

// Close releases the converter and the source. Calling it again is a no-op.
func (vs *VideoStream) Close() error {
	if vs.closed {
		return nil
	}
	vs.closed = true

	err := errors.Join(vs.conv.Close(), vs.demux.Close())
	vs.log.WithFields(logrus.Fields{
		"function": "VideoStream.Close",
		"stream":   vs.info.Index,
	}).Debug("video stream closed")
	return err
}
