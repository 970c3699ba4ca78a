package videostream

import (
	"errors"
	"io"
	"iter"

	"github.com/sirupsen/logrus"
)

// Frames is the pull iterator over a VideoStream's decoded frames.
//
//	for frames.Next() {
//		f := frames.Frame()
//		...
//	}
//	if err := frames.Err(); err != nil { ... }
//
// A decode error ends the sequence; it is logged and returned by Err.
type Frames struct {
	vs *VideoStream

	cur *Frame
	gen uint64

	pending  bool // packets were sent since the decoder last asked for input
	draining bool // the flush packet was sent
	done     bool
	err      error
	packets  int
}

// Next advances to the next decoded frame. It returns false when the source
// is exhausted, after a decode or read error, or once the stream is closed.
// The previous Frame becomes invalid.
func (f *Frames) Next() bool {
	f.gen++
	f.cur = nil
	if f.done {
		return false
	}
	if f.vs.closed {
		f.finish(ErrClosed)
		return false
	}

	dec := f.vs.demux.Decoder()
	for {
		if f.pending {
			raw, err := dec.ReceiveFrame()
			switch {
			case err == nil:
				if raw.Format() == PixelFormatNone {
					continue
				}
				f.cur = &Frame{
					raw:    raw,
					owner:  f,
					gen:    f.gen,
					width:  raw.Width(),
					height: raw.Height(),
					format: raw.Format(),
				}
				return true
			case errors.Is(err, ErrAgain):
				f.pending = false
				if f.draining {
					// A flushed decoder has no more input to ask for.
					f.finish(nil)
					return false
				}
			case errors.Is(err, io.EOF):
				f.finish(nil)
				return false
			default:
				f.decodeFailed(err)
				return false
			}
			continue
		}

		pkt, err := f.vs.demux.ReadPacket()
		if errors.Is(err, io.EOF) {
			if err := dec.SendPacket(nil); err != nil {
				f.decodeFailed(err)
				return false
			}
			f.pending, f.draining = true, true
			continue
		}
		if err != nil {
			f.logger().WithError(err).Error("reading packet failed")
			f.finish(err)
			return false
		}
		f.packets++

		if idx := pkt.StreamIndex(); idx != f.vs.info.Index {
			f.logger().WithField("packet_stream", idx).Trace("skipping packet of another stream")
			continue
		}
		if err := dec.SendPacket(pkt); err != nil {
			f.decodeFailed(err)
			return false
		}
		f.pending = true
	}
}

// Frame returns the current frame, or nil before the first Next and after
// the end of the sequence. It is valid until the next call to Next.
func (f *Frames) Frame() *Frame {
	return f.cur
}

// Err returns the error that ended the sequence, or nil if it ran to the end
// of the source.
func (f *Frames) Err() error {
	return f.err
}

// All returns the remaining frames as a range-over-func sequence. Breaking
// out of the loop stops decoding; the stream still has to be closed.
func (f *Frames) All() iter.Seq[*Frame] {
	return func(yield func(*Frame) bool) {
		for f.Next() {
			if !yield(f.cur) {
				return
			}
		}
	}
}

func (f *Frames) finish(err error) {
	f.done = true
	f.err = err
}

func (f *Frames) decodeFailed(err error) {
	derr := &DecodeError{Stream: f.vs.info.Index, Err: err}
	f.logger().WithError(err).Error("decoding failed, ending frame sequence")
	f.finish(derr)
}

func (f *Frames) logger() logrus.FieldLogger {
	return f.vs.log.WithFields(logrus.Fields{
		"function": "Frames.Next",
		"stream":   f.vs.info.Index,
		"packet":   f.packets,
	})
}
