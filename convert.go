//go:build !ios && !android && (amd64 || arm64)

package videostream

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/expenses/videostream/avutil"
	"github.com/expenses/videostream/swscale"
)

type convKey struct {
	width, height int
	from, to      PixelFormat
}

// swsConverter converts decoded frames with libswscale. It keeps one
// SwsContext per source geometry and target format, and one destination
// frame per target format, so a stream of same-sized frames allocates only
// on its first conversion.
type swsConverter struct {
	flags ScaleFlags
	log   logrus.FieldLogger

	contexts map[convKey]swscale.Context
	dst      map[PixelFormat]avutil.Frame
}

func newSwsConverter(flags ScaleFlags, log logrus.FieldLogger) *swsConverter {
	return &swsConverter{
		flags:    flags,
		log:      log,
		contexts: make(map[convKey]swscale.Context),
		dst:      make(map[PixelFormat]avutil.Frame),
	}
}

func (c *swsConverter) Convert(f RawFrame, format PixelFormat) (Plane, error) {
	src, ok := f.(avFrame)
	if !ok {
		return Plane{}, fmt.Errorf("cannot convert frame of type %T", f)
	}
	if c.contexts == nil {
		return Plane{}, ErrClosed
	}
	w, h := src.Width(), src.Height()

	ctx, err := c.context(convKey{w, h, src.Format(), format})
	if err != nil {
		return Plane{}, err
	}
	dst, err := c.target(w, h, format)
	if err != nil {
		return Plane{}, err
	}

	if err := avutil.FrameMakeWritable(dst); err != nil {
		return Plane{}, err
	}
	if ret := swscale.ScaleFrame(ctx, dst, src.ptr); ret < 0 {
		return Plane{}, avutil.NewError(ret, "sws_scale_frame")
	}

	stride := int(avutil.GetFrameLinesizePlane(dst, 0))
	data := avutil.GetFrameDataPlane(dst, 0)
	if data == nil || stride <= 0 {
		return Plane{}, errors.New("converted frame has no packed plane")
	}
	return Plane{
		Data:   unsafe.Slice((*byte)(data), stride*h),
		Stride: stride,
		Width:  w,
		Height: h,
	}, nil
}

func (c *swsConverter) context(key convKey) (swscale.Context, error) {
	if ctx, ok := c.contexts[key]; ok {
		return ctx, nil
	}
	ctx := swscale.GetContext(key.width, key.height, avutil.PixelFormat(key.from),
		key.width, key.height, avutil.PixelFormat(key.to), int32(c.flags))
	if ctx == nil {
		return nil, fmt.Errorf("swscale cannot convert %s to %s at %dx%d",
			key.from, key.to, key.width, key.height)
	}
	c.contexts[key] = ctx

	c.log.WithFields(logrus.Fields{
		"function": "swsConverter.context",
		"from":     key.from.String(),
		"to":       key.to.String(),
		"width":    key.width,
		"height":   key.height,
	}).Debug("created swscale context")
	return ctx, nil
}

// target returns the destination frame for format, reallocating it when the
// source dimensions change.
func (c *swsConverter) target(w, h int, format PixelFormat) (avutil.Frame, error) {
	if dst, ok := c.dst[format]; ok {
		if int(avutil.GetFrameWidth(dst)) == w && int(avutil.GetFrameHeight(dst)) == h {
			return dst, nil
		}
		avutil.FrameFree(&dst)
		delete(c.dst, format)
	}

	dst := avutil.FrameAlloc()
	if dst == nil {
		return nil, errors.New("allocating destination frame failed")
	}
	avutil.SetFrameWidth(dst, int32(w))
	avutil.SetFrameHeight(dst, int32(h))
	avutil.SetFrameFormat(dst, int32(format))
	// Alignment 0 lets FFmpeg pad rows for SIMD; Pack strips it again.
	if err := avutil.FrameGetBuffer(dst, 0); err != nil {
		avutil.FrameFree(&dst)
		return nil, err
	}
	c.dst[format] = dst
	return dst, nil
}

func (c *swsConverter) Close() error {
	for key, ctx := range c.contexts {
		swscale.FreeContext(ctx)
		delete(c.contexts, key)
	}
	for format, dst := range c.dst {
		avutil.FrameFree(&dst)
		delete(c.dst, format)
	}
	c.contexts, c.dst = nil, nil
	return nil
}
