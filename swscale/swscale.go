//go:build !ios && !android && (amd64 || arm64)

// Package swscale binds the pixel format conversion entry points of FFmpeg's
// libswscale.
package swscale

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/expenses/videostream/avutil"
	"github.com/expenses/videostream/internal/bindings"
)

// Context is an opaque SwsContext pointer.
type Context = unsafe.Pointer

// Interpolation flags for GetContext. Only one should be set.
const (
	FlagFastBilinear = 1
	FlagBilinear     = 2
	FlagBicubic      = 4
	FlagPoint        = 0x10
	FlagArea         = 0x20
	FlagLanczos      = 0x200
)

var (
	swsGetContext     func(srcW, srcH, srcFormat, dstW, dstH, dstFormat, flags int32, srcFilter, dstFilter, param unsafe.Pointer) unsafe.Pointer
	swsFreeContext    func(ctx unsafe.Pointer)
	swsScale          func(ctx, srcSlice, srcStride unsafe.Pointer, srcSliceY, srcSliceH int32, dst, dstStride unsafe.Pointer) int32
	swsScaleFrame     func(ctx, dst, src unsafe.Pointer) int32
	swsIsSupportedIn  func(format int32) int32
	swsIsSupportedOut func(format int32) int32

	bindingsRegistered bool
)

func init() {
	registerBindings()
}

func registerBindings() {
	if bindingsRegistered {
		return
	}
	if err := bindings.Load(); err != nil {
		return
	}
	lib := bindings.LibSWScale()
	if lib == 0 {
		return
	}

	purego.RegisterLibFunc(&swsGetContext, lib, "sws_getContext")
	purego.RegisterLibFunc(&swsFreeContext, lib, "sws_freeContext")
	purego.RegisterLibFunc(&swsScale, lib, "sws_scale")
	purego.RegisterLibFunc(&swsIsSupportedIn, lib, "sws_isSupportedInput")
	purego.RegisterLibFunc(&swsIsSupportedOut, lib, "sws_isSupportedOutput")
	// FFmpeg 5.0+
	bindings.RegisterOptional(&swsScaleFrame, lib, "sws_scale_frame")

	bindingsRegistered = true
}

// GetContext returns a context converting srcW x srcH frames of srcFormat to
// dstW x dstH frames of dstFormat, or nil when the conversion is unsupported.
func GetContext(srcW, srcH int, srcFormat avutil.PixelFormat, dstW, dstH int, dstFormat avutil.PixelFormat, flags int32) Context {
	if swsGetContext == nil {
		return nil
	}
	return swsGetContext(int32(srcW), int32(srcH), int32(srcFormat),
		int32(dstW), int32(dstH), int32(dstFormat), flags, nil, nil, nil)
}

// FreeContext frees ctx. Nil is ignored.
func FreeContext(ctx Context) {
	if ctx == nil || swsFreeContext == nil {
		return
	}
	swsFreeContext(ctx)
}

// ScaleFrame converts src into dst, whose buffers must already be allocated.
// It returns the output height, or a negative AVERROR.
func ScaleFrame(ctx Context, dst, src avutil.Frame) int32 {
	if ctx == nil || dst == nil || src == nil {
		return avutil.AVERROR_EINVAL
	}
	if swsScaleFrame != nil {
		return swsScaleFrame(ctx, dst, src)
	}
	if swsScale == nil {
		return avutil.AVERROR_EINVAL
	}

	var srcData, dstData [avutil.MaxPlanes]unsafe.Pointer
	var srcStride, dstStride [avutil.MaxPlanes]int32
	for i := 0; i < avutil.MaxPlanes; i++ {
		srcData[i] = avutil.GetFrameDataPlane(src, i)
		srcStride[i] = avutil.GetFrameLinesizePlane(src, i)
		dstData[i] = avutil.GetFrameDataPlane(dst, i)
		dstStride[i] = avutil.GetFrameLinesizePlane(dst, i)
	}
	return swsScale(ctx,
		unsafe.Pointer(&srcData), unsafe.Pointer(&srcStride),
		0, avutil.GetFrameHeight(src),
		unsafe.Pointer(&dstData), unsafe.Pointer(&dstStride),
	)
}

// IsSupportedInput reports whether format can be converted from.
func IsSupportedInput(format avutil.PixelFormat) bool {
	return swsIsSupportedIn != nil && swsIsSupportedIn(int32(format)) > 0
}

// IsSupportedOutput reports whether format can be converted to.
func IsSupportedOutput(format avutil.PixelFormat) bool {
	return swsIsSupportedOut != nil && swsIsSupportedOut(int32(format)) > 0
}
