//go:build !ios && !android && (amd64 || arm64)

// Package avcodec binds the decoding half of FFmpeg's libavcodec: decoder
// lookup, codec context lifetime, the send/receive decode loop and AVPacket
// handling.
package avcodec

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/expenses/videostream/avutil"
	"github.com/expenses/videostream/internal/bindings"
)

// Codec is an opaque AVCodec pointer.
type Codec = unsafe.Pointer

// Context is an opaque AVCodecContext pointer.
type Context = unsafe.Pointer

// Packet is an opaque AVPacket pointer.
type Packet = unsafe.Pointer

// Parameters is an opaque AVCodecParameters pointer.
type Parameters = unsafe.Pointer

var (
	avcodecFindDecoder     func(id int32) uintptr
	avcodecGetName         func(id int32) uintptr
	avcodecAllocContext3   func(codec uintptr) uintptr
	avcodecFreeContext     func(ctx *unsafe.Pointer)
	avcodecOpen2           func(ctx, codec uintptr, options *unsafe.Pointer) int32
	avcodecSendPacket      func(ctx, pkt uintptr) int32
	avcodecReceiveFrame    func(ctx, frame uintptr) int32
	avcodecFlushBuffers    func(ctx uintptr)
	avcodecParametersToCtx func(ctx, par uintptr) int32

	avPacketAlloc func() uintptr
	avPacketFree  func(pkt *unsafe.Pointer)
	avPacketUnref func(pkt uintptr)

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
	lib := bindings.LibAVCodec()
	if lib == 0 {
		return
	}

	purego.RegisterLibFunc(&avcodecFindDecoder, lib, "avcodec_find_decoder")
	purego.RegisterLibFunc(&avcodecGetName, lib, "avcodec_get_name")
	purego.RegisterLibFunc(&avcodecAllocContext3, lib, "avcodec_alloc_context3")
	purego.RegisterLibFunc(&avcodecFreeContext, lib, "avcodec_free_context")
	purego.RegisterLibFunc(&avcodecOpen2, lib, "avcodec_open2")
	purego.RegisterLibFunc(&avcodecSendPacket, lib, "avcodec_send_packet")
	purego.RegisterLibFunc(&avcodecReceiveFrame, lib, "avcodec_receive_frame")
	purego.RegisterLibFunc(&avcodecFlushBuffers, lib, "avcodec_flush_buffers")
	purego.RegisterLibFunc(&avcodecParametersToCtx, lib, "avcodec_parameters_to_context")

	purego.RegisterLibFunc(&avPacketAlloc, lib, "av_packet_alloc")
	purego.RegisterLibFunc(&avPacketFree, lib, "av_packet_free")
	purego.RegisterLibFunc(&avPacketUnref, lib, "av_packet_unref")

	bindingsRegistered = true
}

// FindDecoder returns the registered decoder for id, or nil.
func FindDecoder(id CodecID) Codec {
	if avcodecFindDecoder == nil {
		return nil
	}
	return unsafe.Pointer(avcodecFindDecoder(int32(id)))
}

// GetName returns libavcodec's descriptor name for id.
func GetName(id CodecID) string {
	if avcodecGetName == nil {
		return ""
	}
	p := avcodecGetName(int32(id))
	if p == 0 {
		return ""
	}
	return avutil.GoString(unsafe.Pointer(p))
}

// AllocContext3 allocates a codec context with codec's defaults.
func AllocContext3(codec Codec) Context {
	if avcodecAllocContext3 == nil {
		return nil
	}
	return unsafe.Pointer(avcodecAllocContext3(uintptr(codec)))
}

// FreeContext frees ctx and sets it to nil.
func FreeContext(ctx *Context) {
	if ctx == nil || *ctx == nil || avcodecFreeContext == nil {
		return
	}

	// Some purego backends abort when foreign code writes through a pointer
	// into Go memory, so the double pointer lives in FFmpeg memory.
	tmp := avutil.Malloc(unsafe.Sizeof(uintptr(0)))
	if tmp != nil {
		*(*unsafe.Pointer)(tmp) = *ctx
		avcodecFreeContext((*unsafe.Pointer)(tmp))
		avutil.Free(tmp)
		*ctx = nil
		return
	}
	avcodecFreeContext(ctx)
	*ctx = nil
}

// Open2 initialises ctx to use codec. Entries of options that the codec
// consumed are removed from the dictionary.
func Open2(ctx Context, codec Codec, options *avutil.Dictionary) error {
	if avcodecOpen2 == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avcodecOpen2(uintptr(ctx), uintptr(codec), options); ret < 0 {
		return avutil.NewError(ret, "avcodec_open2")
	}
	return nil
}

// SendPacket feeds pkt to the decoder. A nil pkt enters draining mode.
// EAGAIN and EOF are not reported: both mean output must be received first.
func SendPacket(ctx Context, pkt Packet) error {
	if avcodecSendPacket == nil {
		return bindings.ErrNotLoaded
	}
	ret := avcodecSendPacket(uintptr(ctx), uintptr(pkt))
	runtime.KeepAlive(pkt)
	if ret < 0 && ret != avutil.AVERROR_EAGAIN && ret != avutil.AVERROR_EOF {
		return avutil.NewError(ret, "avcodec_send_packet")
	}
	return nil
}

// ReceiveFrame moves the next decoded frame into frame. It returns an error
// matching avutil.IsAgain when more input is needed and avutil.IsEOF once a
// drained decoder has no frames left.
func ReceiveFrame(ctx Context, frame avutil.Frame) error {
	if avcodecReceiveFrame == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avcodecReceiveFrame(uintptr(ctx), uintptr(frame)); ret < 0 {
		return avutil.NewError(ret, "avcodec_receive_frame")
	}
	return nil
}

// FlushBuffers resets the decoder's internal state.
func FlushBuffers(ctx Context) {
	if ctx == nil || avcodecFlushBuffers == nil {
		return
	}
	avcodecFlushBuffers(uintptr(ctx))
}

// ParametersToContext copies stream parameters into ctx.
func ParametersToContext(ctx Context, par Parameters) error {
	if avcodecParametersToCtx == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avcodecParametersToCtx(uintptr(ctx), uintptr(par)); ret < 0 {
		return avutil.NewError(ret, "avcodec_parameters_to_context")
	}
	return nil
}

// PacketAlloc allocates an empty packet.
func PacketAlloc() Packet {
	if avPacketAlloc == nil {
		return nil
	}
	return unsafe.Pointer(avPacketAlloc())
}

// PacketFree frees pkt and sets it to nil.
func PacketFree(pkt *Packet) {
	if pkt == nil || *pkt == nil || avPacketFree == nil {
		return
	}
	avPacketFree(pkt)
	*pkt = nil
}

// PacketUnref drops the buffer referenced by pkt.
func PacketUnref(pkt Packet) {
	if pkt == nil || avPacketUnref == nil {
		return
	}
	avPacketUnref(uintptr(pkt))
}

// AVPacket field offsets, FFmpeg 6.x/7.x, 64-bit.
const (
	offsetPacketSize        = 32 // int size
	offsetPacketStreamIndex = 36 // int stream_index
)

// GetPacketSize returns the payload size of pkt in bytes.
func GetPacketSize(pkt Packet) int32 {
	if pkt == nil {
		return 0
	}
	return *(*int32)(unsafe.Add(pkt, offsetPacketSize))
}

// GetPacketStreamIndex returns the index of the stream pkt belongs to.
func GetPacketStreamIndex(pkt Packet) int32 {
	if pkt == nil {
		return -1
	}
	return *(*int32)(unsafe.Add(pkt, offsetPacketStreamIndex))
}

// AVCodec.name follows the 4-byte type field and its padding.
const offsetCodecName = 8

// GetCodecName returns codec's short name, e.g. "h264".
func GetCodecName(codec Codec) string {
	if codec == nil {
		return ""
	}
	return avutil.GoString(*(*unsafe.Pointer)(unsafe.Add(codec, offsetCodecName)))
}
