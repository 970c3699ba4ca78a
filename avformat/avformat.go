//go:build !ios && !android && (amd64 || arm64)

// Package avformat binds the demuxing half of FFmpeg's libavformat: opening
// inputs, probing streams and reading packets.
package avformat

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/expenses/videostream/avcodec"
	"github.com/expenses/videostream/avutil"
	"github.com/expenses/videostream/internal/bindings"
)

// FormatContext is an opaque AVFormatContext pointer.
type FormatContext = unsafe.Pointer

// InputFormat is an opaque AVInputFormat pointer.
type InputFormat = unsafe.Pointer

// Stream is an opaque AVStream pointer.
type Stream = unsafe.Pointer

const (
	MediaTypeUnknown = avutil.MediaTypeUnknown
	MediaTypeVideo   = avutil.MediaTypeVideo
	MediaTypeAudio   = avutil.MediaTypeAudio
)

var (
	avformatOpenInput      func(ctx *unsafe.Pointer, url string, fmt unsafe.Pointer, options *unsafe.Pointer) int32
	avformatCloseInput     func(ctx *unsafe.Pointer)
	avformatFindStreamInfo func(ctx unsafe.Pointer, options *unsafe.Pointer) int32
	avFindInputFormat      func(shortName string) unsafe.Pointer
	avReadFrame            func(ctx, pkt unsafe.Pointer) int32
	avFindBestStream       func(ctx unsafe.Pointer, mediaType, wanted, related int32, decoder *unsafe.Pointer, flags int32) int32

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
	lib := bindings.LibAVFormat()
	if lib == 0 {
		return
	}

	purego.RegisterLibFunc(&avformatOpenInput, lib, "avformat_open_input")
	purego.RegisterLibFunc(&avformatCloseInput, lib, "avformat_close_input")
	purego.RegisterLibFunc(&avformatFindStreamInfo, lib, "avformat_find_stream_info")
	purego.RegisterLibFunc(&avFindInputFormat, lib, "av_find_input_format")
	purego.RegisterLibFunc(&avReadFrame, lib, "av_read_frame")
	purego.RegisterLibFunc(&avFindBestStream, lib, "av_find_best_stream")

	bindingsRegistered = true
}

// OpenInput opens url and reads its header into *ctx. fmt forces a
// container format and may be nil. On return options holds the entries no
// demuxer consumed.
func OpenInput(ctx *FormatContext, url string, fmt InputFormat, options *avutil.Dictionary) error {
	if avformatOpenInput == nil {
		return bindings.ErrNotLoaded
	}
	ret := avformatOpenInput(ctx, url, fmt, options)
	runtime.KeepAlive(url)
	if ret < 0 {
		return avutil.NewError(ret, "avformat_open_input")
	}
	return nil
}

// FindInputFormat looks up a demuxer by short name, e.g. "mp4" or "v4l2".
// It returns nil for unknown names.
func FindInputFormat(name string) InputFormat {
	if avFindInputFormat == nil || name == "" {
		return nil
	}
	return avFindInputFormat(name)
}

// CloseInput closes the input and frees *ctx.
func CloseInput(ctx *FormatContext) {
	if ctx == nil || *ctx == nil || avformatCloseInput == nil {
		return
	}
	avformatCloseInput(ctx)
	*ctx = nil
}

// FindStreamInfo probes packets until every stream's parameters are known.
func FindStreamInfo(ctx FormatContext, options *avutil.Dictionary) error {
	if avformatFindStreamInfo == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avformatFindStreamInfo(ctx, options); ret < 0 {
		return avutil.NewError(ret, "avformat_find_stream_info")
	}
	return nil
}

// ReadFrame reads the next packet of any stream into pkt. At end of input
// the error satisfies avutil.IsEOF.
func ReadFrame(ctx FormatContext, pkt avcodec.Packet) error {
	if avReadFrame == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avReadFrame(ctx, pkt); ret < 0 {
		return avutil.NewError(ret, "av_read_frame")
	}
	return nil
}

// FindBestStream returns the index of the preferred stream of mediaType, or
// a negative AVERROR when there is none. When decoder is non-nil it receives
// the decoder for that stream.
func FindBestStream(ctx FormatContext, mediaType avutil.MediaType, wanted, related int32, decoder *avcodec.Codec, flags int32) int32 {
	if avFindBestStream == nil {
		return avutil.AVERROR_STREAM_NOT_FOUND
	}
	return avFindBestStream(ctx, int32(mediaType), wanted, related, decoder, flags)
}

// AVFormatContext field offsets, FFmpeg 6.x (avformat 60), 64-bit.
const (
	offsetNumStreams = 44 // unsigned int nb_streams
	offsetStreams    = 48 // AVStream **streams
)

// GetNumStreams returns the number of streams in ctx.
func GetNumStreams(ctx FormatContext) int {
	if ctx == nil {
		return 0
	}
	return int(*(*uint32)(unsafe.Add(ctx, offsetNumStreams)))
}

// GetStream returns stream index of ctx, or nil when out of range.
func GetStream(ctx FormatContext, index int) Stream {
	if ctx == nil || index < 0 || index >= GetNumStreams(ctx) {
		return nil
	}
	streams := *(*unsafe.Pointer)(unsafe.Add(ctx, offsetStreams))
	if streams == nil {
		return nil
	}
	return *(*unsafe.Pointer)(unsafe.Add(streams, uintptr(index)*unsafe.Sizeof(uintptr(0))))
}

// AVStream field offsets.
const (
	offsetStreamIndex    = 8  // int index
	offsetStreamCodecPar = 16 // AVCodecParameters *codecpar
)

// GetStreamIndex returns stream's index within its container.
func GetStreamIndex(stream Stream) int32 {
	if stream == nil {
		return -1
	}
	return *(*int32)(unsafe.Add(stream, offsetStreamIndex))
}

// GetStreamCodecPar returns stream's codec parameters.
func GetStreamCodecPar(stream Stream) avcodec.Parameters {
	if stream == nil {
		return nil
	}
	return *(*unsafe.Pointer)(unsafe.Add(stream, offsetStreamCodecPar))
}

// AVCodecParameters field offsets.
const (
	offsetCodecParType    = 0  // enum AVMediaType codec_type
	offsetCodecParCodecID = 4  // enum AVCodecID codec_id
	offsetCodecParFormat  = 28 // int format
	offsetCodecParWidth   = 56 // int width
	offsetCodecParHeight  = 60 // int height
)

func par32(par avcodec.Parameters, off uintptr) int32 {
	return *(*int32)(unsafe.Add(par, off))
}

func GetCodecParType(par avcodec.Parameters) avutil.MediaType {
	if par == nil {
		return avutil.MediaTypeUnknown
	}
	return avutil.MediaType(par32(par, offsetCodecParType))
}

func GetCodecParCodecID(par avcodec.Parameters) avcodec.CodecID {
	if par == nil {
		return avcodec.CodecIDNone
	}
	return avcodec.CodecID(par32(par, offsetCodecParCodecID))
}

func GetCodecParWidth(par avcodec.Parameters) int32 {
	if par == nil {
		return 0
	}
	return par32(par, offsetCodecParWidth)
}

func GetCodecParHeight(par avcodec.Parameters) int32 {
	if par == nil {
		return 0
	}
	return par32(par, offsetCodecParHeight)
}

// GetCodecParFormat returns the stream's pixel format for video, -1 if
// unknown.
func GetCodecParFormat(par avcodec.Parameters) avutil.PixelFormat {
	if par == nil {
		return avutil.PixelFormatNone
	}
	return avutil.PixelFormat(par32(par, offsetCodecParFormat))
}
