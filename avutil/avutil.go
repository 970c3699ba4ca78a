//go:build !ios && !android && (amd64 || arm64)

// Package avutil binds the parts of FFmpeg's libavutil that decoding and
// pixel conversion need: AVFrame lifetime and field access, AVDictionary,
// error strings and the global log level.
package avutil

import (
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/expenses/videostream/internal/bindings"
)

// Frame is an opaque AVFrame pointer.
type Frame = unsafe.Pointer

// Dictionary is an opaque AVDictionary pointer.
type Dictionary = unsafe.Pointer

// MaxPlanes is AV_NUM_DATA_POINTERS.
const MaxPlanes = 8

var (
	avFrameAlloc        func() unsafe.Pointer
	avFrameFree         func(frame *unsafe.Pointer)
	avFrameUnref        func(frame unsafe.Pointer)
	avFrameGetBuffer    func(frame unsafe.Pointer, align int32) int32
	avFrameMakeWritable func(frame unsafe.Pointer) int32

	avMalloc func(size uintptr) unsafe.Pointer
	avFree   func(ptr unsafe.Pointer)

	avDictSet  func(pm *unsafe.Pointer, key, value string, flags int32) int32
	avDictFree func(pm *unsafe.Pointer)

	avStrerror      func(errnum int32, errbuf unsafe.Pointer, errbufSize uintptr) int32
	avLogSetLevel   func(level int32)
	avLogGetLevel   func() int32
	avGetPixFmtName func(format int32) uintptr

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
		return // calls report bindings.ErrNotLoaded
	}
	lib := bindings.LibAVUtil()
	if lib == 0 {
		return
	}

	purego.RegisterLibFunc(&avFrameAlloc, lib, "av_frame_alloc")
	purego.RegisterLibFunc(&avFrameFree, lib, "av_frame_free")
	purego.RegisterLibFunc(&avFrameUnref, lib, "av_frame_unref")
	purego.RegisterLibFunc(&avFrameGetBuffer, lib, "av_frame_get_buffer")
	purego.RegisterLibFunc(&avFrameMakeWritable, lib, "av_frame_make_writable")

	purego.RegisterLibFunc(&avMalloc, lib, "av_malloc")
	purego.RegisterLibFunc(&avFree, lib, "av_free")

	purego.RegisterLibFunc(&avDictSet, lib, "av_dict_set")
	purego.RegisterLibFunc(&avDictFree, lib, "av_dict_free")

	purego.RegisterLibFunc(&avStrerror, lib, "av_strerror")
	purego.RegisterLibFunc(&avLogSetLevel, lib, "av_log_set_level")
	purego.RegisterLibFunc(&avLogGetLevel, lib, "av_log_get_level")
	bindings.RegisterOptional(&avGetPixFmtName, lib, "av_get_pix_fmt_name")

	bindingsRegistered = true
}

// FrameAlloc allocates an empty AVFrame. Free it with FrameFree.
func FrameAlloc() Frame {
	if avFrameAlloc == nil {
		return nil
	}
	return avFrameAlloc()
}

// FrameFree frees frame and sets it to nil. Nil frames are ignored.
func FrameFree(frame *Frame) {
	if frame == nil || *frame == nil || avFrameFree == nil {
		return
	}
	avFrameFree(frame)
	*frame = nil
}

// FrameUnref drops the buffers referenced by frame and resets its fields.
func FrameUnref(frame Frame) {
	if frame == nil || avFrameUnref == nil {
		return
	}
	avFrameUnref(frame)
}

// FrameGetBuffer allocates data planes for frame, which must already carry
// its format, width and height. align 0 lets FFmpeg choose the alignment,
// which is where row padding comes from.
func FrameGetBuffer(frame Frame, align int32) error {
	if avFrameGetBuffer == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avFrameGetBuffer(frame, align); ret < 0 {
		return NewError(ret, "av_frame_get_buffer")
	}
	return nil
}

// FrameMakeWritable copies frame's data if its buffers are shared.
func FrameMakeWritable(frame Frame) error {
	if avFrameMakeWritable == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avFrameMakeWritable(frame); ret < 0 {
		return NewError(ret, "av_frame_make_writable")
	}
	return nil
}

// AVFrame field offsets, FFmpeg 6.x (avutil 58), 64-bit.
const (
	offsetData     = 0   // uint8_t *data[8]
	offsetLinesize = 64  // int linesize[8]
	offsetWidth    = 104 // int width
	offsetHeight   = 108 // int height
	offsetFormat   = 116 // int format
)

func field32(frame Frame, off uintptr) *int32 {
	return (*int32)(unsafe.Add(frame, off))
}

// GetFrameWidth returns frame's width in pixels.
func GetFrameWidth(frame Frame) int32 {
	if frame == nil {
		return 0
	}
	return *field32(frame, offsetWidth)
}

// SetFrameWidth sets frame's width in pixels.
func SetFrameWidth(frame Frame, width int32) {
	if frame != nil {
		*field32(frame, offsetWidth) = width
	}
}

// GetFrameHeight returns frame's height in pixels.
func GetFrameHeight(frame Frame) int32 {
	if frame == nil {
		return 0
	}
	return *field32(frame, offsetHeight)
}

// SetFrameHeight sets frame's height in pixels.
func SetFrameHeight(frame Frame, height int32) {
	if frame != nil {
		*field32(frame, offsetHeight) = height
	}
}

// GetFrameFormat returns frame's pixel format, -1 when unset.
func GetFrameFormat(frame Frame) int32 {
	if frame == nil {
		return int32(PixelFormatNone)
	}
	return *field32(frame, offsetFormat)
}

// SetFrameFormat sets frame's pixel format.
func SetFrameFormat(frame Frame, format int32) {
	if frame != nil {
		*field32(frame, offsetFormat) = format
	}
}

// GetFrameDataPlane returns the data pointer of plane.
func GetFrameDataPlane(frame Frame, plane int) unsafe.Pointer {
	if frame == nil || plane < 0 || plane >= MaxPlanes {
		return nil
	}
	return (*[MaxPlanes]unsafe.Pointer)(unsafe.Add(frame, offsetData))[plane]
}

// GetFrameLinesizePlane returns the stride in bytes of plane.
func GetFrameLinesizePlane(frame Frame, plane int) int32 {
	if frame == nil || plane < 0 || plane >= MaxPlanes {
		return 0
	}
	return (*[MaxPlanes]int32)(unsafe.Add(frame, offsetLinesize))[plane]
}

// Malloc allocates size bytes with FFmpeg's allocator.
func Malloc(size uintptr) unsafe.Pointer {
	if avMalloc == nil {
		return nil
	}
	return avMalloc(size)
}

// Free releases memory from Malloc.
func Free(ptr unsafe.Pointer) {
	if ptr == nil || avFree == nil {
		return
	}
	avFree(ptr)
}

// DictSet stores key=value in dict, allocating it on first use.
func DictSet(dict *Dictionary, key, value string, flags int32) error {
	if avDictSet == nil {
		return bindings.ErrNotLoaded
	}
	if ret := avDictSet(dict, key, value, flags); ret < 0 {
		return NewError(ret, "av_dict_set")
	}
	return nil
}

// DictFree frees dict and its entries.
func DictFree(dict *Dictionary) {
	if dict == nil || *dict == nil || avDictFree == nil {
		return
	}
	avDictFree(dict)
}

// NewDictionary builds an AVDictionary from opts. A nil result with a nil
// error means opts was empty.
func NewDictionary(opts map[string]string) (Dictionary, error) {
	var dict Dictionary
	for k, v := range opts {
		if err := DictSet(&dict, k, v, 0); err != nil {
			DictFree(&dict)
			return nil, err
		}
	}
	return dict, nil
}

// ErrorString returns FFmpeg's description of errnum.
func ErrorString(errnum int32) string {
	if avStrerror == nil {
		return "unknown error (FFmpeg not loaded)"
	}
	buf := make([]byte, 256)
	avStrerror(errnum, unsafe.Pointer(&buf[0]), uintptr(len(buf)))
	return cString(buf)
}

// LogSetLevel sets the verbosity of FFmpeg's own stderr logging.
func LogSetLevel(level int32) error {
	if avLogSetLevel == nil {
		return bindings.ErrNotLoaded
	}
	avLogSetLevel(level)
	return nil
}

// LogGetLevel returns the verbosity of FFmpeg's own stderr logging.
func LogGetLevel() int32 {
	if avLogGetLevel == nil {
		return 0
	}
	return avLogGetLevel()
}

// PixFmtName returns FFmpeg's name for format, or "" when unknown.
func PixFmtName(format PixelFormat) string {
	if avGetPixFmtName == nil {
		return ""
	}
	p := avGetPixFmtName(int32(format))
	if p == 0 {
		return ""
	}
	return GoString(unsafe.Pointer(p))
}

// GoString copies the NUL-terminated C string at p.
func GoString(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

func cString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
