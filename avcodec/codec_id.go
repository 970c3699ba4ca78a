//go:build !ios && !android && (amd64 || arm64)

package avcodec

// CodecID is an AVCodecID value.
type CodecID int32

// Video codec IDs a still image or clip commonly arrives in.
const (
	CodecIDNone     CodecID = 0
	CodecIDMJPEG    CodecID = 7
	CodecIDMPEG4    CodecID = 12
	CodecIDRAWVIDEO CodecID = 13
	CodecIDH264     CodecID = 27
	CodecIDPNG      CodecID = 61
	CodecIDBMP      CodecID = 66
	CodecIDGIF      CodecID = 97
	CodecIDVP8      CodecID = 139
	CodecIDVP9      CodecID = 167
	CodecIDHEVC     CodecID = 173
	CodecIDAV1      CodecID = 226
)

// String returns libavcodec's name for id, e.g. "h264".
func (id CodecID) String() string {
	if id == CodecIDNone {
		return "none"
	}
	if name := GetName(id); name != "" {
		return name
	}
	return "unknown"
}
