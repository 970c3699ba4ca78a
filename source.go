package videostream

// Packet is one demuxed, still-encoded packet.
type Packet interface {
	// StreamIndex is the container stream the packet belongs to.
	StreamIndex() int
}

// RawFrame is a decoded picture in the decoder's native pixel format. It is
// owned by the Decoder that returned it and is only valid until the next
// ReceiveFrame call.
type RawFrame interface {
	Width() int
	Height() int
	Format() PixelFormat
}

// Decoder decodes the packets of one stream using the send/receive model.
type Decoder interface {
	// SendPacket feeds a packet to the decoder. A nil packet flushes it:
	// buffered frames are then returned by ReceiveFrame until io.EOF.
	SendPacket(pkt Packet) error

	// ReceiveFrame returns the next decoded frame. It returns ErrAgain when
	// another packet is needed, and io.EOF once a flushed decoder is empty.
	ReceiveFrame() (RawFrame, error)
}

// Demuxer is an opened media source with one selected video stream.
type Demuxer interface {
	// Info describes the selected stream.
	Info() StreamInfo

	// ReadPacket returns the next packet of any stream, or io.EOF at the end
	// of the source. The packet is valid until the next call.
	ReadPacket() (Packet, error)

	// Decoder returns the opened decoder of the selected stream.
	Decoder() Decoder

	Close() error
}

// Converter converts decoded frames to another pixel format at the same
// dimensions.
type Converter interface {
	// Convert returns f converted to format. The plane's memory belongs to
	// the converter and is reused by the next call.
	Convert(f RawFrame, format PixelFormat) (Plane, error)

	Close() error
}

// StreamInfo describes the video stream a VideoStream decodes.
type StreamInfo struct {
	Index     int
	CodecName string
	Width     int
	Height    int
	PixelFmt  PixelFormat
}
