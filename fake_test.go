package videostream

import (
	"errors"
	"io"
)

type fakePacket struct {
	stream int
}

func (p fakePacket) StreamIndex() int { return p.stream }

type fakeFrame struct {
	width, height int
	format        PixelFormat
	seq           int
}

func (f *fakeFrame) Width() int          { return f.width }
func (f *fakeFrame) Height() int         { return f.height }
func (f *fakeFrame) Format() PixelFormat { return f.format }

// fakeDemuxer replays a fixed packet list, then returns readErr or io.EOF.
type fakeDemuxer struct {
	info    StreamInfo
	packets []fakePacket
	pos     int
	readErr error
	dec     *fakeDecoder
	closed  bool
}

func newFakeDemuxer(selected, width, height int, streams ...int) *fakeDemuxer {
	d := &fakeDemuxer{
		info: StreamInfo{Index: selected, CodecName: "fake", Width: width, Height: height, PixelFmt: PixelFormatYUV420P},
		dec:  newFakeDecoder(width, height),
	}
	for _, s := range streams {
		d.packets = append(d.packets, fakePacket{stream: s})
	}
	return d
}

func (d *fakeDemuxer) Info() StreamInfo { return d.info }
func (d *fakeDemuxer) Decoder() Decoder { return d.dec }

func (d *fakeDemuxer) Close() error {
	d.closed = true
	return nil
}

func (d *fakeDemuxer) ReadPacket() (Packet, error) {
	if d.pos >= len(d.packets) {
		if d.readErr != nil {
			return nil, d.readErr
		}
		return nil, io.EOF
	}
	p := d.packets[d.pos]
	d.pos++
	return p, nil
}

var errCorruptPacket = errors.New("invalid data found when processing input")

// fakeDecoder produces one frame per packet. The newest delay frames are
// held back until the flush packet, the way a decoder reorders B-frames.
type fakeDecoder struct {
	width, height int
	delay         int
	failAt        int          // 1-based packet number whose SendPacket fails
	noFormat      map[int]bool // packet numbers whose frame has no pixel format

	sent    []int // stream index of every packet received
	held    []*fakeFrame
	queue   []*fakeFrame
	flushed bool
}

func newFakeDecoder(width, height int) *fakeDecoder {
	return &fakeDecoder{width: width, height: height, noFormat: map[int]bool{}}
}

func (d *fakeDecoder) SendPacket(pkt Packet) error {
	if pkt == nil {
		d.flushed = true
		d.queue = append(d.queue, d.held...)
		d.held = nil
		return nil
	}
	d.sent = append(d.sent, pkt.StreamIndex())
	n := len(d.sent)
	if n == d.failAt {
		return errCorruptPacket
	}

	f := &fakeFrame{width: d.width, height: d.height, format: PixelFormatYUV420P, seq: n}
	if d.noFormat[n] {
		f.format = PixelFormatNone
	}
	d.held = append(d.held, f)
	if len(d.held) > d.delay {
		d.queue = append(d.queue, d.held[0])
		d.held = d.held[1:]
	}
	return nil
}

func (d *fakeDecoder) ReceiveFrame() (RawFrame, error) {
	if len(d.queue) > 0 {
		f := d.queue[0]
		d.queue = d.queue[1:]
		return f, nil
	}
	if d.flushed {
		return nil, io.EOF
	}
	return nil, ErrAgain
}

const (
	padByte = 0xEE
	padding = 13
)

// fakeConverter returns planes with padding bytes after every row. Pixel
// bytes hold the frame's sequence number.
type fakeConverter struct {
	err         error
	shortHeight bool // report the plane one row shorter than the frame

	calls  int
	closed bool
}

func (c *fakeConverter) Convert(f RawFrame, format PixelFormat) (Plane, error) {
	c.calls++
	if c.err != nil {
		return Plane{}, c.err
	}
	ff := f.(*fakeFrame)
	rowBytes := ff.width * format.Channels()
	stride := rowBytes + padding

	data := make([]byte, stride*ff.height)
	for y := 0; y < ff.height; y++ {
		row := data[y*stride : (y+1)*stride]
		for i := range row {
			if i < rowBytes {
				row[i] = byte(ff.seq)
			} else {
				row[i] = padByte
			}
		}
	}

	h := ff.height
	if c.shortHeight {
		h--
	}
	return Plane{Data: data, Stride: stride, Width: ff.width, Height: h}, nil
}

func (c *fakeConverter) Close() error {
	c.closed = true
	return nil
}
