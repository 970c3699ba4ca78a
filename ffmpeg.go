//go:build !ios && !android && (amd64 || arm64)

package videostream

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/expenses/videostream/avcodec"
	"github.com/expenses/videostream/avformat"
	"github.com/expenses/videostream/avutil"
	"github.com/expenses/videostream/internal/bindings"
)

// Init loads the FFmpeg libraries. Open calls it; calling it first only
// surfaces a missing installation earlier. It is safe to call many times.
func Init() error {
	return bindings.Load()
}

// Version returns the packed libavutil, libavcodec and libavformat versions,
// or zeros before Init.
func Version() (avutil, avcodec, avformat uint32) {
	return bindings.AVUtilVersion(), bindings.AVCodecVersion(), bindings.AVFormatVersion()
}

// Open opens source, a file path or any URL FFmpeg can read, selects its
// best video stream and opens a decoder for it.
//
// A source without a video stream yields ErrNoVideoStream; every other
// failure is an *OpenError.
func Open(source string, opts ...Option) (*VideoStream, error) {
	o := buildOptions(opts)
	if err := Init(); err != nil {
		return nil, &OpenError{Source: source, Op: "init", Err: err}
	}

	d, err := openInput(source, o)
	if err != nil {
		return nil, err
	}

	vs := &VideoStream{
		demux: d,
		conv:  newSwsConverter(o.ScaleFlags, o.Logger),
		info:  d.info,
		log:   o.Logger,
	}
	o.Logger.WithFields(logrus.Fields{
		"function": "Open",
		"source":   source,
		"stream":   vs.info.Index,
		"codec":    vs.info.CodecName,
		"width":    vs.info.Width,
		"height":   vs.info.Height,
		"pix_fmt":  vs.info.PixelFmt.String(),
	}).Debug("video stream opened")
	return vs, nil
}

// ffmpegDemuxer is the libavformat/libavcodec implementation of Demuxer and
// Decoder.
type ffmpegDemuxer struct {
	formatCtx avformat.FormatContext
	codecCtx  avcodec.Context
	packet    avcodec.Packet
	frame     avutil.Frame
	info      StreamInfo
}

func openInput(source string, o *Options) (*ffmpegDemuxer, error) {
	fail := func(op string, err error) error {
		return &OpenError{Source: source, Op: op, Err: err}
	}

	var inputFormat avformat.InputFormat
	if o.Format != "" {
		if inputFormat = avformat.FindInputFormat(o.Format); inputFormat == nil {
			return nil, fail("open", fmt.Errorf("unknown input format %q", o.Format))
		}
	}

	dict, err := avutil.NewDictionary(o.AVOptions)
	if err != nil {
		return nil, fail("open", err)
	}
	d := &ffmpegDemuxer{}
	err = avformat.OpenInput(&d.formatCtx, source, inputFormat, &dict)
	// Entries the demuxer did not consume are left in dict.
	avutil.DictFree(&dict)
	if err != nil {
		return nil, fail("open", err)
	}

	if err := avformat.FindStreamInfo(d.formatCtx, nil); err != nil {
		d.Close()
		return nil, fail("stream info", err)
	}

	idx := avformat.FindBestStream(d.formatCtx, avformat.MediaTypeVideo, -1, -1, nil, 0)
	if idx < 0 {
		d.Close()
		if idx == avutil.AVERROR_STREAM_NOT_FOUND {
			return nil, ErrNoVideoStream
		}
		return nil, fail("select stream", avutil.NewError(idx, "av_find_best_stream"))
	}

	if err := d.openDecoder(int(idx), o.Threads); err != nil {
		d.Close()
		return nil, fail("open decoder", err)
	}

	d.packet = avcodec.PacketAlloc()
	d.frame = avutil.FrameAlloc()
	if d.packet == nil || d.frame == nil {
		d.Close()
		return nil, fail("open decoder", errors.New("allocating packet or frame failed"))
	}
	return d, nil
}

func (d *ffmpegDemuxer) openDecoder(idx, threads int) error {
	par := avformat.GetStreamCodecPar(avformat.GetStream(d.formatCtx, idx))
	if par == nil {
		return fmt.Errorf("stream %d has no codec parameters", idx)
	}
	id := avformat.GetCodecParCodecID(par)
	codec := avcodec.FindDecoder(id)
	if codec == nil {
		return fmt.Errorf("no decoder for codec %s", id)
	}

	d.codecCtx = avcodec.AllocContext3(codec)
	if d.codecCtx == nil {
		return errors.New("allocating codec context failed")
	}
	if err := avcodec.ParametersToContext(d.codecCtx, par); err != nil {
		return err
	}

	var codecOpts map[string]string
	if threads > 0 {
		codecOpts = map[string]string{"threads": strconv.Itoa(threads)}
	}
	dict, err := avutil.NewDictionary(codecOpts)
	if err != nil {
		return err
	}
	defer avutil.DictFree(&dict)
	if err := avcodec.Open2(d.codecCtx, codec, &dict); err != nil {
		return err
	}

	d.info = StreamInfo{
		Index:     idx,
		CodecName: avcodec.GetCodecName(codec),
		Width:     int(avformat.GetCodecParWidth(par)),
		Height:    int(avformat.GetCodecParHeight(par)),
		PixelFmt:  PixelFormat(avformat.GetCodecParFormat(par)),
	}
	return nil
}

func (d *ffmpegDemuxer) Info() StreamInfo { return d.info }

func (d *ffmpegDemuxer) Decoder() Decoder { return d }

func (d *ffmpegDemuxer) ReadPacket() (Packet, error) {
	if d.formatCtx == nil {
		return nil, ErrClosed
	}
	avcodec.PacketUnref(d.packet)
	if err := avformat.ReadFrame(d.formatCtx, d.packet); err != nil {
		if avutil.IsEOF(err) {
			return nil, io.EOF
		}
		return nil, err
	}
	return avPacket{d.packet}, nil
}

func (d *ffmpegDemuxer) SendPacket(pkt Packet) error {
	if d.codecCtx == nil {
		return ErrClosed
	}
	if pkt == nil {
		return avcodec.SendPacket(d.codecCtx, nil)
	}
	p, ok := pkt.(avPacket)
	if !ok {
		return fmt.Errorf("videostream: cannot decode packet of type %T", pkt)
	}
	return avcodec.SendPacket(d.codecCtx, p.ptr)
}

func (d *ffmpegDemuxer) ReceiveFrame() (RawFrame, error) {
	if d.codecCtx == nil {
		return nil, ErrClosed
	}
	avutil.FrameUnref(d.frame)
	if err := avcodec.ReceiveFrame(d.codecCtx, d.frame); err != nil {
		switch {
		case avutil.IsAgain(err):
			return nil, ErrAgain
		case avutil.IsEOF(err):
			return nil, io.EOF
		}
		return nil, err
	}
	return avFrame{d.frame}, nil
}

func (d *ffmpegDemuxer) Close() error {
	avcodec.PacketFree(&d.packet)
	avutil.FrameFree(&d.frame)
	avcodec.FreeContext(&d.codecCtx)
	avformat.CloseInput(&d.formatCtx)
	return nil
}

type avPacket struct {
	ptr avcodec.Packet
}

func (p avPacket) StreamIndex() int {
	return int(avcodec.GetPacketStreamIndex(p.ptr))
}

// avFrame is a decoded AVFrame owned by the decoder or a converter.
type avFrame struct {
	ptr avutil.Frame
}

func (f avFrame) Width() int  { return int(avutil.GetFrameWidth(f.ptr)) }
func (f avFrame) Height() int { return int(avutil.GetFrameHeight(f.ptr)) }

func (f avFrame) Format() PixelFormat {
	return PixelFormat(avutil.GetFrameFormat(f.ptr))
}
