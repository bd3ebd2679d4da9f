package video

import (
	"errors"
	"fmt"
	"io"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame is a single RGBA video frame.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Decoder reads RGBA frames from an ffmpeg child process.
type Decoder struct {
	path       string
	ffmpegPath string
	pad        int
	width      int
	height     int

	reader *io.PipeReader
	errc   chan error
	pts    int64
}

// NewDecoder prepares a decoder for the stream described by info. A pad
// greater than zero adds a transparent border of that many pixels on every
// side, giving the shadow room outside the original frame.
func NewDecoder(path string, info *StreamInfo, pad int, ffmpegPath string) *Decoder {
	if pad < 0 {
		pad = 0
	}
	return &Decoder{
		path:       path,
		ffmpegPath: ffmpegPath,
		pad:        pad,
		width:      info.Width + 2*pad,
		height:     info.Height + 2*pad,
	}
}

func (d *Decoder) Width() int     { return d.width }
func (d *Decoder) Height() int    { return d.height }
func (d *Decoder) FrameSize() int { return d.width * d.height * 4 }

func (d *Decoder) outputArgs() ffmpeg.KwArgs {
	vf := "format=rgba"
	if d.pad > 0 {
		vf = fmt.Sprintf("format=rgba,pad=iw+%d:ih+%d:%d:%d:color=black@0", 2*d.pad, 2*d.pad, d.pad, d.pad)
	}
	return ffmpeg.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": "rgba",
		"vf":      vf,
	}
}

// Start launches ffmpeg.
func (d *Decoder) Start() error {
	if d.reader != nil {
		return errors.New("decoder already started")
	}
	pipeReader, pipeWriter := io.Pipe()
	cmd := ffmpeg.Input(d.path).
		Output("pipe:", d.outputArgs()).
		WithOutput(pipeWriter).
		WithErrorOutput(os.Stderr)
	if d.ffmpegPath != "" {
		cmd = cmd.SetFfmpegPath(d.ffmpegPath)
	}

	d.reader = pipeReader
	d.errc = make(chan error, 1)
	go func() {
		err := cmd.Run()
		pipeWriter.CloseWithError(err)
		d.errc <- err
	}()
	return nil
}

// ReadFrame returns the next frame, or io.EOF after the last one.
func (d *Decoder) ReadFrame() (*Frame, error) {
	if d.reader == nil {
		return nil, errors.New("decoder not started")
	}
	pixels := make([]byte, d.FrameSize())
	if _, err := io.ReadFull(d.reader, pixels); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("truncated frame %d: %w", d.pts, err)
		}
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}
	f := &Frame{Pixels: pixels, PTS: d.pts}
	d.pts++
	return f, nil
}

// Stop unblocks a pending ReadFrame without waiting for ffmpeg. It is safe
// to call from another goroutine.
func (d *Decoder) Stop() {
	if r := d.reader; r != nil {
		r.CloseWithError(io.ErrClosedPipe)
	}
}

// Close stops reading and waits for ffmpeg to exit. Closing early makes
// ffmpeg fail on its next write; that failure is ignored once at least one
// frame was read.
func (d *Decoder) Close() error {
	if d.reader == nil {
		return nil
	}
	d.reader.CloseWithError(io.ErrClosedPipe)
	err := <-d.errc
	d.reader = nil
	if err != nil && d.pts > 0 {
		return nil
	}
	return err
}
