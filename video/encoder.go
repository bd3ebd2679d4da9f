package video

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// EncoderOptions configures the output of an Encoder.
type EncoderOptions struct {
	Output     string
	Width      int
	Height     int
	FrameRate  string
	Codec      string // "h264" or "hevc"
	Bitrate    string
	HWAccel    bool
	FFmpegPath string
	GOOS       string
}

// Encoder feeds raw RGBA frames into an ffmpeg child process.
type Encoder struct {
	opts   EncoderOptions
	writer *io.PipeWriter
	errc   chan error
	frames int64
}

func NewEncoder(opts EncoderOptions) (*Encoder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", opts.Width, opts.Height)
	}
	if opts.Output == "" {
		return nil, errors.New("no output file")
	}
	if opts.FrameRate == "" {
		opts.FrameRate = "25"
	}
	return &Encoder{opts: opts}, nil
}

func (e *Encoder) inputArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", e.opts.Width, e.opts.Height),
		"framerate": e.opts.FrameRate,
	}
}

// outputArgs picks codec settings from the output extension and platform.
func outputArgs(opts EncoderOptions) ffmpeg.KwArgs {
	switch strings.ToLower(filepath.Ext(opts.Output)) {
	case ".png":
		return ffmpeg.KwArgs{"c:v": "png", "pix_fmt": "rgba", "update": 1}
	case ".gif":
		return ffmpeg.KwArgs{"c:v": "gif"}
	case ".webm":
		// VP9 keeps the alpha channel.
		return ffmpeg.KwArgs{"c:v": "libvpx-vp9", "pix_fmt": "yuva420p", "b:v": bitrateOr(opts.Bitrate, "8M")}
	case ".mov":
		if opts.Codec == "prores" {
			return ffmpeg.KwArgs{"c:v": "prores_ks", "profile:v": "4444", "pix_fmt": "yuva444p10le"}
		}
	}

	args := ffmpeg.KwArgs{
		"pix_fmt": "yuv420p",
		"b:v":     bitrateOr(opts.Bitrate, "25M"),
	}
	hevc := opts.Codec == "hevc"
	switch {
	case opts.HWAccel && opts.GOOS == "darwin":
		args["c:v"] = "h264_videotoolbox"
		if hevc {
			args["c:v"] = "hevc_videotoolbox"
		}
	case opts.HWAccel && (opts.GOOS == "linux" || opts.GOOS == "windows"):
		args["c:v"] = "h264_nvenc"
		if hevc {
			args["c:v"] = "hevc_nvenc"
		}
		args["preset"] = "p2"
	default:
		args["c:v"] = "libx264"
		if hevc {
			args["c:v"] = "libx265"
		}
	}
	if hevc && strings.EqualFold(filepath.Ext(opts.Output), ".mp4") {
		args["tag:v"] = "hvc1"
	}
	return args
}

func bitrateOr(bitrate, fallback string) string {
	if bitrate == "" {
		return fallback
	}
	return bitrate
}

// Start launches ffmpeg.
func (e *Encoder) Start() error {
	if e.writer != nil {
		return errors.New("encoder already started")
	}
	pipeReader, pipeWriter := io.Pipe()
	cmd := ffmpeg.Input("pipe:", e.inputArgs()).
		Output(e.opts.Output, outputArgs(e.opts)).
		OverWriteOutput().
		WithInput(pipeReader).
		WithErrorOutput(os.Stderr)
	if e.opts.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(e.opts.FFmpegPath)
	}

	e.writer = pipeWriter
	e.errc = make(chan error, 1)
	go func() {
		err := cmd.Run()
		pipeReader.CloseWithError(err)
		e.errc <- err
	}()
	return nil
}

// WriteFrame sends one RGBA frame. The slice may be reused once it returns.
func (e *Encoder) WriteFrame(f *Frame) error {
	if e.writer == nil {
		return errors.New("encoder not started")
	}
	want := e.opts.Width * e.opts.Height * 4
	if len(f.Pixels) != want {
		return fmt.Errorf("frame %d has %d bytes, want %d", f.PTS, len(f.Pixels), want)
	}
	if _, err := e.writer.Write(f.Pixels); err != nil {
		return fmt.Errorf("failed to write frame %d to ffmpeg: %w", f.PTS, err)
	}
	e.frames++
	return nil
}

// Frames returns the number of frames written.
func (e *Encoder) Frames() int64 {
	return e.frames
}

// Close flushes the stream and waits for ffmpeg to finish the file.
func (e *Encoder) Close() error {
	if e.writer == nil {
		return nil
	}
	e.writer.Close()
	err := <-e.errc
	e.writer = nil
	if err != nil {
		return fmt.Errorf("ffmpeg encode failed: %w", err)
	}
	return nil
}
