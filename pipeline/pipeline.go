// Package pipeline runs a video file through the drop shadow filter:
// ffmpeg decodes frames on one goroutine, the calling goroutine renders
// them on the GPU, and a second goroutine feeds the encoder.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/richinsley/dropshadow/dropshadow"
	"github.com/richinsley/dropshadow/host"
	"github.com/richinsley/dropshadow/renderer"
	"github.com/richinsley/dropshadow/settings"
	"github.com/richinsley/dropshadow/video"
)

// numBuffers bounds the frames in flight between stages.
const numBuffers = 3

// progressEvery is how often progress is logged, in frames.
const progressEvery = 300

// Config describes one filtering job.
type Config struct {
	Graphics *renderer.Graphics
	Registry *host.Registry
	// Settings is the initial settings object of the filter.
	Settings *settings.Data
	// Updates, if set, delivers replacement settings applied between frames.
	Updates <-chan *settings.Data

	Input      string
	Pad        int
	MaxFrames  int
	FFmpegPath string
	Encoder    video.EncoderOptions
}

// Result summarizes a finished job.
type Result struct {
	// Frames is the number of frames rendered.
	Frames  int64
	// Encoded is the number of frames the encoder accepted.
	Encoded int64
	Updates int
	Elapsed time.Duration
}

// Run processes cfg.Input to cfg.Encoder.Output. It must be called on the
// thread that owns the GL context.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Graphics == nil || cfg.Registry == nil || cfg.Settings == nil {
		return nil, errors.New("pipeline needs graphics, a registry and settings")
	}
	start := time.Now()

	info, err := video.Probe(cfg.Input)
	if err != nil {
		return nil, err
	}
	dec := video.NewDecoder(cfg.Input, info, cfg.Pad, cfg.FFmpegPath)

	encOpts := cfg.Encoder
	encOpts.Width = dec.Width()
	encOpts.Height = dec.Height()
	encOpts.FrameRate = info.FrameRate
	encOpts.FFmpegPath = cfg.FFmpegPath
	enc, err := video.NewEncoder(encOpts)
	if err != nil {
		return nil, err
	}

	target := cfg.Graphics.NewFilterTarget()
	defer host.WithGraphics(cfg.Graphics, target.Destroy)

	src, err := cfg.Registry.Create(dropshadow.ID, cfg.Settings, target)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter: %w", err)
	}
	defer src.Destroy()

	j := &job{
		graphics:  cfg.Graphics,
		target:    target,
		source:    src,
		width:     dec.Width(),
		height:    dec.Height(),
		maxFrames: cfg.MaxFrames,
		expected:  int64(info.Duration * info.FPS()),
		updates:   cfg.Updates,
	}
	if j.maxFrames > 0 && (j.expected == 0 || int64(j.maxFrames) < j.expected) {
		j.expected = int64(j.maxFrames)
	}

	dropshadow.Logger().Info("processing",
		"input", cfg.Input,
		"output", encOpts.Output,
		"width", j.width,
		"height", j.height,
		"fps", info.FPS(),
		"frames", j.expected,
		"filter", src.Name(),
	)

	if err := dec.Start(); err != nil {
		return nil, err
	}
	defer dec.Close()
	if err := enc.Start(); err != nil {
		return nil, err
	}

	result, runErr := j.run(ctx, dec, enc)
	if err := enc.Close(); err != nil && runErr == nil {
		runErr = err
	}
	result.Encoded = enc.Frames()
	result.Elapsed = time.Since(start)
	if runErr != nil {
		return result, runErr
	}
	return result, nil
}

// frameTarget receives the upstream frame before the filter renders and
// hands back the filtered pixels afterwards.
type frameTarget interface {
	Upload(pixels []byte, width, height int) error
	ReadPixels(dst []byte) error
}

type frameReader interface {
	ReadFrame() (*video.Frame, error)
	// Stop unblocks a pending ReadFrame.
	Stop()
}

type frameWriter interface {
	WriteFrame(f *video.Frame) error
}

// job is the render loop of one run. Everything except decoding and
// encoding happens on the goroutine calling run.
type job struct {
	graphics  host.Graphics
	target    frameTarget
	source    *host.FilterSource
	width     int
	height    int
	maxFrames int
	// expected is the frame count used for progress, 0 when unknown.
	expected  int64
	updates   <-chan *settings.Data
}

func (j *job) run(ctx context.Context, dec frameReader, enc frameWriter) (*Result, error) {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames, decErrc := decode(ctx, dec)
	encoded, encErrc := encode(enc)

	result := &Result{}
	var runErr error

loop:
	for {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break loop
		case s, ok := <-j.updates:
			if !ok {
				j.updates = nil
				continue
			}
			j.apply(s, result)
		case err, ok := <-encErrc:
			if ok && err != nil {
				runErr = err
				break loop
			}
		case f, ok := <-frames:
			if !ok {
				// The decoder also stops when ctx is done.
				runErr = ctx.Err()
				break loop
			}
			j.applyPending(result)
			if err := j.render(f); err != nil {
				runErr = fmt.Errorf("frame %d: %w", f.PTS, err)
				break loop
			}
			encoded <- f
			result.Frames++
			if result.Frames%progressEvery == 0 {
				j.logProgress(result.Frames, start)
			}
			if j.maxFrames > 0 && result.Frames >= int64(j.maxFrames) {
				break loop
			}
		}
	}

	cancel()
	dec.Stop()
	close(encoded)
	if err, ok := <-encErrc; ok && err != nil && runErr == nil {
		runErr = err
	}
	if err := <-decErrc; err != nil && runErr == nil && !errors.Is(err, context.Canceled) {
		runErr = err
	}
	return result, runErr
}

func (j *job) apply(s *settings.Data, result *Result) {
	j.source.Update(s)
	result.Updates++
	dropshadow.Logger().Info("settings updated", "frame", result.Frames)
}

// applyPending applies every update already queued so the next frame
// renders with the newest settings.
func (j *job) applyPending(result *Result) {
	for j.updates != nil {
		select {
		case s, ok := <-j.updates:
			if !ok {
				j.updates = nil
				return
			}
			j.apply(s, result)
		default:
			return
		}
	}
}

// render filters f in place.
func (j *job) render(f *video.Frame) error {
	var err error
	host.WithGraphics(j.graphics, func() {
		if err = j.target.Upload(f.Pixels, j.width, j.height); err != nil {
			return
		}
		j.source.Render()
		err = j.target.ReadPixels(f.Pixels)
	})
	return err
}

func (j *job) logProgress(frames int64, start time.Time) {
	elapsed := time.Since(start).Round(time.Millisecond)
	if j.expected <= 0 {
		dropshadow.Logger().Info("progress", "frames", frames, "elapsed", elapsed)
		return
	}
	percent := float64(frames) * 100 / float64(j.expected)
	dropshadow.Logger().Info("progress",
		"frames", frames,
		"percent", fmt.Sprintf("%.1f", percent),
		"elapsed", elapsed,
	)
}

// decode reads frames until EOF, an error, or ctx is done. The error
// channel always receives exactly one value.
func decode(ctx context.Context, dec frameReader) (<-chan *video.Frame, <-chan error) {
	frames := make(chan *video.Frame, numBuffers)
	errc := make(chan error, 1)
	go func() {
		defer close(frames)
		for {
			f, err := dec.ReadFrame()
			if err == io.EOF {
				errc <- nil
				return
			}
			if err != nil {
				if ctx.Err() != nil {
					err = ctx.Err()
				}
				errc <- err
				return
			}
			select {
			case frames <- f:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return frames, errc
}

// encode writes frames until the input channel closes. After the first
// write error the remaining frames are drained and dropped.
func encode(enc frameWriter) (chan<- *video.Frame, <-chan error) {
	frames := make(chan *video.Frame, numBuffers)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for f := range frames {
			if err := enc.WriteFrame(f); err != nil {
				errc <- err
				for range frames {
				}
				return
			}
		}
	}()
	return frames, errc
}
