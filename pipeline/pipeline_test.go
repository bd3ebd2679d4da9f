package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/dropshadow/dropshadow"
	"github.com/richinsley/dropshadow/host"
	"github.com/richinsley/dropshadow/settings"
	"github.com/richinsley/dropshadow/video"
)

type fakeReader struct {
	n    int
	err  error
	read int
}

func (r *fakeReader) ReadFrame() (*video.Frame, error) {
	if r.read == r.n {
		if r.err != nil {
			return nil, r.err
		}
		return nil, io.EOF
	}
	f := &video.Frame{Pixels: []byte{byte(r.read)}, PTS: int64(r.read)}
	r.read++
	return f, nil
}

func (r *fakeReader) Stop() {}

type fakeWriter struct {
	failAt int64
	got    []int64
}

func (w *fakeWriter) WriteFrame(f *video.Frame) error {
	if w.failAt >= 0 && f.PTS == w.failAt {
		return errors.New("encoder gone")
	}
	w.got = append(w.got, f.PTS)
	return nil
}

func TestRunRequiresConfig(t *testing.T) {
	_, err := Run(context.Background(), Config{})
	assert.Error(t, err)
}

func TestDecodeDeliversAllFrames(t *testing.T) {
	frames, errc := decode(context.Background(), &fakeReader{n: 5})

	var pts []int64
	for f := range frames {
		pts = append(pts, f.PTS)
	}
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, pts)
	assert.NoError(t, <-errc)
}

func TestDecodeReportsReadError(t *testing.T) {
	boom := errors.New("truncated")
	frames, errc := decode(context.Background(), &fakeReader{n: 1, err: boom})

	count := 0
	for range frames {
		count++
	}
	assert.Equal(t, 1, count)
	assert.ErrorIs(t, <-errc, boom)
}

func TestDecodeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frames, errc := decode(ctx, &fakeReader{n: 1 << 20})

	<-frames
	cancel()
	for range frames {
	}
	err := <-errc
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncodeWritesInOrder(t *testing.T) {
	w := &fakeWriter{failAt: -1}
	in, errc := encode(w)
	for i := 0; i < 4; i++ {
		in <- &video.Frame{PTS: int64(i)}
	}
	close(in)

	_, ok := <-errc
	assert.False(t, ok)
	assert.Equal(t, []int64{0, 1, 2, 3}, w.got)
}

func TestEncodeDrainsAfterError(t *testing.T) {
	w := &fakeWriter{failAt: 1}
	in, errc := encode(w)
	for i := 0; i < 10; i++ {
		in <- &video.Frame{PTS: int64(i)}
	}
	close(in)

	err, ok := <-errc
	require.True(t, ok)
	assert.EqualError(t, err, "encoder gone")
	assert.Equal(t, []int64{0}, w.got)
}

func newTestJob(t *testing.T) (*job, *fakeTarget) {
	t.Helper()
	gfx := &fakeGraphics{}
	target := &fakeTarget{graphics: gfx}
	gfx.effect = &fakeEffect{params: make(map[string]*fakeParam)}
	for _, name := range []string{"shadow_offset", "blur_radius", "shadow_color", "shadow_opacity", "texel_size"} {
		gfx.effect.params[name] = &fakeParam{name: name, target: target}
	}

	reg := host.NewRegistry()
	require.NoError(t, dropshadow.Register(reg, gfx, fakeModule{}))
	src, err := reg.Create(dropshadow.ID, settings.New(), target)
	require.NoError(t, err)
	t.Cleanup(src.Destroy)

	return &job{
		graphics: gfx,
		target:   target,
		source:   src,
		width:    8,
		height:   4,
	}, target
}

func TestJobRendersEveryFrame(t *testing.T) {
	j, target := newTestJob(t)
	w := &fakeWriter{failAt: -1}

	result, err := j.run(context.Background(), &fakeReader{n: 4}, w)
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Frames)
	assert.Equal(t, 0, result.Updates)
	assert.Equal(t, []int64{0, 1, 2, 3}, w.got)
	assert.Equal(t, 4, target.ends)
	assert.Zero(t, target.unscoped, "upload and readback run inside a graphics scope")

	texel := target.pushed("texel_size")
	require.Len(t, texel, 4)
	assert.Equal(t, host.Vec2{X: 1.0 / 8, Y: 1.0 / 4}, texel[0].value)
}

func TestJobAppliesUpdatesBetweenFrames(t *testing.T) {
	j, target := newTestJob(t)
	updates := make(chan *settings.Data, 1)
	j.updates = updates
	target.onRead = func(frame int) {
		if frame == 2 {
			s := settings.New()
			s.SetDouble(dropshadow.SettingOffsetX, 30)
			updates <- s
		}
	}

	result, err := j.run(context.Background(), &fakeReader{n: 5}, &fakeWriter{failAt: -1})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Frames)
	assert.Equal(t, 1, result.Updates)

	offsets := target.pushed("shadow_offset")
	require.Len(t, offsets, 5)
	for _, p := range offsets {
		want := host.Vec2{X: 4, Y: 4}
		if p.frame > 2 {
			want = host.Vec2{X: 30, Y: 4}
		}
		assert.Equal(t, want, p.value, "frame %d", p.frame)
	}
}

func TestJobStopsAtMaxFrames(t *testing.T) {
	j, target := newTestJob(t)
	j.maxFrames = 3
	w := &fakeWriter{failAt: -1}

	result, err := j.run(context.Background(), &fakeReader{n: 1 << 20}, w)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Frames)
	assert.Equal(t, []int64{0, 1, 2}, w.got)
	assert.Equal(t, 3, target.ends)
}

func TestJobReturnsEncoderError(t *testing.T) {
	j, _ := newTestJob(t)
	w := &fakeWriter{failAt: 1}

	result, err := j.run(context.Background(), &fakeReader{n: 1 << 20}, w)
	require.Error(t, err)
	assert.EqualError(t, err, "encoder gone")
	assert.GreaterOrEqual(t, result.Frames, int64(2))
	assert.Equal(t, []int64{0}, w.got)
}

func TestJobReturnsRenderError(t *testing.T) {
	j, target := newTestJob(t)
	target.uploadErr = errors.New("no texture")

	result, err := j.run(context.Background(), &fakeReader{n: 10}, &fakeWriter{failAt: -1})
	require.Error(t, err)
	assert.ErrorContains(t, err, "frame 0")
	assert.ErrorContains(t, err, "no texture")
	assert.Zero(t, result.Frames)
}

func TestJobCanceled(t *testing.T) {
	j, _ := newTestJob(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := j.run(ctx, &fakeReader{n: 1 << 20}, &fakeWriter{failAt: -1})
	assert.ErrorIs(t, err, context.Canceled)
}
