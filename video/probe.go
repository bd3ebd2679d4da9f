package video

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// StreamInfo describes the first video stream of an input.
type StreamInfo struct {
	Width  int
	Height int
	// FrameRate is kept as ffprobe reports it ("30000/1001") so it can be
	// handed back to ffmpeg without rounding.
	FrameRate string
	Duration  float64
}

// FPS returns the frame rate as a float, or 0 when unknown.
func (s *StreamInfo) FPS() float64 {
	return parseRate(s.FrameRate)
}

type probeOutput struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
		Duration     string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe runs ffprobe on path.
func Probe(path string) (*StreamInfo, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}
	return ParseProbe(out)
}

// ParseProbe extracts the first video stream from ffprobe JSON output.
func ParseProbe(probeJSON string) (*StreamInfo, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(probeJSON), &out); err != nil {
		return nil, fmt.Errorf("invalid ffprobe output: %w", err)
	}
	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}
		if s.Width <= 0 || s.Height <= 0 {
			return nil, fmt.Errorf("video stream has invalid size %dx%d", s.Width, s.Height)
		}
		info := &StreamInfo{
			Width:     s.Width,
			Height:    s.Height,
			FrameRate: s.AvgFrameRate,
		}
		if parseRate(info.FrameRate) <= 0 {
			info.FrameRate = s.RFrameRate
		}
		if parseRate(info.FrameRate) <= 0 {
			info.FrameRate = "25"
		}
		dur := s.Duration
		if dur == "" {
			dur = out.Format.Duration
		}
		info.Duration, _ = strconv.ParseFloat(dur, 64)
		return info, nil
	}
	return nil, fmt.Errorf("no video stream found")
}

func parseRate(rate string) float64 {
	num, den, found := strings.Cut(rate, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
