package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeSample = `{
    "streams": [
        {"index": 0, "codec_type": "audio", "sample_rate": "48000"},
        {"index": 1, "codec_type": "video", "width": 1920, "height": 1080,
         "r_frame_rate": "60000/1001", "avg_frame_rate": "30000/1001", "duration": "12.5"}
    ],
    "format": {"duration": "13.0"}
}`

func TestParseProbe(t *testing.T) {
	info, err := ParseProbe(probeSample)
	require.NoError(t, err)
	assert.Equal(t, 1920, info.Width)
	assert.Equal(t, 1080, info.Height)
	assert.Equal(t, "30000/1001", info.FrameRate)
	assert.InDelta(t, 29.97, info.FPS(), 0.01)
	assert.Equal(t, 12.5, info.Duration)
}

func TestParseProbeFallbacks(t *testing.T) {
	info, err := ParseProbe(`{"streams":[{"codec_type":"video","width":64,"height":32,"r_frame_rate":"24/1","avg_frame_rate":"0/0"}],"format":{"duration":"2.0"}}`)
	require.NoError(t, err)
	assert.Equal(t, "24/1", info.FrameRate)
	assert.Equal(t, 2.0, info.Duration)

	info, err = ParseProbe(`{"streams":[{"codec_type":"video","width":64,"height":32}]}`)
	require.NoError(t, err)
	assert.Equal(t, "25", info.FrameRate, "still images report no rate")
}

func TestParseProbeErrors(t *testing.T) {
	_, err := ParseProbe(`{"streams":[{"codec_type":"audio"}]}`)
	assert.Error(t, err)
	_, err = ParseProbe(`{"streams":[{"codec_type":"video","width":0,"height":10}]}`)
	assert.Error(t, err)
	_, err = ParseProbe(`garbage`)
	assert.Error(t, err)
}

func TestParseRate(t *testing.T) {
	assert.Equal(t, 25.0, parseRate("25"))
	assert.Equal(t, 0.0, parseRate("1/0"))
	assert.Equal(t, 0.0, parseRate(""))
	assert.InDelta(t, 59.94, parseRate("60000/1001"), 0.01)
}
