package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeOutput(t *testing.T) {
	out := `{
		"streams": [
			{"codec_type": "video", "width": 1280, "height": 720},
			{"codec_type": "audio"}
		],
		"format": {"duration": "42.5", "size": "1048576", "format_name": "mov,mp4,m4a,3gp,3g2,mj2"}
	}`

	info, err := parseProbeOutput(out, 10)
	require.NoError(t, err)
	assert.Equal(t, 42.5, info.Duration)
	assert.Equal(t, 1280, info.Width)
	assert.Equal(t, 720, info.Height)
	assert.Equal(t, int64(1048576), info.Size)
	assert.Equal(t, "mov", info.Format)
	assert.True(t, info.HasAudio)
}

func TestParseProbeOutput_MissingFields(t *testing.T) {
	info, err := parseProbeOutput(`{"streams": [], "format": {}}`, 99)
	require.NoError(t, err)
	assert.Equal(t, 0.0, info.Duration)
	assert.Equal(t, int64(99), info.Size)
	assert.Equal(t, "unknown", info.Format)
	assert.False(t, info.HasAudio)
}

func TestParseProbeOutput_Invalid(t *testing.T) {
	_, err := parseProbeOutput("not json", 0)
	assert.Error(t, err)
}
