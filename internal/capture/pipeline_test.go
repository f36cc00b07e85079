package capture

import (
	"encoding/base64"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropRectIsCenteredAndScaled(t *testing.T) {
	bounds := image.Rect(0, 0, 1280, 720)

	atTwo := cropRect(bounds, 2)
	assert.Equal(t, image.Rect(320, 180, 960, 540), atTwo)

	atOneAndHalf := cropRect(bounds, 1.5)
	assert.Equal(t, image.Rect(213, 120, 1066, 600), atOneAndHalf)
}

func TestCropRectHonorsNonZeroOrigin(t *testing.T) {
	bounds := image.Rect(10, 10, 110, 110)
	assert.Equal(t, image.Rect(35, 35, 85, 85), cropRect(bounds, 2))
}

func TestRenderStillPassesHardwareFramesThrough(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 64, 48))

	hardware := renderStill(frame, ZoomState{Factor: 2, Hardware: true})
	assert.Same(t, image.Image(frame), hardware)

	unzoomed := renderStill(frame, ZoomState{Factor: 1, Hardware: false})
	assert.Same(t, image.Image(frame), unzoomed)
}

func TestRenderStillSimulatedKeepsOutputDimensions(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 200, 100))

	still := renderStill(frame, ZoomState{Factor: 2, Hardware: false})
	assert.Equal(t, 200, still.Bounds().Dx())
	assert.Equal(t, 100, still.Bounds().Dy())
	assert.NotSame(t, image.Image(frame), still)
}

func TestEncodeArtifactProducesJPEGDataURI(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 32, 24))

	artifact, err := encodeArtifact(frame, 1.5)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(artifact.DataURI, "data:image/jpeg;base64,"))
	payload := strings.TrimPrefix(artifact.DataURI, "data:image/jpeg;base64,")
	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 2)
	assert.Equal(t, byte(0xFF), raw[0])
	assert.Equal(t, byte(0xD8), raw[1])

	assert.Equal(t, raw, artifact.JPEG)
	assert.Equal(t, 32, artifact.Width)
	assert.Equal(t, 24, artifact.Height)
	assert.Equal(t, 1.5, artifact.ZoomFactor)
	assert.False(t, artifact.CapturedAt.IsZero())
}
