package vision

import (
	"image"
	"image/color"
	"testing"

	"riptide/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate_DrawsOutline(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))

	out := Annotate(frame, []entity.Detection{
		{Label: "rip", Confidence: 0.9, Box: entity.Box{X: 10, Y: 10, Width: 40, Height: 40}},
	})

	require.Equal(t, frame.Bounds(), out.Bounds())

	// Top edge of the box carries the outline color.
	assert.Equal(t, boxColor, out.RGBAAt(30, 10))
	// Box interior is untouched.
	assert.Equal(t, color.RGBA{}, out.RGBAAt(30, 30))
}

func TestAnnotate_NoDetections(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 20, 20))

	out := Annotate(frame, nil)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			require.Equal(t, color.RGBA{}, out.RGBAAt(x, y))
		}
	}
}

func TestAnnotate_ClampsOutOfFrameBox(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 50, 50))

	// Must not panic; the box extends past the frame.
	out := Annotate(frame, []entity.Detection{
		{Label: "rip", Confidence: 0.5, Box: entity.Box{X: 40, Y: 40, Width: 100, Height: 100}},
	})

	assert.Equal(t, boxColor, out.RGBAAt(45, 40))
}

func TestAnnotate_SkipsEmptyIntersection(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 50, 50))

	out := Annotate(frame, []entity.Detection{
		{Label: "rip", Confidence: 0.5, Box: entity.Box{X: 200, Y: 200, Width: 10, Height: 10}},
	})

	assert.Equal(t, color.RGBA{}, out.RGBAAt(25, 25))
}
