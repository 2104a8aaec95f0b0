package vision

import (
	"image"
	"image/color"
	"image/draw"

	"riptide/internal/domain/entity"
)

// boxColor is the outline drawn around each detection.
var boxColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}

// Annotate returns a copy of the frame with a rectangle drawn around every
// detection. Boxes are clamped to the frame bounds; out-of-frame boxes
// degrade to whatever sliver is visible.
func Annotate(frame image.Image, detections []entity.Detection) *image.RGBA {
	bounds := frame.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, frame, bounds.Min, draw.Src)

	thickness := bounds.Dx() / 320
	if thickness < 2 {
		thickness = 2
	}

	for _, det := range detections {
		rect := image.Rect(
			det.Box.X,
			det.Box.Y,
			det.Box.X+det.Box.Width,
			det.Box.Y+det.Box.Height,
		).Add(bounds.Min).Intersect(bounds)
		if rect.Empty() {
			continue
		}

		drawOutline(out, rect, thickness)
	}

	return out
}

func drawOutline(img *image.RGBA, rect image.Rectangle, thickness int) {
	bounds := img.Bounds()

	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thickness), // top
		image.Rect(rect.Min.X, rect.Max.Y-thickness, rect.Max.X, rect.Max.Y), // bottom
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thickness, rect.Max.Y), // left
		image.Rect(rect.Max.X-thickness, rect.Min.Y, rect.Max.X, rect.Max.Y), // right
	}

	for _, edge := range edges {
		draw.Draw(img, edge.Intersect(bounds), &image.Uniform{C: boxColor}, image.Point{}, draw.Src)
	}
}
