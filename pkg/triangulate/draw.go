package triangulate

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/fogleman/gg"
)

const drawPadding = 16

// Draw renders a triangulation to a PNG, mostly useful for inspecting
// failures. The image is scaled to fit the polygon's bounding box with
// the origin at the bottom left.
func Draw(path string, pts []v2.Vec, tris []Triangle, scale float64) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip so the origin is at the bottom left.
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(1)
	c.SetRGB(0, 0.5, 0)
	for _, t := range tris {
		c.MoveTo(pts[t[0]].X, pts[t[0]].Y)
		c.LineTo(pts[t[1]].X, pts[t[1]].Y)
		c.LineTo(pts[t[2]].X, pts[t[2]].Y)
		c.ClosePath()
	}
	c.FillPreserve()
	c.SetRGB(0, 1, 1)
	c.Stroke()

	c.SetRGB(1, 0.3, 0.3)
	c.SetLineWidth(2)
	c.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.LineTo(p.X, p.Y)
	}
	c.ClosePath()
	c.Stroke()

	return c.SavePNG(path)
}
