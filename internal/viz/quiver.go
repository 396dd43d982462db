package viz

import (
	"math"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/pipeline"
)

const minArrow = 0.2

// DrawQuiver renders a frame onto the canvas. Two-dimensional frames are
// drawn flat with y up; three-dimensional frames go through cam inside a
// bounding box.
func DrawQuiver(c *Canvas, frame *pipeline.Frame, cam *Camera) {
	c.Clear()
	if frame == nil {
		return
	}
	if frame.Dimension == 3 && cam != nil {
		Render3D(c, quiverSegments(frame), cam)
		return
	}
	drawFlat(c, frame)
}

func drawFlat(c *Canvas, frame *pipeline.Frame) {
	pw, ph := c.Pixels()
	b := frame.Grid.Bounds
	rangeX, rangeY := b.XMax-b.XMin, b.YMax-b.YMin
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	const pad = 2.0
	sx := (float64(pw) - 1 - 2*pad) / rangeX
	sy := (float64(ph) - 1 - 2*pad) / rangeY
	toScreen := func(x, y float64) (float64, float64) {
		return pad + (x-b.XMin)*sx, float64(ph) - 1 - pad - (y-b.YMin)*sy
	}

	cell := math.Min(float64(pw), float64(ph))
	if frame.Grid.Density > 1 {
		cell = math.Min(float64(pw)/float64(frame.Grid.Density), float64(ph)/float64(frame.Grid.Density))
	}

	for _, n := range frame.Normalized {
		x0, y0 := toScreen(n.Position.X, n.Position.Y)
		dx, dy := n.NormVector.X, -n.NormVector.Y
		planar := math.Hypot(dx, dy)
		if planar == 0 || n.NormMagnitude == 0 {
			c.Set(int(math.Round(x0)), int(math.Round(y0)))
			continue
		}
		length := 0.9 * cell * math.Max(n.NormMagnitude, minArrow)
		x1, y1 := x0+dx/planar*length, y0+dy/planar*length
		c.DrawArrow(x0, y0, x1, y1, math.Min(3, length/3))
	}
}

// quiverSegments maps a 3D frame into the cube [-1, 1]^3 with one arrow
// per sample plus the bounding box.
func quiverSegments(frame *pipeline.Frame) []Segment {
	b := frame.Grid.Bounds
	center := field.Vec3{X: (b.XMin + b.XMax) / 2, Y: (b.YMin + b.YMax) / 2, Z: (b.ZMin + b.ZMax) / 2}
	half := math.Max(b.XMax-b.XMin, math.Max(b.YMax-b.YMin, b.ZMax-b.ZMin)) / 2
	if half == 0 {
		half = 1
	}
	toUnit := func(p field.Vec3) field.Vec3 { return p.Sub(center).Scale(1 / half) }
	spacing := 2.0 / float64(max(frame.Grid.Density-1, 1))

	segs := BoxSegments(1)
	for _, n := range frame.Normalized {
		start := toUnit(n.Position)
		if n.NormMagnitude == 0 {
			segs = append(segs, Segment{Start: start, End: start})
			continue
		}
		dir := n.NormVector.Scale(1 / n.NormMagnitude)
		length := 0.8 * spacing * math.Max(n.NormMagnitude, minArrow)
		segs = append(segs, Segment{Start: start, End: start.Add(dir.Scale(length)), Arrow: true})
	}
	return segs
}
