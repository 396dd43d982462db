package export

import (
	"image/color"
	"math"

	"github.com/san-kum/fieldviz/internal/pipeline"
)

const (
	background = "#0a0a0a"
	axisColor  = "#333333"
	minArrow   = 0.15
)

type point struct{ X, Y float64 }

// glyph is one arrow in pixel space. Zero-length samples are marked Dot.
type glyph struct {
	Tail, Tip point
	Head      [3]point
	Color     color.RGBA
	Dot       bool
}

// viewport maps the frame's x/y bounds onto a padded pixel rectangle with
// y pointing up.
type viewport struct {
	minX, minY     float64
	rangeX, rangeY float64
	pad            float64
	w, h           float64
}

func newViewport(frame *pipeline.Frame, width, height int) viewport {
	b := frame.Grid.Bounds
	v := viewport{
		minX:   b.XMin,
		minY:   b.YMin,
		rangeX: b.XMax - b.XMin,
		rangeY: b.YMax - b.YMin,
		pad:    0.06 * math.Min(float64(width), float64(height)),
		w:      float64(width),
		h:      float64(height),
	}
	if v.rangeX == 0 {
		v.rangeX = 1
	}
	if v.rangeY == 0 {
		v.rangeY = 1
	}
	return v
}

func (v viewport) project(x, y float64) point {
	return point{
		X: v.pad + (x-v.minX)/v.rangeX*(v.w-2*v.pad),
		Y: v.h - v.pad - (y-v.minY)/v.rangeY*(v.h-2*v.pad),
	}
}

// cell is the pixel spacing between neighbouring lattice points.
func (v viewport) cell(density int) float64 {
	if density < 2 {
		return v.w
	}
	return math.Min(v.w-2*v.pad, v.h-2*v.pad) / float64(density-1)
}

// layout turns a frame into arrows viewed down the z axis. Arrow length
// scales with normalized magnitude; direction follows the x/y components.
func layout(frame *pipeline.Frame, width, height int) []glyph {
	vp := newViewport(frame, width, height)
	cell := vp.cell(frame.Grid.Density)
	glyphs := make([]glyph, 0, len(frame.Normalized))

	for _, n := range frame.Normalized {
		tail := vp.project(n.Position.X, n.Position.Y)
		g := glyph{Tail: tail, Tip: tail, Color: Ramp(n.NormMagnitude)}

		dx, dy := n.NormVector.X, -n.NormVector.Y
		planar := math.Hypot(dx, dy)
		if planar == 0 || n.NormMagnitude == 0 {
			g.Dot = true
			glyphs = append(glyphs, g)
			continue
		}

		length := 0.85 * cell * math.Max(n.NormMagnitude, minArrow)
		ux, uy := dx/planar, dy/planar
		g.Tip = point{tail.X + ux*length, tail.Y + uy*length}

		head := math.Max(length*0.3, 2)
		back := point{g.Tip.X - ux*head, g.Tip.Y - uy*head}
		g.Head = [3]point{
			g.Tip,
			{back.X - uy*head*0.5, back.Y + ux*head*0.5},
			{back.X + uy*head*0.5, back.Y - ux*head*0.5},
		}
		glyphs = append(glyphs, g)
	}
	return glyphs
}
