package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/san-kum/fieldviz/internal/pipeline"
)

// QuiverImage rasterizes a frame as a quiver plot.
func QuiverImage(frame *pipeline.Frame, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{0x0a, 0x0a, 0x0a, 0xff}), image.Point{}, draw.Src)
	if frame == nil {
		return dst
	}

	r := vector.NewRasterizer(width, height)
	fill := func(c color.RGBA) {
		r.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
		r.Reset(width, height)
	}

	vp := newViewport(frame, width, height)
	b := frame.Grid.Bounds
	axis := color.RGBA{0x33, 0x33, 0x33, 0xff}
	if b.XMin <= 0 && b.XMax >= 0 {
		addSegment(r, vp.project(0, b.YMin), vp.project(0, b.YMax), 0.5)
		fill(axis)
	}
	if b.YMin <= 0 && b.YMax >= 0 {
		addSegment(r, vp.project(b.XMin, 0), vp.project(b.XMax, 0), 0.5)
		fill(axis)
	}

	for _, g := range layout(frame, width, height) {
		if g.Dot {
			addSquare(r, g.Tail, 1.5)
			fill(g.Color)
			continue
		}
		addSegment(r, g.Tail, g.Head[0], 0.75)
		r.MoveTo(float32(g.Head[0].X), float32(g.Head[0].Y))
		r.LineTo(float32(g.Head[1].X), float32(g.Head[1].Y))
		r.LineTo(float32(g.Head[2].X), float32(g.Head[2].Y))
		r.ClosePath()
		fill(g.Color)
	}
	return dst
}

// WritePNG encodes the quiver plot of frame as PNG.
func WritePNG(w io.Writer, frame *pipeline.Frame, width, height int) error {
	return png.Encode(w, QuiverImage(frame, width, height))
}

// addSegment adds a line from a to b as a quad of half-width hw.
func addSegment(r *vector.Rasterizer, a, b point, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	r.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	r.LineTo(float32(b.X+nx), float32(b.Y+ny))
	r.LineTo(float32(b.X-nx), float32(b.Y-ny))
	r.LineTo(float32(a.X-nx), float32(a.Y-ny))
	r.ClosePath()
}

func addSquare(r *vector.Rasterizer, c point, hw float64) {
	r.MoveTo(float32(c.X-hw), float32(c.Y-hw))
	r.LineTo(float32(c.X+hw), float32(c.Y-hw))
	r.LineTo(float32(c.X+hw), float32(c.Y+hw))
	r.LineTo(float32(c.X-hw), float32(c.Y+hw))
	r.ClosePath()
}
