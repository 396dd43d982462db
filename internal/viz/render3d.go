package viz

import (
	"math"
	"sort"

	"github.com/san-kum/fieldviz/internal/field"
)

// Camera manages 3D projection to a 2D plane.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera returns a camera looking at the unit cube from slightly above.
func NewCamera() *Camera {
	return &Camera{Distance: 6, Near: 0.1, RotX: -0.5, RotY: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p field.Vec3) field.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to screen sub-pixels on an sw by sh
// surface. It returns x, y, depth, and whether the point lies in front of
// the camera.
func (c *Camera) Project(p field.Vec3, sw, sh int) (float64, float64, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	pScale := math.Min(float64(sw), float64(sh)) / 3.0
	sx := rot.X*scale*pScale + float64(sw)/2
	sy := -rot.Y*scale*pScale + float64(sh)/2
	return sx, sy, rot.Z, true
}

// Segment is a world-space line, drawn with a head when Arrow is set.
type Segment struct {
	Start, End field.Vec3
	Arrow      bool
}

type projected struct {
	x1, y1, x2, y2 float64
	depth          float64
	arrow          bool
}

// Render3D draws segments back to front onto the canvas.
func Render3D(c *Canvas, segs []Segment, cam *Camera) {
	if c == nil || cam == nil {
		return
	}
	pw, ph := c.Pixels()
	proj := make([]projected, 0, len(segs))
	for _, s := range segs {
		x1, y1, d1, v1 := cam.Project(s.Start, pw, ph)
		x2, y2, d2, v2 := cam.Project(s.End, pw, ph)
		if v1 && v2 {
			proj = append(proj, projected{x1, y1, x2, y2, (d1 + d2) / 2, s.Arrow})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, p := range proj {
		if p.arrow {
			c.DrawArrow(p.x1, p.y1, p.x2, p.y2, math.Min(3, math.Hypot(p.x2-p.x1, p.y2-p.y1)/3))
		} else {
			c.DrawLine(int(p.x1), int(p.y1), int(p.x2), int(p.y2))
		}
	}
}

// BoxSegments returns the twelve edges of the cube [-s, s]^3.
func BoxSegments(s float64) []Segment {
	v := []field.Vec3{{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s},
		{X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	segs := make([]Segment, 0, len(ei))
	for _, e := range ei {
		segs = append(segs, Segment{Start: v[e[0]], End: v[e[1]]})
	}
	return segs
}
