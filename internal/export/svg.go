package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/fieldviz/internal/pipeline"
)

// QuiverSVG renders a frame as an SVG quiver plot.
func QuiverSVG(frame *pipeline.Frame, width, height int) string {
	if frame == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	// Draw axes if they cross the visible area
	vp := newViewport(frame, width, height)
	b := frame.Grid.Bounds
	if b.XMin <= 0 && b.XMax >= 0 {
		top, bottom := vp.project(0, b.YMax), vp.project(0, b.YMin)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, top.X, top.Y, bottom.X, bottom.Y, axisColor))
	}
	if b.YMin <= 0 && b.YMax >= 0 {
		left, right := vp.project(b.XMin, 0), vp.project(b.XMax, 0)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, left.X, left.Y, right.X, right.Y, axisColor))
	}

	sb.WriteString(`<g stroke-width="1.5">
`)
	for _, g := range layout(frame, width, height) {
		c := Hex(g.Color)
		if g.Dot {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.5" fill="%s"/>
`, g.Tail.X, g.Tail.Y, c))
			continue
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s"/>
`, g.Tail.X, g.Tail.Y, g.Tip.X, g.Tip.Y, c,
			g.Head[0].X, g.Head[0].Y, g.Head[1].X, g.Head[1].Y, g.Head[2].X, g.Head[2].Y, c))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="#888888" font-family="monospace" font-size="12">%s  t=%.2f  max=%.3f</text>
`, height-8, escape(frame.Expression), frame.Time, frame.MaxMagnitude))
	sb.WriteString("</svg>")
	return sb.String()
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}
