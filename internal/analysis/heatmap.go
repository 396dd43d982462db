package analysis

import (
	"strings"

	"github.com/san-kum/fieldviz/internal/grid"
)

var shades = []rune(" .:-=+*#%@")

// MagnitudeMapASCII renders a top-down view of sample magnitudes, one shade
// character per cell. Samples sharing a cell keep the strongest magnitude,
// so 3D grids collapse along z.
func MagnitudeMapASCII(samples []grid.Sample, width, height int) string {
	if len(samples) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := samples[0].Position.X, samples[0].Position.X
	minY, maxY := samples[0].Position.Y, samples[0].Position.Y
	for _, s := range samples {
		minX = min(minX, s.Position.X)
		maxX = max(maxX, s.Position.X)
		minY = min(minY, s.Position.Y)
		maxY = max(maxY, s.Position.Y)
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	peak := MaxMagnitude(samples)
	cells := make([][]float64, height)
	filled := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]float64, width)
		filled[i] = make([]bool, width)
	}

	for _, s := range samples {
		col := int((s.Position.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((s.Position.Y-minY)/rangeY*float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		v := 0.0
		if peak > 0 {
			v = s.Magnitude / peak
		}
		if !filled[row][col] || v > cells[row][col] {
			cells[row][col] = v
		}
		filled[row][col] = true
	}

	canvas := make([][]rune, height)
	for row := range canvas {
		canvas[row] = make([]rune, width)
		for col := range canvas[row] {
			canvas[row][col] = ' '
			if filled[row][col] {
				idx := 1 + int(cells[row][col]*float64(len(shades)-2))
				canvas[row][col] = shades[min(idx, len(shades)-1)]
			}
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
