package export

import (
	"fmt"
	"image/color"
	"math"
)

var rampStops = []color.RGBA{
	{0x2c, 0x7b, 0xb6, 0xff},
	{0xab, 0xd9, 0xe9, 0xff},
	{0xff, 0xff, 0xbf, 0xff},
	{0xfd, 0xae, 0x61, 0xff},
	{0xd7, 0x19, 0x1c, 0xff},
}

// Ramp maps a normalized magnitude in [0, 1] to a blue-to-red colour.
// Values outside the range are clamped.
func Ramp(v float64) color.RGBA {
	if math.IsNaN(v) || v <= 0 {
		return rampStops[0]
	}
	if v >= 1 {
		return rampStops[len(rampStops)-1]
	}
	pos := v * float64(len(rampStops)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := rampStops[i], rampStops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 0xff}
}

func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
