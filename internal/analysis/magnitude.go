package analysis

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/grid"
)

// Normalized is a sample annotated with its vector and magnitude scaled by
// the frame maximum.
type Normalized struct {
	grid.Sample
	NormVector    field.Vec3 `json:"norm_vector"`
	NormMagnitude float64    `json:"norm_magnitude"`
}

// Magnitudes returns the magnitude of every sample in order.
func Magnitudes(samples []grid.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Magnitude
	}
	return out
}

// MaxMagnitude returns the largest magnitude, or 0 for no samples.
func MaxMagnitude(samples []grid.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	return floats.Max(Magnitudes(samples))
}

// Normalize divides each vector and magnitude by max. When max is 0 the
// samples are returned unscaled.
func Normalize(samples []grid.Sample, max float64) []Normalized {
	out := make([]Normalized, len(samples))
	for i, s := range samples {
		n := Normalized{Sample: s, NormVector: s.Vector, NormMagnitude: s.Magnitude}
		if max != 0 {
			n.NormVector = s.Vector.Scale(1 / max)
			n.NormMagnitude = s.Magnitude / max
		}
		out[i] = n
	}
	return out
}
