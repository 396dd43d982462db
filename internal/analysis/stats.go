package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fieldviz/internal/grid"
)

type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Zeros  int     `json:"zeros"`
}

// Summarize computes magnitude statistics. An empty slice yields a zero Summary.
func Summarize(samples []grid.Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	mags := Magnitudes(samples)
	n := float64(len(mags))
	mean := floats.Sum(mags) / n

	var ss float64
	zeros := 0
	for _, m := range mags {
		d := m - mean
		ss += d * d
		if m == 0 {
			zeros++
		}
	}

	return Summary{
		Count:  len(mags),
		Min:    floats.Min(mags),
		Max:    floats.Max(mags),
		Mean:   mean,
		StdDev: math.Sqrt(ss / n),
		Zeros:  zeros,
	}
}

// Histogram counts magnitudes into bins equal-width buckets spanning
// [min, max]. The maximum lands in the last bucket.
func Histogram(samples []grid.Sample, bins int) []int {
	if bins <= 0 {
		return nil
	}
	counts := make([]int, bins)
	if len(samples) == 0 {
		return counts
	}
	mags := Magnitudes(samples)
	lo, hi := floats.Min(mags), floats.Max(mags)
	width := hi - lo
	for _, m := range mags {
		b := 0
		if width > 0 {
			b = int((m - lo) / width * float64(bins))
		}
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}
	return counts
}
