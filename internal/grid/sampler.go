package grid

import (
	"context"
	"sync"

	"github.com/san-kum/fieldviz/internal/field"
)

// SingularityThreshold is the magnitude at or above which a sample is
// treated as a pole and dropped.
const SingularityThreshold = 1000.0

type Sample struct {
	Position  field.Vec3 `json:"position"`
	Vector    field.Vec3 `json:"vector"`
	Magnitude float64    `json:"magnitude"`
}

// Evaluator yields the field vector at a point and time. Failures must be
// resolved to the zero vector by the implementation.
type Evaluator interface {
	Evaluate(x, y, z, t float64) field.Vec3
}

// Sampler evaluates fields over grids. Workers > 1 splits the outer axis
// into chunks evaluated concurrently; emission order is unaffected.
type Sampler struct {
	Workers int
}

// Sample evaluates f over g at time t with a single worker.
func Sample(ctx context.Context, f Evaluator, g Grid, t float64) ([]Sample, error) {
	return Sampler{Workers: 1}.Sample(ctx, f, g, t)
}

// Sample returns the samples of f over g at time t in x-major, then y,
// then z order, skipping points whose magnitude reaches
// SingularityThreshold. The context is checked once per x slice.
func (s Sampler) Sample(ctx context.Context, f Evaluator, g Grid, t float64) ([]Sample, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	xs, ys, zs := g.Axes()
	inner := len(ys) * len(zs)
	slots := make([]Sample, len(xs)*inner)
	keep := make([]bool, len(slots))

	parallelFor(len(xs), s.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			for j, y := range ys {
				for k, z := range zs {
					pos := field.Vec3{X: xs[i], Y: y, Z: z}
					v := f.Evaluate(pos.X, pos.Y, pos.Z, t)
					m := v.Norm()
					if !(m < SingularityThreshold) {
						continue
					}
					idx := i*inner + j*len(zs) + k
					slots[idx] = Sample{Position: pos, Vector: v, Magnitude: m}
					keep[idx] = true
				}
			}
		}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Sample, 0, len(slots))
	for i, ok := range keep {
		if ok {
			out = append(out, slots[i])
		}
	}
	return out, nil
}

// parallelFor runs fn over [0, n) split into at most workers contiguous chunks.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
