package metrics

import "github.com/san-kum/fieldviz/internal/pipeline"

// Coverage is the fraction of lattice points that survived singularity
// suppression, over all frames.
type Coverage struct {
	name  string
	kept  int
	total int
}

func NewCoverage() *Coverage {
	return &Coverage{
		name: "coverage",
	}
}

func (c *Coverage) Name() string {
	return c.name
}

func (c *Coverage) Observe(f *pipeline.Frame) {
	c.kept += f.Count
	c.total += f.Grid.Points()
}

func (c *Coverage) Value() float64 {
	if c.total == 0 {
		return 1.0
	}
	return float64(c.kept) / float64(c.total)
}

func (c *Coverage) Reset() {
	c.kept = 0
	c.total = 0
}
