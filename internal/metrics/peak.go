package metrics

import "github.com/san-kum/fieldviz/internal/pipeline"

// Peak tracks the largest magnitude seen in any frame.
type Peak struct {
	name string
	max  float64
	at   float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(f *pipeline.Frame) {
	if f.MaxMagnitude > p.max {
		p.max = f.MaxMagnitude
		p.at = f.Time
	}
}

func (p *Peak) Value() float64 { return p.max }

// Time returns the frame time at which the peak was observed.
func (p *Peak) Time() float64 { return p.at }

func (p *Peak) Reset() {
	p.max = 0
	p.at = 0
}
