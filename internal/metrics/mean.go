package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fieldviz/internal/analysis"
	"github.com/san-kum/fieldviz/internal/pipeline"
)

// Mean is the average magnitude over every kept sample of every frame.
type Mean struct {
	name    string
	sum     float64
	samples int
}

func NewMean() *Mean {
	return &Mean{
		name: "mean",
	}
}

func (m *Mean) Name() string {
	return m.name
}

func (m *Mean) Observe(f *pipeline.Frame) {
	m.sum += floats.Sum(analysis.Magnitudes(f.Samples))
	m.samples += len(f.Samples)
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}
