package metrics

import (
	"github.com/san-kum/fieldviz/internal/pipeline"
)

// Metric accumulates a scalar over successive frames.
type Metric interface {
	Name() string
	Observe(f *pipeline.Frame)
	Value() float64
	Reset()
}

// Recorder fans frames out to a set of metrics. It satisfies
// pipeline.Observer and is not safe for concurrent use.
type Recorder struct {
	metrics []Metric
}

func NewRecorder(ms ...Metric) *Recorder {
	return &Recorder{metrics: ms}
}

// Standard returns the recorder used by the CLI.
func Standard() *Recorder {
	return NewRecorder(NewPeak(), NewMean(), NewCoverage())
}

func (r *Recorder) OnFrame(f *pipeline.Frame) {
	for _, m := range r.metrics {
		m.Observe(f)
	}
}

func (r *Recorder) Metrics() []Metric { return r.metrics }

// Values returns the current value of every metric keyed by name.
func (r *Recorder) Values() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (r *Recorder) Reset() {
	for _, m := range r.metrics {
		m.Reset()
	}
}
