package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/grid"
	"github.com/san-kum/fieldviz/internal/pipeline"
)

// CSVHeader is the column layout of sample dumps.
var CSVHeader = []string{"x", "y", "z", "vx", "vy", "vz", "magnitude"}

var ErrCSVHeader = errors.New("export: unexpected csv header")

// WriteJSON encodes a frame with its normalized samples.
func WriteJSON(w io.Writer, frame *pipeline.Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(frame)
}

// WriteCSV writes one row per sample under CSVHeader.
func WriteCSV(w io.Writer, samples []grid.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, s := range samples {
		row := []string{
			format(s.Position.X), format(s.Position.Y), format(s.Position.Z),
			format(s.Vector.X), format(s.Vector.Y), format(s.Vector.Z),
			format(s.Magnitude),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows written by WriteCSV.
func ReadCSV(r io.Reader) ([]grid.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return []grid.Sample{}, nil
	}
	if err != nil {
		return nil, err
	}
	for i, h := range CSVHeader {
		if header[i] != h {
			return nil, fmt.Errorf("%w: column %d is %q", ErrCSVHeader, i, header[i])
		}
	}

	samples := make([]grid.Sample, 0)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		var vals [7]float64
		for i, col := range record {
			v, err := strconv.ParseFloat(col, 64)
			if err != nil {
				return nil, fmt.Errorf("export: line %d column %s: %w", line, CSVHeader[i], err)
			}
			vals[i] = v
		}
		samples = append(samples, grid.Sample{
			Position:  field.Vec3{X: vals[0], Y: vals[1], Z: vals[2]},
			Vector:    field.Vec3{X: vals[3], Y: vals[4], Z: vals[5]},
			Magnitude: vals[6],
		})
	}
	return samples, nil
}
