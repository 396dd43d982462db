package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/san-kum/fieldviz/internal/grid"
	"github.com/san-kum/fieldviz/internal/pipeline"
)

func frameFor(t *testing.T, src string, g grid.Grid) *pipeline.Frame {
	t.Helper()
	p := pipeline.New(pipeline.Options{})
	if _, err := p.SetExpression(src, g.Dimension); err != nil {
		t.Fatalf("set expression: %v", err)
	}
	if err := p.SetGrid(g); err != nil {
		t.Fatalf("set grid: %v", err)
	}
	frame, err := p.SampleAt(context.Background(), 0)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	return frame
}

func TestRamp(t *testing.T) {
	if Ramp(0) != rampStops[0] || Ramp(-3) != rampStops[0] {
		t.Error("low end should clamp to first stop")
	}
	if Ramp(1) != rampStops[len(rampStops)-1] || Ramp(7) != rampStops[len(rampStops)-1] {
		t.Error("high end should clamp to last stop")
	}
	if Ramp(0.5) != rampStops[2] {
		t.Errorf("midpoint = %v, want %v", Ramp(0.5), rampStops[2])
	}
	if got := Hex(color.RGBA{0xd7, 0x19, 0x1c, 0xff}); got != "#d7191c" {
		t.Errorf("Hex = %s", got)
	}
}

func TestQuiverSVG(t *testing.T) {
	frame := frameFor(t, "i*x + j*y", grid.Grid{Bounds: grid.Cube(1), Density: 3, Dimension: 2})
	svg := QuiverSVG(frame, 400, 400)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("malformed svg document")
	}
	// the origin sample has zero magnitude and is drawn as a dot
	if n := strings.Count(svg, "<polygon"); n != 8 {
		t.Errorf("expected 8 arrow heads, got %d", n)
	}
	if n := strings.Count(svg, "<circle"); n != 1 {
		t.Errorf("expected 1 dot, got %d", n)
	}
	if !strings.Contains(svg, Hex(Ramp(1))) {
		t.Error("expected peak colour for corner arrows")
	}
	if QuiverSVG(nil, 10, 10) != "" {
		t.Error("nil frame should render empty")
	}
}

func TestQuiverSVG_EscapesExpression(t *testing.T) {
	frame := frameFor(t, "i*x", grid.Grid{Bounds: grid.Cube(1), Density: 2, Dimension: 2})
	frame.Expression = "i<x"
	if strings.Contains(QuiverSVG(frame, 100, 100), "i<x") {
		t.Error("expression should be escaped")
	}
}

func TestWritePNG(t *testing.T) {
	frame := frameFor(t, "i", grid.Grid{Bounds: grid.Cube(1), Density: 2, Dimension: 2})

	var buf bytes.Buffer
	if err := WritePNG(&buf, frame, 64, 48); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("unexpected size %v", b)
	}

	bg := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	if bg != (color.RGBA{0x0a, 0x0a, 0x0a, 0xff}) {
		t.Errorf("unexpected background %v", bg)
	}

	painted := 0
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			if color.RGBAModel.Convert(img.At(x, y)).(color.RGBA) != bg {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("no arrows rasterized")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	frame := frameFor(t, "i*x - j*y + k*z", grid.Grid{Bounds: grid.Cube(2), Density: 3, Dimension: 3})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, frame.Samples); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "x,y,z,vx,vy,vz,magnitude\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != len(frame.Samples) {
		t.Fatalf("expected %d samples, got %d", len(frame.Samples), len(got))
	}
	for i := range got {
		if got[i] != frame.Samples[i] {
			t.Errorf("sample %d: got %+v, want %+v", i, got[i], frame.Samples[i])
		}
	}
}

func TestReadCSV_Errors(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("a,b,c,d,e,f,g\n")); !errors.Is(err, ErrCSVHeader) {
		t.Errorf("expected ErrCSVHeader, got %v", err)
	}
	bad := "x,y,z,vx,vy,vz,magnitude\n1,2,3,4,5,6,nope\n"
	if _, err := ReadCSV(strings.NewReader(bad)); err == nil {
		t.Error("expected parse error")
	}
	got, err := ReadCSV(strings.NewReader(""))
	if err != nil || len(got) != 0 {
		t.Errorf("empty input: %v %v", got, err)
	}
}

func TestWriteJSON(t *testing.T) {
	frame := frameFor(t, "i*(-y) + j*x", grid.Grid{Bounds: grid.Cube(1), Density: 2, Dimension: 2})

	var buf bytes.Buffer
	if err := WriteJSON(&buf, frame); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded struct {
		Expression string `json:"expression"`
		Count      int    `json:"count"`
		Components struct {
			X string `json:"x"`
			Y string `json:"y"`
		} `json:"components"`
		Samples []struct {
			NormMagnitude float64 `json:"norm_magnitude"`
		} `json:"samples"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Expression != "i*(-y) + j*x" || decoded.Count != 4 || len(decoded.Samples) != 4 {
		t.Errorf("unexpected payload: %+v", decoded)
	}
	if decoded.Components.X != "-y" && decoded.Components.X != "(-y)" {
		t.Errorf("unexpected x component %q", decoded.Components.X)
	}
	if decoded.Samples[0].NormMagnitude != 1 {
		t.Errorf("corner normalized magnitude = %v", decoded.Samples[0].NormMagnitude)
	}
}
