package viz

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fieldviz/internal/config"
	"github.com/san-kum/fieldviz/internal/field"
)

func litPixels(c *Canvas) int {
	n := 0
	pw, ph := c.Pixels()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if c.IsSet(x, y) {
				n++
			}
		}
	}
	return n
}

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != 0x2801 || c.Grid[0][1] != 0x2880 {
		t.Errorf("unexpected cells %U %U", c.Grid[0][0], c.Grid[0][1])
	}
	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBlank {
		t.Errorf("expected blank after unset, got %U", c.Grid[0][0])
	}
	if !strings.HasSuffix(c.String(), "\n") {
		t.Error("rows should end with newline")
	}
}

func TestCanvasDrawArrow(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawArrow(2, 10, 16, 10, 3)
	for x := 2; x <= 16; x++ {
		if !c.IsSet(x, 10) {
			t.Fatalf("shaft missing at x=%d", x)
		}
	}
	if !c.IsSet(14, 9) && !c.IsSet(14, 8) {
		t.Error("expected a barb above the tip")
	}
	if !c.IsSet(14, 11) && !c.IsSet(14, 12) {
		t.Error("expected a barb below the tip")
	}
}

func TestCameraProject(t *testing.T) {
	cam := &Camera{Distance: 6, Near: 0.1, Zoom: 1}
	x, y, _, ok := cam.Project(field.Vec3{}, 120, 96)
	if !ok || x != 60 || y != 48 {
		t.Errorf("origin projected to (%v, %v, %v)", x, y, ok)
	}
	if _, _, _, ok := cam.Project(field.Vec3{Z: 10}, 120, 96); ok {
		t.Error("point behind the camera should be hidden")
	}
	cam.RotateY(math.Pi / 2)
	p := cam.RotatePoint(field.Vec3{X: 1})
	if math.Abs(p.Z+1) > 1e-12 {
		t.Errorf("rotated point = %v", p)
	}
}

func newTestModel(t *testing.T, preset string) Model {
	t.Helper()
	cfg := config.FindPreset(preset)
	if cfg == nil {
		t.Fatalf("missing preset %s", preset)
	}
	m, err := NewLive(context.Background(), cfg, preset)
	if err != nil {
		t.Fatalf("new live: %v", err)
	}
	return m
}

func TestDrawQuiver(t *testing.T) {
	for _, preset := range []string{"rotation", "helix"} {
		t.Run(preset, func(t *testing.T) {
			m := newTestModel(t, preset)
			c := NewCanvas(40, 20)
			DrawQuiver(c, m.Frame(), NewCamera())
			if litPixels(c) == 0 {
				t.Error("nothing drawn")
			}
			DrawQuiver(c, nil, nil)
			if litPixels(c) != 0 {
				t.Error("nil frame should clear the canvas")
			}
		})
	}
}

func TestModelTickAdvancesTime(t *testing.T) {
	m := newTestModel(t, "wave")
	start := m.Time()

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule another tick")
	}
	if got, want := m.Time(), start+config.FindPreset("wave").TimeStep; math.Abs(got-want) > 1e-12 {
		t.Errorf("time = %v, want %v", got, want)
	}
	if m.Frame() == nil || m.Frame().Time != m.Time() {
		t.Error("frame should be resampled at the new time")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	paused := m.Time()
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.Time() != paused {
		t.Error("paused model should not advance")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should report pause")
	}
}

func TestModelScrubAndReset(t *testing.T) {
	m := newTestModel(t, "wave")
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	latest := m.Frame()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}})
	m = next.(Model)
	if m.Frame() == latest || m.Frame().Time >= latest.Time {
		t.Error("scrubbing back should show an earlier frame")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	if m.Time() != config.FindPreset("wave").Time {
		t.Errorf("reset time = %v", m.Time())
	}
}

func TestModelRejectedEditKeepsField(t *testing.T) {
	m := newTestModel(t, "rotation")
	before := m.Frame().Components

	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'e'}},
	}
	for range len("i*(-y) + j*x") {
		keys = append(keys, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	keys = append(keys,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("sin(i)")},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}

	if m.Err() == nil {
		t.Fatal("expected an error for an axis inside a call")
	}
	if m.Frame().Components != before {
		t.Errorf("components changed to %+v", m.Frame().Components)
	}
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.Frame().Components != before {
		t.Error("field should survive the next tick")
	}
}

func TestAppSelectsPreset(t *testing.T) {
	a := NewApp(context.Background())
	if !strings.Contains(a.View(), "rotation") {
		t.Error("menu should list presets")
	}
	next, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = next.(App)
	if a.state != stateLive || cmd == nil {
		t.Fatal("enter should launch the live view")
	}
	if a.live.Frame() == nil {
		t.Error("live view should have a frame")
	}
}
