package viz

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fieldviz/internal/analysis"
	"github.com/san-kum/fieldviz/internal/export"
	"github.com/san-kum/fieldviz/internal/pipeline"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 600
	gifWidth        = 320
	gifHeight       = 240
	gifPath         = "fieldviz.gif"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// LiveConfig sets the animation clock of a live view.
type LiveConfig struct {
	Start float64
	Step  float64
	FPS   int
}

// Model animates a pipeline, resampling at every tick while advancing t.
type Model struct {
	ctx           context.Context
	pipe          *pipeline.Pipeline
	name          string
	dimension     int
	t, t0, dt     float64
	fps           int
	width, height int
	canvas        *Canvas
	camera        *Camera
	theme         Theme
	running       bool
	frame         *pipeline.Frame
	err           error
	maxHistory    []float64
	history       []*pipeline.Frame
	playHead      int
	editing       bool
	editBuf       string
	recording     bool
	frames        []*image.Paletted
	showHelp      bool
}

// NewModel samples the first frame at cfg.Start and returns a running view.
func NewModel(ctx context.Context, p *pipeline.Pipeline, name string, dimension int, cfg LiveConfig) Model {
	fps := cfg.FPS
	if fps <= 0 {
		fps = 10
	}
	m := Model{
		ctx:        ctx,
		pipe:       p,
		name:       name,
		dimension:  dimension,
		t:          cfg.Start,
		t0:         cfg.Start,
		dt:         cfg.Step,
		fps:        fps,
		width:      canvasWidth,
		height:     canvasHeight,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		camera:     NewCamera(),
		theme:      ThemeCyberpunk,
		running:    true,
		maxHistory: make([]float64, 0, historyCapacity),
		history:    make([]*pipeline.Frame, 0, historyCapacity),
		playHead:   -1,
	}
	m.sample()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Time returns the animation clock.
func (m Model) Time() float64 { return m.t }

// Frame returns the frame on screen, which may come from history while
// scrubbing.
func (m Model) Frame() *pipeline.Frame {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	return m.frame
}

// Err returns the last sampling or recompilation error.
func (m Model) Err() error { return m.err }

// Update handles input events and advances the clock.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			m.editKey(msg)
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "up", "k":
			m.dt *= 1.25
		case "down", "j":
			m.dt *= 0.8
		case "e":
			m.editing, m.editBuf = true, m.pipe.Expression()
		case "g":
			if m.recording {
				m.err = m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = NextTheme(m.theme)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case tea.WindowSizeMsg:
		m.width = max(20, msg.Width-50)
		m.height = max(10, msg.Height-4)
		m.canvas = NewCanvas(m.width, m.height)
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		if m.recording {
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) editKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		if _, err := m.pipe.SetExpression(m.editBuf, m.dimension); err != nil {
			m.err = err
			return
		}
		m.history = m.history[:0]
		m.maxHistory = m.maxHistory[:0]
		m.playHead = -1
		m.sample()
	case tea.KeyEsc:
		m.editing, m.editBuf = false, ""
	case tea.KeyBackspace:
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case tea.KeySpace:
		m.editBuf += " "
	case tea.KeyRunes:
		m.editBuf += string(msg.Runes)
	}
}

// step advances the clock by one time step and resamples.
func (m *Model) step() {
	m.t += m.dt
	m.sample()
}

// sample resamples at the current time. A failure keeps the previous frame.
func (m *Model) sample() {
	frame, err := m.pipe.SampleAt(m.ctx, m.t)
	if err != nil {
		m.err = err
		return
	}
	m.frame, m.err = frame, nil

	m.maxHistory = append(m.maxHistory, frame.MaxMagnitude)
	if len(m.maxHistory) > historyCapacity {
		m.maxHistory = m.maxHistory[1:]
	}
	m.history = append(m.history, frame)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// scrub changes the playback position in history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) reset() {
	m.t = m.t0
	m.maxHistory = m.maxHistory[:0]
	m.history = m.history[:0]
	m.playHead = -1
	m.sample()
}

// View renders the TUI interface.
func (m Model) View() string {
	frame := m.Frame()
	DrawQuiver(m.canvas, frame, m.camera)
	canvasView := canvasStyle.Foreground(m.theme.Primary).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if frame != nil {
		s.WriteString(MetricLabel.Render("Field") + MetricValue.Render(frame.Expression) + "\n")
		s.WriteString(MetricLabel.Render("  x") + frame.Components.X + "\n")
		s.WriteString(MetricLabel.Render("  y") + frame.Components.Y + "\n")
		if frame.Dimension == 3 {
			s.WriteString(MetricLabel.Render("  z") + frame.Components.Z + "\n")
		}
		s.WriteString(MetricLabel.Render("Time") + MetricValue.Render(fmt.Sprintf("%.2f", frame.Time)) + "\n")
		s.WriteString(MetricLabel.Render("Step") + MetricValue.Render(fmt.Sprintf("%.3f", m.dt)) + "\n")
		s.WriteString(MetricLabel.Render("Samples") + MetricValue.Render(fmt.Sprintf("%d", frame.Count)) + "\n")
		s.WriteString(MetricLabel.Render("Max |F|") + MetricValue.Render(fmt.Sprintf("%.3f", frame.MaxMagnitude)) + "\n")

		sum := analysis.Summarize(frame.Samples)
		mean := 0.0
		if sum.Max > 0 {
			mean = sum.Mean / sum.Max
		}
		s.WriteString(MetricLabel.Render("Mean |F|") + MagnitudeBar(mean, 16) + fmt.Sprintf(" %.3f", sum.Mean) + "\n")
		s.WriteString(MetricLabel.Render("Spread") + SparklineChart(analysis.Histogram(frame.Samples, 16), 16) + "\n")
	}

	if len(m.maxHistory) > 1 {
		chart := asciigraph.Plot(m.maxHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("max |F|"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.editing {
		s.WriteString("\n" + MetricLabel.Render("Edit") + m.editBuf + "_\n")
	}
	if m.err != nil {
		s.WriteString("\n" + StatusError.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(36) + "\nSP:Pause R:Reset Q:Quit E:Edit\nT:Theme  G:Record ?:Help\n[ ]:Scrub ↑↓:Speed"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return KeyHint.Render(helpText) + "\n\n" + mainView
	}
	return mainView
}

func (m Model) status() string {
	switch {
	case m.editing:
		return StatusPaused.Render("EDITING")
	case m.recording:
		return StatusRecording.Render("● REC")
	case m.playHead != -1:
		return StatusPaused.Render(fmt.Sprintf("REPLAY (%d/%d)", m.playHead+1, len(m.history)))
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

const helpText = `
  Space    pause or resume the clock
  R        reset time
  E        edit the expression
  Up/K     speed up time
  Down/J   slow down time
  [ ]      scrub through history
  x/y/z    rotate the 3D view (shift reverses)
  + -      zoom
  G        toggle GIF recording
  T        cycle themes
  Q        quit`

// captureFrame rasterizes the current frame for the GIF recording.
func (m *Model) captureFrame() {
	frame := m.Frame()
	if frame == nil {
		return
	}
	src := export.QuiverImage(frame, gifWidth, gifHeight)
	img := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(img, src.Bounds(), src, image.Point{})
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() error {
	if len(m.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	delay := max(100/m.fps, 1)
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(gifPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
