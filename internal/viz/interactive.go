package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fieldviz/internal/config"
	"github.com/san-kum/fieldviz/internal/pipeline"
)

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	stateMenu = iota
	stateLive
)

type presetEntry struct {
	group, name string
	cfg         *config.Config
}

// App lets the user pick a preset and then runs it in a live view.
type App struct {
	ctx     context.Context
	state   int
	cursor  int
	entries []presetEntry
	live    Model
	err     error
}

func NewApp(ctx context.Context) App {
	entries := make([]presetEntry, 0)
	for _, group := range config.Groups() {
		for _, name := range config.ListPresets(group) {
			entries = append(entries, presetEntry{group, name, config.GetPreset(group, name)})
		}
	}
	return App{ctx: ctx, entries: entries}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateLive {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.entries)-1 {
			a.cursor++
		}
	case "enter", " ":
		if len(a.entries) == 0 {
			return a, nil
		}
		e := a.entries[a.cursor]
		live, err := NewLive(a.ctx, e.cfg, e.name)
		if err != nil {
			a.err = err
			return a, nil
		}
		a.live, a.state, a.err = live, stateLive, nil
		return a, a.live.Init()
	}
	return a, nil
}

func (a App) View() string {
	if a.state == stateLive {
		return a.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("FIELDVIZ") + "\n    " + menuSub.Render("vector field explorer") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, e := range a.entries {
		label := fmt.Sprintf("%-10s %s", e.name, e.group)
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(label), menuDesc.Render(e.cfg.Expression)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", menuInactive.Render(label), menuInactive.Render(e.cfg.Expression)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + StatusError.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuInactive.Render(" navigate  ") + menuKey.Render("enter") + menuInactive.Render(" select  ") + menuKey.Render("q") + menuInactive.Render(" quit") + "\n")
	return b.String()
}

// NewLive builds a pipeline from cfg and wraps it in a live view.
func NewLive(ctx context.Context, cfg *config.Config, name string) (Model, error) {
	p := pipeline.New(pipeline.Options{Workers: cfg.Workers})
	if _, err := p.SetExpression(cfg.Expression, cfg.Dimension); err != nil {
		return Model{}, err
	}
	if err := p.SetGrid(cfg.Grid()); err != nil {
		return Model{}, err
	}
	return NewModel(ctx, p, name, cfg.Dimension, LiveConfig{Start: cfg.Time, Step: cfg.TimeStep, FPS: cfg.FPS}), nil
}

// RunLive animates cfg full screen until the user quits.
func RunLive(ctx context.Context, cfg *config.Config, name string) error {
	m, err := NewLive(ctx, cfg, name)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// RunInteractive opens the preset picker.
func RunInteractive(ctx context.Context) error {
	_, err := tea.NewProgram(NewApp(ctx), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
