package replay

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fourcolor/fourcolor/internal/runfile"
	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	prunedStyle   = lipgloss.NewStyle().Strikethrough(true)
	uncolored     = lipgloss.NewStyle().Faint(true)
)

// tickMsg advances the animation while playback is running.
type tickMsg time.Time

// model replays a recorded run. It keeps only the event cursor as
// state; the painted colors for any cursor position are rebuilt by
// folding the event prefix, which makes stepping backward as easy as
// stepping forward.
type model struct {
	run    *runfile.Run
	events []fourcolor.Event
	delay  time.Duration

	cursor   int
	colors   map[fourcolor.RegionID]fourcolor.Color
	selected fourcolor.RegionID
	playing  bool

	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func newModel(run *runfile.Run, delay time.Duration) model {
	m := model{
		run:     run,
		events:  run.Result.Events,
		delay:   delay,
		playing: true,
	}
	m.rebuild(0)
	return m
}

// rebuild folds the first n events into the painted-color state.
func (m *model) rebuild(n int) {
	m.cursor = n
	m.colors = make(map[fourcolor.RegionID]fourcolor.Color, len(m.run.Regions))
	m.selected = ""
	for _, e := range m.events[:n] {
		switch e.Kind {
		case fourcolor.EventVariableSelected:
			m.selected = e.Region
		case fourcolor.EventValueTried:
			m.colors[e.Region] = e.Color
		case fourcolor.EventValuePruned:
			// A prune naming a painted region is the engine undoing
			// that region's own tried color after a domain wipeout.
			if c, ok := m.colors[e.Region]; ok && c == e.Color {
				delete(m.colors, e.Region)
			}
		case fourcolor.EventBacktrack:
			delete(m.colors, e.Region)
		}
	}
}

func (m model) tick() tea.Cmd {
	delay := m.delay
	// Backtracking unpaints faster than painting, like the original
	// animation's shorter pause on undo.
	if m.cursor > 0 && m.events[m.cursor-1].Kind == fourcolor.EventBacktrack {
		delay = m.delay * 3 / 5
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 + (len(m.run.Regions)+5)/6
		footerHeight := 2
		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.syncViewport()

	case tickMsg:
		if !m.playing || m.cursor >= len(m.events) {
			return m, nil
		}
		m.rebuild(m.cursor + 1)
		m.syncViewport()
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "space":
			m.playing = !m.playing
			if m.playing {
				return m, m.tick()
			}

		case "n", "right", "l":
			m.playing = false
			if m.cursor < len(m.events) {
				m.rebuild(m.cursor + 1)
				m.syncViewport()
			}

		case "p", "left", "h":
			m.playing = false
			if m.cursor > 0 {
				m.rebuild(m.cursor - 1)
				m.syncViewport()
			}

		case "r":
			m.rebuild(0)
			m.syncViewport()
			m.playing = true
			return m, m.tick()

		case "+", "=":
			if m.delay > 25*time.Millisecond {
				m.delay /= 2
			}

		case "-":
			if m.delay < 4*time.Second {
				m.delay *= 2
			}

		case "j", "down":
			m.viewport.LineDown(1)

		case "k", "up":
			m.viewport.LineUp(1)
		}
	}
	return m, nil
}

// syncViewport refreshes the event log pane and keeps it pinned to the
// newest replayed event.
func (m *model) syncViewport() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, e := range m.events[:m.cursor] {
		line := e.String()
		if e.Kind == fourcolor.EventValuePruned {
			line = prunedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// View implements tea.Model.
func (m model) View() string {
	if !m.ready {
		return "Loading...\n"
	}

	var b strings.Builder

	name := m.run.MapName
	if name == "" {
		name = "map"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("replay %s", name)))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  run %s  outcome %s", m.run.Result.RunID, m.run.Result.Outcome)))
	b.WriteString("\n\n")

	b.WriteString(m.renderRegions())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderRegions draws one swatch per region in input order, six to a
// row, painted with its currently replayed color.
func (m model) renderRegions() string {
	var rows []string
	var row []string
	for _, r := range m.run.Regions {
		swatch := uncolored.Render("····")
		if c, ok := m.colors[r]; ok {
			swatch = lipgloss.NewStyle().Background(lipgloss.Color(string(c))).Render("    ")
		}
		label := string(r)
		if r == m.selected {
			label = selectedStyle.Render(label)
		}
		row = append(row, fmt.Sprintf("%s %-6s", swatch, label))
		if len(row) == 6 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n") + "\n"
}

func (m model) renderFooter() string {
	state := "paused"
	if m.playing {
		state = "playing"
	}
	if m.cursor >= len(m.events) {
		state = "done"
	}
	return statusStyle.Render(fmt.Sprintf(
		"event %d/%d  %s  delay %s  [space] pause  [n/p] step  [r] restart  [+/-] speed  [q] quit",
		m.cursor, len(m.events), state, m.delay))
}
