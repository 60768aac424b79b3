package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/cardfight/cli"
	"github.com/nathoo/cardfight/engine"
	"github.com/nathoo/cardfight/library"
)

// keyMap holds the TUI's key bindings. Up and Down belong to the command
// history, so the log scrolls with the page keys only.
type keyMap struct {
	Quit   key.Binding
	Submit key.Binding
	Older  key.Binding
	Newer  key.Binding
	Scroll key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("ctrl+c")),
		Submit: key.NewBinding(key.WithKeys("enter")),
		Older:  key.NewBinding(key.WithKeys("up")),
		Newer:  key.NewBinding(key.WithKeys("down")),
		Scroll: key.NewBinding(key.WithKeys("pgup", "pgdown", "ctrl+u", "ctrl+d")),
	}
}

// logViewKeys scrolls the log by page and half page.
func logViewKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

// logLine is one unstyled line of the fight log. Lines are re-wrapped and
// re-styled whenever the terminal is resized.
type logLine struct {
	text string
	kind lineKind
}

// outputMsg carries output into the Update loop.
type outputMsg struct {
	echo  string   // player input to echo, empty for none
	lines []string // output lines
	meta  bool     // output of a /command
}

// Model is the Bubble Tea model for a fight: a scrolling log, a side panel
// with enemies and hand, a status bar and a command line.
type Model struct {
	fight *engine.Fight
	game  library.GameInfo
	keys  keyMap

	log     viewport.Model
	input   textinput.Model
	history *History
	entries []logLine

	width    int
	height   int
	ready    bool
	begun    bool
	trace    bool
	quitting bool
	lastCmd  string
}

// New creates a TUI model wired to the given fight.
func New(f *engine.Fight, game library.GameInfo) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		fight:   f,
		game:    game,
		keys:    defaultKeyMap(),
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(f *engine.Fight, game library.GameInfo, trace bool) error {
	m := New(f, game)
	m.trace = trace
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// beginMsg asks Update to start the fight. The engine is only driven from
// Update; Cmds run on their own goroutines and never touch it.
type beginMsg struct{}

// Init schedules the first turn.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return beginMsg{} })
}

// opening starts the first turn and returns the title and opening position.
func (m *Model) opening() outputMsg {
	var lines []string
	if title := titleLine(m.game); title != "" {
		lines = append(lines, title, "")
	}
	result := m.fight.Begin()
	lines = append(lines, result.Output...)
	if m.trace {
		lines = append(lines, cli.TraceLines(result)...)
	}
	return outputMsg{lines: lines}
}

func titleLine(g library.GameInfo) string {
	title := g.Title
	if title != "" && g.Version != "" {
		title += " v" + g.Version
	}
	if title != "" && g.Author != "" {
		title += " by " + g.Author
	}
	return title
}

// Update handles key presses, resizes and fight output.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			return m.submit()

		case key.Matches(msg, m.keys.Older):
			if prev, ok := m.history.Prev(); ok {
				m.setInput(prev)
			}
			return m, nil

		case key.Matches(msg, m.keys.Newer):
			next, _ := m.history.Next()
			m.setInput(next)
			return m, nil

		case key.Matches(msg, m.keys.Scroll):
			var cmd tea.Cmd
			m.log, cmd = m.log.Update(msg)
			return m, cmd
		}

	case beginMsg:
		if !m.begun {
			m.begun = true
			m.append(m.opening())
		}
		return m, nil

	case outputMsg:
		m.append(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) setInput(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

// layout sizes the log to the space left by the panel, status bar and
// input line.
func (m *Model) layout() {
	w := m.width
	if m.panelVisible() {
		w -= panelWidth
	}
	h := max(m.height-2, 1)

	if !m.ready {
		m.log = viewport.New(w, h)
		m.log.KeyMap = logViewKeys()
		m.ready = true
	} else {
		m.log.Width = w
		m.log.Height = h
	}
	m.refresh()
}

// submit handles the entered line: a /command, a repeat, or a fight command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	if strings.HasPrefix(input, "/") {
		lines, quit := m.meta(input)
		m.append(outputMsg{echo: input, lines: lines, meta: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if lower := strings.ToLower(input); lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m.append(outputMsg{echo: input, lines: []string{"Nothing to repeat."}, meta: true})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	result := m.fight.Step(input)
	lines := result.Output
	if m.trace {
		lines = append(lines, cli.TraceLines(result)...)
	}
	if m.fight.Over() {
		lines = append(lines, "", "[Type /quit to leave.]")
	}
	m.append(outputMsg{echo: input, lines: lines})
	return m, nil
}

// append adds output to the log, followed by a blank separator line.
func (m *Model) append(msg outputMsg) {
	if msg.echo != "" {
		m.entries = append(m.entries, logLine{text: "> " + msg.echo, kind: kindInput})
	}
	for _, line := range msg.lines {
		kind := kindMeta
		if !msg.meta {
			kind = classifyLine(line)
		}
		m.entries = append(m.entries, logLine{text: line, kind: kind})
	}
	m.entries = append(m.entries, logLine{})
	m.refresh()
}

// refresh re-renders the log at the current width and scrolls to the end.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	width := max(m.log.Width, 10)
	rendered := make([]string, len(m.entries))
	for i, e := range m.entries {
		if e.text != "" {
			rendered[i] = e.kind.render(wordWrap(e.text, width))
		}
	}
	m.log.SetContent(strings.Join(rendered, "\n"))
	m.log.GotoBottom()
}

// View renders the log and panel above the status bar and input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	body := m.log.View()
	if m.panelVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderPanel(m.log.Height))
	}
	return body + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// meta runs a /command and returns its output and whether to quit.
func (m *Model) meta(input string) ([]string, bool) {
	switch cmd := strings.Fields(input)[0]; cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true
	case "/help":
		return append(cli.HelpLines(), "", "PgUp/PgDn scroll the log, Up/Down recall earlier commands"), false
	case "/state":
		return cli.StateLines(m.fight), false
	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false
	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}
