package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("239")).
			Padding(0, 1)

	stylePanelTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true)

	styleIntent = lipgloss.NewStyle().
			Foreground(lipgloss.Color("215")).
			Italic(true)

	styleHPFull = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160"))

	styleHPEmpty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// lineKind identifies the type of a log line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindInput
	kindMeta
	kindTurn
	kindHand
	kindDamage
	kindBlock
	kindHeal
	kindDeath
	kindVictory
	kindDefeat
	kindSystem
	kindError
	kindTrace
)

var kindStyles = map[lineKind]lipgloss.Style{
	kindNarration: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	kindInput:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	kindMeta:      styleDim,
	kindTurn:      lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
	kindHand:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	kindDamage:    lipgloss.NewStyle().Foreground(lipgloss.Color("209")),
	kindBlock:     lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
	kindHeal:      lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	kindDeath:     lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
	kindVictory:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	kindDefeat:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
	kindSystem:    styleDim,
	kindError:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	kindTrace:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// render styles s for this kind. Meta output is shown in brackets.
func (k lineKind) render(s string) string {
	if k == kindMeta {
		s = "[" + s + "]"
	}
	return kindStyles[k].Render(s)
}

// classifyLine determines what kind of fight output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[internal error"):
		return kindError
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "-- Turn"):
		return kindTurn
	case strings.HasPrefix(line, "Victory!"):
		return kindVictory
	case strings.HasPrefix(line, "You have been defeated"):
		return kindDefeat
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "I don't know"),
		strings.HasPrefix(line, "The fight is over"):
		return kindError
	case line == "Hand:" || isHandEntry(line):
		return kindHand
	case strings.HasSuffix(line, " dies!"):
		return kindDeath
	case strings.Contains(line, " damage"):
		return kindDamage
	case strings.Contains(line, " block."):
		return kindBlock
	case strings.Contains(line, " heals "):
		return kindHeal
	default:
		return kindNarration
	}
}

// isHandEntry matches the "  3. Strike [attack, 1]" rows of a hand listing.
func isHandEntry(line string) bool {
	s := strings.TrimLeft(line, " ")
	if len(s) == len(line) {
		return false
	}
	dot := strings.IndexByte(s, '.')
	if dot <= 0 {
		return false
	}
	for _, r := range s[:dot] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// wordWrap wraps text at word boundaries to fit width. Leading indentation
// is kept on the first line.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]
	var lines []string
	line := indent
	for _, word := range strings.Fields(text) {
		switch {
		case line == indent:
			line += word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
