package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/cardfight/engine"
)

// renderStatusBar produces a full-width inverted status line showing the
// player's health and block, pile sizes and the turn count. Enemy intents
// are added when the side panel is hidden and they fit.
func (m Model) renderStatusBar() string {
	f := m.fight
	p := f.Player()

	left := fmt.Sprintf(" %s HP %d/%d Blk %d | Draw %d Disc %d",
		engine.DisplayName(p.Name()), p.Health(), p.MaxHealth(), p.Block(),
		len(f.DrawPile()), len(f.DiscardPile()))
	right := fmt.Sprintf("T:%d ", f.Turn())
	if f.Over() {
		right = fmt.Sprintf("%s | T:%d ", f.Outcome(), f.Turn())
	}

	if intents := m.enemySummary(); intents != "" && !m.panelVisible() {
		candidate := intents + " | " + right
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// enemySummary lists living enemies as "slime 6 (Attack 10)".
func (m Model) enemySummary() string {
	es := m.fight.Enemies()
	var parts []string
	for _, k := range es.Keys() {
		if e, _ := es.Get(k); !e.IsDead() {
			parts = append(parts, fmt.Sprintf("%s %d (%s)", k, e.Health(), intentOf(e)))
		}
	}
	return strings.Join(parts, ", ")
}
