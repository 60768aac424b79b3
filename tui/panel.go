package tui

import (
	"fmt"
	"strings"

	"github.com/nathoo/cardfight/engine"
	"github.com/nathoo/cardfight/engine/character"
)

const (
	panelWidth  = 36 // including border
	minLogWidth = 44
	barWidth    = 12
)

// panelVisible reports whether the terminal is wide enough for the side panel.
func (m Model) panelVisible() bool {
	return m.width >= panelWidth+minLogWidth
}

// renderPanel draws the enemies and the hand in a bordered column of the
// given height.
func (m Model) renderPanel(height int) string {
	f := m.fight
	var b strings.Builder

	b.WriteString(stylePanelTitle.Render("Enemies") + "\n")
	for _, k := range f.Enemies().Keys() {
		e, _ := f.Enemies().Get(k)
		if e.IsDead() {
			b.WriteString(styleDim.Render(k+"  dead") + "\n")
			continue
		}
		fmt.Fprintf(&b, "%-8s %s %d/%d\n", k, healthBar(e.Health(), e.MaxHealth(), barWidth), e.Health(), e.MaxHealth())
		if e.Block() > 0 {
			fmt.Fprintf(&b, "  block %d\n", e.Block())
		}
		b.WriteString("  " + styleIntent.Render(intentOf(e)) + "\n")
	}

	b.WriteString("\n" + stylePanelTitle.Render("Hand") + "\n")
	hand := f.Hand()
	if len(hand) == 0 {
		b.WriteString(styleDim.Render("(empty)") + "\n")
	}
	for i, c := range hand {
		fmt.Fprintf(&b, "%d. %s (%d)\n", i+1, c.Name(), c.Cost())
	}

	inner := strings.TrimRight(b.String(), "\n")
	return stylePanel.Width(panelWidth - 2).Height(max(height-2, 1)).Render(inner)
}

// healthBar renders hp out of maxHP as a bar width cells wide. A living
// character always shows at least one filled cell.
func healthBar(hp, maxHP, width int) string {
	filled := 0
	if maxHP > 0 {
		filled = hp * width / maxHP
	}
	if hp > 0 && filled == 0 {
		filled = 1
	}
	filled = min(max(filled, 0), width)
	return styleHPFull.Render(strings.Repeat("█", filled)) +
		styleHPEmpty.Render(strings.Repeat("░", width-filled))
}

// intentOf describes what the enemy will do on its next action.
func intentOf(e *character.Enemy) string {
	a := e.CurrentAction()
	if a.Intent != "" {
		return a.Intent
	}
	return engine.DisplayName(a.Name)
}
