package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/cardfight/engine/parser"
	"github.com/nathoo/cardfight/types"
)

// Begin starts the first player turn and describes the opening position.
func (f *Fight) Begin() types.Result {
	var result types.Result
	if _, err := f.StartTurn(); err != nil {
		result.Output = append(result.Output, errorLine(err))
	}
	result.Events = f.recorder.Drain()
	result.Output = append(result.Output, f.narrate(result.Events)...)
	result.Output = append(result.Output, f.StatusLines()...)
	result.Output = append(result.Output, f.HandLines()...)
	return result
}

// Step processes one player command and returns the result.
func (f *Fight) Step(input string) types.Result {
	var result types.Result

	intent := parser.Parse(input)

	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	// Observation works after the fight; actions do not.
	switch intent.Verb {
	case "hand":
		result.Output = append(result.Output, f.HandLines()...)
		return result
	case "status":
		result.Output = append(result.Output, f.StatusLines()...)
		return result
	case "look":
		result.Output = append(result.Output, f.StatusLines()...)
		result.Output = append(result.Output, f.HandLines()...)
		return result
	case "piles":
		result.Output = append(result.Output, f.PileLines()...)
		return result
	}

	if f.Over() {
		result.Output = append(result.Output, "The fight is over. Use /quit to exit.")
		return result
	}

	var tail []string
	var err error
	switch intent.Verb {
	case "play":
		err = f.stepPlay(intent)
	case "end":
		err = f.stepEnd()
		if err == nil && !f.Over() {
			tail = append(f.StatusLines(), f.HandLines()...)
		}
	default:
		result.Output = append(result.Output, fmt.Sprintf("I don't know how to %q. Try play, end, hand, status or piles.", intent.Verb))
		return result
	}

	result.Events = f.recorder.Drain()
	if f.Over() {
		// fight_over has been recorded; nothing publishes after it.
		f.bus.Close()
	}
	result.Output = append(result.Output, f.narrate(result.Events)...)
	if err != nil {
		result.Output = append(result.Output, errorLine(err))
	}
	result.Output = append(result.Output, tail...)
	return result
}

// stepPlay plays a card by its 1-based hand position.
func (f *Fight) stepPlay(intent types.Intent) error {
	if intent.Object == "" {
		return fmt.Errorf("play which card? Give its number in your hand: %w", types.ErrInvalidArgument)
	}
	n, err := strconv.Atoi(intent.Object)
	if err != nil {
		return fmt.Errorf("%q is not a card number: %w", intent.Object, types.ErrInvalidArgument)
	}
	return f.PlayCardInHand(n-1, intent.Target)
}

// stepEnd discards the hand, runs the enemy turn and starts the next player turn.
func (f *Fight) stepEnd() error {
	if err := f.EndTurn(); err != nil {
		return err
	}
	if err := f.EnemyTurn(); err != nil {
		return err
	}
	if f.Over() {
		return nil
	}
	_, err := f.StartTurn()
	return err
}

// narrate turns published events into output lines.
func (f *Fight) narrate(evts []types.Event) []string {
	var lines []string
	drawn := 0
	flushDraws := func() {
		if drawn == 0 {
			return
		}
		if drawn == 1 {
			lines = append(lines, "You draw a card.")
		} else {
			lines = append(lines, fmt.Sprintf("You draw %d cards.", drawn))
		}
		drawn = 0
	}

	for _, e := range evts {
		if e.Type == types.EventCardDrawn {
			drawn++
			continue
		}
		flushDraws()

		name := DisplayName(str(e.Data["name"]))
		switch e.Type {
		case types.EventTurnStarted:
			lines = append(lines, fmt.Sprintf("-- Turn %d --", num(e.Data["turn"])))
		case types.EventCardPlayed:
			line := fmt.Sprintf("You play %s.", str(e.Data["card"]))
			if t := str(e.Data["target"]); t != "" {
				line = fmt.Sprintf("You play %s on %s.", str(e.Data["card"]), DisplayName(t))
			}
			lines = append(lines, line)
		case types.EventDamaged:
			line := fmt.Sprintf("%s takes %d damage.", name, num(e.Data["amount"]))
			if b := num(e.Data["blocked"]); b > 0 {
				line = fmt.Sprintf("%s takes %d damage (%d blocked).", name, num(e.Data["amount"]), b)
			}
			lines = append(lines, line)
		case types.EventBlockGained:
			lines = append(lines, fmt.Sprintf("%s gains %d block.", name, num(e.Data["amount"])))
		case types.EventHealed:
			lines = append(lines, fmt.Sprintf("%s heals %d.", name, num(e.Data["amount"])))
		case types.EventDeath:
			lines = append(lines, fmt.Sprintf("%s dies!", name))
		case types.EventEnemyAction:
			lines = append(lines, fmt.Sprintf("%s: %s", name, actionText(e)))
		case types.EventHandDiscarded:
			lines = append(lines, fmt.Sprintf("You discard %d cards.", num(e.Data["count"])))
		case types.EventReshuffled:
			lines = append(lines, fmt.Sprintf("Your discard pile is shuffled into the draw pile (%d cards).", num(e.Data["count"])))
		case types.EventFightOver:
			if v, _ := e.Data["victory"].(bool); v {
				lines = append(lines, "Victory! Every enemy is defeated.")
			} else {
				lines = append(lines, "You have been defeated.")
			}
		}
	}
	flushDraws()
	return lines
}

// StatusLines describes the player and every enemy.
func (f *Fight) StatusLines() []string {
	p := f.player
	lines := []string{
		fmt.Sprintf("%s  HP %d/%d  Block %d", DisplayName(p.Name()), p.Health(), p.MaxHealth(), p.Block()),
	}
	for _, k := range f.enemies.Keys() {
		e, _ := f.enemies.Get(k)
		if e.IsDead() {
			lines = append(lines, fmt.Sprintf("  [%s] %s  (dead)", k, DisplayName(e.Name())))
			continue
		}
		lines = append(lines, fmt.Sprintf("  [%s] %s  HP %d/%d  Block %d  Intent: %s",
			k, DisplayName(e.Name()), e.Health(), e.MaxHealth(), e.Block(), intentText(e.CurrentAction().Intent, e.CurrentAction().Name)))
	}
	return lines
}

// HandLines lists the hand with 1-based positions.
func (f *Fight) HandLines() []string {
	hand := f.hand.Cards()
	if len(hand) == 0 {
		return []string{"Your hand is empty."}
	}
	lines := []string{"Hand:"}
	for i, c := range hand {
		line := fmt.Sprintf("  %d. %s [%s, %d]", i+1, c.Name(), c.Type(), c.Cost())
		if c.Description() != "" {
			line += " - " + c.Description()
		}
		lines = append(lines, line)
	}
	return lines
}

// PileLines summarizes pile sizes.
func (f *Fight) PileLines() []string {
	return []string{
		fmt.Sprintf("Draw pile: %d  Hand: %d  Discard pile: %d",
			f.drawPile.Size(), f.hand.Size(), f.discardPile.Size()),
	}
}

// DisplayName derives a human-readable name from a content key.
// "slime" -> "Slime", "acid_slime" -> "Acid Slime".
func DisplayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// errorLine renders a caller error for the player.
func errorLine(err error) string {
	switch {
	case errors.Is(err, types.ErrInvariantViolation):
		return "[internal error: " + err.Error() + "]"
	case errors.Is(err, types.ErrFightOver):
		return "The fight is over."
	default:
		return "You can't do that: " + err.Error() + "."
	}
}

func actionText(e types.Event) string {
	return intentText(str(e.Data["intent"]), str(e.Data["action"]))
}

func intentText(intent, name string) string {
	if intent != "" {
		return intent
	}
	return DisplayName(name)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) int {
	n, _ := v.(int)
	return n
}
