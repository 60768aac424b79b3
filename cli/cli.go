// Package cli runs a fight on a plain line-oriented terminal or from a
// script file. It also renders the help, state and trace output that the
// TUI shares.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/cardfight/engine"
	"github.com/nathoo/cardfight/engine/cards"
	"github.com/nathoo/cardfight/library"
	"github.com/nathoo/cardfight/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Fight     *engine.Fight
	Game      library.GameInfo
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI on stdin and stdout.
func New(f *engine.Fight, game library.GameInfo) *CLI {
	return &CLI{
		Fight: f,
		Game:  game,
		In:    os.Stdin,
		Out:   os.Stdout,
	}
}

// Run shows the title and opening position, then reads commands until the
// fight ends, input runs out or the player quits.
func (c *CLI) Run() {
	if c.Game.Title != "" {
		c.println(c.Game.Title, "")
	}
	c.show(c.Fight.Begin())

	scanner := bufio.NewScanner(c.In)
	for !c.Fight.Over() {
		fmt.Fprint(c.Out, "> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		// Blank lines and # comments are skipped so scripts can be annotated.
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.println(input)
		}
		if c.handle(input) {
			return
		}
	}

	if c.Fight.Over() {
		c.system(fmt.Sprintf("Fight over after %d turn(s): %s.", c.Fight.Turn(), c.Fight.Outcome()))
	}
}

// handle runs one input line and reports whether the player quit.
func (c *CLI) handle(input string) bool {
	if strings.HasPrefix(input, "/") {
		return c.meta(input)
	}

	if lower := strings.ToLower(input); lower == "again" || lower == "g" {
		if c.lastCmd == "" {
			c.println("Nothing to repeat.")
			return false
		}
		input = c.lastCmd
	} else {
		c.lastCmd = input
	}

	c.show(c.Fight.Step(input))
	return false
}

func (c *CLI) meta(input string) bool {
	switch cmd := strings.Fields(input)[0]; cmd {
	case "/quit", "/exit":
		c.system("Goodbye.")
		return true
	case "/help":
		c.println(HelpLines()...)
	case "/state":
		c.system(StateLines(c.Fight)...)
	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.system("Trace output enabled.")
		} else {
			c.system("Trace output disabled.")
		}
	default:
		c.system(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}
	return false
}

// show prints a step's output, then its events when tracing.
func (c *CLI) show(result types.Result) {
	c.println(result.Output...)
	if c.Trace {
		c.println(TraceLines(result)...)
	}
}

func (c *CLI) println(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(c.Out, line)
	}
}

func (c *CLI) system(lines ...string) {
	for _, line := range lines {
		fmt.Fprintf(c.Out, "[%s]\n", line)
	}
}

// HelpLines describes the meta commands and fight commands.
func HelpLines() []string {
	return []string{
		"System:",
		"  /quit         - Leave the fight",
		"  /help         - Show this help",
		"  /state        - Debug: dump piles and check invariants",
		"  /trace        - Toggle debug trace output",
		"",
		"Fight commands:",
		"  play <n> [target] (p) - Play card n from your hand, e.g. play 1 slime2",
		"  <n> [target]          - Same as play",
		"  end (e)               - End your turn; enemies act, then you draw",
		"  hand (h)              - Show your hand",
		"  status (s)            - Show health, block and enemy intents",
		"  piles                 - Show draw and discard pile sizes",
		"  look (l)              - Status and hand together",
		"  again (g)             - Repeat your last command",
	}
}

// StateLines dumps the fight for debugging: RNG position, turn, every pile,
// every enemy and the result of the invariant check.
func StateLines(f *engine.Fight) []string {
	lines := []string{
		fmt.Sprintf("Seed: %d  RNG draws: %d", f.RNG().Seed(), f.RNG().Position()),
		fmt.Sprintf("Turn: %d  Player turn: %v  Outcome: %s", f.Turn(), f.IsPlayerTurn(), f.Outcome()),
		"Draw: " + cardList(f.DrawPile()),
		"Hand: " + cardList(f.Hand()),
		"Discard: " + cardList(f.DiscardPile()),
	}
	for _, k := range f.Enemies().Keys() {
		e, _ := f.Enemies().Get(k)
		lines = append(lines, fmt.Sprintf("Enemy %s: hp %d/%d block %d dead %v action %s",
			k, e.Health(), e.MaxHealth(), e.Block(), e.IsDead(), e.CurrentAction().Name))
	}
	if err := f.CheckInvariants(); err != nil {
		return append(lines, "Invariant violation: "+err.Error())
	}
	return append(lines, "Invariants hold.")
}

// TraceLines lists a step's events, one per line.
func TraceLines(result types.Result) []string {
	if len(result.Events) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(result.Events))}
	for _, e := range result.Events {
		lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
	return lines
}

func cardList(cs []*cards.Card) string {
	if len(cs) == 0 {
		return "(empty)"
	}
	names := make([]string, len(cs))
	for i, card := range cs {
		names[i] = card.Name()
	}
	return strings.Join(names, ", ")
}
