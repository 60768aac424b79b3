package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/cardfight/engine"
	"github.com/nathoo/cardfight/engine/rng"
	"github.com/nathoo/cardfight/library"
	"github.com/nathoo/cardfight/types"
)

// newTestCLI builds a knight-versus-slime fight from the built-in library.
func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	lib := library.Default()
	p, err := lib.Player(library.Knight)
	if err != nil {
		t.Fatal(err)
	}
	enemies, err := lib.Enemies(library.Slime)
	if err != nil {
		t.Fatal(err)
	}
	f, err := engine.New(p, enemies, rng.New(3))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	c := &CLI{
		Fight: f,
		Game:  lib.Game,
		In:    strings.NewReader(input),
		Out:   &out,
	}
	return c, &out
}

func TestCLI_TitleAndOpeningHand(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Card Fight") {
		t.Error("expected game title in output")
	}
	if !strings.Contains(output, "Hand:") || !strings.Contains(output, "Intent: Attack 5") {
		t.Errorf("expected opening hand and enemy intent:\n%s", output)
	}
	if !strings.Contains(output, "[Goodbye.]") {
		t.Error("expected goodbye on /quit")
	}
}

func TestCLI_EndTurn(t *testing.T) {
	c, out := newTestCLI(t, "end\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Slime: Attack 5") {
		t.Errorf("expected the slime to act:\n%s", output)
	}
	if c.Fight.Turn() != 2 {
		t.Errorf("turn = %d, want 2", c.Fight.Turn())
	}
}

func TestCLI_PlaysUntilVictory(t *testing.T) {
	// Empty the hand onto the slime every turn. Two turns cycle the whole
	// deck, and two of its five Strikes kill the slime.
	var script strings.Builder
	for i := 0; i < 3; i++ {
		script.WriteString(strings.Repeat("1 slime\n", 5) + "end\n")
	}
	c, out := newTestCLI(t, script.String())
	c.Run()

	if !c.Fight.Over() {
		t.Fatalf("fight not over:\n%s", out.String())
	}
	output := out.String()
	if !strings.Contains(output, "Victory!") {
		t.Errorf("expected victory:\n%s", output)
	}
	if !strings.Contains(output, "[Fight over after") {
		t.Error("expected fight-over summary")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/quit", "/trace", "play <n> [target]", "end (e)"} {
		if !strings.Contains(output, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/save\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command: /save") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nend\n/trace\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled.") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[trace]   enemy_action") {
		t.Errorf("expected traced enemy_action event:\n%s", output)
	}
	if !strings.Contains(output, "Trace output disabled.") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"[Seed: 3  RNG draws: ", "Turn: 1", "Hand: ", "Enemy slime: hp 10/10", "Invariants hold."} {
		if !strings.Contains(output, want) {
			t.Errorf("state missing %q:\n%s", want, output)
		}
	}
}

func TestCLI_EmptyInputAndComments(t *testing.T) {
	c, out := newTestCLI(t, "\n# a comment\n   \n/quit\n")
	c.Run()

	if strings.Contains(out.String(), "What do you want to do?") {
		t.Error("blank or comment lines reached the fight")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "hand\n/quit\n")
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "> hand\n") {
		t.Errorf("expected echoed input:\n%s", out.String())
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, _ := newTestCLI(t, "end\nagain\n/quit\n")
	c.Run()

	if c.Fight.Turn() != 3 {
		t.Errorf("turn = %d, want 3 after end + again", c.Fight.Turn())
	}
}

func TestCLI_G_RepeatsLastCommand(t *testing.T) {
	c, _ := newTestCLI(t, "end\ng\n/quit\n")
	c.Run()

	if c.Fight.Turn() != 3 {
		t.Errorf("turn = %d, want 3 after end + g", c.Fight.Turn())
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat.") {
		t.Error("expected 'Nothing to repeat.' message")
	}
}

func TestCLI_EOFEndsLoop(t *testing.T) {
	c, out := newTestCLI(t, "hand\n")
	c.Run()

	if strings.Contains(out.String(), "Goodbye.") {
		t.Error("EOF should end the loop without /quit")
	}
}

func TestTraceLines(t *testing.T) {
	if lines := TraceLines(types.Result{}); lines != nil {
		t.Errorf("expected no trace lines for an empty result, got %v", lines)
	}
	lines := TraceLines(types.Result{Events: []types.Event{
		{Type: types.EventDamaged, Data: map[string]any{"amount": 6}},
	}})
	if len(lines) != 2 || lines[0] != "[trace] Events: 1" || !strings.HasPrefix(lines[1], "[trace]   damaged") {
		t.Errorf("TraceLines = %q", lines)
	}
}

func TestStateLines_ListsPiles(t *testing.T) {
	c, _ := newTestCLI(t, "")
	c.Fight.Begin()

	lines := StateLines(c.Fight)
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Discard: (empty)") {
		t.Errorf("expected an empty discard pile:\n%s", joined)
	}
	if lines[len(lines)-1] != "Invariants hold." {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}
}
