package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/nathoo/cardfight/engine/cards"
	"github.com/nathoo/cardfight/engine/rng"
	"github.com/nathoo/cardfight/library"
	"github.com/nathoo/cardfight/types"
)

func TestLoad_MinimalContent(t *testing.T) {
	lib, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if lib.Game.Title != "Minimal Fight" {
		t.Errorf("Title = %q, want %q", lib.Game.Title, "Minimal Fight")
	}
	jab, err := lib.Card("Jab")
	if err != nil {
		t.Fatal(err)
	}
	if jab.Cost() != 0 || jab.Type() != cards.Attack {
		t.Errorf("Jab = %v", jab)
	}

	// Built-in content survives the merge.
	for _, n := range []string{library.Strike, library.Defend} {
		if !lib.HasCard(n) {
			t.Errorf("built-in card %q missing after load", n)
		}
	}
	if !lib.HasEnemy(library.Slime) || !lib.HasPlayer(library.Knight) {
		t.Error("built-in slime or knight missing after load")
	}
}

func TestLoad_FullContent(t *testing.T) {
	lib, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if lib.Game.Author != "Tester" || lib.Game.Version != "1.0" {
		t.Errorf("Game = %+v", lib.Game)
	}

	bash, err := lib.Card("Bash")
	if err != nil {
		t.Fatal(err)
	}
	if bash.Cost() != 2 || bash.Description() != "Deal 8 damage." {
		t.Errorf("Bash = cost %d %q", bash.Cost(), bash.Description())
	}
	if inflame, _ := lib.Card("Inflame"); inflame == nil || inflame.Type() != cards.Power {
		t.Errorf("Inflame = %v", inflame)
	}

	cultist, err := lib.Enemy("cultist")
	if err != nil {
		t.Fatal(err)
	}
	if cultist.MaxHealth() != 48 {
		t.Errorf("cultist max health = %d", cultist.MaxHealth())
	}
	if got := cultist.CurrentAction(); got.Name != "incantation" || got.Intent != "Buff" {
		t.Errorf("cultist starts at %+v", got)
	}
	cultist.NextTurn(rng.New(1))
	if got := cultist.CurrentAction().Name; got != "dark_strike" {
		t.Errorf("after incantation = %q, want dark_strike", got)
	}

	// Single-action enemies need no start.
	louse, err := lib.Enemy("louse")
	if err != nil {
		t.Fatal(err)
	}
	if louse.CurrentAction().Name != "bite" {
		t.Errorf("louse starts at %q", louse.CurrentAction().Name)
	}

	ironclad, err := lib.Player("ironclad")
	if err != nil {
		t.Fatal(err)
	}
	counts := map[string]int{}
	for _, c := range ironclad.Deck() {
		counts[c.Name()]++
	}
	if counts["Strike"] != 5 || counts["Defend"] != 4 || counts["Bash"] != 1 {
		t.Errorf("ironclad deck = %v", counts)
	}

	// Omitted draw and hand_size take the defaults.
	silent, err := lib.Player("silent")
	if err != nil {
		t.Fatal(err)
	}
	if silent.CardsDrawnPerTurn() != 5 || silent.MaxHandSize() != 10 {
		t.Errorf("silent draw %d hand %d", silent.CardsDrawnPerTurn(), silent.MaxHandSize())
	}

	enc, err := lib.Encounter("cult")
	if err != nil {
		t.Fatal(err)
	}
	set, err := lib.Enemies(enc.Enemies...)
	if err != nil {
		t.Fatal(err)
	}
	if keys := set.Keys(); strings.Join(keys, ",") != "cultist,louse,louse2" {
		t.Errorf("encounter keys = %v", keys)
	}
}

func TestLoad_EffectsAreBound(t *testing.T) {
	lib, err := Load("testdata/full")
	if err != nil {
		t.Fatal(err)
	}
	p, _ := lib.Player("silent")
	louse, _ := lib.Enemy("louse")

	// bite: Attack(5) then Heal(2) on itself.
	_ = louse.ReceiveDamage(4)
	if err := louse.PerformCurrentAction(p); err != nil {
		t.Fatal(err)
	}
	if p.Health() != 65 {
		t.Errorf("player health = %d, want 65", p.Health())
	}
	if louse.Health() != 10 {
		t.Errorf("louse health = %d, want 10", louse.Health())
	}
}

func TestLoad_InvalidRefs_Fails(t *testing.T) {
	_, err := Load("testdata/invalid_refs")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	assertContains(t, ve.Errors, `undefined card "Fireball"`)
	assertContains(t, ve.Errors, `undefined player "nobody"`)
	assertContains(t, ve.Errors, `undefined enemy "wraith"`)
	for _, e := range ve.Errors {
		if strings.Contains(e, `"Strike"`) {
			t.Errorf("built-in Strike flagged as undefined: %s", e)
		}
	}
}

func TestLoad_BadGraph_Fails(t *testing.T) {
	_, err := Load("testdata/bad_graph")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	for _, want := range []string{
		`unknown type "curse"`,
		"cost must not be negative",
		`effect type "attack" not allowed here`,
		"max_health must be positive",
		`start "wobble" is not one of its actions`,
		`next action "splat" is undefined`,
		`effect type "block" not allowed here`,
		`action "drip" has no next actions`,
	} {
		assertContains(t, ve.Errors, want)
	}
}

func TestLoad_BadLuaSyntax_Fails(t *testing.T) {
	_, err := Load("testdata/bad_lua")
	if err == nil {
		t.Fatal("expected error for bad Lua syntax")
	}
	if !strings.Contains(err.Error(), "game.lua") {
		t.Errorf("error = %q, expected the file name", err.Error())
	}
}

func TestLoad_NoGameDef_Fails(t *testing.T) {
	_, err := Load("testdata/no_game")
	if err == nil {
		t.Fatal("expected error for missing Game{} definition")
	}
	if !strings.Contains(err.Error(), "no Game{} definition") {
		t.Errorf("error = %q, expected 'no Game{} definition'", err.Error())
	}
}

func TestLoad_SandboxEnforced(t *testing.T) {
	if _, err := Load("testdata/sandbox_escape"); err == nil {
		t.Fatal("expected sandbox to block os.execute")
	}

	L, _ := newTestVM()
	defer L.Close()
	for _, src := range []string{`dofile("x.lua")`, `loadstring("return 1")()`, `math.randomseed(1)`, `io.write("x")`} {
		if err := L.DoString(src); err == nil {
			t.Errorf("%s should fail in the sandbox", src)
		}
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoad_EmptyDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no .lua files") {
		t.Fatalf("err = %v, want 'no .lua files'", err)
	}
}

func TestLoad_FileOrdering(t *testing.T) {
	// game.lua runs first, so later files may override what it sets.
	dir := t.TempDir()
	write := func(name, src string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("game.lua", `Game { title = "First" }`)
	write("a_override.lua", `Game { title = "Second" }`)
	write("z_cards.lua", `Card "Zap" { type = "skill", cost = 1, effects = { Block(1) } }`)

	lib, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if lib.Game.Title != "Second" {
		t.Errorf("Title = %q, want Second", lib.Game.Title)
	}
	if !lib.HasCard("Zap") {
		t.Error("Zap not loaded")
	}
}

func TestLoadFS_OverridesBuiltins(t *testing.T) {
	fsys := fstest.MapFS{
		"game.lua": {Data: []byte(`Game { title = "Override" }`)},
		"cards.lua": {Data: []byte(`
			Card "Strike" { type = "attack", cost = 0, description = "Deal 9 damage.", effects = { Damage(9) } }
		`)},
		"notes.txt": {Data: []byte("ignored")},
	}
	lib, err := LoadFS(fsys)
	if err != nil {
		t.Fatal(err)
	}
	s, err := lib.Card(library.Strike)
	if err != nil {
		t.Fatal(err)
	}
	if s.Cost() != 0 || s.Description() != "Deal 9 damage." {
		t.Errorf("Strike = cost %d %q", s.Cost(), s.Description())
	}
	if _, err := lib.Card("notes"); !errors.Is(err, types.ErrIndexOutOfRange) {
		t.Errorf("non-Lua file produced content: %v", err)
	}
}

func TestLoadFS_RejectsFractionalNumbers(t *testing.T) {
	fsys := fstest.MapFS{
		"game.lua": {Data: []byte(`Game { title = "Fractions" }`)},
		"cards.lua": {Data: []byte(`
			Card "Sliver" { type = "attack", cost = 1.9, effects = { Damage(2.7) } }
		`)},
	}
	_, err := LoadFS(fsys)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	assertContains(t, ve.Errors, "cost = 1.9 is not a whole number")
	assertContains(t, ve.Errors, "damage amount = 2.7 is not a whole number")
}

func assertContains(t *testing.T, strs []string, substr string) {
	t.Helper()
	for _, s := range strs {
		if strings.Contains(s, substr) {
			return
		}
	}
	t.Errorf("expected an entry containing %q in %v", substr, strs)
}
