// Package loader loads Lua content files into a card and enemy library.
// The Lua VM is discarded after loading; no Lua runs during a fight.
package loader

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/cardfight/engine/cards"
	"github.com/nathoo/cardfight/engine/character"
	"github.com/nathoo/cardfight/engine/effects"
	"github.com/nathoo/cardfight/library"
)

// Effect kinds produced by the Lua helpers.
const (
	effectDamage    = "damage"
	effectDamageAll = "damage_all"
	effectBlock     = "block"
	effectHeal      = "heal"
	effectAttack    = "attack"
	effectGuard     = "guard"
)

// rawDef holds a named constructor table before compilation.
type rawDef struct {
	name  string
	table *lua.LTable
}

type effectSpec struct {
	kind   string
	amount int
}

type cardSpec struct {
	name        string
	typ         string
	cost        int
	description string
	effects     []effectSpec
	fractional  []string // fields that held non-integral numbers
}

type actionSpec struct {
	name       string
	intent     string
	effects    []effectSpec
	next       []string
	fractional []string
}

type enemySpec struct {
	name       string
	maxHealth  int
	start      string
	actions    []actionSpec // sorted by name
	fractional []string
}

type playerSpec struct {
	name       string
	maxHealth  int
	draw       int
	handSize   int
	deck       []string
	fractional []string
}

type encounterSpec struct {
	name    string
	player  string
	enemies []string
}

// content is compiled Lua data, still free of Go closures.
type content struct {
	game       library.GameInfo
	cards      []cardSpec
	enemies    []enemySpec
	players    []playerSpec
	encounters []encounterSpec
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing. A value
// with a fractional part is truncated and its key appended to fractional
// as "key = value".
func getInt(tbl *lua.LTable, key string, fractional *[]string) int {
	n := getNumber(tbl, key)
	if n != math.Trunc(n) && fractional != nil {
		*fractional = append(*fractional, fmt.Sprintf("%s = %v", key, n))
	}
	return int(n)
}

// getIntOr returns an int field, or def when the field is absent.
func getIntOr(tbl *lua.LTable, key string, def int, fractional *[]string) int {
	if tbl.RawGetString(key) == lua.LNil {
		return def
	}
	return getInt(tbl, key, fractional)
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// stringList flattens an array of strings. Nested arrays are expanded in
// place so deck = { Repeat(5, "Strike"), "Bash" } works.
func stringList(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		switch v := tbl.RawGetInt(i).(type) {
		case lua.LString:
			out = append(out, string(v))
		case *lua.LTable:
			out = append(out, stringList(v)...)
		}
	}
	return out
}

// compile converts all collected Lua data into content.
func compile(coll *collector) (*content, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	c := &content{game: compileGame(coll.game)}

	for _, raw := range coll.cards {
		c.cards = append(c.cards, compileCard(raw))
	}
	for _, raw := range coll.enemies {
		e, err := compileEnemy(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling enemy %s: %w", raw.name, err)
		}
		c.enemies = append(c.enemies, e)
	}
	for _, raw := range coll.players {
		c.players = append(c.players, compilePlayer(raw))
	}
	for _, raw := range coll.encounters {
		c.encounters = append(c.encounters, compileEncounter(raw))
	}
	return c, nil
}

func compileGame(tbl *lua.LTable) library.GameInfo {
	return library.GameInfo{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
	}
}

func compileCard(raw rawDef) cardSpec {
	cs := cardSpec{
		name:        raw.name,
		typ:         getString(raw.table, "type"),
		description: getString(raw.table, "description"),
	}
	cs.cost = getInt(raw.table, "cost", &cs.fractional)
	cs.effects = compileEffects(getTable(raw.table, "effects"), &cs.fractional)
	return cs
}

func compileEnemy(raw rawDef) (enemySpec, error) {
	e := enemySpec{
		name:  raw.name,
		start: getString(raw.table, "start"),
	}
	e.maxHealth = getInt(raw.table, "max_health", &e.fractional)
	actions := getTable(raw.table, "actions")
	if actions == nil {
		return e, nil
	}

	var bad error
	actions.ForEach(func(k, v lua.LValue) {
		name, ok := k.(lua.LString)
		tbl, isTbl := v.(*lua.LTable)
		if !ok || !isTbl {
			bad = fmt.Errorf("actions must map names to tables")
			return
		}
		a := actionSpec{
			name:   string(name),
			intent: getString(tbl, "intent"),
			next:   stringList(getTable(tbl, "next")),
		}
		a.effects = compileEffects(getTable(tbl, "effects"), &a.fractional)
		e.actions = append(e.actions, a)
	})
	if bad != nil {
		return e, bad
	}
	// Lua table iteration order is unspecified.
	sort.Slice(e.actions, func(i, j int) bool { return e.actions[i].name < e.actions[j].name })
	return e, nil
}

func compilePlayer(raw rawDef) playerSpec {
	ps := playerSpec{
		name: raw.name,
		deck: stringList(getTable(raw.table, "deck")),
	}
	ps.maxHealth = getInt(raw.table, "max_health", &ps.fractional)
	ps.draw = getIntOr(raw.table, "draw", character.DefaultCardsDrawnPerTurn, &ps.fractional)
	ps.handSize = getIntOr(raw.table, "hand_size", character.DefaultMaxHandSize, &ps.fractional)
	return ps
}

func compileEncounter(raw rawDef) encounterSpec {
	return encounterSpec{
		name:    raw.name,
		player:  getString(raw.table, "player"),
		enemies: stringList(getTable(raw.table, "enemies")),
	}
}

// compileEffects reads an effect list. Non-integral amounts are noted in
// fractional as "<kind> amount = value".
func compileEffects(tbl *lua.LTable, fractional *[]string) []effectSpec {
	if tbl == nil {
		return nil
	}
	var out []effectSpec
	for i := 1; i <= tbl.MaxN(); i++ {
		if e, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			kind := getString(e, "type")
			var frac []string
			out = append(out, effectSpec{kind: kind, amount: getInt(e, "amount", &frac)})
			if fractional != nil {
				for _, f := range frac {
					*fractional = append(*fractional, kind+" "+f)
				}
			}
		}
	}
	return out
}

// build turns validated content into a library, binding each effect spec to
// its Go implementation.
func build(c *content) (*library.Library, error) {
	l := library.New()
	l.Game = c.game

	for _, cs := range c.cards {
		typ, err := cards.ParseType(cs.typ)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", cs.name, err)
		}
		if err := l.AddCard(library.CardDef{
			Name:        cs.name,
			Type:        typ,
			Cost:        cs.cost,
			Description: cs.description,
			Effect:      cardEffect(cs.effects),
		}); err != nil {
			return nil, err
		}
	}

	for _, es := range c.enemies {
		def := library.EnemyDef{Name: es.name, MaxHealth: es.maxHealth, Start: es.start}
		for _, a := range es.actions {
			def.Actions = append(def.Actions, library.ActionDef{
				Name:   a.name,
				Intent: a.intent,
				Effect: actionEffect(a.effects),
				Next:   a.next,
			})
		}
		if err := l.AddEnemy(def); err != nil {
			return nil, err
		}
	}

	for _, ps := range c.players {
		if err := l.AddPlayer(library.PlayerDef{
			Name:              ps.name,
			MaxHealth:         ps.maxHealth,
			CardsDrawnPerTurn: ps.draw,
			MaxHandSize:       ps.handSize,
			Deck:              ps.deck,
		}); err != nil {
			return nil, err
		}
	}

	for _, es := range c.encounters {
		if err := l.AddEncounter(library.EncounterDef{
			Name:    es.name,
			Player:  es.player,
			Enemies: es.enemies,
		}); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func cardEffect(specs []effectSpec) cards.Effect {
	var effs []cards.Effect
	for _, s := range specs {
		switch s.kind {
		case effectDamage:
			effs = append(effs, effects.Damage(s.amount))
		case effectDamageAll:
			effs = append(effs, effects.DamageAll(s.amount))
		case effectBlock:
			effs = append(effs, effects.Block(s.amount))
		case effectHeal:
			effs = append(effs, effects.Heal(s.amount))
		}
	}
	if len(effs) == 1 {
		return effs[0]
	}
	return effects.Sequence(effs...)
}

func actionEffect(specs []effectSpec) character.ActionEffect {
	var effs []character.ActionEffect
	for _, s := range specs {
		switch s.kind {
		case effectAttack:
			effs = append(effs, effects.Attack(s.amount))
		case effectGuard:
			effs = append(effs, effects.Guard(s.amount))
		case effectHeal:
			effs = append(effs, effects.Mend(s.amount))
		}
	}
	if len(effs) == 1 {
		return effs[0]
	}
	return effects.Chain(effs...)
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
