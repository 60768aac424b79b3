// Package library holds the game's content definitions and hands out fresh
// instances by symbolic name. Fights never share a card or enemy instance,
// so every lookup builds a new one.
package library

import (
	"fmt"
	"sort"

	"github.com/nathoo/cardfight/engine/cards"
	"github.com/nathoo/cardfight/engine/character"
	"github.com/nathoo/cardfight/types"
)

// GameInfo is the content pack's metadata.
type GameInfo struct {
	Title   string
	Author  string
	Version string
}

// CardDef describes a card.
type CardDef struct {
	Name        string
	Type        cards.Type
	Cost        int
	Description string
	Effect      cards.Effect
}

// ActionDef is one node of an enemy's action graph. Next names successor nodes.
type ActionDef struct {
	Name   string
	Intent string
	Effect character.ActionEffect
	Next   []string
}

// EnemyDef describes an enemy. Start names the first action; empty means
// the first entry in Actions.
type EnemyDef struct {
	Name      string
	MaxHealth int
	Start     string
	Actions   []ActionDef
}

// PlayerDef describes a player character. Deck lists card names and may
// repeat them.
type PlayerDef struct {
	Name              string
	MaxHealth         int
	CardsDrawnPerTurn int
	MaxHandSize       int
	Deck              []string
}

// EncounterDef pairs a player with the enemies it fights.
type EncounterDef struct {
	Name    string
	Player  string
	Enemies []string
}

// Library is a name-indexed set of content definitions.
type Library struct {
	Game GameInfo

	cards      map[string]*cards.Card
	enemies    map[string]*character.Enemy
	players    map[string]PlayerDef
	encounters map[string]EncounterDef
}

// New returns an empty library.
func New() *Library {
	return &Library{
		cards:      make(map[string]*cards.Card),
		enemies:    make(map[string]*character.Enemy),
		players:    make(map[string]PlayerDef),
		encounters: make(map[string]EncounterDef),
	}
}

// AddCard registers a card, replacing any card with the same name.
func (l *Library) AddCard(def CardDef) error {
	c, err := cards.New(def.Name, def.Type, def.Cost, def.Description, def.Effect)
	if err != nil {
		return fmt.Errorf("card %q: %w", def.Name, err)
	}
	l.cards[def.Name] = c
	return nil
}

// AddEnemy builds the enemy's action graph and registers it. The graph is
// shared by every instance handed out for this name.
func (l *Library) AddEnemy(def EnemyDef) error {
	g := character.NewActionGraph()
	for _, a := range def.Actions {
		if _, err := g.AddNode(a.Name, a.Intent, a.Effect); err != nil {
			return fmt.Errorf("enemy %q: %w", def.Name, err)
		}
	}
	for _, a := range def.Actions {
		for _, next := range a.Next {
			if err := g.Link(a.Name, next); err != nil {
				return fmt.Errorf("enemy %q: %w", def.Name, err)
			}
		}
	}
	if def.Start != "" {
		if err := g.SetStart(def.Start); err != nil {
			return fmt.Errorf("enemy %q: start: %w", def.Name, err)
		}
	}
	e, err := character.NewEnemy(def.Name, def.MaxHealth, g)
	if err != nil {
		return fmt.Errorf("enemy %q: %w", def.Name, err)
	}
	l.enemies[def.Name] = e
	return nil
}

// AddPlayer registers a player. Deck card names are resolved on lookup.
func (l *Library) AddPlayer(def PlayerDef) error {
	if def.Name == "" {
		return fmt.Errorf("player: empty name: %w", types.ErrInvalidArgument)
	}
	if def.MaxHealth <= 0 || def.CardsDrawnPerTurn <= 0 || def.MaxHandSize <= 0 {
		return fmt.Errorf("player %q: max_health, draw and hand_size must be positive: %w", def.Name, types.ErrInvalidArgument)
	}
	def.Deck = append([]string(nil), def.Deck...)
	l.players[def.Name] = def
	return nil
}

// AddEncounter registers an encounter.
func (l *Library) AddEncounter(def EncounterDef) error {
	if def.Name == "" {
		return fmt.Errorf("encounter: empty name: %w", types.ErrInvalidArgument)
	}
	if len(def.Enemies) == 0 {
		return fmt.Errorf("encounter %q: no enemies: %w", def.Name, types.ErrInvalidArgument)
	}
	def.Enemies = append([]string(nil), def.Enemies...)
	l.encounters[def.Name] = def
	return nil
}

// Merge copies every definition in other into l. Entries in other win.
// Non-empty game metadata in other replaces l's.
func (l *Library) Merge(other *Library) {
	if other.Game.Title != "" {
		l.Game = other.Game
	}
	for k, v := range other.cards {
		l.cards[k] = v
	}
	for k, v := range other.enemies {
		l.enemies[k] = v
	}
	for k, v := range other.players {
		l.players[k] = v
	}
	for k, v := range other.encounters {
		l.encounters[k] = v
	}
}

// Card returns a fresh copy of the named card.
func (l *Library) Card(name string) (*cards.Card, error) {
	c, ok := l.cards[name]
	if !ok {
		return nil, fmt.Errorf("card %q: %w", name, types.ErrIndexOutOfRange)
	}
	return c.Copy(), nil
}

// Enemy returns a fresh, full-health copy of the named enemy.
func (l *Library) Enemy(name string) (*character.Enemy, error) {
	e, ok := l.enemies[name]
	if !ok {
		return nil, fmt.Errorf("enemy %q: %w", name, types.ErrIndexOutOfRange)
	}
	return e.Copy(), nil
}

// Player builds the named player with a fresh copy of every deck card.
func (l *Library) Player(name string) (*character.Player, error) {
	def, ok := l.players[name]
	if !ok {
		return nil, fmt.Errorf("player %q: %w", name, types.ErrIndexOutOfRange)
	}
	p, err := character.NewPlayer(def.Name, def.MaxHealth, def.CardsDrawnPerTurn, def.MaxHandSize)
	if err != nil {
		return nil, err
	}
	for _, cn := range def.Deck {
		c, err := l.Card(cn)
		if err != nil {
			return nil, fmt.Errorf("player %q deck: %w", name, err)
		}
		if err := p.AddCard(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Enemies builds an enemy set from names, in order. Repeated names get
// numbered keys: slime, slime2, slime3.
func (l *Library) Enemies(names ...string) (*character.EnemySet, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("enemies: none named: %w", types.ErrInvalidArgument)
	}
	set := character.NewEnemySet()
	for _, n := range names {
		e, err := l.Enemy(n)
		if err != nil {
			return nil, err
		}
		set.Insert(e)
	}
	return set, nil
}

// Encounter returns the named encounter's definition.
func (l *Library) Encounter(name string) (EncounterDef, error) {
	def, ok := l.encounters[name]
	if !ok {
		return EncounterDef{}, fmt.Errorf("encounter %q: %w", name, types.ErrIndexOutOfRange)
	}
	def.Enemies = append([]string(nil), def.Enemies...)
	return def, nil
}

// HasCard reports whether a card is registered under name.
func (l *Library) HasCard(name string) bool {
	_, ok := l.cards[name]
	return ok
}

// HasEnemy reports whether an enemy is registered under name.
func (l *Library) HasEnemy(name string) bool {
	_, ok := l.enemies[name]
	return ok
}

// HasPlayer reports whether a player is registered under name.
func (l *Library) HasPlayer(name string) bool {
	_, ok := l.players[name]
	return ok
}

// CardNames returns every card name, sorted.
func (l *Library) CardNames() []string { return sortedKeys(l.cards) }

// EnemyNames returns every enemy name, sorted.
func (l *Library) EnemyNames() []string { return sortedKeys(l.enemies) }

// PlayerNames returns every player name, sorted.
func (l *Library) PlayerNames() []string { return sortedKeys(l.players) }

// EncounterNames returns every encounter name, sorted.
func (l *Library) EncounterNames() []string { return sortedKeys(l.encounters) }

// Validate checks cross-references: every deck card and every encounter
// player and enemy must exist.
func (l *Library) Validate() error {
	for _, pn := range l.PlayerNames() {
		for _, cn := range l.players[pn].Deck {
			if !l.HasCard(cn) {
				return fmt.Errorf("player %q: unknown card %q: %w", pn, cn, types.ErrIndexOutOfRange)
			}
		}
	}
	for _, en := range l.EncounterNames() {
		enc := l.encounters[en]
		if !l.HasPlayer(enc.Player) {
			return fmt.Errorf("encounter %q: unknown player %q: %w", en, enc.Player, types.ErrIndexOutOfRange)
		}
		for _, n := range enc.Enemies {
			if !l.HasEnemy(n) {
				return fmt.Errorf("encounter %q: unknown enemy %q: %w", en, n, types.ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
