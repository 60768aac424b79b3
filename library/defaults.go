package library

import (
	"github.com/nathoo/cardfight/engine/cards"
	"github.com/nathoo/cardfight/engine/character"
	"github.com/nathoo/cardfight/engine/effects"
)

// Built-in content names.
const (
	Strike  = "Strike"
	Defend  = "Defend"
	Slime   = "slime"
	Knight  = "knight"
	Opening = "opening"
)

// Default returns the built-in content: the Strike and Defend cards, the
// slime, the knight and an opening encounter pitting one against the other.
func Default() *Library {
	l := New()
	l.Game = GameInfo{Title: "Card Fight", Version: "0.1.0"}

	mustAdd(l.AddCard(CardDef{
		Name:        Strike,
		Type:        cards.Attack,
		Cost:        1,
		Description: "Deal 6 damage.",
		Effect:      effects.Damage(6),
	}))
	mustAdd(l.AddCard(CardDef{
		Name:        Defend,
		Type:        cards.Skill,
		Cost:        1,
		Description: "Gain 5 block.",
		Effect:      effects.Block(5),
	}))

	mustAdd(l.AddEnemy(EnemyDef{
		Name:      Slime,
		MaxHealth: 10,
		Start:     "small",
		Actions: []ActionDef{
			{Name: "small", Intent: "Attack 5", Effect: effects.Attack(5), Next: []string{"large"}},
			{Name: "large", Intent: "Attack 10", Effect: effects.Attack(10), Next: []string{"small"}},
		},
	}))

	deck := make([]string, 0, 9)
	for i := 0; i < 5; i++ {
		deck = append(deck, Strike)
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, Defend)
	}
	mustAdd(l.AddPlayer(PlayerDef{
		Name:              Knight,
		MaxHealth:         100,
		CardsDrawnPerTurn: character.DefaultCardsDrawnPerTurn,
		MaxHandSize:       character.DefaultMaxHandSize,
		Deck:              deck,
	}))

	mustAdd(l.AddEncounter(EncounterDef{
		Name:    Opening,
		Player:  Knight,
		Enemies: []string{Slime},
	}))
	return l
}

// mustAdd panics on errors in built-in content, which is fixed at compile time.
func mustAdd(err error) {
	if err != nil {
		panic("library: built-in content: " + err.Error())
	}
}
