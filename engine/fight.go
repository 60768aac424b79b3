// Package engine runs a fight: it owns the draw pile, hand and discard pile,
// moves cards between them, drives the turn cycle, and decides when the
// fight is over.
package engine

import (
	"fmt"

	"github.com/nathoo/cardfight/engine/cards"
	"github.com/nathoo/cardfight/engine/character"
	"github.com/nathoo/cardfight/engine/events"
	"github.com/nathoo/cardfight/engine/rng"
	"github.com/nathoo/cardfight/types"
)

// Fight is one encounter between the player and a set of enemies.
// It is not safe for concurrent use; callers serialize every operation.
type Fight struct {
	player  *character.Player
	enemies *character.EnemySet
	rng     *rng.RNG

	bus       *events.Bus
	recorder  *events.Recorder
	stopDeath func()

	drawPile    *cards.Queue
	hand        *cards.Queue
	discardPile *cards.Queue
	deckSize    int

	isPlayerTurn bool
	turn         int
	outcome      types.Outcome
}

// New starts a fight. Every deck card is added to the front of the draw
// pile, so the pile begins as the reverse of the deck, and is then shuffled.
// No cards are drawn until StartTurn.
func New(player *character.Player, enemies *character.EnemySet, r *rng.RNG) (*Fight, error) {
	if player == nil || enemies == nil || r == nil {
		return nil, fmt.Errorf("new fight: nil player, enemies or rng: %w", types.ErrInvalidArgument)
	}
	if enemies.Len() == 0 {
		return nil, fmt.Errorf("new fight: no enemies: %w", types.ErrInvalidArgument)
	}
	if player.IsDead() || enemies.AllDead() {
		return nil, fmt.Errorf("new fight: combatants already dead: %w", types.ErrInvalidArgument)
	}

	f := &Fight{
		player:       player,
		enemies:      enemies,
		rng:          r,
		bus:          events.NewBus(),
		drawPile:     cards.NewQueue(r),
		hand:         cards.NewQueue(r),
		discardPile:  cards.NewQueue(r),
		isPlayerTurn: true,
	}
	f.recorder = events.Record(f.bus)
	f.stopDeath = f.bus.Subscribe(types.EventDeath, func(types.Event) { f.checkOver() })

	player.SetNotifier(f.bus)
	for _, k := range enemies.Keys() {
		e, _ := enemies.Get(k)
		e.SetNotifier(f.bus)
	}

	for _, c := range player.Deck() {
		if err := f.drawPile.AddToFront(c); err != nil {
			f.detach()
			return nil, fmt.Errorf("new fight: %w", err)
		}
	}
	f.deckSize = f.drawPile.Size()
	f.drawPile.Shuffle()

	return f, nil
}

// Player returns the player.
func (f *Fight) Player() *character.Player { return f.player }

// Enemies returns the enemy set, including dead enemies.
func (f *Fight) Enemies() *character.EnemySet { return f.enemies }

// Hand returns the hand, front to back.
func (f *Fight) Hand() []*cards.Card { return f.hand.Cards() }

// DrawPile returns the draw pile, front (next draw) to back.
func (f *Fight) DrawPile() []*cards.Card { return f.drawPile.Cards() }

// DiscardPile returns the discard pile, front to back.
func (f *Fight) DiscardPile() []*cards.Card { return f.discardPile.Cards() }

// IsPlayerTurn reports whether the player may act.
func (f *Fight) IsPlayerTurn() bool { return f.isPlayerTurn }

// Turn returns the number of player turns started so far.
func (f *Fight) Turn() int { return f.turn }

// Over reports whether the fight has ended.
func (f *Fight) Over() bool { return f.outcome != types.OutcomeNone }

// Outcome returns how the fight ended, or OutcomeNone while it runs.
func (f *Fight) Outcome() types.Outcome { return f.outcome }

// RNG returns the fight's random source, for reporting its seed and position.
func (f *Fight) RNG() *rng.RNG { return f.rng }

// Subscribe registers h for events of eventType (or events.All) published
// during this fight.
func (f *Fight) Subscribe(eventType string, h events.Handler) func() {
	return f.bus.Subscribe(eventType, h)
}

// PlayerTarget implements cards.Table.
func (f *Fight) PlayerTarget() cards.Target { return f.player }

// EnemyTargets implements cards.Table.
func (f *Fight) EnemyTargets() []cards.Target {
	var out []cards.Target
	for _, e := range f.enemies.Living() {
		out = append(out, e)
	}
	return out
}

// StartTurn begins a player turn by drawing cards.
func (f *Fight) StartTurn() (int, error) {
	if f.Over() {
		return 0, types.ErrFightOver
	}
	f.turn++
	f.isPlayerTurn = true
	f.publish(types.EventTurnStarted, map[string]any{"turn": f.turn})
	return f.AddCardsToHand()
}

// EndTurn ends the player's turn by discarding the hand.
func (f *Fight) EndTurn() error {
	if f.Over() {
		return types.ErrFightOver
	}
	return f.DiscardHand()
}

// AddCardsToHand draws up to the player's per-turn draw count without
// exceeding the max hand size. When the draw pile runs dry the discard pile
// is shuffled back in; if that yields nothing, drawing stops early.
// Returns the number of cards drawn.
func (f *Fight) AddCardsToHand() (int, error) {
	drawn := 0
	for f.hand.Size() < f.player.MaxHandSize() && drawn < f.player.CardsDrawnPerTurn() {
		if f.drawPile.Size() == 0 {
			moved, err := f.ShuffleDiscardIntoDraw()
			if err != nil {
				return drawn, err
			}
			if moved == 0 {
				break
			}
			continue
		}

		c, err := f.drawPile.RemoveFromFront()
		if err != nil {
			return drawn, err
		}
		if err := f.hand.AddToBack(c); err != nil {
			return drawn, err
		}
		drawn++
		f.publish(types.EventCardDrawn, map[string]any{"card": c.Name(), "id": c.ID()})
	}
	return drawn, nil
}

// PlayCardInHand removes the card at index from the hand, runs its effect
// against target, and puts it on the back of the discard pile. target is an
// enemy key, or "" for an untargeted play. The card reaches the discard pile
// even when its effect fails; the effect's error is returned.
func (f *Fight) PlayCardInHand(index int, target string) error {
	if f.Over() {
		return types.ErrFightOver
	}
	if index < 0 || index >= f.hand.Size() {
		return fmt.Errorf("play card %d of %d: %w", index, f.hand.Size(), types.ErrIndexOutOfRange)
	}

	var tgt cards.Target
	if target != "" {
		e, ok := f.enemies.Get(target)
		if !ok || e.IsDead() {
			return fmt.Errorf("play card: target %q: %w", target, types.ErrIndexOutOfRange)
		}
		tgt = e
	}

	c, err := f.hand.RemoveFromIndex(index)
	if err != nil {
		return err
	}
	f.publish(types.EventCardPlayed, map[string]any{"card": c.Name(), "id": c.ID(), "target": target})

	playErr := c.Play(f, tgt)
	if err := f.discardPile.AddToBack(c); err != nil {
		return err
	}
	if playErr != nil {
		return fmt.Errorf("play %s: %w", c.Name(), playErr)
	}
	return nil
}

// DiscardHand moves every hand card to the front of the discard pile, so
// the hand's order ends up reversed on top of the discard pile.
func (f *Fight) DiscardHand() error {
	n := 0
	for f.hand.Size() > 0 {
		c, err := f.hand.RemoveFromFront()
		if err != nil {
			return err
		}
		if err := f.discardPile.AddToFront(c); err != nil {
			return err
		}
		n++
	}
	if n > 0 {
		f.publish(types.EventHandDiscarded, map[string]any{"count": n})
	}
	return nil
}

// ShuffleDiscardIntoDraw moves every discard card to the front of the draw
// pile and shuffles the draw pile. Returns the number of cards moved.
func (f *Fight) ShuffleDiscardIntoDraw() (int, error) {
	n := 0
	for f.discardPile.Size() > 0 {
		c, err := f.discardPile.RemoveFromFront()
		if err != nil {
			return n, err
		}
		if err := f.drawPile.AddToFront(c); err != nil {
			return n, err
		}
		n++
	}
	f.drawPile.Shuffle()
	if n > 0 {
		f.publish(types.EventReshuffled, map[string]any{"count": n})
	}
	return n, nil
}

// EnemyTurn lets every living enemy act in set order, then advances each
// enemy's action cursor. Stops as soon as the fight ends.
func (f *Fight) EnemyTurn() error {
	if f.Over() {
		return types.ErrFightOver
	}
	f.isPlayerTurn = false
	for _, e := range f.enemies.Living() {
		if f.Over() {
			return nil
		}
		if err := e.PerformCurrentAction(f.player); err != nil {
			return err
		}
		e.NextTurn(f.rng)
	}
	if !f.Over() {
		f.isPlayerTurn = true
	}
	return nil
}

// CheckInvariants verifies that every card dealt at fight start sits in
// exactly one pile.
func (f *Fight) CheckInvariants() error {
	total := f.drawPile.Size() + f.hand.Size() + f.discardPile.Size()
	if total != f.deckSize {
		return fmt.Errorf("piles hold %d cards, deck had %d: %w", total, f.deckSize, types.ErrInvariantViolation)
	}
	seen := make(map[string]bool, total)
	for _, pile := range []*cards.Queue{f.drawPile, f.hand, f.discardPile} {
		for _, c := range pile.Cards() {
			if seen[c.ID()] {
				return fmt.Errorf("card %s (%s) in two piles: %w", c.Name(), c.ID(), types.ErrInvariantViolation)
			}
			seen[c.ID()] = true
		}
	}
	return nil
}

// checkOver runs on every death. The fight ends when the player is dead or
// every enemy is dead; the death subscription and character notifiers are
// then released.
func (f *Fight) checkOver() {
	if f.Over() {
		return
	}
	switch {
	case f.player.IsDead():
		f.outcome = types.OutcomeDefeat
	case f.enemies.AllDead():
		f.outcome = types.OutcomeVictory
	default:
		return
	}
	f.isPlayerTurn = false
	f.publish(types.EventFightOver, map[string]any{"victory": f.outcome == types.OutcomeVictory})
	f.detach()
}

func (f *Fight) detach() {
	if f.stopDeath != nil {
		f.stopDeath()
		f.stopDeath = nil
	}
	f.player.SetNotifier(nil)
	for _, k := range f.enemies.Keys() {
		e, _ := f.enemies.Get(k)
		e.SetNotifier(nil)
	}
}

func (f *Fight) publish(eventType string, data map[string]any) {
	f.bus.Publish(types.Event{Type: eventType, Data: data})
}
