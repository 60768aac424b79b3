package character

import (
	"fmt"

	"github.com/nathoo/cardfight/engine/cards"
	"github.com/nathoo/cardfight/types"
)

// Defaults for a player's draw rate and hand size.
const (
	DefaultCardsDrawnPerTurn = 5
	DefaultMaxHandSize       = 10
)

// Player is the character controlled by the user. Its deck is the
// permanent card pool; fights deal from it but never mutate it.
type Player struct {
	Character
	deck              []*cards.Card
	cardsDrawnPerTurn int
	maxHandSize       int
}

// NewPlayer creates a player with an empty deck.
func NewPlayer(name string, maxHealth, cardsDrawnPerTurn, maxHandSize int) (*Player, error) {
	c, err := newCharacter(name, maxHealth)
	if err != nil {
		return nil, err
	}
	if cardsDrawnPerTurn <= 0 {
		return nil, fmt.Errorf("%s: cards drawn per turn %d: %w", name, cardsDrawnPerTurn, types.ErrInvalidArgument)
	}
	if maxHandSize <= 0 {
		return nil, fmt.Errorf("%s: max hand size %d: %w", name, maxHandSize, types.ErrInvalidArgument)
	}
	return &Player{
		Character:         c,
		cardsDrawnPerTurn: cardsDrawnPerTurn,
		maxHandSize:       maxHandSize,
	}, nil
}

func (p *Player) CardsDrawnPerTurn() int { return p.cardsDrawnPerTurn }
func (p *Player) MaxHandSize() int       { return p.maxHandSize }

// Deck returns the player's cards in declaration order. The slice is a copy.
func (p *Player) Deck() []*cards.Card {
	out := make([]*cards.Card, len(p.deck))
	copy(out, p.deck)
	return out
}

// AddCard appends c to the deck.
func (p *Player) AddCard(c *cards.Card) error {
	if c == nil {
		return fmt.Errorf("%s: add nil card: %w", p.name, types.ErrInvalidArgument)
	}
	for _, dc := range p.deck {
		if dc.ID() == c.ID() {
			return fmt.Errorf("%s: card %s already in deck: %w", p.name, c.Name(), types.ErrInvariantViolation)
		}
	}
	p.deck = append(p.deck, c)
	return nil
}
