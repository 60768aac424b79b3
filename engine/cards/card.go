// Package cards implements playable cards and the ordered card queues that
// back a fight's draw pile, hand and discard pile.
package cards

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nathoo/cardfight/types"
)

// Type classifies a card.
type Type int

const (
	Attack Type = iota
	Skill
	Power
)

func (t Type) String() string {
	switch t {
	case Attack:
		return "attack"
	case Skill:
		return "skill"
	case Power:
		return "power"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// ParseType converts "attack", "skill" or "power" (any case) into a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "attack":
		return Attack, nil
	case "skill":
		return Skill, nil
	case "power":
		return Power, nil
	}
	return 0, fmt.Errorf("unknown card type %q: %w", s, types.ErrInvalidArgument)
}

// Target is the part of a character that a card effect may act on.
type Target interface {
	ReceiveDamage(amount int) error
	AddBlock(amount int) error
	Heal(amount int) error
	IsDead() bool
}

// Table is the view of a running fight handed to card effects.
type Table interface {
	// PlayerTarget returns the player playing the card.
	PlayerTarget() Target
	// EnemyTargets returns the living enemies in enemy-set order.
	EnemyTargets() []Target
}

// Effect runs when a card is played. target is nil for untargeted plays.
type Effect func(t Table, target Target) error

// Card is a single action the player can take in a fight.
type Card struct {
	id          string
	name        string
	typ         Type
	cost        int
	description string
	upgraded    bool
	effect      Effect
}

// New creates a card with a fresh id.
func New(name string, typ Type, cost int, description string, effect Effect) (*Card, error) {
	if cost < 0 {
		return nil, fmt.Errorf("card %s: cost %d: %w", name, cost, types.ErrInvalidArgument)
	}
	return &Card{
		id:          uuid.NewString(),
		name:        name,
		typ:         typ,
		cost:        cost,
		description: description,
		effect:      effect,
	}, nil
}

func (c *Card) ID() string          { return c.id }
func (c *Card) Name() string        { return c.name }
func (c *Card) Type() Type          { return c.typ }
func (c *Card) Cost() int           { return c.cost }
func (c *Card) Description() string { return c.description }
func (c *Card) Upgraded() bool      { return c.upgraded }

// SetCost changes the card's cost. Negative costs are rejected.
func (c *Card) SetCost(cost int) error {
	if cost < 0 {
		return fmt.Errorf("card %s: cost %d: %w", c.name, cost, types.ErrInvalidArgument)
	}
	c.cost = cost
	return nil
}

// Upgrade marks the card as upgraded.
func (c *Card) Upgrade() {
	c.upgraded = true
}

// Play invokes the card's effect.
func (c *Card) Play(t Table, target Target) error {
	if c.effect == nil {
		return nil
	}
	return c.effect(t, target)
}

// Copy returns a new card with a fresh id. The effect is shared, not re-captured.
func (c *Card) Copy() *Card {
	cp := *c
	cp.id = uuid.NewString()
	return &cp
}

func (c *Card) String() string {
	return fmt.Sprintf("%s (%d)", c.name, c.cost)
}
