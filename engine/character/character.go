// Package character implements the health/block/death state shared by the
// player and enemies, the player's deck, and enemy action graphs.
package character

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nathoo/cardfight/types"
)

// Notifier receives the events a character publishes.
type Notifier interface {
	Publish(types.Event)
}

// Character holds the combat state common to the player and enemies.
// A character starts alive at full health; death is terminal.
type Character struct {
	id        string
	name      string
	health    int
	maxHealth int
	block     int
	dead      bool
	notifier  Notifier
}

func newCharacter(name string, maxHealth int) (Character, error) {
	if maxHealth <= 0 {
		return Character{}, fmt.Errorf("%s: max health %d: %w", name, maxHealth, types.ErrInvalidArgument)
	}
	return Character{
		id:        uuid.NewString(),
		name:      name,
		health:    maxHealth,
		maxHealth: maxHealth,
	}, nil
}

func (c *Character) ID() string     { return c.id }
func (c *Character) Name() string   { return c.name }
func (c *Character) Health() int    { return c.health }
func (c *Character) MaxHealth() int { return c.maxHealth }
func (c *Character) Block() int     { return c.block }
func (c *Character) IsDead() bool   { return c.dead }

// SetNotifier installs the sink for this character's events. nil detaches.
func (c *Character) SetNotifier(n Notifier) {
	c.notifier = n
}

// ReceiveDamage applies damage to block first and the overflow to health.
// Health at or below zero kills the character. No-op when already dead.
func (c *Character) ReceiveDamage(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%s: damage %d: %w", c.name, amount, types.ErrInvalidArgument)
	}
	if c.dead {
		return nil
	}

	blocked := amount
	remaining := c.block - amount
	if remaining <= 0 {
		blocked = c.block
		c.block = 0
		c.health += remaining
	} else {
		c.block = remaining
	}
	lethal := c.health <= 0
	if lethal {
		c.health = 0
	}

	c.publish(types.EventDamaged, map[string]any{
		"amount":  amount,
		"blocked": blocked,
		"health":  c.health,
	})

	if lethal {
		c.die()
	}
	return c.checkInvariants()
}

// AddBlock grants block. No-op when dead.
func (c *Character) AddBlock(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%s: block %d: %w", c.name, amount, types.ErrInvalidArgument)
	}
	if c.dead {
		return nil
	}
	c.block += amount
	c.publish(types.EventBlockGained, map[string]any{"amount": amount, "block": c.block})
	return c.checkInvariants()
}

// Heal restores health up to max health. No-op when dead.
func (c *Character) Heal(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%s: heal %d: %w", c.name, amount, types.ErrInvalidArgument)
	}
	if c.dead {
		return nil
	}
	before := c.health
	c.health += amount
	if c.health > c.maxHealth {
		c.health = c.maxHealth
	}
	c.publish(types.EventHealed, map[string]any{"amount": c.health - before, "health": c.health})
	return c.checkInvariants()
}

func (c *Character) die() {
	c.dead = true
	c.publish(types.EventDeath, nil)
}

func (c *Character) checkInvariants() error {
	if c.health > c.maxHealth {
		return fmt.Errorf("%s: health %d exceeds max %d: %w", c.name, c.health, c.maxHealth, types.ErrInvariantViolation)
	}
	if c.block < 0 {
		return fmt.Errorf("%s: negative block %d: %w", c.name, c.block, types.ErrInvariantViolation)
	}
	return nil
}

func (c *Character) publish(eventType string, data map[string]any) {
	if c.notifier == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	data["id"] = c.id
	data["name"] = c.name
	c.notifier.Publish(types.Event{Type: eventType, Data: data})
}
