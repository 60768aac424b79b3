// Package effects builds the fixed set of card and enemy effects.
// Every effect is one small state mutation on the characters it is given;
// content files compose them, they never define new ones.
package effects

import (
	"fmt"

	"github.com/nathoo/cardfight/engine/cards"
	"github.com/nathoo/cardfight/engine/character"
	"github.com/nathoo/cardfight/types"
)

// Damage deals n damage to the chosen target, or to the first living enemy
// when the card is played without one.
func Damage(n int) cards.Effect {
	return func(t cards.Table, target cards.Target) error {
		if target == nil {
			living := t.EnemyTargets()
			if len(living) == 0 {
				return fmt.Errorf("damage %d: no living enemy: %w", n, types.ErrIndexOutOfRange)
			}
			target = living[0]
		}
		return target.ReceiveDamage(n)
	}
}

// DamageAll deals n damage to every living enemy.
func DamageAll(n int) cards.Effect {
	return func(t cards.Table, _ cards.Target) error {
		for _, e := range t.EnemyTargets() {
			if err := e.ReceiveDamage(n); err != nil {
				return err
			}
		}
		return nil
	}
}

// Block gives the player n block.
func Block(n int) cards.Effect {
	return func(t cards.Table, _ cards.Target) error {
		return t.PlayerTarget().AddBlock(n)
	}
}

// Heal restores n health to the player.
func Heal(n int) cards.Effect {
	return func(t cards.Table, _ cards.Target) error {
		return t.PlayerTarget().Heal(n)
	}
}

// Sequence runs card effects in order, stopping at the first error.
func Sequence(effs ...cards.Effect) cards.Effect {
	return func(t cards.Table, target cards.Target) error {
		for _, eff := range effs {
			if err := eff(t, target); err != nil {
				return err
			}
		}
		return nil
	}
}

// Attack deals n damage to the player.
func Attack(n int) character.ActionEffect {
	return func(p *character.Player, _ *character.Enemy) error {
		return p.ReceiveDamage(n)
	}
}

// Guard gives the acting enemy n block.
func Guard(n int) character.ActionEffect {
	return func(_ *character.Player, self *character.Enemy) error {
		return self.AddBlock(n)
	}
}

// Mend restores n health to the acting enemy.
func Mend(n int) character.ActionEffect {
	return func(_ *character.Player, self *character.Enemy) error {
		return self.Heal(n)
	}
}

// Chain runs enemy effects in order, stopping at the first error.
func Chain(effs ...character.ActionEffect) character.ActionEffect {
	return func(p *character.Player, self *character.Enemy) error {
		for _, eff := range effs {
			if err := eff(p, self); err != nil {
				return err
			}
		}
		return nil
	}
}
