package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/cardfight/engine/cards"
	"github.com/nathoo/cardfight/library"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Effect kinds allowed on cards and on enemy actions.
var (
	cardEffectTypes = map[string]bool{
		effectDamage:    true,
		effectDamageAll: true,
		effectBlock:     true,
		effectHeal:      true,
	}
	actionEffectTypes = map[string]bool{
		effectAttack: true,
		effectGuard:  true,
		effectHeal:   true,
	}
)

// validate checks compiled content for consistency. Names defined in base
// count as defined, so content may build decks from built-in cards.
func validate(c *content, base *library.Library) error {
	ve := &ValidationError{}

	if c.game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.Title is required")
	}

	cardNames := map[string]bool{}
	for _, cs := range c.cards {
		if cardNames[cs.name] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate card %q", cs.name))
		}
		cardNames[cs.name] = true
		validateCard(cs, ve)
	}

	enemyNames := map[string]bool{}
	for _, es := range c.enemies {
		if enemyNames[es.name] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate enemy %q", es.name))
		}
		enemyNames[es.name] = true
		validateEnemy(es, ve)
	}

	hasCard := func(n string) bool { return cardNames[n] || base.HasCard(n) }
	hasEnemy := func(n string) bool { return enemyNames[n] || base.HasEnemy(n) }

	playerNames := map[string]bool{}
	for _, ps := range c.players {
		if playerNames[ps.name] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate player %q", ps.name))
		}
		playerNames[ps.name] = true

		if ps.maxHealth <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("player %q max_health must be positive, got %d", ps.name, ps.maxHealth))
		}
		if ps.draw <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("player %q draw must be positive, got %d", ps.name, ps.draw))
		}
		if ps.handSize <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("player %q hand_size must be positive, got %d", ps.name, ps.handSize))
		}
		if len(ps.deck) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("player %q has an empty deck", ps.name))
		}
		if ps.draw > ps.handSize && ps.handSize > 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"player %q draws %d but holds at most %d", ps.name, ps.draw, ps.handSize))
		}
		requireWhole("player "+quote(ps.name), ps.fractional, ve)
		for _, cn := range ps.deck {
			if !hasCard(cn) {
				ve.Errors = append(ve.Errors, fmt.Sprintf("player %q deck names undefined card %q", ps.name, cn))
			}
		}
	}

	hasPlayer := func(n string) bool { return playerNames[n] || base.HasPlayer(n) }

	for _, es := range c.encounters {
		if es.player == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("encounter %q has no player", es.name))
		} else if !hasPlayer(es.player) {
			ve.Errors = append(ve.Errors, fmt.Sprintf("encounter %q names undefined player %q", es.name, es.player))
		}
		if len(es.enemies) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("encounter %q has no enemies", es.name))
		}
		for _, en := range es.enemies {
			if !hasEnemy(en) {
				ve.Errors = append(ve.Errors, fmt.Sprintf("encounter %q names undefined enemy %q", es.name, en))
			}
		}
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateCard(cs cardSpec, ve *ValidationError) {
	if _, err := cards.ParseType(cs.typ); err != nil {
		ve.Errors = append(ve.Errors, fmt.Sprintf("card %q has unknown type %q", cs.name, cs.typ))
	}
	if cs.cost < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("card %q cost must not be negative, got %d", cs.name, cs.cost))
	}
	if len(cs.effects) == 0 {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf("card %q has no effects", cs.name))
	}
	validateEffects("card "+quote(cs.name), cs.effects, cardEffectTypes, ve)
	requireWhole("card "+quote(cs.name), cs.fractional, ve)
}

func validateEnemy(es enemySpec, ve *ValidationError) {
	if es.maxHealth <= 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q max_health must be positive, got %d", es.name, es.maxHealth))
	}
	requireWhole("enemy "+quote(es.name), es.fractional, ve)
	if len(es.actions) == 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q has no actions", es.name))
		return
	}

	defined := map[string]bool{}
	for _, a := range es.actions {
		defined[a.name] = true
	}

	switch {
	case es.start == "" && len(es.actions) > 1:
		ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q has several actions and needs a start", es.name))
	case es.start != "" && !defined[es.start]:
		ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q start %q is not one of its actions", es.name, es.start))
	}

	for _, a := range es.actions {
		where := fmt.Sprintf("enemy %q action %q", es.name, a.name)
		if len(a.next) == 0 {
			ve.Errors = append(ve.Errors, where+" has no next actions")
		}
		for _, n := range a.next {
			if !defined[n] {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: next action %q is undefined", where, n))
			}
		}
		if a.intent == "" {
			ve.Warnings = append(ve.Warnings, where+" has no intent text")
		}
		validateEffects(where, a.effects, actionEffectTypes, ve)
		requireWhole(where, a.fractional, ve)
	}
}

func validateEffects(where string, specs []effectSpec, allowed map[string]bool, ve *ValidationError) {
	for _, s := range specs {
		if !allowed[s.kind] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: effect type %q not allowed here", where, s.kind))
		}
		if s.amount < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: effect %q amount must not be negative, got %d", where, s.kind, s.amount))
		}
	}
}

// requireWhole reports every field that held a non-integral number.
func requireWhole(where string, fractional []string, ve *ValidationError) {
	for _, f := range fractional {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s: %s is not a whole number", where, f))
	}
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
