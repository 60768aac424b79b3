package effects

import (
	"errors"
	"testing"

	"github.com/nathoo/cardfight/engine/cards"
	"github.com/nathoo/cardfight/engine/character"
	"github.com/nathoo/cardfight/types"
)

// table is a minimal cards.Table over one player and a list of enemies.
type table struct {
	player  *character.Player
	enemies []*character.Enemy
}

func (t *table) PlayerTarget() cards.Target { return t.player }

func (t *table) EnemyTargets() []cards.Target {
	var out []cards.Target
	for _, e := range t.enemies {
		if !e.IsDead() {
			out = append(out, e)
		}
	}
	return out
}

func newTable(t *testing.T, enemyHealth ...int) *table {
	t.Helper()
	p, err := character.NewPlayer("knight", 50, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	tb := &table{player: p}
	for _, hp := range enemyHealth {
		g := character.NewActionGraph()
		_, _ = g.AddNode("idle", "", nil)
		_ = g.Link("idle", "idle")
		e, err := character.NewEnemy("dummy", hp, g)
		if err != nil {
			t.Fatal(err)
		}
		tb.enemies = append(tb.enemies, e)
	}
	return tb
}

func TestDamage_Targeted(t *testing.T) {
	tb := newTable(t, 20, 20)
	if err := Damage(6)(tb, tb.enemies[1]); err != nil {
		t.Fatal(err)
	}
	if tb.enemies[0].Health() != 20 || tb.enemies[1].Health() != 14 {
		t.Errorf("health = %d/%d, want 20/14", tb.enemies[0].Health(), tb.enemies[1].Health())
	}
}

func TestDamage_UntargetedPicksFirstLiving(t *testing.T) {
	tb := newTable(t, 5, 20)
	_ = tb.enemies[0].ReceiveDamage(5)

	if err := Damage(6)(tb, nil); err != nil {
		t.Fatal(err)
	}
	if tb.enemies[1].Health() != 14 {
		t.Errorf("second enemy health = %d, want 14", tb.enemies[1].Health())
	}
}

func TestDamage_NoLivingEnemy(t *testing.T) {
	tb := newTable(t)
	if err := Damage(6)(tb, nil); !errors.Is(err, types.ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestDamageAll(t *testing.T) {
	tb := newTable(t, 10, 3, 10)
	if err := DamageAll(4)(tb, nil); err != nil {
		t.Fatal(err)
	}
	want := []int{6, 0, 6}
	for i, e := range tb.enemies {
		if e.Health() != want[i] {
			t.Errorf("enemy %d health = %d, want %d", i, e.Health(), want[i])
		}
	}
	if !tb.enemies[1].IsDead() {
		t.Error("enemy 1 should be dead")
	}
}

func TestBlockAndHeal(t *testing.T) {
	tb := newTable(t, 10)
	_ = tb.player.ReceiveDamage(10)

	if err := Sequence(Block(5), Heal(3))(tb, nil); err != nil {
		t.Fatal(err)
	}
	if tb.player.Block() != 5 {
		t.Errorf("block = %d, want 5", tb.player.Block())
	}
	if tb.player.Health() != 43 {
		t.Errorf("health = %d, want 43", tb.player.Health())
	}
}

func TestSequence_StopsAtFirstError(t *testing.T) {
	tb := newTable(t)
	err := Sequence(Damage(1), Block(5))(tb, nil)
	if !errors.Is(err, types.ErrIndexOutOfRange) {
		t.Fatalf("err = %v", err)
	}
	if tb.player.Block() != 0 {
		t.Error("effect after a failure still ran")
	}
}

func TestEnemyEffects(t *testing.T) {
	tb := newTable(t, 20)
	p, e := tb.player, tb.enemies[0]
	_ = e.ReceiveDamage(8)

	if err := Chain(Attack(7), Guard(4), Mend(3))(p, e); err != nil {
		t.Fatal(err)
	}
	if p.Health() != 43 {
		t.Errorf("player health = %d, want 43", p.Health())
	}
	if e.Block() != 4 || e.Health() != 15 {
		t.Errorf("enemy block %d health %d, want 4 and 15", e.Block(), e.Health())
	}
}

func TestNegativeAmountsRejected(t *testing.T) {
	tb := newTable(t, 10)
	if err := Damage(-1)(tb, nil); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("Damage(-1) err = %v", err)
	}
	if err := Attack(-1)(tb.player, tb.enemies[0]); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("Attack(-1) err = %v", err)
	}
}
