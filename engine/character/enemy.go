package character

import (
	"fmt"
	"strconv"

	"github.com/nathoo/cardfight/types"
)

// Chooser picks a uniform index in [0, n).
type Chooser interface {
	Intn(n int) int
}

// Enemy is a character whose moves follow a cursor through an action graph.
type Enemy struct {
	Character
	graph   *ActionGraph
	current int
}

// NewEnemy creates an enemy at full health positioned on the graph's start node.
func NewEnemy(name string, maxHealth int, graph *ActionGraph) (*Enemy, error) {
	c, err := newCharacter(name, maxHealth)
	if err != nil {
		return nil, err
	}
	if graph == nil {
		return nil, fmt.Errorf("%s: nil action graph: %w", name, types.ErrInvalidArgument)
	}
	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Enemy{Character: c, graph: graph, current: graph.Start()}, nil
}

// CurrentAction returns the move the enemy will perform next.
func (e *Enemy) CurrentAction() ActionNode {
	return e.graph.Node(e.current)
}

// NextTurn moves the cursor to a uniformly chosen successor of the current node.
func (e *Enemy) NextTurn(r Chooser) {
	next := e.graph.Node(e.current).Next
	e.current = next[r.Intn(len(next))]
}

// PerformCurrentAction applies the current move to the player. No-op when dead.
func (e *Enemy) PerformCurrentAction(p *Player) error {
	if e.dead {
		return nil
	}
	node := e.graph.Node(e.current)
	e.publish(types.EventEnemyAction, map[string]any{"action": node.Name, "intent": node.Intent})
	if node.Effect == nil {
		return nil
	}
	if err := node.Effect(p, e); err != nil {
		return fmt.Errorf("%s %s: %w", e.name, node.Name, err)
	}
	return nil
}

// Copy returns a fresh enemy of the same kind: new id, full health, no
// block, cursor on the start node. The action graph is shared.
func (e *Enemy) Copy() *Enemy {
	c, _ := newCharacter(e.name, e.maxHealth)
	return &Enemy{Character: c, graph: e.graph, current: e.graph.Start()}
}

// EnemySet is an ordered mapping from key to enemy.
type EnemySet struct {
	keys  []string
	byKey map[string]*Enemy
}

// NewEnemySet creates an empty set.
func NewEnemySet() *EnemySet {
	return &EnemySet{byKey: map[string]*Enemy{}}
}

// Insert stores e under its name, suffixing 2, 3, ... when the name is taken.
// Returns the key used.
func (s *EnemySet) Insert(e *Enemy) string {
	key := e.Name()
	for n := 2; ; n++ {
		if _, taken := s.byKey[key]; !taken {
			break
		}
		key = e.Name() + strconv.Itoa(n)
	}
	s.keys = append(s.keys, key)
	s.byKey[key] = e
	return key
}

// Get returns the enemy under key.
func (s *EnemySet) Get(key string) (*Enemy, bool) {
	e, ok := s.byKey[key]
	return e, ok
}

// Keys returns the keys in insertion order.
func (s *EnemySet) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of enemies, living or dead.
func (s *EnemySet) Len() int {
	return len(s.keys)
}

// Living returns the enemies that are not dead, in insertion order.
func (s *EnemySet) Living() []*Enemy {
	var out []*Enemy
	for _, k := range s.keys {
		if e := s.byKey[k]; !e.IsDead() {
			out = append(out, e)
		}
	}
	return out
}

// AllDead reports whether every enemy in the set is dead.
func (s *EnemySet) AllDead() bool {
	for _, e := range s.byKey {
		if !e.IsDead() {
			return false
		}
	}
	return true
}
