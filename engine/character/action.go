package character

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/cardfight/types"
)

// ActionEffect applies an enemy move to the player.
type ActionEffect func(player *Player, self *Enemy) error

// ActionNode is one move in an enemy's decision graph.
type ActionNode struct {
	Name   string
	Intent string // short telegraph text, e.g. "Attack 5"
	Effect ActionEffect
	Next   []int // successor node indices
}

// ActionGraph is an arena of action nodes linked by index. Cycles are
// allowed. A graph is built once and then shared read-only by every enemy
// that uses it.
type ActionGraph struct {
	nodes []ActionNode
	index map[string]int
	start int
}

// NewActionGraph creates an empty graph.
func NewActionGraph() *ActionGraph {
	return &ActionGraph{index: map[string]int{}, start: -1}
}

// AddNode adds a named node and returns its index.
func (g *ActionGraph) AddNode(name, intent string, effect ActionEffect) (int, error) {
	if name == "" {
		return -1, fmt.Errorf("action node needs a name: %w", types.ErrInvalidArgument)
	}
	if _, ok := g.index[name]; ok {
		return -1, fmt.Errorf("action node %q defined twice: %w", name, types.ErrInvalidArgument)
	}
	g.nodes = append(g.nodes, ActionNode{Name: name, Intent: intent, Effect: effect})
	i := len(g.nodes) - 1
	g.index[name] = i
	if g.start < 0 {
		g.start = i
	}
	return i, nil
}

// Link adds an edge from one named node to another.
func (g *ActionGraph) Link(from, to string) error {
	fi, ok := g.index[from]
	if !ok {
		return fmt.Errorf("link from unknown action %q: %w", from, types.ErrIndexOutOfRange)
	}
	ti, ok := g.index[to]
	if !ok {
		return fmt.Errorf("link from %q to unknown action %q: %w", from, to, types.ErrIndexOutOfRange)
	}
	g.nodes[fi].Next = append(g.nodes[fi].Next, ti)
	return nil
}

// SetStart picks the node enemies begin on. Defaults to the first node added.
func (g *ActionGraph) SetStart(name string) error {
	i, ok := g.index[name]
	if !ok {
		return fmt.Errorf("start action %q: %w", name, types.ErrIndexOutOfRange)
	}
	g.start = i
	return nil
}

// Start returns the index of the starting node.
func (g *ActionGraph) Start() int { return g.start }

// Len returns the number of nodes.
func (g *ActionGraph) Len() int { return len(g.nodes) }

// Node returns the node at index i.
func (g *ActionGraph) Node(i int) ActionNode { return g.nodes[i] }

// Lookup returns the index of a named node.
func (g *ActionGraph) Lookup(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// Validate checks that the graph has a start and every node has a successor.
func (g *ActionGraph) Validate() error {
	if len(g.nodes) == 0 {
		return fmt.Errorf("action graph has no nodes: %w", types.ErrInvalidArgument)
	}
	var dead []string
	for _, n := range g.nodes {
		if len(n.Next) == 0 {
			dead = append(dead, n.Name)
		}
	}
	if len(dead) > 0 {
		sort.Strings(dead)
		return fmt.Errorf("actions without successors: %s: %w", strings.Join(dead, ", "), types.ErrInvalidArgument)
	}
	return nil
}
