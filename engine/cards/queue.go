package cards

import (
	"fmt"

	"github.com/nathoo/cardfight/engine/rng"
	"github.com/nathoo/cardfight/types"
)

// Queue is an ordered pile of cards. Index 0 is the front.
// A card id appears at most once in a queue.
type Queue struct {
	cards []*Card
	rng   *rng.RNG
}

// NewQueue creates an empty queue that draws randomness from r.
func NewQueue(r *rng.RNG) *Queue {
	return &Queue{rng: r}
}

// Size returns the number of cards in the queue.
func (q *Queue) Size() int {
	return len(q.cards)
}

// Cards returns the queue contents front to back. The slice is a copy.
func (q *Queue) Cards() []*Card {
	out := make([]*Card, len(q.cards))
	copy(out, q.cards)
	return out
}

// At returns the card at index i without removing it.
func (q *Queue) At(i int) (*Card, error) {
	if i < 0 || i >= len(q.cards) {
		return nil, fmt.Errorf("card at %d of %d: %w", i, len(q.cards), types.ErrIndexOutOfRange)
	}
	return q.cards[i], nil
}

// CardIndex returns the position of the card with c's id, or -1.
func (q *Queue) CardIndex(c *Card) int {
	if c == nil {
		return -1
	}
	for i, qc := range q.cards {
		if qc.id == c.id {
			return i
		}
	}
	return -1
}

// AddToFront inserts c at position 0.
func (q *Queue) AddToFront(c *Card) error {
	return q.insert(0, c)
}

// AddToBack inserts c after the last card.
func (q *Queue) AddToBack(c *Card) error {
	return q.insert(len(q.cards), c)
}

// AddToRandomPosition inserts c at a slot chosen uniformly from [0, size].
func (q *Queue) AddToRandomPosition(c *Card) error {
	return q.insert(q.rng.Intn(len(q.cards)+1), c)
}

func (q *Queue) insert(i int, c *Card) error {
	if c == nil {
		return fmt.Errorf("insert nil card: %w", types.ErrInvalidArgument)
	}
	if q.CardIndex(c) >= 0 {
		return fmt.Errorf("card %s (%s) already queued: %w", c.name, c.id, types.ErrInvariantViolation)
	}
	q.cards = append(q.cards, nil)
	copy(q.cards[i+1:], q.cards[i:])
	q.cards[i] = c
	return nil
}

// RemoveFromFront removes and returns the first card.
func (q *Queue) RemoveFromFront() (*Card, error) {
	if len(q.cards) == 0 {
		return nil, fmt.Errorf("remove from front: %w", types.ErrEmptyQueue)
	}
	return q.remove(0), nil
}

// RemoveFromBack removes and returns the last card.
func (q *Queue) RemoveFromBack() (*Card, error) {
	if len(q.cards) == 0 {
		return nil, fmt.Errorf("remove from back: %w", types.ErrEmptyQueue)
	}
	return q.remove(len(q.cards) - 1), nil
}

// RemoveFromIndex removes and returns the card at index i.
func (q *Queue) RemoveFromIndex(i int) (*Card, error) {
	if len(q.cards) == 0 {
		return nil, fmt.Errorf("remove from index %d: %w", i, types.ErrEmptyQueue)
	}
	if i < 0 || i >= len(q.cards) {
		return nil, fmt.Errorf("remove from index %d of %d: %w", i, len(q.cards), types.ErrIndexOutOfRange)
	}
	return q.remove(i), nil
}

func (q *Queue) remove(i int) *Card {
	c := q.cards[i]
	copy(q.cards[i:], q.cards[i+1:])
	q.cards[len(q.cards)-1] = nil
	q.cards = q.cards[:len(q.cards)-1]
	return c
}

// Shuffle puts the cards in a uniformly random order.
func (q *Queue) Shuffle() {
	q.rng.Shuffle(len(q.cards), func(i, j int) {
		q.cards[i], q.cards[j] = q.cards[j], q.cards[i]
	})
}
