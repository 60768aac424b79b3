// Package tui provides a Bubble Tea terminal UI for playing a cardfight fight.
package tui

// History keeps the most recent commands in a fixed-size ring and lets the
// input line walk back through them.
type History struct {
	ring  []string
	start int // index of the oldest entry
	count int
	pos   int // steps back from the newest entry; 0 when not browsing
}

// NewHistory creates a history that remembers up to size commands.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{ring: make([]string, size)}
}

// Len returns the number of remembered commands.
func (h *History) Len() int { return h.count }

// at returns the entry back steps from the end; at(1) is the newest.
func (h *History) at(back int) string {
	return h.ring[(h.start+h.count-back)%len(h.ring)]
}

// Push records cmd, evicting the oldest entry when full. Repeating the
// newest entry is a no-op.
func (h *History) Push(cmd string) {
	if h.count > 0 && h.at(1) == cmd {
		return
	}
	if h.count < len(h.ring) {
		h.ring[(h.start+h.count)%len(h.ring)] = cmd
		h.count++
		return
	}
	h.ring[h.start] = cmd
	h.start = (h.start + 1) % len(h.ring)
}

// Prev steps toward older entries and stays on the oldest.
func (h *History) Prev() (string, bool) {
	if h.count == 0 {
		return "", false
	}
	if h.pos < h.count {
		h.pos++
	}
	return h.at(h.pos), true
}

// Next steps toward newer entries. Stepping past the newest ends browsing
// and reports false.
func (h *History) Next() (string, bool) {
	if h.pos <= 1 {
		h.pos = 0
		return "", false
	}
	h.pos--
	return h.at(h.pos), true
}

// ResetCursor ends browsing; the next Prev starts from the newest entry.
func (h *History) ResetCursor() {
	h.pos = 0
}
