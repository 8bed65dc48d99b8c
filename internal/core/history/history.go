// internal/core/history/history.go
package history

import (
	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/logger"
)

const DefaultMaxMilestones = 100

// History is the arena-backed doubly linked chain of actions and
// milestones. current tracks the most recently applied node; appending
// while current is not the tail discards the forward (redo) chain.
type History struct {
	nodes   []Node
	free    []int
	head    int
	tail    int
	current int

	maxMilestones int
	milestones    int // milestones currently in the chain
}

// New creates a history bounded to maxMilestones milestone groups.
func New(maxMilestones int) *History {
	if maxMilestones <= 0 {
		maxMilestones = DefaultMaxMilestones
	}
	return &History{
		head:          None,
		tail:          None,
		current:       None,
		maxMilestones: maxMilestones,
	}
}

// Current returns the index of the most recently applied node, or None
// when the chain is fully undone or empty.
func (h *History) Current() int { return h.current }

// At returns a copy of the node at index i.
func (h *History) At(i int) Node { return h.nodes[i] }

// Prev returns the index preceding i, or None.
func (h *History) Prev(i int) int {
	if i == None {
		return None
	}
	return h.nodes[i].prev
}

// Next returns the index following i. When i is None, the next node is
// the head of the chain (the first redoable node after full undo).
func (h *History) Next(i int) int {
	if i == None {
		return h.head
	}
	return h.nodes[i].next
}

// StepBack moves current one node toward the past.
func (h *History) StepBack() {
	if h.current != None {
		h.current = h.nodes[h.current].prev
	}
}

// StepForward moves current one node toward the future.
func (h *History) StepForward() {
	next := h.Next(h.current)
	if next != None {
		h.current = next
	}
}

// Append links a new node after current, discarding any forward chain,
// then evicts the oldest milestone groups beyond the length bound. It
// returns the new node's index.
func (h *History) Append(n Node) int {
	h.truncateForward()

	idx := h.alloc(n)
	node := &h.nodes[idx]
	node.prev = h.current
	node.next = None

	if h.current == None {
		h.head = idx
	} else {
		h.nodes[h.current].next = idx
	}
	h.tail = idx
	h.current = idx
	if n.Kind == KindMilestone {
		h.milestones++
	}

	h.evict()
	logger.DebugTagf("history", "Appended %v node %d (milestones=%d)", n.Kind, idx, h.milestones)
	return idx
}

// Boundary appends a milestone unless the chain already ends in one.
func (h *History) Boundary() {
	if h.current != None && h.nodes[h.current].Kind == KindMilestone {
		return
	}
	h.Append(Node{Kind: KindMilestone})
}

// CanUndo reports whether an action exists at or before current.
func (h *History) CanUndo() bool {
	for i := h.current; i != None; i = h.nodes[i].prev {
		if h.nodes[i].Kind != KindMilestone {
			return true
		}
	}
	return false
}

// CanRedo reports whether an action exists after current.
func (h *History) CanRedo() bool {
	for i := h.Next(h.current); i != None; i = h.nodes[i].next {
		if h.nodes[i].Kind != KindMilestone {
			return true
		}
	}
	return false
}

// Clear resets the chain, keeping the arena's allocated capacity.
func (h *History) Clear() {
	for i := h.head; i != None; {
		next := h.nodes[i].next
		h.release(i)
		i = next
	}
	h.head, h.tail, h.current = None, None, None
	h.milestones = 0
}

// truncateForward discards every node after current. Redo history is
// only valid until the next forward edit.
func (h *History) truncateForward() {
	start := h.Next(h.current)
	if start == None {
		return
	}
	dropped := 0
	for i := start; i != None; {
		next := h.nodes[i].next
		if h.nodes[i].Kind == KindMilestone {
			h.milestones--
		}
		h.release(i)
		i = next
		dropped++
	}
	if h.current == None {
		h.head = None
		h.tail = None
	} else {
		h.nodes[h.current].next = None
		h.tail = h.current
	}
	logger.DebugTagf("history", "Truncated %d redoable node(s)", dropped)
}

// evict unlinks the oldest trailing segment once the chain holds more
// milestone groups than the configured bound.
func (h *History) evict() {
	for h.milestones > h.maxMilestones && h.head != None && h.head != h.current {
		i := h.head
		wasMilestone := h.nodes[i].Kind == KindMilestone
		h.head = h.nodes[i].next
		if h.head != None {
			h.nodes[h.head].prev = None
		} else {
			h.tail = None
			h.current = None
		}
		h.release(i)
		if wasMilestone {
			h.milestones--
			// One whole group (actions plus their milestone) is gone.
			if h.milestones <= h.maxMilestones {
				return
			}
		}
	}
}

func (h *History) alloc(n Node) int {
	if len(h.free) > 0 {
		idx := h.free[len(h.free)-1]
		h.free = h.free[:len(h.free)-1]
		h.nodes[idx] = n
		return idx
	}
	h.nodes = append(h.nodes, n)
	return len(h.nodes) - 1
}

func (h *History) release(i int) {
	h.nodes[i] = Node{prev: None, next: None}
	h.free = append(h.free, i)
}
