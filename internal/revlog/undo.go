package revlog

import (
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/cardsched/internal/card"
)

// DefaultUndoDepth is the number of snapshots kept when no depth is configured.
const DefaultUndoDepth = 20

// Snapshot holds the column values of a card before an operation changed them.
type Snapshot struct {
	ID        uuid.UUID
	Name      string
	CardID    int64
	Values    map[string]any
	CreatedAt time.Time
}

func NewSnapshot(name string, c *card.Card, now time.Time) Snapshot {
	return Snapshot{
		ID:        uuid.New(),
		Name:      name,
		CardID:    c.ID,
		Values:    c.AnswerValues(),
		CreatedAt: now,
	}
}

// UndoStack is a bounded LIFO of snapshots. The oldest snapshot is dropped when full.
type UndoStack struct {
	depth int
	items []Snapshot
}

func NewUndoStack(depth int) *UndoStack {
	if depth <= 0 {
		depth = DefaultUndoDepth
	}
	return &UndoStack{depth: depth}
}

func (s *UndoStack) Push(snap Snapshot) {
	snap.Values = maps.Clone(snap.Values)
	if len(s.items) == s.depth {
		s.items = s.items[1:]
	}
	s.items = append(s.items, snap)
}

// Pop removes and returns the latest snapshot.
func (s *UndoStack) Pop() (Snapshot, bool) {
	if len(s.items) == 0 {
		return Snapshot{}, false
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last, true
}

func (s *UndoStack) Peek() (Snapshot, bool) {
	if len(s.items) == 0 {
		return Snapshot{}, false
	}
	return s.items[len(s.items)-1], true
}

// Depth returns how many snapshots are kept at most.
func (s *UndoStack) Depth() int {
	return s.depth
}

func (s *UndoStack) Len() int {
	return len(s.items)
}

func (s *UndoStack) Clear() {
	s.items = nil
}
