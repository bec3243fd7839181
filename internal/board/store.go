package board

import (
	"sync"
	"time"

	"github.com/pkordes/departure-board/internal/domain"
	"github.com/pkordes/departure-board/internal/format"
)

// Store holds the current board. It is safe for concurrent use: the poll
// loop writes through Apply while HTTP handlers read through Snapshot.
type Store struct {
	loc   *time.Location
	style format.DateStyle
	now   func() time.Time

	mu    sync.RWMutex
	board domain.Board
}

// NewStore returns an empty board that renders times in loc using the given
// date style. A nil loc means time.Local.
func NewStore(loc *time.Location, style format.DateStyle) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		loc:   loc,
		style: style,
		now:   time.Now,
		board: domain.Board{Rows: []domain.Row{}},
	}
}

// Apply replaces the board with batch and reports whether it did so.
// An empty batch is a no-op and the previous board stays on display.
// Labels come from the first record's TimeStamp; rows keep batch order.
func (s *Store) Apply(batch domain.Batch) bool {
	if len(batch) == 0 {
		return false
	}

	// Render outside the lock so readers never wait on formatting.
	next := domain.Board{
		Labels:    RenderLabels(int64(batch[0].TimeStamp), s.loc, s.style),
		Rows:      RenderRows(batch, s.loc),
		UpdatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.board = next
	s.mu.Unlock()
	return true
}

// Snapshot returns a copy of the current board.
func (s *Store) Snapshot() domain.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.board
	b.Rows = append([]domain.Row(nil), s.board.Rows...)
	if b.Rows == nil {
		b.Rows = []domain.Row{}
	}
	return b
}
