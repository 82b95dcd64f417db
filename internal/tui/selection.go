package tui

import (
	"sync"

	"github.com/mmcdole/purse/internal/domain"
	"github.com/mmcdole/purse/internal/screen"
)

// Selection receives the records chosen through Item.Select.
// Its Selectors are handed to screen.Compose before the model exists.
type Selection struct {
	mu     sync.Mutex
	record domain.Record
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{}
}

// Selectors returns callbacks that record the chosen friend, card or transfer
func (s *Selection) Selectors() screen.Selectors {
	return screen.Selectors{
		Friend:   func(f domain.Friend) { s.set(f) },
		Card:     func(c domain.Card) { s.set(c) },
		Transfer: func(t domain.Transfer) { s.set(t) },
	}
}

func (s *Selection) set(rec domain.Record) {
	s.mu.Lock()
	s.record = rec
	s.mu.Unlock()
}

// Take returns and clears the last chosen record
func (s *Selection) Take() (domain.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record
	s.record = nil
	return rec, rec != nil
}
