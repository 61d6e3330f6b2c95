package rental

import "sync"

const firstConfirmationNumber = 1

// ConfirmationSequence hands out unique lease confirmation numbers.
//
// Leases re-hydrated with a supplied number advance the sequence past that number,
// so numbers handed out afterward never collide with recorded ones.
type ConfirmationSequence struct {
	mu   sync.Mutex
	next int
}

// NewConfirmationSequence creates a sequence starting at 1.
func NewConfirmationSequence() *ConfirmationSequence {
	return &ConfirmationSequence{next: firstConfirmationNumber}
}

// Next returns the next unused confirmation number.
func (s *ConfirmationSequence) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.next
	s.next++

	return n
}

// Observe records an externally supplied confirmation number.
func (s *ConfirmationSequence) Observe(confirmationNumber int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if confirmationNumber >= s.next {
		s.next = confirmationNumber + 1
	}
}

// Peek returns the number Next would hand out, without consuming it.
func (s *ConfirmationSequence) Peek() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.next
}

var defaultConfirmations = NewConfirmationSequence()
