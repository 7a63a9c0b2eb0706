package service

import "time"

// SetClock replaces the session clock in tests.
func (s *SessionService) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}
