// Package ratelimit implements the fixed-window request counter behind the
// send-verification endpoint. The window is anchored at the first touch after
// expiry, not calendar-aligned, and rolls over lazily on access; there is no
// background sweep, so a long-running process keeps one entry per distinct key
// ever seen. TODO: bound the map (LRU or periodic sweep) before exposing this
// to untrusted key cardinality.
package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count     int
	resetTime time.Time
}

// WindowStore is a per-key fixed-window counter. All methods are safe for
// concurrent use. State is process-local: in a multi-instance deployment each
// instance enforces its own independent limit.
type WindowStore struct {
	mu       sync.Mutex
	windows  map[string]*window
	duration time.Duration
}

// NewWindowStore creates a store whose windows last the given duration.
func NewWindowStore(duration time.Duration) *WindowStore {
	return &WindowStore{
		windows:  make(map[string]*window),
		duration: duration,
	}
}

// Increment counts one hit against key and returns the post-increment total
// together with the time the window resets. A window whose resetTime has
// passed is cleared and restarted before counting.
func (s *WindowStore) Increment(key string) (totalHits int, resetTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w, ok := s.windows[key]
	if !ok {
		w = &window{resetTime: now.Add(s.duration)}
		s.windows[key] = w
	}
	if !now.Before(w.resetTime) {
		w.count = 0
		w.resetTime = now.Add(s.duration)
	}
	w.count++
	return w.count, w.resetTime
}

// Decrement gives back one hit, flooring at zero. Used when a downstream check
// rejects the request before the rate-limited action actually happens.
func (s *WindowStore) Decrement(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.windows[key]; ok && w.count > 0 {
		w.count--
	}
}

// ResetKey drops the window for a single key.
func (s *WindowStore) ResetKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
}

// ResetAll clears every window. Part of the public contract so test harnesses
// can isolate cases from each other.
func (s *WindowStore) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = make(map[string]*window)
}

// Backdate rewinds the reset time of key's window by d. Test hook for
// simulating window expiry without sleeping.
func (s *WindowStore) Backdate(key string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.windows[key]; ok {
		w.resetTime = w.resetTime.Add(-d)
	}
}
