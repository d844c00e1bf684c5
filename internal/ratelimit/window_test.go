package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIncrement_CountsWithinWindow(t *testing.T) {
	s := NewWindowStore(time.Minute)

	hits, reset := s.Increment("a@b.com")
	assert.Equal(t, 1, hits)
	assert.WithinDuration(t, time.Now().Add(time.Minute), reset, time.Second)

	hits, _ = s.Increment("a@b.com")
	assert.Equal(t, 2, hits)
}

func TestIncrement_KeysAreIndependent(t *testing.T) {
	s := NewWindowStore(time.Minute)

	s.Increment("a@b.com")
	hits, _ := s.Increment("c@d.com")
	assert.Equal(t, 1, hits)
}

func TestIncrement_RollsOverAfterReset(t *testing.T) {
	s := NewWindowStore(time.Minute)

	s.Increment("a@b.com")
	s.Increment("a@b.com")
	s.Backdate("a@b.com", 2*time.Minute)

	hits, reset := s.Increment("a@b.com")
	assert.Equal(t, 1, hits, "window should restart after resetTime has passed")
	assert.WithinDuration(t, time.Now().Add(time.Minute), reset, time.Second)
}

func TestDecrement_FloorsAtZero(t *testing.T) {
	s := NewWindowStore(time.Minute)

	s.Increment("a@b.com")
	s.Decrement("a@b.com")
	s.Decrement("a@b.com") // already zero
	s.Decrement("missing") // no window at all

	hits, _ := s.Increment("a@b.com")
	assert.Equal(t, 1, hits)
}

func TestResetKey_DropsSingleWindow(t *testing.T) {
	s := NewWindowStore(time.Minute)

	s.Increment("a@b.com")
	s.Increment("c@d.com")
	s.ResetKey("a@b.com")

	hits, _ := s.Increment("a@b.com")
	assert.Equal(t, 1, hits)
	hits, _ = s.Increment("c@d.com")
	assert.Equal(t, 2, hits)
}

func TestResetAll_ClearsEverything(t *testing.T) {
	s := NewWindowStore(time.Minute)

	s.Increment("a@b.com")
	s.Increment("c@d.com")
	s.ResetAll()

	hits, _ := s.Increment("a@b.com")
	assert.Equal(t, 1, hits)
	hits, _ = s.Increment("c@d.com")
	assert.Equal(t, 1, hits)
}

func TestIncrement_Concurrent(t *testing.T) {
	s := NewWindowStore(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Increment("k")
		}()
	}
	wg.Wait()

	hits, _ := s.Increment("k")
	assert.Equal(t, 51, hits)
}
