package guard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryAcquireBlocksSameKey(t *testing.T) {
	g := New()
	key := Key("enquiry", 42)

	assert.True(t, g.TryAcquire(key))
	// Second submission for the same entity is rejected while the
	// first is in flight.
	assert.False(t, g.TryAcquire(key))

	g.Release(key)
	assert.True(t, g.TryAcquire(key))
}

func TestDifferentEntitiesProceedConcurrently(t *testing.T) {
	g := New()
	assert.True(t, g.TryAcquire(Key("enquiry", 1)))
	assert.True(t, g.TryAcquire(Key("enquiry", 2)))
	assert.True(t, g.TryAcquire(Key("payment", 1)))
}

func TestReleaseUnheldKeyIsNoop(t *testing.T) {
	g := New()
	g.Release(Key("checkout", 9))
	assert.True(t, g.TryAcquire(Key("checkout", 9)))
}

func TestConcurrentAcquireSingleWinner(t *testing.T) {
	g := New()
	key := Key("payment", 7)

	const n = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire(key) {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)
}
