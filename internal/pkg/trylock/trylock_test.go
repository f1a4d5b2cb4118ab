package trylock

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryAcquire(t *testing.T) {
	var m Mutex
	assert.True(t, m.TryAcquire())
	assert.True(t, m.Held())
	assert.False(t, m.TryAcquire(), "second acquire must fail while held")

	m.Release()
	assert.False(t, m.Held())
	assert.True(t, m.TryAcquire())
}

func TestOnlyOneWinner(t *testing.T) {
	var (
		m    Mutex
		wins atomic.Int32
		wg   sync.WaitGroup
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.TryAcquire() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}
