package iostore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex(t *testing.T) {
	km := newKeyedMutex()

	var wg sync.WaitGroup
	var mu sync.Mutex
	inside := make(map[string]int)
	maxInside := 0

	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := []string{"a", "b"}[i%2]
			unlock := km.Lock(key)
			defer unlock()

			mu.Lock()
			inside[key]++
			maxInside = max(maxInside, inside[key])
			mu.Unlock()

			mu.Lock()
			inside[key]--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInside)
	assert.Zero(t, km.size())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(assert.AnError))
}
