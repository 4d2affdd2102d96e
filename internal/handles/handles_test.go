//go:build !ios && !android && (amd64 || arm64)

package handles

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	type session struct {
		Label string
	}

	s := &session{Label: "name"}
	id := Register(s)
	defer Unregister(id)

	require.NotZero(t, id)
	got, ok := Lookup(id).(*session)
	require.True(t, ok, "Lookup returned %T", Lookup(id))
	assert.Same(t, s, got)
}

func TestUnregister(t *testing.T) {
	before := Count()
	id := Register("value")
	assert.Equal(t, before+1, Count())

	Unregister(id)
	assert.Nil(t, Lookup(id))
	assert.Equal(t, before, Count())

	// Second release is a no-op.
	Unregister(id)
	assert.Equal(t, before, Count())
}

func TestLookupZeroAndUnknown(t *testing.T) {
	assert.Nil(t, Lookup(0))
	assert.Nil(t, Lookup(^uintptr(0)))
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[uintptr]bool)
	for i := 0; i < 1000; i++ {
		id := Register(i)
		require.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	for id := range seen {
		Unregister(id)
	}
}

func TestConcurrentRegister(t *testing.T) {
	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := Register([2]int{w, j})
				if Lookup(id) == nil {
					t.Errorf("Lookup(%d) returned nil", id)
				}
				Unregister(id)
			}
		}(w)
	}
	wg.Wait()
}
