package trivia

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectNextNeverReturnsSeen(t *testing.T) {
	pool := makeQuestions(10)
	seen := []int{1, 2, 3, 4, 5}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		got := SelectNext(pool, seen, rng)
		require.NotNil(t, got)
		assert.NotContains(t, seen, got.ID)
	}
}

func TestSelectNextExhaustedPoolReturnsNil(t *testing.T) {
	pool := makeQuestions(3)

	assert.Nil(t, SelectNext(pool, []int{1, 2, 3}, rand.New(rand.NewSource(1))))
	assert.Nil(t, SelectNext(nil, nil, rand.New(rand.NewSource(1))))
}

func TestSelectNextDrainsPoolExactlyOnce(t *testing.T) {
	pool := makeQuestions(8)
	rng := rand.New(rand.NewSource(7))

	var seen []int
	distinct := map[int]bool{}
	for {
		got := SelectNext(pool, seen, rng)
		if got == nil {
			break
		}
		assert.False(t, distinct[got.ID], "id %d returned twice", got.ID)
		distinct[got.ID] = true
		seen = append(seen, got.ID)
	}

	assert.Len(t, distinct, len(pool), "distinct returns before exhaustion equal the pool size")
}

func TestSelectNextIsReproducibleWithSeededSource(t *testing.T) {
	pool := makeQuestions(20)

	first := SelectNext(pool, nil, rand.New(rand.NewSource(99)))
	second := SelectNext(pool, nil, rand.New(rand.NewSource(99)))

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
}

func TestSelectNextCoversAllCandidates(t *testing.T) {
	pool := makeQuestions(4)
	rng := rand.New(rand.NewSource(3))

	counts := map[int]int{}
	for i := 0; i < 400; i++ {
		got := SelectNext(pool, nil, rng)
		require.NotNil(t, got)
		counts[got.ID]++
	}

	require.Len(t, counts, 4, "every candidate must be reachable")
	for id, n := range counts {
		assert.Greater(t, n, 40, "id %d drawn too rarely for a uniform choice", id)
	}
}
