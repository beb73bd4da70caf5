package trivia

import "math/rand"

// Picker supplies random indexes for quiz selection. *rand.Rand satisfies it,
// which keeps selection seedable in tests.
type Picker interface {
	Intn(n int) int
}

type pickerFunc func(n int) int

func (f pickerFunc) Intn(n int) int { return f(n) }

// DefaultPicker draws from the shared math/rand source, which is safe for
// concurrent use.
func DefaultPicker() Picker { return pickerFunc(rand.Intn) }

// SelectNext picks one question uniformly at random from pool, excluding every
// id in seen. It returns nil when no candidates remain, which is the normal
// end-of-quiz outcome rather than an error.
func SelectNext(pool []Question, seen []int, rng Picker) *FormattedQuestion {
	seenSet := make(map[int]struct{}, len(seen))
	for _, id := range seen {
		seenSet[id] = struct{}{}
	}

	candidates := make([]Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seenSet[q.ID]; !ok {
			candidates = append(candidates, q)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	picked := candidates[rng.Intn(len(candidates))].Format()
	return &picked
}
