package session

import "math/rand"

// Shuffler permutes n elements in place through swap, in the shape of
// rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// RandomShuffle is a uniform Fisher-Yates shuffle.
func RandomShuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// NoShuffle leaves the order untouched.
func NoShuffle(int, func(i, j int)) {}

// Shuffled returns a shuffled copy of items.
func Shuffled[T any](items []T, shuffle Shuffler) []T {
	out := make([]T, len(items))
	copy(out, items)
	if shuffle != nil {
		shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}
