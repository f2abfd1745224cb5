package session

// Distractors draws up to n items from pool uniformly without replacement,
// never picking the item at index current. Items whose text happens to equal
// the correct answer are not filtered out.
func Distractors[T any](pool []T, current, n int, shuffle Shuffler) []T {
	candidates := make([]T, 0, len(pool))
	for i, item := range pool {
		if i != current {
			candidates = append(candidates, item)
		}
	}
	candidates = Shuffled(candidates, shuffle)
	if n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates
}

// ChoiceOptions mixes the correct answer into the distractor texts and
// shuffles the result.
func ChoiceOptions(correct string, distractors []string, shuffle Shuffler) []string {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, correct)
	options = append(options, distractors...)
	return Shuffled(options, shuffle)
}
