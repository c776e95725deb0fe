package usecase

// sequenceRatio measures how alike two strings are using Ratcliff/Obershelp pattern matching:
// 2*M/T, where M counts the characters in the matching blocks and T is the combined length.
// Blocks are found by taking the longest common substring and recursing on both sides of it.
func sequenceRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2 * float64(matchingCharacters(ra, rb)) / float64(total)
}

type blockSpan struct {
	alo, ahi, blo, bhi int
}

// matchingCharacters sums the sizes of all matching blocks between a and b
func matchingCharacters(a, b []rune) int {
	positions := make(map[rune][]int, len(b))
	for j, r := range b {
		positions[r] = append(positions[r], j)
	}

	matched := 0
	pending := []blockSpan{{0, len(a), 0, len(b)}}
	for len(pending) > 0 {
		span := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		i, j, size := longestMatch(a, positions, span)
		if size == 0 {
			continue
		}
		matched += size

		if span.alo < i && span.blo < j {
			pending = append(pending, blockSpan{span.alo, i, span.blo, j})
		}
		if i+size < span.ahi && j+size < span.bhi {
			pending = append(pending, blockSpan{i + size, span.ahi, j + size, span.bhi})
		}
	}
	return matched
}

// longestMatch finds the longest block a[i:i+size] == b[j:j+size] inside span.
// Ties go to the block that starts earliest in a, then earliest in b.
func longestMatch(a []rune, positions map[rune][]int, span blockSpan) (int, int, int) {
	besti, bestj, bestSize := span.alo, span.blo, 0

	// runLength[j] is the length of the match ending at a[i-1] and b[j]
	runLength := map[int]int{}
	for i := span.alo; i < span.ahi; i++ {
		next := map[int]int{}
		for _, j := range positions[a[i]] {
			if j < span.blo {
				continue
			}
			if j >= span.bhi {
				break
			}
			k := runLength[j-1] + 1
			next[j] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		runLength = next
	}
	return besti, bestj, bestSize
}
