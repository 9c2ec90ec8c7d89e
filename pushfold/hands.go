package pushfold

// Starting hands are abstracted to the standard 169 classes of the
// 13x13 grid: pocket pairs on the diagonal, suited combos in the
// upper triangle (high rank major), offsuit combos in the lower
// triangle. Cards are integers 0-51 with rank = card/4 and
// suit = card%4.

const (
	// NumClasses is the number of distinct starting-hand classes.
	NumClasses = 169

	// NumDeals is the number of matchup cells in the deal
	// distribution (ordered pairs of classes).
	NumDeals = NumClasses * NumClasses
)

var rankChars = [...]byte{'2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A'}

// ClassIndex returns the hand-class index of the two hole cards.
// Argument order does not matter.
func ClassIndex(c1, c2 int) int {
	r1, s1 := c1/4, c1%4
	r2, s2 := c2/4, c2%4
	if r1 < r2 {
		r1, r2 = r2, r1
		s1, s2 = s2, s1
	}

	if r1 == r2 || s1 == s2 {
		// Diagonal for pocket pairs, upper triangle for suited combos.
		return 13*r1 + r2
	}

	// Lower triangle for offsuit combos.
	return 13*r2 + r1
}

// ClassName returns the conventional name of a hand class, e.g.
// "AKs", "T9o", "22".
func ClassName(index int) string {
	i := index / 13
	j := index % 13

	switch {
	case i > j:
		return string([]byte{rankChars[i], rankChars[j], 's'})
	case i < j:
		return string([]byte{rankChars[j], rankChars[i], 'o'})
	default:
		return string([]byte{rankChars[i], rankChars[j]})
	}
}

// dealWeights returns the probability of each ordered class matchup
// (hero class i vs villain class j at index i*169+j), derived by
// enumerating every ordered pair of disjoint two-card combos.
func dealWeights() []float64 {
	counts := make([]int, NumDeals)
	total := 0
	for a := 0; a < 52; a++ {
		for b := a + 1; b < 52; b++ {
			hero := ClassIndex(a, b)
			for c := 0; c < 52; c++ {
				if c == a || c == b {
					continue
				}
				for d := c + 1; d < 52; d++ {
					if d == a || d == b {
						continue
					}

					counts[hero*NumClasses+ClassIndex(c, d)]++
					total++
				}
			}
		}
	}

	weights := make([]float64, NumDeals)
	for i, c := range counts {
		weights[i] = float64(c) / float64(total)
	}

	return weights
}
