package evaluator

// Showdown is the outcome of comparing every player's best hand in a single
// deal.
type Showdown struct {
	Best    HandRank
	Winners []int // indices into the ranks passed to Resolve, ascending
}

// Resolve finds the strongest rank and every player holding it. Ties are
// exact rank equality.
func Resolve(ranks []HandRank) Showdown {
	return ResolveInto(ranks, nil)
}

// ResolveInto is Resolve reusing winners as the backing store for the
// result's Winners slice.
func ResolveInto(ranks []HandRank, winners []int) Showdown {
	winners = winners[:0]
	if len(ranks) == 0 {
		return Showdown{Winners: winners}
	}

	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank > best {
			best = rank
		}
	}
	for i, rank := range ranks {
		if rank == best {
			winners = append(winners, i)
		}
	}

	return Showdown{Best: best, Winners: winners}
}

// Tie reports whether more than one player shares the pot.
func (s Showdown) Tie() bool {
	return len(s.Winners) > 1
}

// Share returns the win units each winner receives: 1 for a sole winner,
// 1/N for an N-way tie.
func (s Showdown) Share() float64 {
	if len(s.Winners) == 0 {
		return 0
	}
	return 1 / float64(len(s.Winners))
}

// IsWinner reports whether player index i is among the winners.
func (s Showdown) IsWinner(i int) bool {
	for _, w := range s.Winners {
		if w == i {
			return true
		}
	}
	return false
}
