package equity

import "github.com/lox/holdem-equity/internal/evaluator"

// Tally accumulates raw trial outcomes. Each worker owns one; tallies are
// merged once all workers have finished.
type Tally struct {
	Trials       int
	TieTrials    int       // trials where the pot was split, counted once each
	WinUnits     []float64 // 1 per sole win, 1/N per N-way tie
	SquaredUnits []float64 // sum of squared per-trial win units
	Ties         []int     // trials in which each player shared the pot
	Categories   [][evaluator.NumCategories]int
}

// NewTally creates an empty tally for the given number of players.
func NewTally(players int) Tally {
	return Tally{
		WinUnits:     make([]float64, players),
		SquaredUnits: make([]float64, players),
		Ties:         make([]int, players),
		Categories:   make([][evaluator.NumCategories]int, players),
	}
}

// Record adds one trial's showdown. ranks holds each player's best hand for
// the trial.
func (t *Tally) Record(s evaluator.Showdown, ranks []evaluator.HandRank) {
	t.Trials++

	share := s.Share()
	tie := s.Tie()
	for _, w := range s.Winners {
		t.WinUnits[w] += share
		t.SquaredUnits[w] += share * share
		if tie {
			t.Ties[w]++
		}
	}
	if tie {
		t.TieTrials++
	}

	for i, rank := range ranks {
		t.Categories[i][rank.Category()]++
	}
}

// Merge adds other's counts into t. Both tallies must cover the same players.
func (t *Tally) Merge(other Tally) {
	t.Trials += other.Trials
	t.TieTrials += other.TieTrials
	for i := range t.WinUnits {
		t.WinUnits[i] += other.WinUnits[i]
		t.SquaredUnits[i] += other.SquaredUnits[i]
		t.Ties[i] += other.Ties[i]
		for c := range t.Categories[i] {
			t.Categories[i][c] += other.Categories[i][c]
		}
	}
}
