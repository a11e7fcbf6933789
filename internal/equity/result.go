package equity

import (
	"time"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/evaluator"
	"github.com/lox/holdem-equity/internal/statistics"
)

// PlayerEquity is one player's share of a simulation run, in percent.
type PlayerEquity struct {
	Hole       []deck.Card
	WinUnits   float64
	Ties       int
	WinPct     float64
	StdErrPct  float64 // standard error of WinPct
	TiePct     float64 // share of trials this player split the pot
	EquityPct  float64
	Categories [evaluator.NumCategories]float64 // percent of trials per best-hand category
}

// Result is the outcome of a simulation run.
type Result struct {
	RunID     string
	Requested int // trials asked for
	Trials    int // trials executed
	Workers   int
	TieTrials int
	TiePct    float64 // share of trials that ended in any tie
	Players   []PlayerEquity
	Duration  time.Duration
}

// Aggregate converts raw counts into percentages.
//
// Equity adds the global tie percentage divided evenly by the number of
// players to each player's win percentage, whether or not that player took
// part in the ties.
func Aggregate(t Tally) Result {
	r := Result{
		Trials:    t.Trials,
		TieTrials: t.TieTrials,
		Players:   make([]PlayerEquity, len(t.WinUnits)),
	}

	r.TiePct = percent(float64(t.TieTrials), t.Trials)
	for i := range r.Players {
		p := &r.Players[i]
		p.WinUnits = t.WinUnits[i]
		p.Ties = t.Ties[i]
		p.WinPct = percent(t.WinUnits[i], t.Trials)
		p.StdErrPct = 100 * winSample(t, i).StdError()
		p.TiePct = percent(float64(t.Ties[i]), t.Trials)
		p.EquityPct = p.WinPct + r.TiePct/float64(len(r.Players))
		for c, n := range t.Categories[i] {
			p.Categories[c] = percent(float64(n), t.Trials)
		}
	}

	return r
}

// winSample treats each trial's win units as one observation. Trials a
// player lost contribute zero to both sums.
func winSample(t Tally, i int) statistics.Sample {
	return statistics.Sample{N: t.Trials, Sum: t.WinUnits[i], SumSq: t.SquaredUnits[i]}
}

func percent(n float64, trials int) float64 {
	if trials == 0 {
		return 0
	}
	return 100 * n / float64(trials)
}
