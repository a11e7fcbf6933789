// Package equity estimates each player's chance of winning a hold'em hand by
// completing the board at random many times and counting showdowns.
package equity

import (
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/evaluator"
	"github.com/lox/holdem-equity/internal/randutil"
)

// DefaultTrials is the number of trials a simulator runs unless configured
// otherwise.
const DefaultTrials = 15000

// Simulator runs Monte Carlo equity simulations on a fixed pool of workers.
// A Simulator is safe for concurrent use.
type Simulator struct {
	trials  int
	workers int
	seed    *int64
	logger  *log.Logger
	clock   quartz.Clock

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithTrials sets the total number of trials per run. Non-positive values
// are ignored.
func WithTrials(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.trials = n
		}
	}
}

// WithWorkers sets the number of parallel workers. Non-positive values are
// ignored.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithSeed makes every run reproducible: each run starts from a generator
// seeded with seed.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.seed = &seed
		s.rng = nil
	}
}

// WithRand draws worker seeds from rng. Successive runs continue the same
// stream, so a sequence of runs is reproducible from rng's initial state.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		s.rng = rng
		s.seed = nil
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithClock sets the clock used to time runs.
func WithClock(clock quartz.Clock) Option {
	return func(s *Simulator) {
		s.clock = clock
	}
}

// New creates a simulator. By default it runs DefaultTrials trials on one
// worker per CPU with an unseeded random source.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		trials:  DefaultTrials,
		workers: runtime.NumCPU(),
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		clock:   quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Trials returns the configured number of trials per run.
func (s *Simulator) Trials() int {
	return s.trials
}

// Workers returns the configured number of workers.
func (s *Simulator) Workers() int {
	return s.workers
}

// Run estimates equity for every player in snap. The snapshot is never
// modified. Runs with fewer than three community cards return
// ErrBoardIncomplete without doing any work.
func (s *Simulator) Run(snap Snapshot) (*Result, error) {
	if len(snap.Community) < MinBoard {
		return nil, fmt.Errorf("%d community cards: %w", len(snap.Community), ErrBoardIncomplete)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	if need := snap.CardsNeeded(); len(snap.Deck) < need {
		return nil, fmt.Errorf("%w: need %d, deck has %d", ErrDeckExhausted, need, len(snap.Deck))
	}

	snap = snap.Clone()
	runID := uuid.NewString()
	workers := min(s.workers, s.trials)
	logger := s.logger.With("run", runID)

	logger.Debug("Starting equity simulation",
		"players", len(snap.Players),
		"board", deck.FormatCards(snap.Community),
		"deck", len(snap.Deck),
		"trials", s.trials,
		"workers", workers)

	start := s.clock.Now()
	rngs := randutil.Split(s.master(), workers)

	perWorker := s.trials / workers
	remainder := s.trials % workers

	var g errgroup.Group
	tallies := make([]Tally, workers)
	for w := range workers {
		trials := perWorker
		if w < remainder {
			trials++ // Distribute remainder trials
		}
		g.Go(func() error {
			tallies[w] = runWorker(&snap, trials, rngs[w])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := NewTally(len(snap.Players))
	for _, t := range tallies {
		total.Merge(t)
	}

	result := Aggregate(total)
	result.RunID = runID
	result.Requested = s.trials
	result.Workers = workers
	result.Duration = s.clock.Since(start)
	for i := range result.Players {
		result.Players[i].Hole = snap.Players[i]
	}

	logger.Debug("Equity simulation complete",
		"trials", result.Trials,
		"tie_pct", result.TiePct,
		"elapsed", result.Duration)

	return &result, nil
}

// master returns the generator worker seeds are drawn from for one run.
func (s *Simulator) master() *rand.Rand {
	if s.seed != nil {
		return randutil.New(*s.seed)
	}
	if s.rng != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		// Detach from the shared stream so workers never touch it.
		return randutil.New(s.rng.Int64())
	}
	return randutil.NewUnseeded()
}

// runWorker plays trials sequentially against a private copy of the deck and
// returns the worker's own tally.
func runWorker(snap *Snapshot, trials int, rng *rand.Rand) Tally {
	tally := NewTally(len(snap.Players))

	remaining := slices.Clone(snap.Deck)
	known := len(snap.Community)
	need := snap.CardsNeeded()

	board := make([]deck.Card, BoardSize)
	copy(board, snap.Community)

	// Each pool is the player's hole cards followed by the full board.
	pools := make([][]deck.Card, len(snap.Players))
	for i, hole := range snap.Players {
		pools[i] = make([]deck.Card, len(hole)+BoardSize)
		copy(pools[i], hole)
	}

	ranks := make([]evaluator.HandRank, len(snap.Players))
	winners := make([]int, 0, len(snap.Players))

	for range trials {
		// Partial Fisher-Yates: draw the missing board cards from the tail.
		for i := range need {
			last := len(remaining) - 1 - i
			j := rng.IntN(last + 1)
			remaining[j], remaining[last] = remaining[last], remaining[j]
			board[known+i] = remaining[last]
		}

		for p, pool := range pools {
			copy(pool[len(snap.Players[p]):], board)
			ranks[p] = evaluator.BestRank(pool)
		}

		showdown := evaluator.ResolveInto(ranks, winners)
		winners = showdown.Winners
		tally.Record(showdown, ranks)
	}

	return tally
}
