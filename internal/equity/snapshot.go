package equity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdem-equity/internal/deck"
)

const (
	// MaxHoleCards is the most hole cards a player can hold.
	MaxHoleCards = 2
	// BoardSize is the number of community cards on a complete board.
	BoardSize = 5
	// MinBoard is the fewest community cards equity is computed for.
	MinBoard = 3
)

var (
	// ErrBoardIncomplete is returned when fewer than MinBoard community cards
	// are known. It is not a failure: callers keep their previous results.
	ErrBoardIncomplete = errors.New("equity needs at least the flop")
	// ErrInvalidSnapshot is returned for snapshots that break size limits or
	// contain the same card twice.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrDeckExhausted is returned when the deck cannot complete the board.
	ErrDeckExhausted = errors.New("not enough cards left to complete the board")
)

// Snapshot is a read-only copy of the table state a simulation runs against:
// each player's hole cards, the community cards and the undealt deck.
type Snapshot struct {
	Players   [][]deck.Card
	Community []deck.Card
	Deck      []deck.Card
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	players := make([][]deck.Card, len(s.Players))
	for i, hole := range s.Players {
		players[i] = slices.Clone(hole)
	}
	return Snapshot{
		Players:   players,
		Community: slices.Clone(s.Community),
		Deck:      slices.Clone(s.Deck),
	}
}

// CardsNeeded returns how many cards must be drawn to complete the board.
func (s Snapshot) CardsNeeded() int {
	return max(BoardSize-len(s.Community), 0)
}

// Validate checks size bounds and that every card appears at most once
// across hands, board and deck.
func (s Snapshot) Validate() error {
	if len(s.Players) == 0 {
		return fmt.Errorf("%w: no players", ErrInvalidSnapshot)
	}
	if len(s.Community) > BoardSize {
		return fmt.Errorf("%w: %d community cards", ErrInvalidSnapshot, len(s.Community))
	}

	var seen deck.CardSet
	check := func(where string, cards []deck.Card) error {
		for _, card := range cards {
			if !card.Valid() {
				return fmt.Errorf("%w: %s holds an invalid card", ErrInvalidSnapshot, where)
			}
			if seen.Contains(card) {
				return fmt.Errorf("%w: %s appears twice (%s)", ErrInvalidSnapshot, card, where)
			}
			seen.Add(card)
		}
		return nil
	}

	for i, hole := range s.Players {
		if len(hole) > MaxHoleCards {
			return fmt.Errorf("%w: player %d has %d hole cards", ErrInvalidSnapshot, i, len(hole))
		}
		if err := check(fmt.Sprintf("player %d", i), hole); err != nil {
			return err
		}
	}
	if err := check("board", s.Community); err != nil {
		return err
	}
	return check("deck", s.Deck)
}
