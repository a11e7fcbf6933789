// Package table tracks the cards at a hold'em table: who holds what, what is
// on the board and what is left in the deck. It hands consistent snapshots to
// the equity simulator and keeps the latest result.
package table

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/randutil"
)

// DefaultMaxPlayers is the seat limit unless configured otherwise.
const DefaultMaxPlayers = 10

// MaxSeats is the most players a single deck can serve: two hole cards each
// plus a full board.
const MaxSeats = (deck.Size - equity.BoardSize) / equity.MaxHoleCards

var (
	ErrCardUnavailable = errors.New("card is not in the deck")
	ErrCardNotDealt    = errors.New("card is not on the table")
	ErrHandFull        = errors.New("player already holds two cards")
	ErrBoardFull       = errors.New("board already has five cards")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrTableFull       = errors.New("table is full")
)

// Estimator computes equity for a snapshot. *equity.Simulator satisfies it.
type Estimator interface {
	Run(snap equity.Snapshot) (*equity.Result, error)
}

// Player is a seated player and their hole cards.
type Player struct {
	ID   string
	Name string
	Hole []deck.Card
}

// Table owns the deck, the players and the community cards. Every card is in
// exactly one place at any time. A Table is not safe for concurrent use.
type Table struct {
	maxPlayers int
	rng        *rand.Rand
	logger     *log.Logger

	deck      *deck.Deck
	players   []*Player
	community []deck.Card
	equity    *equity.Result
}

// Option configures a Table.
type Option func(*Table)

// WithMaxPlayers sets the seat limit, capped at MaxSeats.
func WithMaxPlayers(n int) Option {
	return func(t *Table) {
		if n > 0 {
			t.maxPlayers = min(n, MaxSeats)
		}
	}
}

// WithRand sets the random source used for random deals.
func WithRand(rng *rand.Rand) Option {
	return func(t *Table) {
		t.rng = rng
	}
}

// WithLogger sets the logger card movements are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// New creates a table with a full deck, no players and an empty board.
func New(opts ...Option) *Table {
	t := &Table{
		maxPlayers: DefaultMaxPlayers,
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
		deck:       deck.NewDeck(),
		community:  make([]deck.Card, 0, equity.BoardSize),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = randutil.NewUnseeded()
	}
	return t
}

// AddPlayer seats a new player with no cards and returns their id.
func (t *Table) AddPlayer(name string) (string, error) {
	if len(t.players) >= t.maxPlayers {
		return "", fmt.Errorf("seat %s: %w (%d players)", name, ErrTableFull, t.maxPlayers)
	}

	p := &Player{ID: uuid.NewString(), Name: name}
	t.players = append(t.players, p)
	t.logger.Debug("Player seated", "player", name, "id", p.ID, "seats", len(t.players))
	return p.ID, nil
}

// RemovePlayer unseats a player and returns their hole cards to the deck.
func (t *Table) RemovePlayer(id string) error {
	i, err := t.seat(id)
	if err != nil {
		return err
	}

	p := t.players[i]
	for _, card := range p.Hole {
		t.deck.Return(card)
	}
	t.players = slices.Delete(t.players, i, i+1)
	t.logger.Debug("Player removed", "player", p.Name, "returned", len(p.Hole))
	return nil
}

// DealHole moves card from the deck into a player's hand.
func (t *Table) DealHole(id string, card deck.Card) error {
	i, err := t.seat(id)
	if err != nil {
		return err
	}
	p := t.players[i]
	if len(p.Hole) >= equity.MaxHoleCards {
		return fmt.Errorf("deal %s to %s: %w", card, p.Name, ErrHandFull)
	}
	if !t.deck.Remove(card) {
		return fmt.Errorf("deal %s to %s: %w", card, p.Name, ErrCardUnavailable)
	}

	p.Hole = append(p.Hole, card)
	t.logger.Debug("Dealt hole card", "player", p.Name, "card", card)
	return nil
}

// DealCommunity moves card from the deck onto the board.
func (t *Table) DealCommunity(card deck.Card) error {
	if len(t.community) >= equity.BoardSize {
		return fmt.Errorf("deal %s: %w", card, ErrBoardFull)
	}
	if !t.deck.Remove(card) {
		return fmt.Errorf("deal %s: %w", card, ErrCardUnavailable)
	}

	t.community = append(t.community, card)
	t.logger.Debug("Dealt community card", "card", card, "board", len(t.community))
	return nil
}

// DealRandomHole deals a random card from the deck to a player.
func (t *Table) DealRandomHole(id string) (deck.Card, error) {
	i, err := t.seat(id)
	if err != nil {
		return deck.Card{}, err
	}
	if len(t.players[i].Hole) >= equity.MaxHoleCards {
		return deck.Card{}, fmt.Errorf("deal to %s: %w", t.players[i].Name, ErrHandFull)
	}
	card, err := t.draw()
	if err != nil {
		return deck.Card{}, err
	}
	return card, t.DealHole(id, card)
}

// DealRandomCommunity deals a random card from the deck onto the board.
func (t *Table) DealRandomCommunity() (deck.Card, error) {
	if len(t.community) >= equity.BoardSize {
		return deck.Card{}, ErrBoardFull
	}
	card, err := t.draw()
	if err != nil {
		return deck.Card{}, err
	}
	return card, t.DealCommunity(card)
}

// draw picks a random deck card without removing it; the deal methods move it.
func (t *Table) draw() (deck.Card, error) {
	cards := t.deck.Cards()
	if len(cards) == 0 {
		return deck.Card{}, fmt.Errorf("deck is empty: %w", ErrCardUnavailable)
	}
	return cards[t.rng.IntN(len(cards))], nil
}

// ReturnCard takes card back from whichever hand or board holds it and puts
// it into the deck.
func (t *Table) ReturnCard(card deck.Card) error {
	for _, p := range t.players {
		if i := slices.Index(p.Hole, card); i >= 0 {
			p.Hole = slices.Delete(p.Hole, i, i+1)
			t.deck.Return(card)
			t.logger.Debug("Returned hole card", "player", p.Name, "card", card)
			return nil
		}
	}
	if i := slices.Index(t.community, card); i >= 0 {
		t.community = slices.Delete(t.community, i, i+1)
		t.deck.Return(card)
		t.logger.Debug("Returned community card", "card", card)
		return nil
	}
	return fmt.Errorf("return %s: %w", card, ErrCardNotDealt)
}

// ClearBoard returns every community card to the deck.
func (t *Table) ClearBoard() {
	for _, card := range t.community {
		t.deck.Return(card)
	}
	t.community = t.community[:0]
}

// Reset returns every card to the deck and forgets the last equity result.
// Players stay seated.
func (t *Table) Reset() {
	for _, p := range t.players {
		p.Hole = nil
	}
	t.community = t.community[:0]
	t.deck.Reset()
	t.equity = nil
	t.logger.Debug("Table reset", "players", len(t.players))
}

// Snapshot returns a deep copy of the table for the simulator.
func (t *Table) Snapshot() equity.Snapshot {
	snap := equity.Snapshot{
		Players:   make([][]deck.Card, len(t.players)),
		Community: slices.Clone(t.community),
		Deck:      t.deck.Cards(),
	}
	for i, p := range t.players {
		snap.Players[i] = slices.Clone(p.Hole)
	}
	return snap
}

// Validate checks that the hands, the board and the deck are pairwise
// disjoint and together hold all 52 cards.
func (t *Table) Validate() error {
	var seen deck.CardSet
	for _, p := range t.players {
		if dup, ok := seen.AddAll(p.Hole); ok {
			return fmt.Errorf("%w: %s held twice", equity.ErrInvalidSnapshot, dup)
		}
	}
	if dup, ok := seen.AddAll(t.community); ok {
		return fmt.Errorf("%w: %s held twice", equity.ErrInvalidSnapshot, dup)
	}
	if dup, ok := seen.AddAll(t.deck.Cards()); ok {
		return fmt.Errorf("%w: %s both dealt and in the deck", equity.ErrInvalidSnapshot, dup)
	}
	if seen.Len() != deck.Size {
		return fmt.Errorf("%w: %d of %d cards accounted for", equity.ErrInvalidSnapshot, seen.Len(), deck.Size)
	}
	return nil
}

// UpdateEquity runs est against the current table and stores the result. It
// returns false, keeping the previous result, while the board is short of
// the flop.
func (t *Table) UpdateEquity(est Estimator) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}

	result, err := est.Run(t.Snapshot())
	if errors.Is(err, equity.ErrBoardIncomplete) {
		t.logger.Debug("Skipping equity update", "board", len(t.community))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update equity: %w", err)
	}

	t.equity = result
	return true, nil
}

// Equity returns the most recent equity result, or nil if none has been
// computed.
func (t *Table) Equity() *equity.Result {
	return t.equity
}

// Players returns copies of the seated players in seat order.
func (t *Table) Players() []Player {
	players := make([]Player, len(t.players))
	for i, p := range t.players {
		players[i] = Player{ID: p.ID, Name: p.Name, Hole: slices.Clone(p.Hole)}
	}
	return players
}

// Community returns a copy of the board.
func (t *Table) Community() []deck.Card {
	return slices.Clone(t.community)
}

// DeckSize returns the number of undealt cards.
func (t *Table) DeckSize() int {
	return t.deck.CardsRemaining()
}

func (t *Table) seat(id string) (int, error) {
	i := slices.IndexFunc(t.players, func(p *Player) bool { return p.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("player %q: %w", id, ErrUnknownPlayer)
	}
	return i, nil
}
