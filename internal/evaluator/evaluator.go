package evaluator

// Predicate-based hand evaluator. Five card hands are scored by testing each
// category from strongest to weakest; larger hands are scored by trying every
// five card subset and keeping the best.

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-equity/internal/deck"
)

// HandSize is the number of cards that make up a ranked poker hand.
const HandSize = 5

var (
	// ErrTooFewCards is returned when fewer than five cards are supplied.
	ErrTooFewCards = errors.New("at least five cards are required")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("duplicate card")
	// ErrInvalidCard is returned for cards with an out of range rank or suit.
	ErrInvalidCard = errors.New("invalid card")
)

// Evaluate returns the rank of the best five card hand that can be formed
// from cards. At least five distinct, valid cards are required.
func Evaluate(cards []deck.Card) (HandRank, error) {
	if len(cards) < HandSize {
		return 0, fmt.Errorf("evaluate %d cards: %w", len(cards), ErrTooFewCards)
	}

	var seen deck.CardSet
	for _, card := range cards {
		if !card.Valid() {
			return 0, fmt.Errorf("evaluate %v: %w", card, ErrInvalidCard)
		}
		if seen.Contains(card) {
			return 0, fmt.Errorf("evaluate %s: %w", card, ErrDuplicateCard)
		}
		seen.Add(card)
	}

	return BestRank(cards), nil
}

// MustEvaluate is like Evaluate but panics on invalid input (for tests)
func MustEvaluate(cards []deck.Card) HandRank {
	rank, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return rank
}

// BestRank scores cards without validating them. Callers must guarantee at
// least five distinct valid cards; it returns 0 for fewer.
func BestRank(cards []deck.Card) HandRank {
	if len(cards) < HandSize {
		return 0
	}

	var hand [HandSize]deck.Card
	if len(cards) == HandSize {
		copy(hand[:], cards)
		return Rank5(hand)
	}

	best := HandRank(-1)
	for idx := range Combinations(len(cards), HandSize) {
		for i, j := range idx {
			hand[i] = cards[j]
		}
		if rank := Rank5(hand); rank > best {
			best = rank
		}
	}
	return best
}

// Rank5 scores exactly five cards. Categories are tested in descending
// strength and the first match wins.
func Rank5(hand [HandSize]deck.Card) HandRank {
	values := sortedValues(hand)
	flush := isFlush(hand)
	straight := straightHigh(values)

	if flush && straight > 0 {
		return makeRank(StraightFlush, straight)
	}

	if quad := nOfAKind(values, 4, 0); quad > 0 {
		var rest [HandSize]int
		kickers(values, &rest, quad, 0)
		return makeRank(FourOfAKind, primaryWeight*quad+rest[0])
	}

	trips := nOfAKind(values, 3, 0)
	if trips > 0 {
		if pair := nOfAKind(values, 2, trips); pair > 0 {
			return makeRank(FullHouse, primaryWeight*trips+pair)
		}
	}

	if flush {
		return makeRank(Flush, values[0])
	}

	if straight > 0 {
		return makeRank(Straight, straight)
	}

	var rest [HandSize]int
	if trips > 0 {
		kickers(values, &rest, trips, 0)
		return makeRank(ThreeOfAKind, primaryWeight*trips+secondaryWeight*rest[0]+rest[1])
	}

	high := nOfAKind(values, 2, 0)
	if high > 0 {
		if low := nOfAKind(values, 2, high); low > 0 {
			kickers(values, &rest, high, low)
			return makeRank(TwoPair, primaryWeight*high+secondaryWeight*low+rest[0])
		}
		kickers(values, &rest, high, 0)
		return makeRank(OnePair, primaryWeight*high+secondaryWeight*rest[0]+rest[1])
	}

	return makeRank(HighCard, primaryWeight*values[0]+secondaryWeight*values[1]+values[2])
}

// sortedValues returns the card values in descending order.
func sortedValues(hand [HandSize]deck.Card) [HandSize]int {
	var values [HandSize]int
	for i, card := range hand {
		values[i] = card.Value()
	}
	// Insertion sort; five elements.
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j] > values[j-1]; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}
	return values
}

func isFlush(hand [HandSize]deck.Card) bool {
	for _, card := range hand[1:] {
		if card.Suit != hand[0].Suit {
			return false
		}
	}
	return true
}

// straightHigh returns the high card of a straight formed by the sorted
// values, or 0 if they are not five consecutive ranks. The wheel (A-2-3-4-5)
// is a five-high straight.
func straightHigh(values [HandSize]int) int {
	for i := 1; i < len(values); i++ {
		if values[i] == values[i-1] {
			return 0
		}
	}
	if values[0]-values[4] == 4 {
		return values[0]
	}
	if values == [HandSize]int{14, 5, 4, 3, 2} {
		return 5
	}
	return 0
}

// nOfAKind returns the highest value that appears exactly n times among the
// sorted values, skipping exclude. It returns 0 when no value qualifies.
func nOfAKind(values [HandSize]int, n, exclude int) int {
	for i := 0; i < len(values); {
		j := i
		for j < len(values) && values[j] == values[i] {
			j++
		}
		if j-i == n && values[i] != exclude {
			return values[i]
		}
		i = j
	}
	return 0
}

// kickers writes the values not equal to a or b into rest, highest first.
func kickers(values [HandSize]int, rest *[HandSize]int, a, b int) {
	k := 0
	for _, v := range values {
		if v != a && v != b {
			rest[k] = v
			k++
		}
	}
}
