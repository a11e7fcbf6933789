package evaluator

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-equity/internal/deck"
)

func TestRank5(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		category Category
		rank     HandRank
	}{
		{
			name:     "Royal Flush",
			cards:    "AsKsQsJsTs",
			category: StraightFlush,
			rank:     8014,
		},
		{
			name:     "Steel Wheel",
			cards:    "5s4s3s2sAs",
			category: StraightFlush,
			rank:     8005,
		},
		{
			name:     "Four of a Kind",
			cards:    "7s7h7d7cKs",
			category: FourOfAKind,
			rank:     7000 + 16*7 + 13,
		},
		{
			name:     "Full House",
			cards:    "2c2d2h9s9c",
			category: FullHouse,
			rank:     6041,
		},
		{
			name:     "Flush",
			cards:    "AsKsQs8s6s",
			category: Flush,
			rank:     5014,
		},
		{
			name:     "Broadway Straight",
			cards:    "AsKhQdJcTs",
			category: Straight,
			rank:     4014,
		},
		{
			name:     "Wheel",
			cards:    "2c3d4h5sAc",
			category: Straight,
			rank:     4005,
		},
		{
			name:     "Three of a Kind",
			cards:    "AsAhAdKsQh",
			category: ThreeOfAKind,
			rank:     3000 + 16*14 + 4*13 + 12,
		},
		{
			name:     "Two Pair",
			cards:    "AsAhKdKsQh",
			category: TwoPair,
			rank:     2000 + 16*14 + 4*13 + 12,
		},
		{
			name:     "One Pair",
			cards:    "AsAhKdQs9c",
			category: OnePair,
			rank:     1000 + 16*14 + 4*13 + 12,
		},
		{
			name:     "High Card",
			cards:    "AsKhQd9s7c",
			category: HighCard,
			rank:     16*14 + 4*13 + 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rank := MustEvaluate(deck.MustParseCards(tt.cards))
			if rank != tt.rank {
				t.Errorf("Expected rank %d, got %d", tt.rank, rank)
			}
			if rank.Category() != tt.category {
				t.Errorf("Expected category %s, got %s", tt.category, rank.Category())
			}
		})
	}
}

func TestCategoryOrdering(t *testing.T) {
	t.Parallel()

	// Weakest possible hand of each category must beat the strongest hand of
	// the category below.
	ladder := []struct {
		weakest, strongest string
	}{
		{"7c5d4h3s2c", "AsKhQdJc9s"}, // high card
		{"2c2d3h4s5c", "AsAhKdQcJs"}, // one pair
		{"3c3d2h2s4c", "AsAhKdKcQs"}, // two pair
		{"2c2d2h3s4c", "AsAhAdKcQs"}, // three of a kind
		{"Ac2d3h4s5c", "AsKhQdJcTs"}, // straight
		{"7c5c4c3c2c", "AcKcQcJc9c"}, // flush
		{"2c2d2h3s3c", "AsAhAdKcKs"}, // full house
		{"2c2d2h2s3c", "AsAhAdAcKs"}, // four of a kind
		{"Ac2c3c4c5c", "AsKsQsJsTs"}, // straight flush
	}

	for i := 1; i < len(ladder); i++ {
		prev := MustEvaluate(deck.MustParseCards(ladder[i-1].strongest))
		cur := MustEvaluate(deck.MustParseCards(ladder[i].weakest))
		assert.Greater(t, int(cur), int(prev), "%s should beat %s", ladder[i].weakest, ladder[i-1].strongest)
		assert.Equal(t, Category(i), cur.Category())
	}
}

func TestWheelStraight(t *testing.T) {
	t.Parallel()

	wheel := MustEvaluate(deck.MustParseCards("Ac2d3h4s5c"))
	sixHigh := MustEvaluate(deck.MustParseCards("2c3d4h5s6c"))
	bestTrips := MustEvaluate(deck.MustParseCards("AsAhAdKcQs"))

	assert.Equal(t, HandRank(4005), wheel)
	assert.Equal(t, HandRank(4006), sixHigh)
	assert.Less(t, int(wheel), int(sixHigh))
	assert.Greater(t, int(wheel), int(bestTrips))
}

func TestEvaluateOrderInvariant(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 1))
	hands := []string{
		"AsKsQsJsTs",
		"2c2d2h9s9c",
		"2c3d4h5sAc",
		"9h9d4c4s7d",
		"KdJc8h5s3c",
	}

	for _, h := range hands {
		cards := deck.MustParseCards(h)
		want := MustEvaluate(cards)
		for range 50 {
			shuffled := append([]deck.Card(nil), cards...)
			rng.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			require.Equal(t, want, MustEvaluate(shuffled), "order changed rank of %s", h)
		}
	}
}

func TestEvaluateBestOfSeven(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards string
		rank  HandRank
	}{
		{
			// Pair of aces with Q J 9 from the board.
			name:  "aces on dry board",
			cards: "AsAd2c7d9hJcQs",
			rank:  1000 + 16*14 + 4*12 + 11,
		},
		{
			name:  "kings on dry board",
			cards: "KsKd2c7d9hJcQs",
			rank:  1000 + 16*13 + 4*12 + 11,
		},
		{
			// Two trips: the higher triple plays with the lower as the pair.
			name:  "double trips",
			cards: "9s9h9d4c4s4hKd",
			rank:  6000 + 16*9 + 4,
		},
		{
			// Three pairs: best two pairs with the highest remaining kicker.
			name:  "three pairs",
			cards: "QsQh8d8c3s3hAd",
			rank:  2000 + 16*12 + 4*8 + 14,
		},
		{
			// Six to a straight: the higher straight wins over the wheel.
			name:  "wheel plus six",
			cards: "As2d3h4c5s6dKh",
			rank:  4006,
		},
		{
			// Flush beats the straight available in the same seven cards.
			name:  "flush over straight",
			cards: "9h8h7h6c5h2hKd",
			rank:  5009,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rank, err := Evaluate(deck.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.rank, rank)
		})
	}
}

func TestEvaluatePreconditions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards []deck.Card
		want  error
	}{
		{
			name:  "no cards",
			cards: nil,
			want:  ErrTooFewCards,
		},
		{
			name:  "four cards",
			cards: deck.MustParseCards("AsKsQsJs"),
			want:  ErrTooFewCards,
		},
		{
			name:  "duplicate card",
			cards: deck.MustParseCards("AsKsQsJsAs"),
			want:  ErrDuplicateCard,
		},
		{
			name:  "duplicate in seven",
			cards: deck.MustParseCards("AsKsQsJsTs2c2c"),
			want:  ErrDuplicateCard,
		},
		{
			name:  "zero value card",
			cards: append(deck.MustParseCards("AsKsQsJs"), deck.Card{}),
			want:  ErrInvalidCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rank, err := Evaluate(tt.cards)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			if rank != 0 {
				t.Errorf("Expected zero rank on error, got %d", rank)
			}
		})
	}
}

func TestNOfAKindExclude(t *testing.T) {
	t.Parallel()

	values := [HandSize]int{9, 9, 5, 5, 2}
	assert.Equal(t, 9, nOfAKind(values, 2, 0))
	assert.Equal(t, 5, nOfAKind(values, 2, 9))
	assert.Equal(t, 0, nOfAKind(values, 3, 0))
	assert.Equal(t, 2, nOfAKind(values, 1, 0))
}

func TestStraightHigh(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 14, straightHigh([HandSize]int{14, 13, 12, 11, 10}))
	assert.Equal(t, 5, straightHigh([HandSize]int{14, 5, 4, 3, 2}))
	assert.Equal(t, 0, straightHigh([HandSize]int{14, 13, 4, 3, 2}))
	assert.Equal(t, 0, straightHigh([HandSize]int{9, 8, 8, 6, 5}))
}

func TestHandRankString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards    string
		expected string
	}{
		{"AsKsQsJsTs9h8h", "Royal Flush"},
		{"9s8s7s6s5s4h3h", "Straight Flush"},
		{"AsAhAdAcKs2h3h", "Four of a Kind"},
		{"AsAhAdKsKh2h3h", "Full House"},
		{"AsKsQs9s7s4h3h", "Flush"},
		{"AsKhQdJsTs9h8h", "Straight"},
		{"AsAhAdKsQh2h3h", "Three of a Kind"},
		{"AsAhKdKsQh2h3h", "Two Pair"},
		{"AsAhKdQs9h2h3h", "One Pair"},
		{"AsKhQd9s7c5h3h", "High Card"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := MustEvaluate(deck.MustParseCards(tt.cards)).String()
			if result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestHandRankCompare(t *testing.T) {
	t.Parallel()

	royal := MustEvaluate(deck.MustParseCards("AsKsQsJsTs9h8h"))
	quads := MustEvaluate(deck.MustParseCards("AsAhAdAcKs2h3h"))

	assert.Equal(t, 1, royal.Compare(quads))
	assert.Equal(t, -1, quads.Compare(royal))
	assert.Equal(t, 0, royal.Compare(royal))
}
