package evaluator

// HandRank encodes a five card hand's category and tie-break strength in a
// single integer. Higher values are stronger hands. Each category occupies
// its own band of 1000 starting at categoryBand * Category.
type HandRank int

// Category is the class of a poker hand, ordered from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// NumCategories is the number of distinct hand categories.
const NumCategories = int(StraightFlush) + 1

// Tie-break encoding. primaryWeight exceeds the largest card value (14) so a
// higher primary value always outranks any kicker combination in the lower
// slots; secondaryWeight is used for the next slot down.
const (
	categoryBand    = 1000
	primaryWeight   = 16
	secondaryWeight = 4
)

// royalFlush is the rank of an ace-high straight flush.
const royalFlush = HandRank(int(StraightFlush)*categoryBand + 14)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Categories returns every category from strongest to weakest.
func Categories() []Category {
	return []Category{
		StraightFlush, FourOfAKind, FullHouse, Flush, Straight,
		ThreeOfAKind, TwoPair, OnePair, HighCard,
	}
}

// Category returns the hand category encoded in the rank.
func (h HandRank) Category() Category {
	c := Category(int(h) / categoryBand)
	if c < HighCard {
		return HighCard
	}
	if c > StraightFlush {
		return StraightFlush
	}
	return c
}

// Compare returns -1 if h is weaker, 0 if equal, 1 if h is stronger
func (h HandRank) Compare(other HandRank) int {
	switch {
	case h > other:
		return 1
	case h < other:
		return -1
	default:
		return 0
	}
}

// String returns the readable name of the hand
func (h HandRank) String() string {
	if h == royalFlush {
		return "Royal Flush"
	}
	return h.Category().String()
}

func makeRank(c Category, tiebreak int) HandRank {
	return HandRank(int(c)*categoryBand + tiebreak)
}
