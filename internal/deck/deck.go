package deck

import (
	"math/rand/v2"
	"slices"
)

// Size is the number of cards in a standard deck.
const Size = NumSuits * NumRanks

// Full returns all 52 cards in canonical order (suit-major, ranks ascending).
func Full() []Card {
	cards := make([]Card, 0, Size)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Deck holds the cards that have not been dealt anywhere. Cards are kept in
// canonical order so that snapshots of equal decks are identical.
type Deck struct {
	present CardSet
}

// NewDeck creates a new standard 52-card deck
func NewDeck() *Deck {
	d := &Deck{}
	d.Reset()
	return d
}

// Reset restores the deck to the full 52 cards
func (d *Deck) Reset() {
	d.present = NewCardSet(Full())
}

// Contains reports whether card is still in the deck
func (d *Deck) Contains(card Card) bool {
	return d.present.Contains(card)
}

// Remove takes a specific card out of the deck. It returns false if the card
// was not in the deck.
func (d *Deck) Remove(card Card) bool {
	if !card.Valid() || !d.present.Contains(card) {
		return false
	}
	d.present.Remove(card)
	return true
}

// Return puts a card back into the deck. It returns false if the card was
// already present.
func (d *Deck) Return(card Card) bool {
	if !card.Valid() || d.present.Contains(card) {
		return false
	}
	d.present.Add(card)
	return true
}

// Draw removes and returns a uniformly random card from the deck
func (d *Deck) Draw(rng *rand.Rand) (Card, bool) {
	cards := d.Cards()
	if len(cards) == 0 {
		return Card{}, false
	}
	card := cards[rng.IntN(len(cards))]
	d.present.Remove(card)
	return card, true
}

// Cards returns a copy of the remaining cards in canonical order
func (d *Deck) Cards() []Card {
	return d.present.Cards()
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return d.present.Len()
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return d.present == 0
}

// Shuffle returns the remaining cards in a random order without modifying
// the deck.
func (d *Deck) Shuffle(rng *rand.Rand) []Card {
	cards := d.Cards()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// SortCards orders cards by descending rank, then by suit.
func SortCards(cards []Card) {
	slices.SortFunc(cards, func(a, b Card) int {
		if a.Rank != b.Rank {
			return int(b.Rank - a.Rank)
		}
		return int(a.Suit - b.Suit)
	})
}
