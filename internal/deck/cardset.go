package deck

import "math/bits"

// CardSet represents a set of cards using a bitset for fast operations.
// Each card maps to the bit at Card.Index.
type CardSet uint64

// NewCardSet creates a CardSet from a slice of cards
func NewCardSet(cards []Card) CardSet {
	var cs CardSet
	for _, card := range cards {
		cs.Add(card)
	}
	return cs
}

// Add adds a card to the set
func (cs *CardSet) Add(card Card) {
	*cs |= 1 << card.Index()
}

// Remove removes a card from the set
func (cs *CardSet) Remove(card Card) {
	*cs &^= 1 << card.Index()
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(card Card) bool {
	return cs&(1<<card.Index()) != 0
}

// Len returns the number of cards in the set
func (cs CardSet) Len() int {
	return bits.OnesCount64(uint64(cs))
}

// Cards returns the members of the set in canonical order
func (cs CardSet) Cards() []Card {
	cards := make([]Card, 0, cs.Len())
	for _, card := range Full() {
		if cs.Contains(card) {
			cards = append(cards, card)
		}
	}
	return cards
}

// AddAll adds every card to the set and returns the first card that was
// already present, if any.
func (cs *CardSet) AddAll(cards []Card) (Card, bool) {
	for _, card := range cards {
		if cs.Contains(card) {
			return card, true
		}
		cs.Add(card)
	}
	return Card{}, false
}
