package deck

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseCard parses a single card in [Rank][Suit] notation, e.g. "As", "Td",
// "10h" or "K♣".
func ParseCard(s string) (Card, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Card{}, err
	}
	if len(cards) != 1 {
		return Card{}, fmt.Errorf("expected one card in %q, got %d", s, len(cards))
	}
	return cards[0], nil
}

// ParseCards parses a string of card notation into a slice of cards.
// Format: "AsKsQsJsTs" where each card is [Rank][Suit]. Whitespace and commas
// between cards are ignored.
// Ranks: A, K, Q, J, T (or 10), 9, 8, 7, 6, 5, 4, 3, 2
// Suits: s (spades), h (hearts), d (diamonds), c (clubs) or ♠ ♥ ♦ ♣
func ParseCards(s string) ([]Card, error) {
	runes := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		runes = append(runes, r)
	}

	var cards []Card
	for i := 0; i < len(runes); {
		rank, width, err := parseRank(runes[i:])
		if err != nil {
			return nil, fmt.Errorf("invalid rank at position %d: %w", i, err)
		}
		i += width
		if i >= len(runes) {
			return nil, fmt.Errorf("incomplete card at position %d", i-width)
		}

		suit, err := parseSuit(runes[i])
		if err != nil {
			return nil, fmt.Errorf("invalid suit at position %d: %w", i, err)
		}
		i++

		cards = append(cards, Card{Rank: rank, Suit: suit})
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// FormatCards renders cards separated by spaces using their symbol notation.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

func parseRank(rs []rune) (Rank, int, error) {
	if len(rs) >= 2 && rs[0] == '1' && rs[1] == '0' {
		return Ten, 2, nil
	}
	switch unicode.ToUpper(rs[0]) {
	case 'A':
		return Ace, 1, nil
	case 'K':
		return King, 1, nil
	case 'Q':
		return Queen, 1, nil
	case 'J':
		return Jack, 1, nil
	case 'T':
		return Ten, 1, nil
	case '9':
		return Nine, 1, nil
	case '8':
		return Eight, 1, nil
	case '7':
		return Seven, 1, nil
	case '6':
		return Six, 1, nil
	case '5':
		return Five, 1, nil
	case '4':
		return Four, 1, nil
	case '3':
		return Three, 1, nil
	case '2':
		return Two, 1, nil
	default:
		return 0, 0, fmt.Errorf("unknown rank '%c'", rs[0])
	}
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 's', 'S', '♠':
		return Spades, nil
	case 'h', 'H', '♥':
		return Hearts, nil
	case 'd', 'D', '♦':
		return Diamonds, nil
	case 'c', 'C', '♣':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit '%c'", r)
	}
}
