package table

import (
	"github.com/sanity-io/litter"

	"github.com/lox/holdem-equity/internal/deck"
)

type seatDump struct {
	Name   string
	Hole   string
	Equity float64
}

type tableDump struct {
	Players   []seatDump
	Community string
	Deck      int
	Trials    int
	TiePct    float64
}

var dumpOptions = litter.Options{
	StripPackageNames: true,
	HidePrivateFields: true,
}

// Dump renders the table state for debugging.
func (t *Table) Dump() string {
	d := tableDump{
		Community: notation(t.community),
		Deck:      t.deck.CardsRemaining(),
	}
	for i, p := range t.players {
		seat := seatDump{Name: p.Name, Hole: notation(p.Hole)}
		if t.equity != nil && i < len(t.equity.Players) {
			seat.Equity = t.equity.Players[i].EquityPct
		}
		d.Players = append(d.Players, seat)
	}
	if t.equity != nil {
		d.Trials = t.equity.Trials
		d.TiePct = t.equity.TiePct
	}
	return dumpOptions.Sdump(d)
}

func notation(cards []deck.Card) string {
	s := ""
	for _, card := range cards {
		s += card.Notation()
	}
	return s
}
